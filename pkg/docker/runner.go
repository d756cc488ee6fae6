package docker

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/pseudomuto/palm-dbt/pkg/runner"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// WorkDir is where the project is mounted inside the container.
	WorkDir = "/app"

	// DefaultShell interprets commands inside the container.
	DefaultShell = "bash"
)

type (
	// RunnerOptions configure a Runner.
	RunnerOptions struct {
		// Image is the project image built from the containerized Dockerfile (palm's image_name).
		Image string

		// ProjectDir is mounted at WorkDir. Relative paths are converted to absolute ones.
		ProjectDir string

		// Mounts are additional host:container bind mounts (e.g. ~/.dbt for profiles).
		Mounts []ContainerVolume

		// Env is added to every command's environment.
		Env map[string]string

		// Shell overrides DefaultShell.
		Shell string

		// Output receives the container logs once the command has finished.
		Output io.Writer
	}

	// Runner executes each command in a fresh container from the project image and waits for
	// it to exit. The container is removed afterwards.
	Runner struct {
		options RunnerOptions
	}
)

// NewRunner creates a Runner with the given options.
//
// Example:
//
//	r := docker.NewRunner(docker.RunnerOptions{
//		Image:      "analytics",
//		ProjectDir: ".",
//		Output:     os.Stdout,
//	})
//
//	res, err := r.Run(ctx, "dbt deps", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(res.Message)
func NewRunner(opts RunnerOptions) *Runner {
	return &Runner{options: opts}
}

// Run implements runner.Runner.
func (r *Runner) Run(ctx context.Context, command string, env map[string]string) (runner.Result, error) {
	if r.options.Image == "" {
		return runner.Result{}, errors.New("image name is required")
	}

	projectDir, err := filepath.Abs(r.options.ProjectDir)
	if err != nil {
		return runner.Result{}, errors.Wrapf(err, "failed to get absolute path for ProjectDir: %s", r.options.ProjectDir)
	}

	shell := r.options.Shell
	if shell == "" {
		shell = DefaultShell
	}

	vars := make(map[string]string, len(r.options.Env)+len(env))
	for k, v := range r.options.Env {
		vars[k] = v
	}
	for k, v := range env {
		vars[k] = v
	}

	mounts := []mount.Mount{{Type: mount.TypeBind, Source: projectDir, Target: WorkDir}}
	for _, m := range r.options.Mounts {
		mounts = append(mounts, mount.Mount{
			Type:     mount.TypeBind,
			Source:   m.HostPath,
			Target:   m.ContainerPath,
			ReadOnly: m.ReadOnly,
		})
	}

	name := r.options.Image + "_" + uuid.NewString()[:8]
	slog.Debug("running command", "runner", "docker", "cmd", command, "container", name)

	ctr, err := testcontainers.Run(ctx, r.options.Image,
		testcontainers.WithEnv(vars),
		testcontainers.WithHostConfigModifier(func(hostConfig *container.HostConfig) {
			hostConfig.Mounts = mounts
		}),
		testcontainers.CustomizeRequest(testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Name:       name,
				Cmd:        []string{shell, "-c", command},
				WorkingDir: WorkDir,
				Labels:     map[string]string{ProjectLabel: r.options.Image},
				WaitingFor: wait.ForExit(),
			},
		}),
	)
	if ctr != nil {
		defer func() { _ = ctr.Terminate(context.WithoutCancel(ctx)) }()
	}
	if err != nil {
		return runner.Result{}, errors.Wrapf(err, "failed to run container from image: %s", r.options.Image)
	}

	if err := r.copyLogs(ctx, ctr); err != nil {
		return runner.Result{}, err
	}

	state, err := ctr.State(ctx)
	if err != nil {
		return runner.Result{}, errors.Wrapf(err, "failed to inspect container: %s", name)
	}

	if state.ExitCode != 0 {
		return runner.Failed(state.ExitCode), nil
	}

	return runner.Succeeded(), nil
}

func (r *Runner) copyLogs(ctx context.Context, ctr testcontainers.Container) error {
	if r.options.Output == nil {
		return nil
	}

	logs, err := ctr.Logs(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to read container logs")
	}
	defer func() { _ = logs.Close() }()

	if _, err := io.Copy(r.options.Output, logs); err != nil {
		return errors.Wrap(err, "failed to copy container logs")
	}

	return nil
}
