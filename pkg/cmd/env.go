package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/docker/client"
	"github.com/pkg/errors"
	"github.com/pseudomuto/palm-dbt/pkg/config"
	"github.com/pseudomuto/palm-dbt/pkg/console"
	"github.com/pseudomuto/palm-dbt/pkg/containerize"
	"github.com/pseudomuto/palm-dbt/pkg/dbt"
	"github.com/pseudomuto/palm-dbt/pkg/devenv"
	"github.com/pseudomuto/palm-dbt/pkg/docker"
	"github.com/pseudomuto/palm-dbt/pkg/git"
	"github.com/pseudomuto/palm-dbt/pkg/project"
	"github.com/pseudomuto/palm-dbt/pkg/prompt"
	"github.com/pseudomuto/palm-dbt/pkg/runner"
)

var (
	// ErrCommandFailed is returned when a dbt command ran but did not succeed. Its message has
	// already been printed.
	ErrCommandFailed = errors.New("command failed")

	// ErrNotImplemented is returned by commands projects are expected to override.
	ErrNotImplemented = errors.New("not implemented")
)

// Env is shared by every command. The root command's Before hook fills in Dir and Local once
// the global flags have been parsed.
type Env struct {
	Dir   string
	Local bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Config *config.Loader

	// Runner replaces the docker (or local shell) runner when set.
	Runner runner.Runner

	// DockerClient replaces the client created from the environment when set.
	DockerClient docker.DockerClient

	// Branch returns the current git branch of dir.
	Branch func(ctx context.Context, dir string) (string, error)

	// LookupEnv resolves the local user name.
	LookupEnv func(key string) (string, bool)

	// OpenBrowser opens url in the user's browser.
	OpenBrowser func(url string)

	project *project.Project
}

// NewEnv creates an Env bound to the process' standard streams.
func NewEnv(loader *config.Loader) *Env {
	return &Env{
		Dir:         ".",
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Config:      loader,
		Branch:      git.CurrentBranch,
		LookupEnv:   os.LookupEnv,
		OpenBrowser: openBrowser,
	}
}

// Project loads the dbt project in Dir. The result is cached.
func (e *Env) Project() (*project.Project, error) {
	if e.project != nil {
		return e.project, nil
	}

	proj := project.New(e.Dir)
	if err := proj.Load(); err != nil {
		return nil, err
	}

	e.project = proj
	return proj, nil
}

// Console returns a Console writing to Stdout.
func (e *Env) Console() *console.Console {
	return console.New(e.Stdout)
}

// Prompter returns a Prompter reading from Stdin.
func (e *Env) Prompter() *prompt.Prompter {
	return prompt.New(e.Stdin, e.Stdout)
}

// DevVars returns the environment variables isolating the current developer's branch.
func (e *Env) DevVars(ctx context.Context) (map[string]string, error) {
	branch, err := e.Branch(ctx, e.Dir)
	if err != nil {
		return nil, err
	}

	return devenv.Vars(devenv.LocalUser(e.LookupEnv), branch), nil
}

// CommandRunner returns the Runner dbt commands are executed with.
func (e *Env) CommandRunner() (runner.Runner, error) {
	if e.Runner != nil {
		return e.Runner, nil
	}

	if e.Local {
		return e.shell(), nil
	}

	opts, err := e.dockerOptions()
	if err != nil {
		return nil, err
	}

	return docker.NewRunner(opts), nil
}

// dockerOptions describes how containers for the project are created: the palm image, the
// project mount and whatever the dbt profile strategy requires.
func (e *Env) dockerOptions() (docker.RunnerOptions, error) {
	palm, err := e.Config.Palm(e.Dir)
	if err != nil {
		return docker.RunnerOptions{}, err
	}

	dir, err := filepath.Abs(e.Dir)
	if err != nil {
		return docker.RunnerOptions{}, errors.Wrapf(err, "failed to get absolute path for %s", e.Dir)
	}

	profile := containerize.ProfileStrategy(os.DirFS(dir))
	opts := docker.RunnerOptions{
		Image:      palm.ImageName,
		ProjectDir: dir,
		Env:        profile.Env,
		Output:     e.Stdout,
	}

	if v, ok := profileVolume(profile); ok {
		opts.Mounts = append(opts.Mounts, v)
	}

	return opts, nil
}

// Engine returns a docker Engine and a function releasing its client.
func (e *Env) Engine() (*docker.Engine, func(), error) {
	if e.DockerClient != nil {
		return docker.NewEngine(e.DockerClient), func() {}, nil
	}

	cl, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create Docker client")
	}

	return docker.NewEngine(cl), func() { _ = cl.Close() }, nil
}

// Execute runs cmd with the developer's environment and prints the outcome. A failed command
// is reported as ErrCommandFailed.
func (e *Env) Execute(ctx context.Context, cmd dbt.Command) error {
	vars, err := e.DevVars(ctx)
	if err != nil {
		return err
	}

	r, err := e.CommandRunner()
	if err != nil {
		return err
	}

	slog.Debug("running dbt command", "cmd", cmd.Render(), "steps", cmd.Names())

	res, err := r.Run(ctx, cmd.Render(), vars)
	if err != nil {
		return err
	}

	e.Console().Result(res.Success, res.Message)
	if !res.Success {
		return ErrCommandFailed
	}

	return nil
}

// StatePath returns the configured local artifacts path used for deferral.
func (e *Env) StatePath() (string, error) {
	cfg, err := e.Config.Plugin(e.Dir)
	if err != nil {
		return "", err
	}

	return cfg.StatePath()
}

func (e *Env) shell() *runner.Shell {
	return &runner.Shell{
		Dir:    e.Dir,
		Stdin:  e.Stdin,
		Stdout: e.Stdout,
		Stderr: e.Stderr,
	}
}

// profileVolume converts the profile's host:container mount, expanding a leading ~.
func profileVolume(p containerize.Profile) (docker.ContainerVolume, bool) {
	host, target, ok := strings.Cut(p.Mount, ":")
	if !ok {
		return docker.ContainerVolume{}, false
	}

	if rest, found := strings.CutPrefix(host, "~"); found {
		home, err := os.UserHomeDir()
		if err != nil {
			slog.Debug("skipping profile mount", "err", err)
			return docker.ContainerVolume{}, false
		}

		host = filepath.Join(home, rest)
	}

	return docker.ContainerVolume{HostPath: host, ContainerPath: target}, true
}
