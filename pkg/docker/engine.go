package docker

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/go-connections/nat"
	v1 "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/pkg/errors"
	"github.com/pseudomuto/palm-dbt/pkg/runner"
)

// ProjectLabel marks every container palm-dbt starts with the project (image) it belongs to.
const ProjectLabel = "com.palm-dbt.project"

var runningContainers = filters.Arg("status", "running")

type (
	// DockerClient defines the interface for Docker operations used by the Engine.
	// This interface is satisfied by *client.Client and allows for easy mocking in tests.
	DockerClient interface {
		ContainerCreate(context.Context, *container.Config, *container.HostConfig, *network.NetworkingConfig, *v1.Platform, string) (container.CreateResponse, error)
		ContainerStart(context.Context, string, container.StartOptions) error
		ContainerList(context.Context, container.ListOptions) ([]container.Summary, error)
		ContainerStop(context.Context, string, container.StopOptions) error
		ContainerRemove(context.Context, string, container.RemoveOptions) error
		ContainerInspect(context.Context, string) (container.InspectResponse, error)
	}

	// Engine manages long running project containers (dbt docs servers and the like).
	Engine struct {
		client DockerClient
	}

	Container struct {
		ID     string
		Names  []string
		Image  string
		State  string
		Status string
	}

	ContainerOptions struct {
		Name       string
		Image      string
		Project    string
		Cmd        []string
		WorkingDir string
		Env        map[string]string
		Ports      map[int]int
		Volumes    []ContainerVolume
	}

	ContainerVolume struct {
		HostPath      string `yaml:"hostPath"`
		ContainerPath string `yaml:"containerPath"`
		ReadOnly      bool   `yaml:"readOnly"`
	}
)

// NewEngine creates a new Docker Engine instance for managing Docker operations.
// The Docker client should be initialized and connected before passing to this constructor.
//
// Example:
//
//	// Create Docker client
//	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer cli.Close()
//
//	// Stop everything started for the project
//	engine := docker.NewEngine(cli)
//	stopped, err := engine.StopProject(ctx, "analytics")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(stopped)
func NewEngine(cl DockerClient) *Engine {
	return &Engine{
		client: cl,
	}
}

// Start creates and starts a detached container labelled with opts.Project.
func (c *Engine) Start(ctx context.Context, opts ContainerOptions) error {
	env := runner.Environ(opts.Env)

	// Build port bindings
	exposedPorts := make(nat.PortSet)
	portBindings := make(nat.PortMap)
	for hostPort, containerPort := range opts.Ports {
		port := nat.Port(fmt.Sprintf("%d/tcp", containerPort))
		exposedPorts[port] = struct{}{}

		// If hostPort is 0 or negative, let Docker assign a random port
		hostPortStr := ""
		if hostPort > 0 {
			hostPortStr = strconv.Itoa(hostPort)
		}

		portBindings[port] = []nat.PortBinding{
			{
				HostPort: hostPortStr,
			},
		}
	}

	binds := make([]string, len(opts.Volumes))
	for i, volume := range opts.Volumes {
		binds[i] = volume.Bind()
	}

	labels := map[string]string{}
	if opts.Project != "" {
		labels[ProjectLabel] = opts.Project
	}

	resp, err := c.client.ContainerCreate(
		ctx,
		&container.Config{
			Image:        opts.Image,
			Cmd:          opts.Cmd,
			WorkingDir:   opts.WorkingDir,
			Env:          env,
			ExposedPorts: exposedPorts,
			Labels:       labels,
		},
		&container.HostConfig{
			PortBindings: portBindings,
			Binds:        binds,
		},
		nil,
		nil,
		opts.Name,
	)
	if err != nil {
		return errors.Wrapf(err, "failed to create container: %s", opts.Name)
	}

	if err := c.client.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return errors.Wrapf(err, "failed to start container: %s", opts.Name)
	}

	return nil
}

// List returns the running containers labelled with project, sorted by name.
func (c *Engine) List(ctx context.Context, project string) ([]*Container, error) {
	list, err := c.client.ContainerList(ctx, container.ListOptions{
		Filters: filters.NewArgs(
			runningContainers,
			filters.Arg("label", ProjectLabel+"="+project),
		),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list running containers")
	}

	res := make([]*Container, len(list))
	for i, c := range list {
		// Map slice of names to remove leading "/" prefix
		names := make([]string, len(c.Names))
		for j, name := range c.Names {
			names[j] = strings.TrimPrefix(name, "/")
		}

		res[i] = &Container{
			ID:     c.ID,
			Names:  names,
			Image:  c.Image,
			State:  c.State,
			Status: c.Status,
		}
	}

	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res, nil
}

// Stop stops and removes a container.
func (c *Engine) Stop(ctx context.Context, nameOrID string) error {
	timeout := 30
	if err := c.client.ContainerStop(ctx, nameOrID, container.StopOptions{
		Timeout: &timeout,
	}); err != nil {
		return errors.Wrapf(err, "failed to stop container: %s", nameOrID)
	}

	if err := c.client.ContainerRemove(ctx, nameOrID, container.RemoveOptions{
		Force: true,
	}); err != nil {
		return errors.Wrapf(err, "failed to remove container: %s", nameOrID)
	}

	return nil
}

// StopProject stops every running container labelled with project and returns their names.
func (c *Engine) StopProject(ctx context.Context, project string) ([]string, error) {
	containers, err := c.List(ctx, project)
	if err != nil {
		return nil, err
	}

	stopped := make([]string, 0, len(containers))
	for _, ctr := range containers {
		if err := c.Stop(ctx, ctr.ID); err != nil {
			return stopped, err
		}

		stopped = append(stopped, ctr.Name())
	}

	return stopped, nil
}

// Get inspects a single container.
func (c *Engine) Get(ctx context.Context, nameOrID string) (*Container, error) {
	inspect, err := c.client.ContainerInspect(ctx, nameOrID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to inspect container: %s", nameOrID)
	}

	var names []string
	if inspect.Name != "" {
		names = []string{strings.TrimPrefix(inspect.Name, "/")}
	}

	res := &Container{ID: inspect.ID, Names: names}
	if inspect.Config != nil {
		res.Image = inspect.Config.Image
	}
	if inspect.State != nil {
		res.State = inspect.State.Status
		res.Status = inspect.State.Status
	}

	return res, nil
}

// Name returns the first container name, falling back to the ID.
func (c *Container) Name() string {
	if len(c.Names) > 0 {
		return c.Names[0]
	}

	return c.ID
}

// Bind renders the volume in docker's host:container[:ro] bind syntax.
func (v ContainerVolume) Bind() string {
	bind := fmt.Sprintf("%s:%s", v.HostPath, v.ContainerPath)
	if v.ReadOnly {
		bind += ":ro"
	}

	return bind
}
