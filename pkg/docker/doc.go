// Package docker runs dbt inside the project's Docker image.
//
// Two pieces are provided:
//
//   - Runner executes one command per container (dbt run, dbt test, ...). The project directory
//     is mounted at /app, the command runs with bash -c and the runner waits for the container
//     to exit before collecting its logs and exit code. The container is removed afterwards.
//   - Engine manages long running containers such as the dbt docs server, and stops every
//     container belonging to a project during cleanup.
//
// Every container is labelled with ProjectLabel so that Engine.StopProject can find it.
//
// # Usage Example
//
//	r := docker.NewRunner(docker.RunnerOptions{
//		Image:      "analytics",
//		ProjectDir: ".",
//		Output:     os.Stdout,
//	})
//
//	res, err := r.Run(ctx, dbt.Run(dbt.RunOptions{}).Render(), devenv.Vars(user, branch))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if !res.Success {
//		fmt.Println(res.Message)
//	}
//
//	cli, _ := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
//	engine := docker.NewEngine(cli)
//
//	// Serve the dbt docs on http://localhost:8080
//	err = engine.Start(ctx, docker.ContainerOptions{
//		Name:    "analytics_docs",
//		Image:   "analytics",
//		Project: "analytics",
//		Cmd:     []string{"bash", "-c", dbt.Docs().Render()},
//		Ports:   map[int]int{8080: 8080},
//	})
package docker
