// Package containerize scaffolds the Docker setup used to run a dbt project.
//
// The generated files (Dockerfile, docker-compose.yml, scripts/entrypoint.sh and .dockerignore)
// depend on three decisions made by this package:
//   - the Python package manager the project uses (poetry, pipenv or pip)
//   - whether the requested dbt version is supported
//   - where dbt finds profiles.yml inside the container
//
// Generation is idempotent: files that already exist are never overwritten, so it is safe to run
// again after upgrading palm-dbt to pick up newly added files.
//
// Example:
//
//	c := &containerize.Containerizer{
//		ProjectName: "analytics",
//		DbtVersion:  "0.21.0",
//	}
//
//	created, err := c.Run("/path/to/dbt/project")
//	if err != nil {
//		var unsupported *containerize.UnsupportedVersionError
//		if errors.As(err, &unsupported) {
//			log.Fatalf("pick another dbt version: %v", unsupported)
//		}
//		log.Fatal(err)
//	}
//
//	fmt.Println(created) // [.dockerignore Dockerfile docker-compose.yml scripts/entrypoint.sh]
package containerize
