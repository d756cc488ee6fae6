package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// ModeExec is the file mode for generated scripts
	ModeExec = os.FileMode(0o755)
)

const (
	// PalmDir is the directory holding palm configuration inside a project
	PalmDir = ".palm"

	// PalmConfigFile is the palm configuration file (image_name, etc.)
	PalmConfigFile = ".palm/config.yaml"

	// PluginConfigFile is the dbt plugin configuration file
	PluginConfigFile = ".palm/dbt-config.yaml"

	// DbtProjectFile is the dbt project metadata file
	DbtProjectFile = "dbt_project.yml"

	// RefFile is the reference SQL used when scaffolding models from existing SQL
	RefFile = ".palm/model_template/ref_files/ref_file.sql"
)

const (
	// DefaultDbtVersion is the dbt version used when none is configured
	DefaultDbtVersion = "0.21.0"

	// DefaultArtifactsLocal is the default location of local dbt artifacts
	DefaultArtifactsLocal = "target/"

	// DefaultModelDocsDir is where model documentation lives when the project
	// does not configure docs-paths
	DefaultModelDocsDir = "models/documentation/models"

	// DefaultColumnDocsDir is where column doc snippets live when the project
	// does not configure docs-paths
	DefaultColumnDocsDir = "models/documentation/columns"

	// DropBranchSchemasOperation is the macro that removes branch schemas
	DropBranchSchemasOperation = "drop_branch_schemas"
)

const (
	// EnvDevSchema carries the per-developer branch schema
	EnvDevSchema = "PDP_DEV_SCHEMA"

	// EnvLegacyEnv is the deprecated environment marker
	EnvLegacyEnv = "PDP_ENV"

	// EnvDbtEnv tells the installed macros which environment is running
	EnvDbtEnv = "PALM_DBT_ENV"

	// EnvDevelopment is the value used for both environment markers
	EnvDevelopment = "DEVELOPMENT"
)
