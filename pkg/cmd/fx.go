package cmd

import "go.uber.org/fx"

var Module = fx.Module("cli",
	fx.Provide(
		NewEnv,
		fx.Annotate(cleanup, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(codeDocs, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(compile, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(containerizeCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(cycle, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(dbtCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(dbtConfig, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(dbtDocs, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(deps, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(install, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(model, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(modelDoc, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(prodArtifacts, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(run, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(seed, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(shell, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(snapshot, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(test, fx.ResultTags(`group:"commands"`)),
	),
	fx.Invoke(Run),
)
