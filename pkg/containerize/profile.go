package containerize

import (
	"io/fs"
)

// ProfileKind says where dbt reads profiles.yml from inside the container.
type ProfileKind string

const (
	// ProfileProject uses the profiles.yml committed at the project root.
	ProfileProject ProfileKind = "project"

	// ProfileHome mounts the developer's ~/.dbt directory.
	ProfileHome ProfileKind = "home"
)

// ProfilesFile is the dbt profiles file name.
const ProfilesFile = "profiles.yml"

// Profile describes how the container locates dbt profiles.
type Profile struct {
	Kind ProfileKind

	// Env holds the environment variables the container needs for this strategy.
	Env map[string]string

	// Mount is the host:container volume required by the strategy, if any.
	Mount string
}

// ProfileStrategy picks ProfileProject when profiles.yml sits at the project root, and
// ProfileHome otherwise.
func ProfileStrategy(fsys fs.FS) Profile {
	if exists(fsys, ProfilesFile) {
		return Profile{
			Kind: ProfileProject,
			Env:  map[string]string{"DBT_PROFILES_DIR": "/app"},
		}
	}

	return Profile{
		Kind:  ProfileHome,
		Env:   map[string]string{},
		Mount: "~/.dbt:/root/.dbt",
	}
}
