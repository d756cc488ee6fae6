package containerize_test

import (
	"testing"
	"testing/fstest"

	. "github.com/pseudomuto/palm-dbt/pkg/containerize"
	"github.com/stretchr/testify/require"
)

func TestDetectPackageManager(t *testing.T) {
	tests := []struct {
		name string
		fs   fstest.MapFS
		want PackageManager
	}{
		{name: "poetry lock", fs: fstest.MapFS{"poetry.lock": {}}, want: Poetry},
		{
			name: "poetry pyproject",
			fs:   fstest.MapFS{"pyproject.toml": {Data: []byte("[tool.poetry]\nname = \"x\"")}},
			want: Poetry,
		},
		{
			name: "non poetry pyproject",
			fs:   fstest.MapFS{"pyproject.toml": {Data: []byte("[build-system]")}},
			want: Pip,
		},
		{name: "pipenv", fs: fstest.MapFS{"Pipfile": {}}, want: Pipenv},
		{name: "poetry wins over pipenv", fs: fstest.MapFS{"Pipfile": {}, "poetry.lock": {}}, want: Poetry},
		{name: "requirements", fs: fstest.MapFS{"requirements.txt": {}}, want: Pip},
		{name: "empty", fs: fstest.MapFS{}, want: Pip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DetectPackageManager(tt.fs))
		})
	}
}

func TestProfileStrategy(t *testing.T) {
	t.Run("project", func(t *testing.T) {
		p := ProfileStrategy(fstest.MapFS{"profiles.yml": {}})
		require.Equal(t, ProfileProject, p.Kind)
		require.Equal(t, map[string]string{"DBT_PROFILES_DIR": "/app"}, p.Env)
		require.Empty(t, p.Mount)
	})

	t.Run("home", func(t *testing.T) {
		p := ProfileStrategy(fstest.MapFS{"config/profiles.yml": {}})
		require.Equal(t, ProfileHome, p.Kind)
		require.Empty(t, p.Env)
		require.Equal(t, "~/.dbt:/root/.dbt", p.Mount)
	})
}
