// Package git reads repository state needed to isolate dbt runs per branch.
package git

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// CurrentBranch returns the checked out branch of the repository containing dir.
func CurrentBranch(ctx context.Context, dir string) (string, error) {
	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = dir
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return "", errors.Wrapf(err, "git rev-parse --abbrev-ref HEAD: %s", strings.TrimSpace(stderr.String()))
	}

	branch := strings.TrimSpace(string(out))
	if branch == "" {
		return "", errors.New("git reported an empty branch name")
	}

	return branch, nil
}
