// Package devenv computes the environment that isolates one developer's dbt runs from another's.
//
// Every developer/branch pair builds into its own schema, so concurrent runs against a shared
// warehouse never collide. The schema name is passed to dbt through environment variables that
// the project's generate_schema_name macro reads.
package devenv

import (
	"os"
	"regexp"
	"strings"

	"github.com/pseudomuto/palm-dbt/pkg/consts"
)

// DefaultUser is used when no user can be determined from the environment.
const DefaultUser = "no_user"

var (
	// userVars are consulted in order, later non-empty values win
	userVars = []string{"LOGNAME", "USER", "LNAME", "USERNAME"}

	nonAlphanumeric = regexp.MustCompile(`[^0-9a-zA-Z]+`)
)

// LocalUser returns the current user name from the environment using lookup (os.LookupEnv when
// nil). The last non-empty value of LOGNAME, USER, LNAME and USERNAME wins.
func LocalUser(lookup func(string) (string, bool)) string {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	user := DefaultUser
	for _, name := range userVars {
		if v, ok := lookup(name); ok && v != "" {
			user = v
		}
	}

	return user
}

// BranchSchema returns the schema name for user working on branch.
//
// Example:
//
//	devenv.BranchSchema("jane.doe", "feature/ADD-users") // jane_doe_feature_add_users
func BranchSchema(user, branch string) string {
	schema := nonAlphanumeric.ReplaceAllString(user+"_"+branch, "_")
	return strings.ToLower(strings.Trim(schema, "_"))
}

// Vars returns the environment variables passed to dbt for user on branch.
func Vars(user, branch string) map[string]string {
	return map[string]string{
		consts.EnvDevSchema: BranchSchema(user, branch),
		consts.EnvLegacyEnv: consts.EnvDevelopment, // deprecated
		consts.EnvDbtEnv:    consts.EnvDevelopment,
	}
}
