package dbt

import (
	"strings"

	"github.com/pseudomuto/palm-dbt/pkg/consts"
)

// Executable is the dbt binary every segment invokes.
const Executable = "dbt"

type (
	// Segment is a single dbt invocation, e.g. {Name: "run", Args: ["--select", "foo"]}.
	Segment struct {
		Name string
		Args []string
	}

	// Command is an ordered list of segments executed one after the other, stopping at the
	// first failure.
	Command []Segment
)

// String renders the segment as `dbt <name> <args...>`.
func (s Segment) String() string {
	parts := make([]string, 0, len(s.Args)+2)
	parts = append(parts, Executable, s.Name)
	for _, arg := range s.Args {
		if arg != "" {
			parts = append(parts, arg)
		}
	}

	return strings.Join(parts, " ")
}

// Render joins all segments with `&&`.
func (c Command) Render() string {
	parts := make([]string, len(c))
	for i, s := range c {
		parts[i] = s.String()
	}

	return strings.Join(parts, " && ")
}

// String implements fmt.Stringer.
func (c Command) String() string {
	return c.Render()
}

// Names returns the segment names in order.
func (c Command) Names() []string {
	names := make([]string, len(c))
	for i, s := range c {
		names[i] = s.Name
	}

	return names
}

// builder accumulates segments. The zero value is ready to use.
type builder struct {
	cmd Command
}

func (b *builder) add(name string, args ...string) *Segment {
	b.cmd = append(b.cmd, Segment{Name: name, Args: args})
	return &b.cmd[len(b.cmd)-1]
}

func (b *builder) prepare() {
	b.add("clean")
	b.add("deps")
}

func (b *builder) seed(fullRefresh bool, sel []string) {
	s := b.add("seed")
	s.flag("--full-refresh", fullRefresh)
	s.list("--select", sel)
}

func (b *builder) dropBranchSchemas() {
	b.add("run-operation", consts.DropBranchSchemasOperation)
}

func (b *builder) build() Command {
	return b.cmd
}

func (s *Segment) flag(name string, set bool) {
	if set {
		s.Args = append(s.Args, name)
	}
}

func (s *Segment) list(name string, values []string) {
	if len(values) > 0 {
		s.Args = append(append(s.Args, name), values...)
	}
}

func (s *Segment) value(name, value string) {
	if value != "" {
		s.Args = append(s.Args, name, value)
	}
}

// deferTo appends `--defer --state <state>` when enabled.
func (s *Segment) deferTo(enabled bool, state string) {
	if enabled {
		s.Args = append(s.Args, "--defer")
		s.value("--state", state)
	}
}
