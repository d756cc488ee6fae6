package modeldoc

import (
	"path/filepath"
	"slices"
	"strings"
)

// DestinationKind classifies how well a model path identifies its documentation type.
type DestinationKind int

const (
	// NoMatch means no path component names a documentation type (or there is no
	// documentation root at all).
	NoMatch DestinationKind = iota
	// Unambiguous means exactly one documentation type matched.
	Unambiguous
	// Ambiguous means several different documentation types matched.
	Ambiguous
)

func (k DestinationKind) String() string {
	switch k {
	case Unambiguous:
		return "unambiguous"
	case Ambiguous:
		return "ambiguous"
	default:
		return "no match"
	}
}

// Destination is the result of ClassifyDestination.
type Destination struct {
	Kind DestinationKind

	// Type is the matched documentation type when Kind is Unambiguous.
	Type string

	// Candidates are the types the caller may choose from. For Ambiguous destinations these
	// are the matched types, otherwise every known type.
	Candidates []string
}

// ClassifyDestination walks the components of modelPath looking for directories named after
// one of docTypes (e.g. models/marts/dim/dim_users.sql -> dim).
//
// Example:
//
//	dest := modeldoc.ClassifyDestination("models/dim/dim_users.sql", []string{"dim", "fact"}, true)
//	if dest.Kind == modeldoc.Unambiguous {
//		fmt.Println(dest.Type) // dim
//	}
func ClassifyDestination(modelPath string, docTypes []string, docsRootExists bool) Destination {
	all := slices.Clone(docTypes)
	if !docsRootExists {
		return Destination{Kind: NoMatch, Candidates: all}
	}

	var matches []string
	for _, part := range strings.Split(filepath.ToSlash(filepath.Dir(modelPath)), "/") {
		if slices.Contains(docTypes, part) && !slices.Contains(matches, part) {
			matches = append(matches, part)
		}
	}

	switch len(matches) {
	case 0:
		return Destination{Kind: NoMatch, Candidates: all}
	case 1:
		return Destination{Kind: Unambiguous, Type: matches[0], Candidates: matches}
	default:
		return Destination{Kind: Ambiguous, Candidates: matches}
	}
}
