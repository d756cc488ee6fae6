package modeldoc

import (
	_ "embed"
	"io"
	"strings"
	"text/template"
	"unicode"

	"github.com/pkg/errors"
)

var (
	//go:embed templates/model.md.tmpl
	markdownTemplate string

	markdown = template.Must(template.New("model.md").Parse(markdownTemplate))
)

// MarkdownInput holds the values rendered into a model's documentation block.
type MarkdownInput struct {
	Model       string
	Grain       string
	Description string
}

// Title returns the humanized model name.
func (m MarkdownInput) Title() string {
	return Humanize(m.Model)
}

// RenderMarkdown writes the `{% docs %}` block for the model to w.
//
// Example:
//
//	var buf bytes.Buffer
//	_ = modeldoc.RenderMarkdown(&buf, modeldoc.MarkdownInput{
//		Model:       "dim_users",
//		Grain:       "One row per user",
//		Description: "Every registered user.",
//	})
//
//	fmt.Print(buf.String())
//	// {% docs dim_users %}
//	// # Dim Users
//	// ...
//	// {% enddocs %}
func RenderMarkdown(w io.Writer, in MarkdownInput) error {
	if err := markdown.Execute(w, in); err != nil {
		return errors.Wrapf(err, "failed to render docs for %s", in.Model)
	}

	return nil
}

// Humanize turns a snake_case model name into a title (dim_users -> Dim Users).
func Humanize(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || unicode.IsSpace(r) })
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}

	return strings.Join(words, " ")
}
