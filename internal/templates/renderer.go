package templates

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/cienporcien/everest-core/internal/blocks"
)

var (
	parseOnce sync.Once
	parsed    *template.Template
	parseErr  error
)

// funcs are available to every template. "block" is a text/template
// keyword, hence evblock.
var funcs = template.FuncMap{
	"evblock":   blocks.Render,
	"join":      strings.Join,
	"upper":     strings.ToUpper,
	"lower":     strings.ToLower,
	"underline": underline,
}

func underline(char, text string) string {
	return strings.Repeat(char, len(text))
}

func set() (*template.Template, error) {
	parseOnce.Do(func() {
		parsed, parseErr = template.New("cpp").
			Funcs(funcs).
			Option("missingkey=error").
			ParseFS(cppFS, "cpp/*.tmpl")
		if parseErr != nil {
			parseErr = fmt.Errorf("parsing templates: %w", parseErr)
		}
	})
	return parsed, parseErr
}

// Render executes the named template with data.
func Render(name Name, data any) (string, error) {
	if !name.IsValid() {
		return "", fmt.Errorf("unknown template %q", name)
	}
	tmpl, err := set()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name.file(), data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}
