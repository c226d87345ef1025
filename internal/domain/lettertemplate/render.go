package lettertemplate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// Interpolate substitutes {{variable}} placeholders in a template body.
// Unknown placeholders are replaced with an empty string rather than left
// dangling in a patient-facing letter.
func Interpolate(body string, vars map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(body, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		return vars[key]
	})
}

// RenderHTML interpolates variables into a markdown template body and
// converts the result to HTML.
func RenderHTML(body string, vars map[string]string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var out strings.Builder
	if err := md.Convert([]byte(Interpolate(body, vars)), &out); err != nil {
		return "", fmt.Errorf("render letter template: %w", err)
	}
	return out.String(), nil
}
