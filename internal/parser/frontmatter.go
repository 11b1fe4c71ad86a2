package parser

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter holds the optional YAML block at the top of a schema
// document. Unknown fields are rejected; the meta map is the extension
// point for custom keys.
type Frontmatter struct {
	Namespace string            `yaml:"namespace"`
	Title     string            `yaml:"title"`
	Meta      map[string]string `yaml:"meta"`
}

// frontmatterPattern matches a leading "--- ... ---" block.
var frontmatterPattern = regexp.MustCompile(`(?s)^\s*---\s*\n(.*?)\n---\s*\n?`)

// extractFrontmatter splits an optional YAML frontmatter block off the
// document. Returns the parsed frontmatter (nil when absent), the rest
// of the text, and the number of lines consumed.
func extractFrontmatter(docName, content string) (*Frontmatter, string, int, error) {
	m := frontmatterPattern.FindStringSubmatch(content)
	if m == nil {
		return nil, content, 0, nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(m[1]), &raw); err != nil {
		return nil, content, 0, &FrontmatterError{Document: docName, Message: fmt.Sprintf("invalid YAML: %v", err)}
	}
	for key := range raw {
		switch key {
		case "namespace", "title", "meta":
		default:
			return nil, content, 0, &FrontmatterError{
				Document: docName,
				Message:  fmt.Sprintf("unknown field %q, use \"meta\" for custom keys", key),
			}
		}
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(m[1]), &fm); err != nil {
		return nil, content, 0, &FrontmatterError{Document: docName, Message: err.Error()}
	}

	full := frontmatterPattern.FindString(content)
	consumed := strings.Count(full, "\n")
	return &fm, content[len(full):], consumed, nil
}
