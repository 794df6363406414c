package mdast

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// Meta is the YAML front matter recognised at the top of a Markdown source.
type Meta struct {
	Title    string         `yaml:"title"`
	Author   string         `yaml:"author"`
	Lang     string         `yaml:"lang"`
	Filename string         `yaml:"filename"`
	Custom   map[string]any `yaml:",inline"`
}

// SplitFrontMatter separates a leading front matter block from the Markdown
// body. Sources without front matter come back unchanged with a zero Meta.
// A leading block that does not decode to a mapping is Markdown, such as a
// thematic break followed by a setext heading, and is kept in the body.
func SplitFrontMatter(src []byte) (Meta, []byte, error) {
	var raw any
	body, err := frontmatter.Parse(bytes.NewReader(src), &raw)
	if err != nil {
		return Meta{}, src, nil
	}
	switch raw.(type) {
	case nil:
		return Meta{}, body, nil
	case map[any]any, map[string]any:
	default:
		return Meta{}, src, nil
	}

	var meta Meta
	if body, err = frontmatter.Parse(bytes.NewReader(src), &meta); err != nil {
		return Meta{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, body, nil
}
