package wordml

import (
	"strings"

	"github.com/dgallion1/docexport/internal/mdast"
)

// inline converts inline nodes into runs under style st.
func (r *Renderer) inline(nodes []mdast.Node, st Style) []Run {
	var runs []Run
	for _, n := range nodes {
		switch v := n.(type) {
		case *mdast.Text:
			parts := strings.Split(v.Value, "\n")
			for i, part := range parts {
				if part != "" {
					runs = append(runs, r.newRun(part, st))
				}
				if i < len(parts)-1 {
					runs = append(runs, r.breakRun(st))
				}
			}
		case *mdast.InlineCode:
			if v.Value != "" {
				runs = append(runs, r.newRun(v.Value, st.WithMono()))
			}
		case *mdast.Code:
			if v.Value != "" {
				runs = append(runs, r.newRun(v.Value, st.WithMono()))
			}
		case *mdast.Strong:
			runs = append(runs, r.inline(v.Children, st.WithBold())...)
		case *mdast.Emphasis:
			runs = append(runs, r.inline(v.Children, st.WithItalic())...)
		case *mdast.Break:
			runs = append(runs, r.breakRun(st))
		default:
			if txt := mdast.PlainText([]mdast.Node{n}); txt != "" {
				runs = append(runs, r.newRun(txt, st))
			}
		}
	}
	return runs
}

// newRun resolves font family and size for a text run.
func (r *Renderer) newRun(text string, st Style) Run {
	return Run{
		Text:   text,
		Bold:   st.Bold,
		Italic: st.Italic,
		Mono:   st.Mono,
		Font:   r.font(st),
		Size:   r.size(st),
	}
}

func (r *Renderer) breakRun(st Style) Run {
	return Run{Break: true, Font: r.font(st), Size: r.size(st)}
}

func (r *Renderer) font(st Style) string {
	if st.Mono {
		return r.cfg.MonoFont
	}
	return r.cfg.DefaultFont
}

func (r *Renderer) size(st Style) int {
	size := st.Size
	if size <= 0 {
		size = r.cfg.BodySize
	}
	if size < minSize {
		return minSize
	}
	return size
}
