package mdast

import "strings"

// PlainText flattens nodes to their literal text. Text and InlineCode values
// are concatenated, Break becomes "\n", leaf Other nodes contribute their
// Value and container nodes are walked recursively. Everything else is
// dropped.
func PlainText(nodes []Node) string {
	var buf strings.Builder
	writePlain(&buf, nodes)
	return buf.String()
}

func writePlain(buf *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch v := n.(type) {
		case *Text:
			buf.WriteString(v.Value)
		case *InlineCode:
			buf.WriteString(v.Value)
		case *Break:
			buf.WriteByte('\n')
		case *Other:
			if v.Value != "" {
				buf.WriteString(v.Value)
			}
			writePlain(buf, v.Children)
		default:
			writePlain(buf, Children(n))
		}
	}
}
