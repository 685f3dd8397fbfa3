/*
Package dump turns parse trees into inspectable forms: tagged maps (and
JSON built on them) and an indented, styled outline for terminals.
*/
package dump

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mdtree/pkg/parser"
)

// ToMap converts a node into a map with a "type" key, the stable
// hand-off shape for renderers. Optional fields stay present with nil
// values; child sequences become []any.
func ToMap(n parser.Node) map[string]any {
	m := map[string]any{"type": string(n.Type())}
	switch v := n.(type) {
	case parser.Text:
		m["content"] = v.Content
	case parser.Strong:
		m["content"] = listToAny(v.Content)
	case parser.Em:
		m["content"] = listToAny(v.Content)
	case parser.U:
		m["content"] = listToAny(v.Content)
	case parser.Del:
		m["content"] = listToAny(v.Content)
	case parser.InlineCode:
		m["content"] = v.Content
	case parser.Br, parser.Hr:
	case parser.Link:
		m["content"] = listToAny(v.Content)
		m["target"] = v.Target
		m["title"] = strOrNil(v.Title)
	case parser.Image:
		m["alt"] = v.Alt
		m["target"] = v.Target
		m["title"] = strOrNil(v.Title)
	case parser.Paragraph:
		m["content"] = listToAny(v.Content)
	case parser.Heading:
		m["level"] = v.Level
		m["content"] = listToAny(v.Content)
	case parser.CodeBlock:
		m["lang"] = strOrNil(v.Lang)
		m["content"] = v.Content
	case parser.BlockQuote:
		m["content"] = listToAny(v.Content)
	case parser.List:
		m["ordered"] = v.Ordered
		if v.Start != nil {
			m["start"] = *v.Start
		} else {
			m["start"] = nil
		}
		items := make([]any, len(v.Items))
		for i, item := range v.Items {
			items[i] = listToAny(item)
		}
		m["items"] = items
	case parser.Table:
		header := make([]any, len(v.Header))
		for i, cell := range v.Header {
			header[i] = listToAny(cell)
		}
		aligns := make([]any, len(v.Align))
		for i, a := range v.Align {
			if a == parser.AlignNone {
				aligns[i] = nil
			} else {
				aligns[i] = string(a)
			}
		}
		rows := make([]any, len(v.Cells))
		for i, row := range v.Cells {
			cells := make([]any, len(row))
			for j, cell := range row {
				cells[j] = listToAny(cell)
			}
			rows[i] = cells
		}
		m["header"] = header
		m["align"] = aligns
		m["cells"] = rows
	case parser.Def:
		m["def"] = v.Def
		m["target"] = v.Target
		m["title"] = strOrNil(v.Title)
	default:
		panic(fmt.Sprintf("dump: unknown node type %q", n.Type()))
	}
	return m
}

func listToAny(nodes []parser.Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = ToMap(n)
	}
	return out
}

func strOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// JSON renders a tree as indented JSON.
func JSON(nodes []parser.Node) ([]byte, error) {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = ToMap(n)
	}
	return json.MarshalIndent(out, "", "  ")
}

var (
	tagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	attrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// Tree renders a tree as an indented outline, one node per line.
func Tree(nodes []parser.Node) string {
	var b strings.Builder
	writeTree(&b, nodes, 0)
	return b.String()
}

func writeTree(b *strings.Builder, nodes []parser.Node, depth int) {
	pad := strings.Repeat("  ", depth)
	for _, n := range nodes {
		b.WriteString(pad)
		b.WriteString(tagStyle.Render(string(n.Type())))
		switch v := n.(type) {
		case parser.Text:
			b.WriteString(" " + textStyle.Render(fmt.Sprintf("%q", v.Content)))
		case parser.InlineCode:
			b.WriteString(" " + textStyle.Render(fmt.Sprintf("%q", v.Content)))
		case parser.CodeBlock:
			if v.Lang != nil {
				b.WriteString(attrStyle.Render(" lang=" + *v.Lang))
			}
			b.WriteString(" " + textStyle.Render(fmt.Sprintf("%q", v.Content)))
		case parser.Heading:
			b.WriteString(attrStyle.Render(fmt.Sprintf(" level=%d", v.Level)))
		case parser.Link:
			b.WriteString(attrStyle.Render(" target=" + v.Target))
		case parser.Image:
			b.WriteString(attrStyle.Render(fmt.Sprintf(" alt=%q target=%s", v.Alt, v.Target)))
		case parser.List:
			b.WriteString(attrStyle.Render(fmt.Sprintf(" ordered=%v", v.Ordered)))
		case parser.Def:
			b.WriteString(attrStyle.Render(fmt.Sprintf(" %q -> %s", v.Def, v.Target)))
		}
		b.WriteByte('\n')
		writeTree(b, children(n), depth+1)

		if v, ok := n.(parser.List); ok {
			for _, item := range v.Items {
				writeTree(b, item, depth+1)
			}
		}
		if v, ok := n.(parser.Table); ok {
			for _, cell := range v.Header {
				writeTree(b, cell, depth+1)
			}
			for _, row := range v.Cells {
				for _, cell := range row {
					writeTree(b, cell, depth+1)
				}
			}
		}
	}
}

func children(n parser.Node) []parser.Node {
	switch v := n.(type) {
	case parser.Strong:
		return v.Content
	case parser.Em:
		return v.Content
	case parser.U:
		return v.Content
	case parser.Del:
		return v.Content
	case parser.Link:
		return v.Content
	case parser.Paragraph:
		return v.Content
	case parser.Heading:
		return v.Content
	case parser.BlockQuote:
		return v.Content
	}
	return nil
}

// Count reports the total number of nodes in a tree.
func Count(nodes []parser.Node) int {
	total := 0
	for _, n := range nodes {
		total += 1 + Count(children(n))
		if v, ok := n.(parser.List); ok {
			for _, item := range v.Items {
				total += Count(item)
			}
		}
		if v, ok := n.(parser.Table); ok {
			for _, cell := range v.Header {
				total += Count(cell)
			}
			for _, row := range v.Cells {
				for _, cell := range row {
					total += Count(cell)
				}
			}
		}
	}
	return total
}
