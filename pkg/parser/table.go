package parser

import (
	"regexp"
	"strings"
)

// Tables are a header row, an alignment row and any number of body
// rows. Edge pipes are optional, so two shapes are recognized; cells
// are split on unescaped pipes by hand.

var (
	tableRe   = regexp.MustCompile(`^ *(\|.+)\n *\|( *[-:]+[-| :]*)\n((?: *\|.*(?:\n|$))*)\n*`)
	npTableRe = regexp.MustCompile(`^ *(\S.*\|.*)\n *([-:]+ *\|[-| :]*)\n((?:.*\|.*(?:\n|$))*)\n*`)

	alignLeftRe   = regexp.MustCompile(`^ *:-+ *$`)
	alignRightRe  = regexp.MustCompile(`^ *-+: *$`)
	alignCenterRe = regexp.MustCompile(`^ *:-+: *$`)
)

func matchTable(source string, st State, prev *Capture) *Capture {
	if st.Mode != Block {
		return nil
	}
	if c := matchRegex(tableRe, source); c != nil {
		return c
	}
	return matchRegex(npTableRe, source)
}

// splitTableCells splits a row on pipes not escaped with a backslash
// and trims each cell. Empty fragments produced by edge pipes are
// dropped.
func splitTableCells(row string) []string {
	var cells []string
	var cur strings.Builder
	for i := 0; i < len(row); i++ {
		b := row[i]
		if b == '\\' && i+1 < len(row) {
			cur.WriteByte(b)
			i++
			cur.WriteByte(row[i])
			continue
		}
		if b == '|' {
			cells = append(cells, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(b)
	}
	cells = append(cells, cur.String())

	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

func parseTableAlign(row string) []Align {
	cols := splitTableCells(row)
	aligns := make([]Align, len(cols))
	for i, col := range cols {
		switch {
		case alignCenterRe.MatchString(col):
			aligns[i] = AlignCenter
		case alignLeftRe.MatchString(col):
			aligns[i] = AlignLeft
		case alignRightRe.MatchString(col):
			aligns[i] = AlignRight
		default:
			aligns[i] = AlignNone
		}
	}
	return aligns
}

func tableRule() Rule {
	return Rule{
		Name:  "table",
		Order: orderTable,
		Match: matchTable,
		Parse: func(c *Capture, re Recurse, st State) []Node {
			cellState := st.withMode(SimpleInline)

			header := splitTableCells(c.Group(1))
			headerNodes := make([][]Node, len(header))
			for i, cell := range header {
				headerNodes[i] = re(cell, cellState)
			}

			var cells [][][]Node
			for _, line := range strings.Split(c.Group(3), "\n") {
				if strings.TrimSpace(line) == "" {
					continue
				}
				row := splitTableCells(line)
				rowNodes := make([][]Node, len(row))
				for i, cell := range row {
					rowNodes[i] = re(cell, cellState)
				}
				cells = append(cells, rowNodes)
			}

			return []Node{Table{
				Header: headerNodes,
				Align:  parseTableAlign(c.Group(2)),
				Cells:  cells,
			}}
		},
		// outranks paragraph, which shares its order, whenever the
		// alignment row matched
		Quality: func(c *Capture) float64 { return float64(len(c.Text())) + 1 },
	}
}
