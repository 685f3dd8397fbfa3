package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// The list grammar needs backreferences (an item's own indent) and
// several lookaheads, none of which RE2 has, so both the matcher and
// the item splitter are coded by hand.

var (
	listLookbehindRe = regexp.MustCompile(`(?:^|\n)( *)$`)
	listItemPrefixRe = regexp.MustCompile(`^( *)([*+-]|\d+\.) +`)
	listBlockEndRe   = regexp.MustCompile(`\n{2,}$`)
	listItemEndRe    = regexp.MustCompile(` *\n+$`)
)

// bulletEnd returns the index just past a list bullet starting at i, or
// -1 when there is none. Bullets are *, -, + or a run of digits
// followed by a dot.
func bulletEnd(s string, i int) int {
	if i >= len(s) {
		return -1
	}
	switch s[i] {
	case '*', '-', '+':
		return i + 1
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j > i && j < len(s) && s[j] == '.' {
		return j + 1
	}
	return -1
}

// bulletAt reports whether a new item of a list indented by indent
// starts at s[i:]: the indent, a bullet, a space.
func bulletAt(s string, i int, indent string) bool {
	if !strings.HasPrefix(s[i:], indent) {
		return false
	}
	be := bulletEnd(s, i+len(indent))
	return be > 0 && be < len(s) && s[be] == ' '
}

// matchList captures a whole run of consecutive items. Lists may only
// start at the beginning of a line, so the previous capture must end
// with a newline (plus optional indentation, which is reconstructed in
// front of the source for matching); inside a tight item the engine is
// in inline mode, and the InList flag keeps the rule eligible there.
func matchList(source string, st State, prev *Capture) *Capture {
	if st.Mode == SimpleInline {
		return nil
	}
	if st.Mode == Inline && !st.InList {
		return nil
	}
	prevText := ""
	if prev != nil {
		prevText = prev.Text()
	}
	lb := listLookbehindRe.FindStringSubmatch(prevText)
	if lb == nil {
		return nil
	}
	src := lb[1] + source

	pm := listItemPrefixRe.FindStringSubmatch(src)
	if pm == nil {
		return nil
	}
	indent, bullet := pm[1], pm[2]

	// the body runs to the first blank-line run that is followed by
	// neither an indented line nor another bullet at the list's indent,
	// or to the end of the input
	end := len(src)
	i := len(pm[0])
	for i < len(src) {
		j := strings.Index(src[i:], "\n\n")
		if j < 0 {
			break
		}
		q := skipByte(src, i+j, '\n')
		if q >= len(src) {
			end = q
			break
		}
		if src[q] == ' ' || bulletAt(src, q, indent) {
			i = q
			continue
		}
		end = q
		break
	}

	return &Capture{
		Groups: []string{src[len(lb[1]):end], indent, bullet},
		full:   src[:end],
	}
}

// splitListItems splits a captured list block into one chunk per
// bullet. A line starting with the list indent and a bullet begins a
// new item; every other line continues the current one, which is how
// deeper-indented bullets stay inside their parent item.
func splitListItems(block, indent string) []string {
	var items []string
	start := 0
	i := 0
	for i < len(block) {
		nl := strings.IndexByte(block[i:], '\n')
		if nl < 0 {
			break
		}
		next := i + nl + 1
		if next < len(block) && bulletAt(block, next, indent) {
			items = append(items, block[start:next])
			start = next
		}
		i = next
	}
	if start < len(block) {
		items = append(items, block[start:])
	}
	return items
}

func listRule() Rule {
	return Rule{
		Name:  "list",
		Order: orderList,
		Match: matchList,
		Parse: func(c *Capture, re Recurse, st State) []Node {
			bullet := c.Group(2)
			ordered := len(bullet) > 1
			var start *int
			if ordered {
				v, err := strconv.Atoi(bullet[:len(bullet)-1])
				if err != nil {
					panic(fmt.Sprintf("parser: bad ordered bullet %q", bullet))
				}
				start = &v
			}

			block := listBlockEndRe.ReplaceAllString(c.full, "\n")
			items := splitListItems(block, c.Group(1))

			out := make([][]Node, 0, len(items))
			lastWasParagraph := false
			for i, item := range items {
				prefix := listItemPrefixRe.FindString(item)
				dedentRe := regexp.MustCompile(fmt.Sprintf(`(?m)^ {1,%d}`, len(prefix)))
				content := listItemPrefixRe.ReplaceAllString(dedentRe.ReplaceAllString(item, ""), "")

				// an item containing a blank line is block-parsed; the
				// last item also inherits looseness from its
				// predecessor. Other items stay inline, so mixed lists
				// classify item by item.
				isLast := i == len(items)-1
				isParagraph := strings.Contains(content, "\n\n") || (isLast && lastWasParagraph)
				lastWasParagraph = isParagraph

				ist := st
				ist.InList = true
				if isParagraph {
					ist.Mode = Block
					content = listItemEndRe.ReplaceAllString(content, "\n\n")
				} else {
					ist.Mode = Inline
					content = listItemEndRe.ReplaceAllString(content, "\n")
				}
				out = append(out, re(content, ist))
			}
			return []Node{List{Ordered: ordered, Start: start, Items: out}}
		},
	}
}
