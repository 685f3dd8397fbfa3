package parser

import (
	"regexp"
	"strings"
)

// Block-level rules. Every block construct must be terminated by a
// blank line; ParseBlock appends one to the document, and each rule
// consumes the blank run it ends on, so the next rule always starts at
// the beginning of a line.

var (
	newlineRe    = regexp.MustCompile(`^(?:\n *)*\n`)
	headingRe    = regexp.MustCompile(`^ *(#{1,6})([^\n]+?)#* *(?:\n *)+\n`)
	lheadingRe   = regexp.MustCompile(`^([^\n]+)\n *(=|-){3,} *(?:\n *)+\n`)
	hrRe         = regexp.MustCompile(`^( *[-*_]){3,} *(?:\n *)+\n`)
	codeBlockRe  = regexp.MustCompile(`^(?:    [^\n]+\n*)+(?:\n *)+\n`)
	blockQuoteRe = regexp.MustCompile(`^( *>[^\n]+(\n[^\n]+)*\n*)+`)
	defRe        = regexp.MustCompile(`^ *\[([^\]]+)\]: *<?([^\s>]*)>?(?: +["(]([^\n]+)[")])? *\n(?: *\n)*`)

	codeIndentRe  = regexp.MustCompile(`(?m)^    `)
	codeTrailRe   = regexp.MustCompile(`(?:\n[ \t]*)+$`)
	quotePrefixRe = regexp.MustCompile(`(?m)^ *> ?`)
	fenceTrailRe  = regexp.MustCompile(`\s+$`)
	fenceTailRe   = regexp.MustCompile(`^ *(?:\n *)*\n`)
)

func newlineRule() Rule {
	return Rule{
		Name:  "newline",
		Order: orderNewline,
		Match: blockRegex(newlineRe),
		Parse: func(c *Capture, re Recurse, st State) []Node { return nil },
	}
}

func headingRule() Rule {
	return Rule{
		Name:  "heading",
		Order: orderHeading,
		Match: blockRegex(headingRe),
		Parse: func(c *Capture, re Recurse, st State) []Node {
			body := strings.TrimSpace(c.Group(2))
			return []Node{Heading{
				Level:   len(c.Group(1)),
				Content: re(body, st.withMode(SimpleInline)),
			}}
		},
	}
}

func lheadingRule() Rule {
	return Rule{
		Name:  "lheading",
		Order: orderLheading,
		Match: blockRegex(lheadingRe),
		Parse: func(c *Capture, re Recurse, st State) []Node {
			level := 2
			if c.Group(2) == "=" {
				level = 1
			}
			return []Node{Heading{
				Level:   level,
				Content: re(strings.TrimSpace(c.Group(1)), st.withMode(SimpleInline)),
			}}
		},
	}
}

func hrRule() Rule {
	return Rule{
		Name:  "hr",
		Order: orderHr,
		Match: blockRegex(hrRe),
		Parse: func(c *Capture, re Recurse, st State) []Node { return []Node{Hr{}} },
	}
}

func codeBlockRule() Rule {
	return Rule{
		Name:  "codeBlock",
		Order: orderCodeBlock,
		Match: blockRegex(codeBlockRe),
		Parse: func(c *Capture, re Recurse, st State) []Node {
			content := codeIndentRe.ReplaceAllString(c.Text(), "")
			content = codeTrailRe.ReplaceAllString(content, "")
			return []Node{CodeBlock{Content: content}}
		},
	}
}

// matchFence scans a ``` or ~~~ fence with an optional language token
// on the opening line. The closing marker must repeat the opening one,
// which needs a backreference, so the match is coded by hand.
func matchFence(source string, st State, prev *Capture) *Capture {
	if st.Mode != Block {
		return nil
	}
	i := skipByte(source, 0, ' ')
	if i >= len(source) || (source[i] != '`' && source[i] != '~') {
		return nil
	}
	ch := source[i]
	markerStart := i
	i = skipByte(source, i, ch)
	if i-markerStart < 3 {
		return nil
	}
	marker := source[markerStart:i]

	i = skipByte(source, i, ' ')
	langStart := i
	for i < len(source) && source[i] != '\n' && source[i] != ' ' {
		i++
	}
	lang := source[langStart:i]
	i = skipByte(source, i, ' ')
	if i >= len(source) || source[i] != '\n' {
		return nil
	}
	i++

	bodyStart := i
	bodyEnd := -1
	for {
		lineStart := i
		nl := strings.IndexByte(source[i:], '\n')
		if nl < 0 {
			return nil
		}
		line := source[i : i+nl]
		i += nl + 1
		if strings.Trim(line, " ") == marker {
			bodyEnd = lineStart
			break
		}
	}
	body := fenceTrailRe.ReplaceAllString(source[bodyStart:bodyEnd], "")

	// like every block rule, a fence consumes through the blank line
	// that terminates it
	tail := matchRegex(fenceTailRe, source[i:])
	if tail == nil {
		return nil
	}
	end := i + len(tail.Text())

	c := &Capture{Groups: []string{source[:end], marker, lang, body}}
	if lang == "" {
		c.absent = []bool{false, false, true, false}
	}
	return c
}

func fenceRule() Rule {
	return Rule{
		Name:  "fence",
		Order: orderFence,
		Match: matchFence,
		Parse: func(c *Capture, re Recurse, st State) []Node {
			node := CodeBlock{Content: c.Group(3)}
			if c.Has(2) {
				lang := c.Group(2)
				node.Lang = &lang
			}
			return []Node{node}
		},
	}
}

func blockQuoteRule() Rule {
	return Rule{
		Name:  "blockQuote",
		Order: orderBlockQuote,
		Match: blockRegex(blockQuoteRe),
		Parse: func(c *Capture, re Recurse, st State) []Node {
			content := quotePrefixRe.ReplaceAllString(c.Text(), "")
			return []Node{BlockQuote{Content: re(content, st.withMode(Block))}}
		},
	}
}

func defRule() Rule {
	return Rule{
		Name:  "def",
		Order: orderDef,
		Match: blockRegex(defRe),
		Parse: func(c *Capture, re Recurse, st State) []Node {
			label := NormalizeLabel(c.Group(1))
			node := Def{Def: label, Target: c.Group(2)}
			if c.Has(3) {
				title := c.Group(3)
				node.Title = &title
			}
			if st.Collect {
				st.Refs[label] = Ref{Target: node.Target, Title: node.Title}
			}
			return []Node{node}
		},
	}
}

// matchParagraph captures one or more non-blank lines terminated by a
// blank line. Detecting the terminator needs a negative lookahead
// ("newline not followed by a blank line"), so the scan is by hand.
func matchParagraph(source string, st State, prev *Capture) *Capture {
	if st.Mode != Block {
		return nil
	}
	i := 0
	bodyEnd := -1
	for i < len(source) {
		nl := strings.IndexByte(source[i:], '\n')
		if nl < 0 {
			return nil
		}
		j := i + nl
		k := skipByte(source, j+1, ' ')
		if k < len(source) && source[k] == '\n' {
			bodyEnd = j
			break
		}
		i = j + 1
	}
	if bodyEnd <= 0 {
		return nil
	}

	// consume the terminating blank run; the capture always ends just
	// after a newline
	p := bodyEnd
	end := bodyEnd
	for p < len(source) && source[p] == '\n' {
		end = p + 1
		p = skipByte(source, p+1, ' ')
	}
	return &Capture{Groups: []string{source[:end], source[:bodyEnd]}}
}

func paragraphRule() Rule {
	return Rule{
		Name:  "paragraph",
		Order: orderTable,
		Match: matchParagraph,
		Parse: func(c *Capture, re Recurse, st State) []Node {
			return []Node{Paragraph{Content: re(c.Group(1), st.withMode(Inline))}}
		},
		// competes with the table rule at the same order; a matched
		// alignment row must win
		Quality: func(c *Capture) float64 { return 0 },
	}
}

// skipByte advances i past consecutive occurrences of b.
func skipByte(s string, i int, b byte) int {
	for i < len(s) && s[i] == b {
		i++
	}
	return i
}
