package parser

import (
	"regexp"
	"strings"
)

// Inline rules. Emphasis, links and the text fallback need lookaheads
// or backreferences, so their matchers are byte scanners; the rest are
// anchored regexes.

var (
	escapeRe       = regexp.MustCompile(`^\\([^0-9A-Za-z\s])`)
	autolinkRe     = regexp.MustCompile(`^<([^ >]+:/[^ >]+)>`)
	mailtoRe       = regexp.MustCompile(`^<([^ >]+@[^ >]+)>`)
	urlRe          = regexp.MustCompile(`^(https?://[^\s<]+[^<.,:;"')\]\s])`)
	emUnderscoreRe = regexp.MustCompile(`^\b_((?:__|\\[\s\S]|[^\\_])+?)_\b`)
	delRe          = regexp.MustCompile(`^~~(\S(?:[\s\S]*?\S)??)~~`)
	brRe           = regexp.MustCompile(`^ {2,}\n`)

	unescapeTargetRe = regexp.MustCompile(`\\([^0-9A-Za-z\s])`)
)

func escapeRule() Rule {
	return Rule{
		Name:  "escape",
		Order: orderEscape,
		Match: simpleInlineRegex(escapeRe),
		Parse: func(c *Capture, re Recurse, st State) []Node {
			// one text node per escape
			return []Node{Text{Content: c.Group(1)}}
		},
	}
}

func autolinkRule() Rule {
	return Rule{
		Name:  "autolink",
		Order: orderAutolink,
		Match: inlineRegex(autolinkRe),
		Parse: func(c *Capture, re Recurse, st State) []Node {
			return []Node{Link{
				Content: []Node{Text{Content: c.Group(1)}},
				Target:  c.Group(1),
			}}
		},
	}
}

func mailtoRule() Rule {
	return Rule{
		Name:  "mailto",
		Order: orderMailto,
		Match: inlineRegex(mailtoRe),
		Parse: func(c *Capture, re Recurse, st State) []Node {
			address := c.Group(1)
			target := address
			if !strings.HasPrefix(target, "mailto:") {
				target = "mailto:" + target
			}
			return []Node{Link{
				Content: []Node{Text{Content: address}},
				Target:  target,
			}}
		},
	}
}

func urlRule() Rule {
	return Rule{
		Name:  "url",
		Order: orderURL,
		Match: inlineRegex(urlRe),
		Parse: func(c *Capture, re Recurse, st State) []Node {
			return []Node{Link{
				Content: []Node{Text{Content: c.Group(1)}},
				Target:  c.Group(1),
			}}
		},
	}
}

// scanLinkLabel returns the index of the ']' matching the '[' at 0,
// honoring nesting and backslash escapes, or -1.
func scanLinkLabel(s string) int {
	level := 1
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[':
			level++
		case ']':
			level--
			if level == 0 {
				return i
			}
		}
	}
	return -1
}

// scanLinkTarget parses `(target "title")` starting at s[i] == '(' and
// returns the target, the optional title and the index just past the
// closing ')'. The target may be wrapped in angle brackets and may
// contain balanced parentheses.
func scanLinkTarget(s string, i int) (target string, title *string, end int, ok bool) {
	i++ // past '('
	i = skipSpace(s, i)

	targetStart := i
	depth := 0
scanTarget:
	for i < len(s) {
		switch {
		case s[i] == '\\':
			i += 2
		case s[i] == '(':
			depth++
			i++
		case s[i] == ')':
			if depth <= 0 {
				break scanTarget
			}
			depth--
			i++
		case s[i] == '\'' || s[i] == '"':
			break scanTarget
		default:
			i++
		}
	}
	if i >= len(s) {
		return "", nil, 0, false
	}
	targetEnd := i

	if s[i] == '\'' || s[i] == '"' {
		quote := s[i]
		i++
		titleStart := i
		for {
			j := strings.IndexByte(s[i:], quote)
			if j < 0 {
				return "", nil, 0, false
			}
			i += j
			k := skipSpace(s, i+1)
			if k < len(s) && s[k] == ')' {
				t := s[titleStart:i]
				title = &t
				i = k
				break
			}
			i++
		}
	}

	i = skipSpace(s, i)
	if i >= len(s) || s[i] != ')' {
		return "", nil, 0, false
	}
	end = i + 1

	for targetEnd > targetStart && isSpaceByte(s[targetEnd-1]) {
		targetEnd--
	}
	// strip optional angle brackets
	if targetEnd > targetStart && s[targetStart] == '<' {
		targetStart++
	}
	if targetEnd > targetStart && s[targetEnd-1] == '>' {
		targetEnd--
	}
	target = unescapeTargetRe.ReplaceAllString(s[targetStart:targetEnd], "$1")
	return target, title, end, true
}

func matchLink(source string, st State, prev *Capture) *Capture {
	if st.Mode != Inline {
		return nil
	}
	if len(source) == 0 || source[0] != '[' {
		return nil
	}
	close := scanLinkLabel(source)
	if close < 0 || close+1 >= len(source) || source[close+1] != '(' {
		return nil
	}
	target, title, end, ok := scanLinkTarget(source, close+1)
	if !ok {
		return nil
	}
	c := &Capture{Groups: []string{source[:end], source[1:close], target, ""}, absent: []bool{false, false, false, true}}
	if title != nil {
		c.Groups[3] = *title
		c.absent[3] = false
	}
	return c
}

func linkRule() Rule {
	return Rule{
		Name:  "link",
		Order: orderLink,
		Match: matchLink,
		Parse: func(c *Capture, re Recurse, st State) []Node {
			node := Link{
				Content: re(c.Group(1), st.withMode(SimpleInline)),
				Target:  c.Group(2),
			}
			if c.Has(3) {
				title := c.Group(3)
				node.Title = &title
			}
			return []Node{node}
		},
	}
}

func matchImage(source string, st State, prev *Capture) *Capture {
	if st.Mode != Inline {
		return nil
	}
	if len(source) < 2 || source[0] != '!' || source[1] != '[' {
		return nil
	}
	inner := matchLink(source[1:], st, prev)
	if inner == nil {
		return nil
	}
	c := &Capture{
		Groups: []string{source[:1+len(inner.Text())], inner.Group(1), inner.Group(2), inner.Group(3)},
		absent: []bool{false, false, false, !inner.Has(3)},
	}
	return c
}

func imageRule() Rule {
	return Rule{
		Name:  "image",
		Order: orderImage,
		Match: matchImage,
		Parse: func(c *Capture, re Recurse, st State) []Node {
			node := Image{Alt: c.Group(1), Target: c.Group(2)}
			if c.Has(3) {
				title := c.Group(3)
				node.Title = &title
			}
			return []Node{node}
		},
	}
}

// matchRefLabel matches `[text][label]` and `[text][]`.
func matchRefLabel(source string) *Capture {
	if len(source) == 0 || source[0] != '[' {
		return nil
	}
	close := scanLinkLabel(source)
	if close < 0 {
		return nil
	}
	i := skipByte(source, close+1, ' ')
	if i >= len(source) || source[i] != '[' {
		return nil
	}
	end := strings.IndexByte(source[i:], ']')
	if end < 0 {
		return nil
	}
	return &Capture{Groups: []string{
		source[:i+end+1],
		source[1:close],
		source[i+1 : i+end],
	}}
}

// refFallback renders an unresolved reference as its literal bracketed
// characters, one text node apiece.
func refFallback(inner, label string) []Node {
	nodes := []Node{Text{Content: "["}}
	if inner != "" {
		nodes = append(nodes, Text{Content: inner})
	}
	nodes = append(nodes, Text{Content: "]"}, Text{Content: "["})
	if label != "" {
		nodes = append(nodes, Text{Content: label})
	}
	return append(nodes, Text{Content: "]"})
}

// resolveRef looks a reference up by its explicit label, falling back
// to the display text for the implicit `[text][]` form.
func resolveRef(c *Capture, st State) (Ref, bool) {
	label := c.Group(2)
	if label == "" {
		label = c.Group(1)
	}
	ref, ok := st.Refs[NormalizeLabel(label)]
	return ref, ok
}

func reflinkRule() Rule {
	return Rule{
		Name:  "reflink",
		Order: orderReflink,
		Match: func(source string, st State, prev *Capture) *Capture {
			if st.Mode != Inline {
				return nil
			}
			return matchRefLabel(source)
		},
		Parse: func(c *Capture, re Recurse, st State) []Node {
			ref, ok := resolveRef(c, st)
			if !ok {
				return refFallback(c.Group(1), c.Group(2))
			}
			return []Node{Link{
				Content: re(c.Group(1), st.withMode(SimpleInline)),
				Target:  ref.Target,
				Title:   ref.Title,
			}}
		},
	}
}

func refimageRule() Rule {
	return Rule{
		Name:  "refimage",
		Order: orderRefimage,
		Match: func(source string, st State, prev *Capture) *Capture {
			if st.Mode != Inline {
				return nil
			}
			if len(source) < 2 || source[0] != '!' {
				return nil
			}
			inner := matchRefLabel(source[1:])
			if inner == nil {
				return nil
			}
			return &Capture{Groups: []string{
				source[:1+len(inner.Text())],
				inner.Group(1),
				inner.Group(2),
			}}
		},
		Parse: func(c *Capture, re Recurse, st State) []Node {
			ref, ok := resolveRef(c, st)
			if !ok {
				return append([]Node{Text{Content: "!"}}, refFallback(c.Group(1), c.Group(2))...)
			}
			return []Node{Image{Alt: c.Group(1), Target: ref.Target, Title: ref.Title}}
		},
	}
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpaceByte(s[i]) {
		i++
	}
	return i
}

// matchEmStar scans `*...*` emphasis. A `**` pair inside belongs to the
// content (so bold survives within italics), a backslash escapes the
// next byte, and whitespace directly before a lone closing star aborts
// the match, which keeps ` * ` list-ish text out of emphasis.
func matchEmStar(source string) *Capture {
	if len(source) < 3 || source[0] != '*' {
		return nil
	}
	if isSpaceByte(source[1]) {
		return nil
	}
	for i := 1; i < len(source); i++ {
		switch {
		case source[i] == '\\':
			i++
		case source[i] == '*':
			if i+1 < len(source) && source[i+1] == '*' {
				i++
				continue
			}
			if i == 1 {
				return nil
			}
			return &Capture{Groups: []string{source[:i+1], source[1:i]}}
		case isSpaceByte(source[i]):
			j := skipSpace(source, i)
			if j >= len(source) {
				return nil
			}
			if source[j] == '*' && !(j+1 < len(source) && source[j+1] == '*') {
				return nil
			}
			i = j - 1
		}
	}
	return nil
}

func matchEm(source string, st State, prev *Capture) *Capture {
	if st.Mode == Block {
		return nil
	}
	if c := matchRegex(emUnderscoreRe, source); c != nil {
		return c
	}
	return matchEmStar(source)
}

// matchDoubleDelim scans a span wrapped in a doubled delimiter (`**` or
// `__`), closing on the first doubled delimiter not followed by a third
// one.
func matchDoubleDelim(source string, d byte) *Capture {
	if len(source) < 5 || source[0] != d || source[1] != d {
		return nil
	}
	for i := 2; i+1 < len(source); i++ {
		switch {
		case source[i] == '\\':
			i++
		case source[i] == d && source[i+1] == d && i > 2:
			if i+2 < len(source) && source[i+2] == d {
				continue
			}
			return &Capture{Groups: []string{source[:i+2], source[2:i]}}
		}
	}
	return nil
}

func spanRule(name string, order float64, match MatchFunc, wrap func([]Node) Node, quality func(c *Capture) float64) Rule {
	return Rule{
		Name:    name,
		Order:   order,
		Match:   match,
		Quality: quality,
		Parse: func(c *Capture, re Recurse, st State) []Node {
			return []Node{wrap(re(c.Group(1), st.withMode(SimpleInline)))}
		},
	}
}

func emRule() Rule {
	return spanRule("em", orderEm, matchEm,
		func(content []Node) Node { return Em{Content: content} },
		// ties with strong/u on length; the underscore form wins them
		func(c *Capture) float64 {
			q := float64(len(c.Text()))
			if c.Text()[0] == '_' {
				q += 0.2
			}
			return q
		})
}

func strongRule() Rule {
	match := func(source string, st State, prev *Capture) *Capture {
		if st.Mode == Block {
			return nil
		}
		return matchDoubleDelim(source, '*')
	}
	return spanRule("strong", orderEm, match,
		func(content []Node) Node { return Strong{Content: content} },
		func(c *Capture) float64 { return float64(len(c.Text())) + 0.1 })
}

func uRule() Rule {
	match := func(source string, st State, prev *Capture) *Capture {
		if st.Mode == Block {
			return nil
		}
		return matchDoubleDelim(source, '_')
	}
	return spanRule("u", orderEm, match,
		func(content []Node) Node { return U{Content: content} },
		func(c *Capture) float64 { return float64(len(c.Text())) + 0.1 })
}

func delRule() Rule {
	return spanRule("del", orderDel, simpleInlineRegex(delRe),
		func(content []Node) Node { return Del{Content: content} }, nil)
}

// matchInlineCode finds a backtick span: the closing run must have the
// same length as the opening one. Outer spaces are trimmed; everything
// between stays literal.
func matchInlineCode(source string, st State, prev *Capture) *Capture {
	if st.Mode == Block {
		return nil
	}
	if len(source) == 0 || source[0] != '`' {
		return nil
	}
	nb := skipByte(source, 0, '`')

	i := nb
	for i < len(source) {
		if source[i] != '`' {
			i++
			continue
		}
		run := skipByte(source, i, '`')
		if run-i == nb {
			content := strings.Trim(source[nb:i], " ")
			if content == "" {
				return nil
			}
			return &Capture{Groups: []string{source[:run], content}}
		}
		i = run
	}
	return nil
}

func inlineCodeRule() Rule {
	return Rule{
		Name:  "inlineCode",
		Order: orderInlineCode,
		Match: matchInlineCode,
		Parse: func(c *Capture, re Recurse, st State) []Node {
			return []Node{InlineCode{Content: c.Group(1)}}
		},
	}
}

func brRule() Rule {
	return Rule{
		Name:  "br",
		Order: orderBr,
		Match: inlineRegex(brRe),
		Parse: func(c *Capture, re Recurse, st State) []Node { return []Node{Br{}} },
	}
}

// matchText is the catch-all: it captures up to, but not including, the
// first position where another rule could begin — punctuation, a blank
// line, a hard break, or a scheme-like word ending in a colon.
func matchText(source string, st State, prev *Capture) *Capture {
	end := len(source)
	for i := 1; i < len(source); i++ {
		b := source[i]
		if b == '\n' && i+1 < len(source) && source[i+1] == '\n' {
			end = i
			break
		}
		if b == ' ' {
			j := skipByte(source, i, ' ')
			if j-i >= 2 && j < len(source) && source[j] == '\n' {
				end = i
				break
			}
			i = j - 1
			continue
		}
		if isASCIIPunct(b) {
			end = i
			break
		}
		if startsWordColon(source, i) {
			end = i
			break
		}
	}
	return &Capture{Groups: []string{source[:end]}}
}

// isASCIIPunct reports an ASCII byte that is neither alphanumeric nor
// whitespace. Bytes outside ASCII are treated as letters.
func isASCIIPunct(b byte) bool {
	if b >= 0x80 || isSpaceByte(b) {
		return false
	}
	return !(b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z')
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// startsWordColon reports a `word:` immediately followed by a
// non-space, so bare URLs are left for the url rule.
func startsWordColon(s string, i int) bool {
	j := i
	for j < len(s) && isWordByte(s[j]) {
		j++
	}
	return j > i && j+1 < len(s) && s[j] == ':' && !isSpaceByte(s[j+1])
}

func textRule() Rule {
	return Rule{
		Name:  "text",
		Order: orderText,
		Match: matchText,
		Parse: func(c *Capture, re Recurse, st State) []Node {
			return []Node{Text{Content: c.Text()}}
		},
	}
}
