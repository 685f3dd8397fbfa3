/*
Package parser implements a rule-driven Markdown parser that turns a
source string into a tree of typed nodes.

The engine repeatedly matches an ordered set of rules against the
residual input. Each rule pairs a prefix matcher with a transformer;
transformers recurse into nested content through a callback, so the
whole grammar stays a flat, inspectable registry (see DefaultRules).
*/
package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Mode selects which rules are eligible at the current position.
type Mode int

const (
	// Block parses top-level constructs: paragraphs, headings, lists...
	Block Mode = iota
	// Inline parses text within a block.
	Inline
	// SimpleInline is a restricted inline mode for contexts that must
	// not re-enter block parsing or links: link display text, heading
	// bodies, emphasis spans, table cells.
	SimpleInline
)

// Ref is one entry of the link-reference table.
type Ref struct {
	Target string
	Title  *string
}

// State is threaded through every match and parse call. It is a value;
// rules derive altered copies for recursion. Refs is the per-parse
// reference table, shared by all copies.
type State struct {
	Mode   Mode
	InList bool
	// Collect marks the definition-collection pass: def rules write the
	// table only then, so reference resolution during the emitting pass
	// always sees the final table.
	Collect bool
	Refs    map[string]Ref
}

func (s State) withMode(m Mode) State {
	s.Mode = m
	return s
}

// Capture is the successful match of a rule at the current position.
// Groups[0] is the matched prefix of the source; further groups are
// rule-specific.
type Capture struct {
	Groups []string
	absent []bool
	// full is the match including indentation reconstructed from the
	// previous capture; only the list rule sets it.
	full string
}

// Text returns the matched prefix.
func (c *Capture) Text() string { return c.Groups[0] }

// Group returns submatch i, or "" when the group did not participate.
func (c *Capture) Group(i int) string {
	if i < len(c.Groups) {
		return c.Groups[i]
	}
	return ""
}

// Has reports whether group i participated in the match, which is how
// optional fields (titles, languages) distinguish absent from empty.
func (c *Capture) Has(i int) bool {
	return i < len(c.Groups) && (c.absent == nil || !c.absent[i])
}

// Recurse re-enters the engine on nested content with an overridden
// state, usually a different mode.
type Recurse func(source string, st State) []Node

// MatchFunc attempts a prefix match. prev is the last successful
// capture at the same level; rules that are only legal at a line start
// consult it.
type MatchFunc func(source string, st State, prev *Capture) *Capture

// ParseFunc turns a capture into nodes.
type ParseFunc func(c *Capture, re Recurse, st State) []Node

// Rule pairs a matcher with a transformer. Smaller Order runs first;
// declaration order breaks ties. When Quality is set, the engine keeps
// scanning same-order rules and picks the best-quality match.
type Rule struct {
	Name    string
	Order   float64
	Match   MatchFunc
	Parse   ParseFunc
	Quality func(c *Capture) float64
}

// matchRegex anchors re at the start of source and wraps the result.
// All rule regexes begin with ^.
func matchRegex(re *regexp.Regexp, source string) *Capture {
	idx := re.FindStringSubmatchIndex(source)
	if idx == nil {
		return nil
	}
	n := len(idx) / 2
	groups := make([]string, n)
	absent := make([]bool, n)
	for i := 0; i < n; i++ {
		if idx[2*i] < 0 {
			absent[i] = true
			continue
		}
		groups[i] = source[idx[2*i]:idx[2*i+1]]
	}
	return &Capture{Groups: groups, absent: absent}
}

// blockRegex builds a matcher that only fires in block mode.
func blockRegex(re *regexp.Regexp) MatchFunc {
	return func(source string, st State, prev *Capture) *Capture {
		if st.Mode != Block {
			return nil
		}
		return matchRegex(re, source)
	}
}

// inlineRegex builds a matcher for inline mode only.
func inlineRegex(re *regexp.Regexp) MatchFunc {
	return func(source string, st State, prev *Capture) *Capture {
		if st.Mode != Inline {
			return nil
		}
		return matchRegex(re, source)
	}
}

// simpleInlineRegex builds a matcher for both inline modes.
func simpleInlineRegex(re *regexp.Regexp) MatchFunc {
	return func(source string, st State, prev *Capture) *Capture {
		if st.Mode == Block {
			return nil
		}
		return matchRegex(re, source)
	}
}

var labelSpace = regexp.MustCompile(`\s+`)

// NormalizeLabel lowercases a reference label and collapses every
// whitespace run to a single space. " h    i " normalizes to " h i ".
// The function is idempotent.
func NormalizeLabel(label string) string {
	return strings.ToLower(labelSpace.ReplaceAllString(label, " "))
}

// Parser runs an immutable, ordered rule set. A Parser is safe for
// concurrent use; every Parse call allocates its own reference table.
type Parser struct {
	rules []Rule
}

// New builds a parser over the given rules. The slice is copied and
// stably sorted by ascending Order.
func New(rules []Rule) *Parser {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	return &Parser{rules: sorted}
}

var blockEndRe = regexp.MustCompile(`\n{2,}$`)

// Parse picks the mode implicitly: a document terminated by a blank
// line parses as blocks, anything else as inline content.
func (p *Parser) Parse(source string) []Node {
	if blockEndRe.MatchString(source) {
		return p.ParseBlock(source)
	}
	return p.ParseInline(source)
}

// ParseBlock parses source as a sequence of block nodes. A terminating
// blank line is appended, since every block rule requires one.
//
// Block parsing is two-pass: the first walk only collects reference
// definitions, the second emits nodes. A definition therefore binds
// every reference in the document, including earlier ones, and a
// duplicated label resolves to its last definition.
func (p *Parser) ParseBlock(source string) []Node {
	source += "\n\n"
	refs := map[string]Ref{}
	p.run(source, State{Mode: Block, Collect: true, Refs: refs})
	return p.run(source, State{Mode: Block, Refs: refs})
}

// ParseInline parses source as inline content.
func (p *Parser) ParseInline(source string) []Node {
	return p.run(source, State{Mode: Inline, Refs: map[string]Ref{}})
}

func head(s string) string {
	if len(s) > 24 {
		return s[:24] + "..."
	}
	return s
}

// run is the dispatch loop. Rules are tried in order; after the first
// match the scan continues while the following rule shares the current
// order and competes on quality. The chosen rule's transformer runs
// with a recursion callback bound to this parser.
//
// A position no rule matches is a bug in the rule set, not an input
// error, and panics: the default set's text rule is a catch-all.
func (p *Parser) run(source string, st State) []Node {
	re := func(inner string, ist State) []Node {
		return p.run(inner, ist)
	}

	var nodes []Node
	var prev *Capture
	for len(source) > 0 {
		var best *Capture
		var bestRule *Rule
		bestQuality := 0.0
		for i := 0; i < len(p.rules); i++ {
			r := &p.rules[i]
			c := r.Match(source, st, prev)
			if c != nil {
				q := 0.0
				if r.Quality != nil {
					q = r.Quality(c)
				}
				if best == nil || q > bestQuality {
					best, bestRule, bestQuality = c, r, q
				}
			}
			if best != nil {
				next := i + 1
				if next >= len(p.rules) || p.rules[next].Order != r.Order || p.rules[next].Quality == nil {
					break
				}
			}
		}
		if best == nil {
			panic(fmt.Sprintf("parser: no rule matched at %q", head(source)))
		}
		if len(best.Text()) == 0 {
			panic(fmt.Sprintf("parser: rule %q made a zero-width match at %q", bestRule.Name, head(source)))
		}
		nodes = append(nodes, bestRule.Parse(best, re, st)...)
		source = source[len(best.Text()):]
		prev = best
	}
	return nodes
}
