package parser

// Rule evaluation order. Smaller runs first; ties fall back to
// declaration order in DefaultRules. em, strong and u share a slot and
// compete on quality, as do table and paragraph.
const (
	orderHeading    = 10
	orderLheading   = 20
	orderHr         = 30
	orderCodeBlock  = 40
	orderFence      = 50
	orderBlockQuote = 60
	orderList       = 70
	orderDef        = 80
	orderNewline    = 90
	orderTable      = 100
	orderEscape     = 110
	orderAutolink   = 120
	orderMailto     = 130
	orderURL        = 140
	orderLink       = 150
	orderImage      = 160
	orderReflink    = 170
	orderRefimage   = 180
	orderEm         = 190
	orderDel        = 200
	orderInlineCode = 210
	orderBr         = 220
	orderText       = 230
)

// DefaultRules returns the built-in rule set, freshly sliced so callers
// can extend or reorder their copy before handing it to New.
func DefaultRules() []Rule {
	return []Rule{
		headingRule(),
		lheadingRule(),
		hrRule(),
		codeBlockRule(),
		fenceRule(),
		blockQuoteRule(),
		listRule(),
		defRule(),
		newlineRule(),
		tableRule(),
		paragraphRule(),
		escapeRule(),
		autolinkRule(),
		mailtoRule(),
		urlRule(),
		linkRule(),
		imageRule(),
		reflinkRule(),
		refimageRule(),
		emRule(),
		strongRule(),
		uRule(),
		delRule(),
		inlineCodeRule(),
		brRule(),
		textRule(),
	}
}
