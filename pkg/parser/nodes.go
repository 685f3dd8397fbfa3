package parser

// NodeType tags a node with its kind. The set is closed: renderers can
// switch over it exhaustively.
type NodeType string

const (
	TypeText       NodeType = "text"
	TypeStrong     NodeType = "strong"
	TypeEm         NodeType = "em"
	TypeU          NodeType = "u"
	TypeDel        NodeType = "del"
	TypeInlineCode NodeType = "inlineCode"
	TypeBr         NodeType = "br"
	TypeLink       NodeType = "link"
	TypeImage      NodeType = "image"
	TypeParagraph  NodeType = "paragraph"
	TypeHeading    NodeType = "heading"
	TypeCodeBlock  NodeType = "codeBlock"
	TypeBlockQuote NodeType = "blockQuote"
	TypeList       NodeType = "list"
	TypeTable      NodeType = "table"
	TypeHr         NodeType = "hr"
	TypeDef        NodeType = "def"
)

// Align is a table column alignment. AlignNone means the column did not
// declare one.
type Align string

const (
	AlignNone   Align = ""
	AlignLeft   Align = "left"
	AlignRight  Align = "right"
	AlignCenter Align = "center"
)

// Node is one vertex of the parse tree. Nodes are plain values, created
// by rule transformers and immutable afterwards.
type Node interface {
	Type() NodeType
}

// Text is the literal fallback node.
type Text struct {
	Content string
}

type Strong struct {
	Content []Node
}

type Em struct {
	Content []Node
}

// U is an underlined span (double-underscore delimiters).
type U struct {
	Content []Node
}

// Del is a struck-through span.
type Del struct {
	Content []Node
}

type InlineCode struct {
	Content string
}

// Br is a hard line break.
type Br struct{}

type Link struct {
	Content []Node
	Target  string
	Title   *string
}

// Image keeps its alt text raw; it is never parsed into a sub-tree.
type Image struct {
	Alt    string
	Target string
	Title  *string
}

type Paragraph struct {
	Content []Node
}

type Heading struct {
	Level   int
	Content []Node
}

// CodeBlock covers both indented blocks (nil Lang) and fenced blocks.
type CodeBlock struct {
	Lang    *string
	Content string
}

type BlockQuote struct {
	Content []Node
}

// List items are independent sub-trees: a tight item holds a flat
// inline sequence, a loose item holds block nodes.
type List struct {
	Ordered bool
	Start   *int
	Items   [][]Node
}

type Table struct {
	Header [][]Node
	Align  []Align
	Cells  [][][]Node
}

// Hr is a thematic break.
type Hr struct{}

// Def records a link-reference definition. Def is the normalized label.
type Def struct {
	Def    string
	Target string
	Title  *string
}

func (Text) Type() NodeType       { return TypeText }
func (Strong) Type() NodeType     { return TypeStrong }
func (Em) Type() NodeType         { return TypeEm }
func (U) Type() NodeType          { return TypeU }
func (Del) Type() NodeType        { return TypeDel }
func (InlineCode) Type() NodeType { return TypeInlineCode }
func (Br) Type() NodeType         { return TypeBr }
func (Link) Type() NodeType       { return TypeLink }
func (Image) Type() NodeType      { return TypeImage }
func (Paragraph) Type() NodeType  { return TypeParagraph }
func (Heading) Type() NodeType    { return TypeHeading }
func (CodeBlock) Type() NodeType  { return TypeCodeBlock }
func (BlockQuote) Type() NodeType { return TypeBlockQuote }
func (List) Type() NodeType       { return TypeList }
func (Table) Type() NodeType      { return TypeTable }
func (Hr) Type() NodeType         { return TypeHr }
func (Def) Type() NodeType        { return TypeDef }
