package parser_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"mdtree/pkg/parser"
	"mdtree/testutils"
)

func TestEscape(t *testing.T) {
	p := newParser()

	t.Run("each escapable character round-trips", func(t *testing.T) {
		for _, ch := range []string{"`", "*", "~", "|", "<", "[", "{", "^", "_", "\\"} {
			got := p.ParseInline("\\" + ch)
			testutils.CompareNodes(t, got, textNodes(ch))
		}
	})

	t.Run("one node per escape", func(t *testing.T) {
		got := p.ParseInline(`\*\~\|`)
		testutils.CompareNodes(t, got, textNodes("*", "~", "|"))
	})

	t.Run("escaped star does not open emphasis", func(t *testing.T) {
		got := p.ParseInline(`\*hi\*`)
		testutils.CompareNodes(t, got, textNodes("*", "hi", "*"))
	})
}

func TestEmphasis(t *testing.T) {
	p := newParser()

	cases := []struct {
		src  string
		want []parser.Node
	}{
		{"*hi*", []parser.Node{parser.Em{Content: textNodes("hi")}}},
		{"_hi_", []parser.Node{parser.Em{Content: textNodes("hi")}}},
		{"**hi**", []parser.Node{parser.Strong{Content: textNodes("hi")}}},
		{"__hi__", []parser.Node{parser.U{Content: textNodes("hi")}}},
		{"~~hi~~", []parser.Node{parser.Del{Content: textNodes("hi")}}},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			testutils.CompareNodes(t, p.Parse(tc.src), tc.want)
		})
	}

	t.Run("strong wraps em for triple stars", func(t *testing.T) {
		got := p.Parse("***hi***")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Strong{Content: []parser.Node{
				parser.Em{Content: textNodes("hi")},
			}},
		})
	})

	t.Run("strong em u nest", func(t *testing.T) {
		got := p.Parse("***__hi__***")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Strong{Content: []parser.Node{
				parser.Em{Content: []parser.Node{
					parser.U{Content: textNodes("hi")},
				}},
			}},
		})
	})

	t.Run("bold inside italics survives", func(t *testing.T) {
		got := p.Parse("*a **b** c*")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Em{Content: []parser.Node{
				parser.Text{Content: "a "},
				parser.Strong{Content: textNodes("b")},
				parser.Text{Content: " c"},
			}},
		})
	})

	t.Run("underscore needs word boundaries", func(t *testing.T) {
		got := p.ParseInline("snake_case_name")
		for _, n := range got {
			assert.Equal(t, parser.TypeText, n.Type())
		}
	})

	t.Run("five tildes degrade to del around one", func(t *testing.T) {
		got := p.Parse("~~~~~")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Del{Content: textNodes("~")},
		})
	})
}

func TestInlineCode(t *testing.T) {
	p := newParser()

	t.Run("plain", func(t *testing.T) {
		testutils.CompareNodes(t, p.Parse("`hi`"), []parser.Node{parser.InlineCode{Content: "hi"}})
	})

	t.Run("emphasis markers stay literal", func(t *testing.T) {
		testutils.CompareNodes(t, p.Parse("`*hi*`"), []parser.Node{parser.InlineCode{Content: "*hi*"}})
	})

	t.Run("double backtick delimiters", func(t *testing.T) {
		testutils.CompareNodes(t, p.Parse("``a `b` c``"), []parser.Node{parser.InlineCode{Content: "a `b` c"}})
	})
}

func TestBr(t *testing.T) {
	p := newParser()

	t.Run("double space before newline", func(t *testing.T) {
		got := p.ParseInline("hello  \nworld")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Text{Content: "hello"},
			parser.Br{},
			parser.Text{Content: "world"},
		})
	})

	t.Run("inside a paragraph", func(t *testing.T) {
		got := p.Parse("hello  \nworld\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Paragraph{Content: []parser.Node{
				parser.Text{Content: "hello"},
				parser.Br{},
				parser.Text{Content: "world"},
			}},
		})
	})

	t.Run("double space without newline stays text", func(t *testing.T) {
		got := p.ParseInline("hello  world")
		testutils.CompareNodes(t, got, textNodes("hello  world"))
	})
}

func TestAutolinks(t *testing.T) {
	p := newParser()

	t.Run("scheme autolink", func(t *testing.T) {
		got := p.ParseInline("<http://g.com>")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Link{Content: textNodes("http://g.com"), Target: "http://g.com"},
		})
	})

	t.Run("mailto gets prefixed", func(t *testing.T) {
		got := p.ParseInline("<a@b.com>")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Link{Content: textNodes("a@b.com"), Target: "mailto:a@b.com"},
		})
	})

	t.Run("mailto keeps existing prefix", func(t *testing.T) {
		got := p.ParseInline("<mailto:a@b.com>")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Link{Content: textNodes("mailto:a@b.com"), Target: "mailto:a@b.com"},
		})
	})

	t.Run("bare url inside text", func(t *testing.T) {
		got := p.ParseInline("go to http://g.com now")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Text{Content: "go to "},
			parser.Link{Content: textNodes("http://g.com"), Target: "http://g.com"},
			parser.Text{Content: " now"},
		})
	})

	t.Run("bare url sheds trailing punctuation", func(t *testing.T) {
		got := p.ParseInline("see http://g.com.")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Text{Content: "see "},
			parser.Link{Content: textNodes("http://g.com"), Target: "http://g.com"},
			parser.Text{Content: "."},
		})
	})
}

func TestLink(t *testing.T) {
	p := newParser()

	t.Run("plain", func(t *testing.T) {
		got := p.ParseInline("[text](http://a)")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Link{Content: textNodes("text"), Target: "http://a"},
		})
	})

	t.Run("with title", func(t *testing.T) {
		got := p.ParseInline(`[text](http://a "T")`)
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Link{Content: textNodes("text"), Target: "http://a", Title: testutils.Strptr("T")},
		})
	})

	t.Run("angle brackets allow spaces in the target", func(t *testing.T) {
		got := p.ParseInline(`[text](<./some file.png> "title")`)
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Link{Content: textNodes("text"), Target: "./some file.png", Title: testutils.Strptr("title")},
		})
	})

	t.Run("empty angle target", func(t *testing.T) {
		got := p.ParseInline("[text](<>)")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Link{Content: textNodes("text"), Target: ""},
		})
	})

	t.Run("display text parses emphasis but not links", func(t *testing.T) {
		got := p.ParseInline("[*hi*](http://a)")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Link{
				Content: []parser.Node{parser.Em{Content: textNodes("hi")}},
				Target:  "http://a",
			},
		})
	})

	t.Run("escaped target characters unescape", func(t *testing.T) {
		got := p.ParseInline(`[x](http://a\_b)`)
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Link{Content: textNodes("x"), Target: "http://a_b"},
		})
	})
}

func TestImage(t *testing.T) {
	p := newParser()

	t.Run("alt stays raw", func(t *testing.T) {
		got := p.ParseInline("![*alt*](img.png)")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Image{Alt: "*alt*", Target: "img.png"},
		})
	})

	t.Run("with title", func(t *testing.T) {
		got := p.ParseInline(`![a](img.png "T")`)
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Image{Alt: "a", Target: "img.png", Title: testutils.Strptr("T")},
		})
	})
}

func TestRefLinkFallback(t *testing.T) {
	p := newParser()

	t.Run("unresolved reflink stays literal", func(t *testing.T) {
		got := p.ParseInline("[a][missing]")
		testutils.CompareNodes(t, got, textNodes("[", "a", "]", "[", "missing", "]"))
	})

	t.Run("unresolved refimage stays literal", func(t *testing.T) {
		got := p.ParseInline("![a][missing]")
		testutils.CompareNodes(t, got, textNodes("!", "[", "a", "]", "[", "missing", "]"))
	})

	t.Run("resolved refimage", func(t *testing.T) {
		got := p.Parse("![a][1]\n\n[1]: img.png\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Paragraph{Content: []parser.Node{
				parser.Image{Alt: "a", Target: "img.png"},
			}},
			parser.Def{Def: "1", Target: "img.png"},
		})
	})
}

func TestStrongRoundTrip(t *testing.T) {
	p := newParser()
	for _, x := range []string{"a", "word", "XYZ"} {
		src := fmt.Sprintf("**%s**", x)
		testutils.CompareNodes(t, p.Parse(src), []parser.Node{
			parser.Strong{Content: textNodes(x)},
		})
	}
}
