package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mdtree/pkg/parser"
	"mdtree/testutils"
)

func textNodes(ss ...string) []parser.Node {
	out := make([]parser.Node, len(ss))
	for i, s := range ss {
		out[i] = parser.Text{Content: s}
	}
	return out
}

func TestHeading(t *testing.T) {
	p := newParser()

	t.Run("levels", func(t *testing.T) {
		for level, src := range map[int]string{
			1: "# hi\n\n",
			3: "### hi\n\n",
			6: "###### hi\n\n",
		} {
			got := p.Parse(src)
			testutils.CompareNodes(t, got, []parser.Node{
				parser.Heading{Level: level, Content: textNodes("hi")},
			})
		}
	})

	t.Run("seven hashes clamp to six", func(t *testing.T) {
		got := p.Parse("####### hi\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Heading{Level: 6, Content: textNodes("# hi")},
		})
	})

	t.Run("emphasis in the body", func(t *testing.T) {
		got := p.Parse("# a *b*\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Heading{Level: 1, Content: []parser.Node{
				parser.Text{Content: "a "},
				parser.Em{Content: textNodes("b")},
			}},
		})
	})
}

func TestSetextHeading(t *testing.T) {
	p := newParser()

	t.Run("equals underline is level one", func(t *testing.T) {
		got := p.Parse("hello\n===\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Heading{Level: 1, Content: textNodes("hello")},
		})
	})

	t.Run("dash underline is level two", func(t *testing.T) {
		got := p.Parse("hello\n----\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Heading{Level: 2, Content: textNodes("hello")},
		})
	})

	t.Run("two characters do not promote", func(t *testing.T) {
		got := p.Parse("hello\n--\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Paragraph{Content: textNodes("hello\n", "-", "-")},
		})
	})
}

func TestHr(t *testing.T) {
	p := newParser()
	for _, src := range []string{"---\n\n", "***\n\n", "___\n\n", "* * *\n\n", "- - - -\n\n"} {
		testutils.CompareNodes(t, p.Parse(src), []parser.Node{parser.Hr{}})
	}
}

func TestParagraph(t *testing.T) {
	p := newParser()

	t.Run("multi line", func(t *testing.T) {
		got := p.Parse("line one\nline two\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Paragraph{Content: textNodes("line one\nline two")},
		})
	})

	t.Run("block markers mid-line stay literal", func(t *testing.T) {
		got := p.Parse("hello\n# not a heading\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Paragraph{Content: textNodes("hello\n", "#", " not a heading")},
		})
	})

	t.Run("blank line separates paragraphs", func(t *testing.T) {
		got := p.Parse("one\n\ntwo\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Paragraph{Content: textNodes("one")},
			parser.Paragraph{Content: textNodes("two")},
		})
	})
}

func TestCodeBlock(t *testing.T) {
	p := newParser()

	t.Run("indented", func(t *testing.T) {
		got := p.Parse("    if (true) {\n        x\n    }\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.CodeBlock{Content: "if (true) {\n    x\n}"},
		})
	})

	t.Run("indented keeps interior blank lines", func(t *testing.T) {
		got := p.Parse("    a\n\n    b\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.CodeBlock{Content: "a\n\nb"},
		})
	})
}

func TestFence(t *testing.T) {
	p := newParser()

	t.Run("with language", func(t *testing.T) {
		got := p.Parse("```go\nfmt.Println(1)\n```\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.CodeBlock{Lang: testutils.Strptr("go"), Content: "fmt.Println(1)"},
		})
	})

	t.Run("without language", func(t *testing.T) {
		got := p.Parse("```\nplain\n```\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.CodeBlock{Content: "plain"},
		})
	})

	t.Run("tilde fence", func(t *testing.T) {
		got := p.Parse("~~~txt\nbody\n~~~\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.CodeBlock{Lang: testutils.Strptr("txt"), Content: "body"},
		})
	})

	t.Run("emphasis stays literal inside", func(t *testing.T) {
		got := p.Parse("```\n*not em*\n```\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.CodeBlock{Content: "*not em*"},
		})
	})
}

func TestBlockQuote(t *testing.T) {
	p := newParser()

	t.Run("single paragraph", func(t *testing.T) {
		got := p.Parse("> hi\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.BlockQuote{Content: []parser.Node{
				parser.Paragraph{Content: textNodes("hi")},
			}},
		})
	})

	t.Run("lazy continuation lines", func(t *testing.T) {
		got := p.Parse("> hi\nthere\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.BlockQuote{Content: []parser.Node{
				parser.Paragraph{Content: textNodes("hi\nthere")},
			}},
		})
	})

	t.Run("quote markers mid-line stay literal", func(t *testing.T) {
		got := p.Parse("a > b\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Paragraph{Content: textNodes("a ", "> b")},
		})
	})
}

func TestDef(t *testing.T) {
	p := newParser()

	t.Run("plain", func(t *testing.T) {
		got := p.Parse("[1]: http://a\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Def{Def: "1", Target: "http://a"},
		})
	})

	t.Run("with title", func(t *testing.T) {
		got := p.Parse("[1]: http://a \"Title\"\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Def{Def: "1", Target: "http://a", Title: testutils.Strptr("Title")},
		})
	})

	t.Run("angle bracket target", func(t *testing.T) {
		got := p.Parse("[1]: <http://a>\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Def{Def: "1", Target: "http://a"},
		})
	})

	t.Run("label is normalized", func(t *testing.T) {
		got := p.Parse("[HIiii]: http://www.google.com\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Def{Def: "hiiii", Target: "http://www.google.com"},
		})
	})
}

func TestReflinkResolution(t *testing.T) {
	p := newParser()

	t.Run("definition after use", func(t *testing.T) {
		got := p.Parse("[Google][HiIiI]\n\n[HIiii]: http://www.google.com\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Paragraph{Content: []parser.Node{
				parser.Link{Content: textNodes("Google"), Target: "http://www.google.com"},
			}},
			parser.Def{Def: "hiiii", Target: "http://www.google.com"},
		})
	})

	t.Run("implicit label", func(t *testing.T) {
		got := p.Parse("[Google][]\n\n[google]: http://g\n\n")
		testutils.CompareNodes(t, got, []parser.Node{
			parser.Paragraph{Content: []parser.Node{
				parser.Link{Content: textNodes("Google"), Target: "http://g"},
			}},
			parser.Def{Def: "google", Target: "http://g"},
		})
	})

	t.Run("title carried from definition", func(t *testing.T) {
		got := p.Parse("[x][1]\n\n[1]: http://a \"T\"\n\n")
		assert.Equal(t, []parser.Node{
			parser.Paragraph{Content: []parser.Node{
				parser.Link{Content: textNodes("x"), Target: "http://a", Title: testutils.Strptr("T")},
			}},
			parser.Def{Def: "1", Target: "http://a", Title: testutils.Strptr("T")},
		}, got)
	})
}
