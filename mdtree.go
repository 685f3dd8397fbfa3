/*
Package mdtree parses Markdown into a tree of typed nodes.

The package is a thin facade over pkg/parser with the built-in rule
set. Custom rule sets go through parser.New directly.
*/
package mdtree

import (
	"mdtree/pkg/parser"
)

// Node is re-exported so simple consumers only import this package.
type Node = parser.Node

var defaultParser = parser.New(parser.DefaultRules())

// Parse parses source with the default rules. Documents terminated by
// a blank line parse as blocks; a bare line parses as inline content.
func Parse(source string) []Node {
	return defaultParser.Parse(source)
}

// ParseBlock always parses source as a sequence of blocks.
func ParseBlock(source string) []Node {
	return defaultParser.ParseBlock(source)
}

// ParseInline always parses source as inline content.
func ParseInline(source string) []Node {
	return defaultParser.ParseInline(source)
}
