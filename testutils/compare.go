package testutils

import (
	"reflect"
	"testing"

	"mdtree/pkg/parser"
)

// CompareNodes fails the test when two parse trees differ, printing
// both side by side.
func CompareNodes(t *testing.T, got, want []parser.Node) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got  %+v", got)
		t.Errorf("want %+v", want)
	}
}

// Strptr is a shorthand for optional string fields in expected trees.
func Strptr(s string) *string { return &s }

// Intptr is a shorthand for optional int fields in expected trees.
func Intptr(i int) *int { return &i }
