package main

import (
	"mdtree/cmd"
)

var version = "0.1.0"

func main() {
	cmd.Execute(version)
}
