package main

import (
	"github.com/ruediste/langium/cmd"
)

var version = "v0.1.0"

func main() {
	cmd.Execute(version)
}
