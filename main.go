package main

import (
	"github.com/calween/opsdeck/cmd"
)

func main() {
	cmd.Execute()
}
