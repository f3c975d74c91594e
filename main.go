package main

import (
	"github.com/LateGenXer/cgtcalc/cmd"
)

func main() {
	cmd.Execute()
}
