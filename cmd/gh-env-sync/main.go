package main

import (
	"github.com/michaelhelvey/gh-env-sync/internal/cmd"
)

func main() {
	cmd.Execute()
}
