package main

import (
	"os"

	"github.com/bobmcallan/ratiolens/cmd/ratiolens/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
