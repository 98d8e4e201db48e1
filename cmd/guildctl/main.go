package main

import (
	"os"

	"github.com/softfang/guildctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
