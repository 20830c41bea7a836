package main

import (
	"os"

	"github.com/mikaelmello/rawsock/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
