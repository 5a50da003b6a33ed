package main

import (
	"os"

	"github.com/efreitasn/miniledger/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
