package main

import (
	"os"

	"github.com/relbump/relbump/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
