package main

import (
	"os"

	"github.com/raine/rust-release-tools/internal/cli"
)

func main() {
	os.Exit(cli.ExecuteChangelog())
}
