package main

import (
	"os"

	"github.com/aerotrain/flightdeck/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
