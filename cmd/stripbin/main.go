package main

import (
	"os"

	"github.com/dshills/stripbin/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
