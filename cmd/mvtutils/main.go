package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(&dumpCmd{}, "")
	subcommands.Register(&statsCmd{}, "")
	subcommands.Register(&locateCmd{}, "")
	subcommands.Register(&recompressCmd{}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
