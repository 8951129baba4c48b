// Command jetdump loads a journal or trial balance file and dumps the
// typed rows. It is a debugging aid for inspecting how headers and
// values were interpreted.
package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/auditkit/jet/loader"
)

var (
	cli struct {
		File string `help:"Journal or trial balance file to dump." arg:"" type:"existingfile"`
		Role string `help:"How to interpret the file." enum:"journal,trial-balance" default:"journal"`
	}
)

func main() {
	ctx := kong.Parse(&cli)

	ldr := loader.New()

	if cli.Role == "trial-balance" {
		tb, err := ldr.LoadTrialBalance(context.Background(), cli.File)
		ctx.FatalIfErrorf(err)
		repr.Println(tb)
		return
	}

	j, err := ldr.LoadJournal(context.Background(), cli.File)
	ctx.FatalIfErrorf(err)
	repr.Println(j)
}
