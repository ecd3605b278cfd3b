package main

import (
	"fmt"
	"io"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
)

// checkCommand parses each file and reports which ones are invalid.
type checkCommand struct {
	out   io.Writer
	files []string
}

func addCheckCommand(app *kingpin.Application, out io.Writer) {
	cmd := &checkCommand{out: out}
	c := app.Command("check", "Check that JSON documents parse.").Action(cmd.run)
	c.Arg("files", "Files to check.").Required().ExistingFilesVar(&cmd.files)
}

func (cmd *checkCommand) run(_ *kingpin.ParseContext) error {
	ok := color.New(color.FgGreen, color.Bold)
	bad := color.New(color.FgRed, color.Bold)

	failed := 0
	for _, f := range cmd.files {
		if _, err := parseFile(f); err != nil {
			failed++
			bad.Fprint(cmd.out, "FAIL")
			fmt.Fprintf(cmd.out, " %s: %v\n", f, err)
			continue
		}
		ok.Fprint(cmd.out, "OK")
		fmt.Fprintf(cmd.out, "   %s\n", f)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to parse", failed, len(cmd.files))
	}
	return nil
}
