package main

import (
	"fmt"
	"io"

	"github.com/alecthomas/kingpin/v2"
)

// formatCommand prints the canonical form of a document.
type formatCommand struct {
	out  io.Writer
	file string
}

func addFormatCommand(app *kingpin.Application, out io.Writer) {
	cmd := &formatCommand{out: out}
	c := app.Command("fmt", "Print a JSON document in canonical form.").Action(cmd.run)
	c.Arg("file", "File to read; stdin if omitted.").StringVar(&cmd.file)
}

func (cmd *formatCommand) run(_ *kingpin.ParseContext) error {
	v, err := parseFile(cmd.file)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.out, v)
	return err
}
