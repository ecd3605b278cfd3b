package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/alecthomas/kingpin/v2"

	"github.com/xdg-go/tinyjson"
)

// bsonCommand converts an object document to BSON and prints it as hex.
type bsonCommand struct {
	out  io.Writer
	file string
}

func addBSONCommand(app *kingpin.Application, out io.Writer) {
	cmd := &bsonCommand{out: out}
	c := app.Command("bson", "Convert a JSON object to BSON and print it in hex.").Action(cmd.run)
	c.Arg("file", "File to read; stdin if omitted.").StringVar(&cmd.file)
}

func (cmd *bsonCommand) run(_ *kingpin.ParseContext) error {
	v, err := parseFile(cmd.file)
	if err != nil {
		return err
	}
	doc, err := tinyjson.MarshalBSON(v)
	if err != nil {
		return fmt.Errorf("error converting to BSON: %w", err)
	}
	_, err = fmt.Fprintln(cmd.out, hex.EncodeToString(doc))
	return err
}
