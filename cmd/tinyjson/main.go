package main

import (
	"bufio"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/prometheus/common/version"

	"github.com/xdg-go/tinyjson"
)

func main() {
	app := newApp(os.Stdout)
	kingpin.MustParse(app.Parse(os.Args[1:]))
}

func newApp(out io.Writer) *kingpin.Application {
	app := kingpin.New("tinyjson", "Parse, check, convert and serve JSON documents.")
	app.Version(version.Print("tinyjson"))
	app.HelpFlag.Short('?')

	addServeCommand(app)
	addFormatCommand(app, out)
	addCheckCommand(app, out)
	addBSONCommand(app, out)
	addBenchCommand(app, out)
	return app
}

// parseFile parses name, or stdin if name is empty or "-".
func parseFile(name string) (tinyjson.Value, error) {
	if name == "" || name == "-" {
		return tinyjson.Parse(bufio.NewReader(os.Stdin))
	}
	f, err := os.Open(name)
	if err != nil {
		return tinyjson.Value{}, err
	}
	defer f.Close()
	return tinyjson.Parse(bufio.NewReader(f))
}
