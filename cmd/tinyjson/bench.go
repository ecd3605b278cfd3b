package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/xdg-go/tinyjson"
)

// benchCommand reports parse throughput for a single document against other
// decoders.
type benchCommand struct {
	out  io.Writer
	file string
	runs int
}

func addBenchCommand(app *kingpin.Application, out io.Writer) {
	cmd := &benchCommand{out: out}
	c := app.Command("bench", "Measure parse throughput of a JSON file.").Action(cmd.run)
	c.Arg("file", "File to parse.").Required().ExistingFileVar(&cmd.file)
	c.Flag("runs", "Number of times to parse the file per decoder.").Default("10").IntVar(&cmd.runs)
}

func (cmd *benchCommand) run(_ *kingpin.ParseContext) error {
	jsonData, err := os.ReadFile(cmd.file)
	if err != nil {
		return err
	}
	if cmd.runs < 1 {
		cmd.runs = 1
	}

	benches := []struct {
		label string
		fn    func([]byte) error
	}{
		{"tinyjson", benchTinyJSON},
		{"encoding/json", benchEncodingJSON},
		{"tinyjson->bson", benchTinyJSONToBSON},
		{"driver extjson", benchDriver},
	}
	for _, b := range benches {
		start := time.Now()
		for i := 0; i < cmd.runs; i++ {
			if err := b.fn(jsonData); err != nil {
				fmt.Fprintf(cmd.out, "%15s error: %v\n", b.label, err)
				break
			}
		}
		reportResult(cmd.out, b.label, len(jsonData)*cmd.runs, time.Since(start))
	}
	return nil
}

func benchTinyJSON(input []byte) error {
	_, err := tinyjson.ParseBytes(input)
	return err
}

func benchEncodingJSON(input []byte) error {
	var v interface{}
	return json.Unmarshal(input, &v)
}

func benchTinyJSONToBSON(input []byte) error {
	v, err := tinyjson.ParseBytes(input)
	if err != nil {
		return err
	}
	_, err = tinyjson.MarshalBSON(v)
	return err
}

func benchDriver(input []byte) error {
	var doc bson.Raw
	return bson.UnmarshalExtJSON(input, false, &doc)
}

func reportResult(w io.Writer, label string, size int, elapsed time.Duration) {
	micros := elapsed.Microseconds()
	if micros == 0 {
		micros = 1
	}
	throughput := float64(size) / float64(micros)
	fmt.Fprintf(w, "%15s %.2f MB/s\n", label, throughput)
}
