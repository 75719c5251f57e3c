package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Alia5/monobind/internal/codegen/meta"
	"github.com/Alia5/monobind/internal/codegen/scanner"
)

// Dumps the signal registrations found in the sources named on the command
// line (or stdin) as JSON, diagnostics included.
func main() {
	md := meta.New()
	opts := scanner.DefaultSignalOptions()

	scan := func(name string, r io.Reader) {
		if err := scanner.ScanSignals(md, r, opts); err != nil {
			fmt.Fprintf(os.Stderr, "failed to scan %s: %v\n", name, err)
			os.Exit(1)
		}
	}

	if len(os.Args) < 2 {
		scan("stdin", os.Stdin)
	}
	for _, path := range os.Args[1:] {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open input: %v\n", err)
			os.Exit(1)
		}
		scan(path, f)
		f.Close()
	}

	output, err := json.MarshalIndent(struct {
		Signals     any `json:"signals"`
		Diagnostics any `json:"diagnostics"`
	}{md.Signals, md.Diagnostics}, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(output))
}
