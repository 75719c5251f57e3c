package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Alia5/monobind/internal/codegen/common"
	"github.com/Alia5/monobind/internal/codegen/meta"
	"github.com/Alia5/monobind/internal/codegen/scanner"
)

// Dumps the struct registry of the headers named on the command line (or
// stdin) as JSON.
func main() {
	md := meta.New()
	hs := scanner.NewHeaderScanner(md, scanner.HeaderOptions{
		Mapper: common.TypeMapper{Prefix: "Purple", Primitives: common.DefaultPrimitives()},
	})

	if len(os.Args) < 2 {
		if err := hs.Scan(os.Stdin); err != nil {
			fmt.Fprintf(os.Stderr, "failed to scan stdin: %v\n", err)
			os.Exit(1)
		}
	}
	for _, path := range os.Args[1:] {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open input: %v\n", err)
			os.Exit(1)
		}
		err = hs.Scan(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to scan %s: %v\n", path, err)
			os.Exit(1)
		}
	}

	output, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(output))
}
