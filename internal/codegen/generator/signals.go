package generator

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Alia5/monobind/internal/codegen/meta"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

type signalDoc struct {
	Signal []meta.Signal `json:"signal" yaml:"signal" toml:"signal"`
}

// WriteSignals renders signals as text (one "name ['T1', 'T2']" line per
// signal), json, yaml or toml.
func WriteSignals(w io.Writer, signals []*meta.Signal, format string) error {
	if format == "" || format == "text" {
		for _, s := range signals {
			if _, err := fmt.Fprintf(w, "%s %s\n", s.Name, listRepr(s.Types)); err != nil {
				return err
			}
		}
		return nil
	}

	doc := signalDoc{Signal: make([]meta.Signal, len(signals))}
	for i, s := range signals {
		doc.Signal[i] = *s
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(doc, "", "  ")
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(doc)
	case "toml":
		data, err = toml.Marshal(doc)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshal signals as %s: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}

// listRepr formats items like a Python list literal of strings.
func listRepr(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = strRepr(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func strRepr(s string) string {
	quote := "'"
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		quote = `"`
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	if quote == "'" {
		s = strings.ReplaceAll(s, "'", `\'`)
	}
	return quote + s + quote
}
