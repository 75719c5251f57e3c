package meta

import (
	"github.com/Alia5/monobind/internal/codegen/diag"
)

// Metadata holds everything one scan discovered. It is owned by a single
// generator run and discarded afterwards.
type Metadata struct {
	Structs     *OrderedMap[string, *Struct] `json:"structs"` // prefixed name -> struct, declaration order
	Signals     *OrderedMap[string, *Signal] `json:"signals"` // signal name -> signal, first registration order
	Diagnostics []*diag.Error                `json:"diagnostics,omitempty"`
}

func New() *Metadata {
	return &Metadata{
		Structs: NewOrderedMap[string, *Struct](),
		Signals: NewOrderedMap[string, *Signal](),
	}
}

// Report records a diagnostic.
func (md *Metadata) Report(d *diag.Error) {
	md.Diagnostics = append(md.Diagnostics, d)
}

// Lookup finds a struct by its prefixed name ("PurpleBuddy") or its class
// name ("Buddy").
func (md *Metadata) Lookup(name string) (*Struct, error) {
	if s, ok := md.Structs.Get(name); ok {
		return s, nil
	}
	for _, s := range md.Structs.Values() {
		if s.ClassName == name {
			return s, nil
		}
	}
	return nil, diag.NotFound(name, "no such struct in input")
}
