package meta

import (
	"strings"

	"github.com/Alia5/monobind/internal/codegen/common"
)

// Operation is the verb a function name carries after its struct prefix.
type Operation string

const (
	OpGet Operation = "get"
	OpSet Operation = "set"
	OpNew Operation = "new"
	OpOn  Operation = "on"
)

// ArgType is one C fragment seen from both sides of the binding boundary.
type ArgType struct {
	Raw      string `json:"raw"`
	Marshal  string `json:"marshal"`  // native entry point type, e.g. IntPtr
	CSharp   string `json:"csharp"`   // API surface type, e.g. Buddy
	IsObject bool   `json:"isObject"` // prefixed struct pointer
	Param    string `json:"param,omitempty"`
}

func NewArgType(m common.TypeMapper, raw, param string) ArgType {
	ct := common.ParseCType(raw)
	return ArgType{
		Raw:      raw,
		Marshal:  m.Marshal(ct),
		CSharp:   m.HighLevel(ct),
		IsObject: m.IsObject(ct),
		Param:    param,
	}
}

// IsHandleOf reports whether the argument passes a handle to class.
func (a ArgType) IsHandleOf(class string) bool {
	return a.Marshal == common.HandleType && a.CSharp == class
}

// Method is a function claimed by a struct. It is immutable once built.
type Method struct {
	Name      string    `json:"name"`
	Operation Operation `json:"operation"`
	ReturnRaw string    `json:"returnRaw"`
	ArgRaws   []string  `json:"argRaws"`
	Return    ArgType   `json:"return"`
	Args      []ArgType `json:"args"`
	Line      int       `json:"line"`
}

// NewMethod derives the ArgTypes of a prototype. argNames may be shorter than
// argRaws; missing names are left empty.
func NewMethod(m common.TypeMapper, op Operation, retRaw, name string, argRaws, argNames []string, line int) *Method {
	meth := &Method{
		Name:      name,
		Operation: op,
		ReturnRaw: retRaw,
		ArgRaws:   argRaws,
		Return:    NewArgType(m, retRaw, ""),
		Line:      line,
	}
	for i, raw := range argRaws {
		var param string
		if i < len(argNames) {
			param = argNames[i]
		}
		meth.Args = append(meth.Args, NewArgType(m, raw, param))
	}
	return meth
}

// Property folds get/set functions sharing a suffix into one accessor.
type Property struct {
	Name         string                `json:"name"`
	AccessorName string                `json:"accessorName"`
	ClassName    string                `json:"className"`
	Ops          map[Operation]*Method `json:"ops"`
}

// NewProperty strips underscores off suffix ("_alias" -> "alias").
func NewProperty(suffix, className string) *Property {
	name := strings.Trim(suffix, "_")
	return &Property{
		Name:         name,
		AccessorName: common.CSharpIdent(common.ToPascalCase(name) + "Prop"),
		ClassName:    className,
		Ops:          make(map[Operation]*Method),
	}
}

// Add stores meth under op and reports whether it replaced another method.
func (p *Property) Add(op Operation, meth *Method) bool {
	_, replaced := p.Ops[op]
	p.Ops[op] = meth
	return replaced
}

func (p *Property) Getter() *Method { return p.Ops[OpGet] }
func (p *Property) Setter() *Method { return p.Ops[OpSet] }

// Renderable reports whether the property has an accessor to emit.
func (p *Property) Renderable() bool {
	return p.Getter() != nil || p.Setter() != nil
}

// Type is the property's API type: the getter's return type, or for
// set-only properties the type of the setter's last argument other than the
// instance handle.
func (p *Property) Type() string {
	if g := p.Getter(); g != nil {
		return g.Return.CSharp
	}
	s := p.Setter()
	if s == nil {
		return ""
	}
	self := -1
	for i, a := range s.Args {
		if a.IsHandleOf(p.ClassName) {
			self = i
			break
		}
	}
	for i := len(s.Args) - 1; i >= 0; i-- {
		if i != self {
			return s.Args[i].CSharp
		}
	}
	return ""
}

// Struct is one domain object type and everything classified onto it.
type Struct struct {
	Name       string                         `json:"name"`       // e.g. PurpleBuddy
	ClassName  string                         `json:"className"`  // e.g. Buddy
	FuncPrefix string                         `json:"funcPrefix"` // e.g. purple_buddy
	Line       int                            `json:"line"`
	Methods    []*Method                      `json:"methods"`
	Properties *OrderedMap[string, *Property] `json:"properties"`
}

func NewStruct(name, className string, line int) *Struct {
	return &Struct{
		Name:       name,
		ClassName:  className,
		FuncPrefix: common.ToSnakeCase(name),
		Line:       line,
		Properties: NewOrderedMap[string, *Property](),
	}
}

// AddMethod appends meth to the native binding list and, unless it is a
// constructor, folds it into the property named by suffix. It returns the
// property when an existing accessor was replaced.
func (s *Struct) AddMethod(meth *Method, suffix string) (collided *Property) {
	s.Methods = append(s.Methods, meth)
	if meth.Operation == OpNew {
		return nil
	}
	key := strings.Trim(suffix, "_")
	prop, ok := s.Properties.Get(key)
	if !ok {
		prop = NewProperty(suffix, s.ClassName)
		s.Properties.Set(key, prop)
	}
	if prop.Add(meth.Operation, meth) {
		return prop
	}
	return nil
}

// Signal is one event registration: Types[0] is the return type, the rest
// are the value types in declared order.
type Signal struct {
	Name  string   `json:"name" yaml:"name" toml:"name"`
	Types []string `json:"types" yaml:"types" toml:"types"`
	Line  int      `json:"line" yaml:"-" toml:"-"`
}
