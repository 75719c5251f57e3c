package cmd

import (
	"github.com/Alia5/monobind/internal/codegen/common"
	"github.com/Alia5/monobind/internal/codegen/generator"
	"github.com/Alia5/monobind/internal/codegen/generator/csharp"
	"github.com/Alia5/monobind/internal/codegen/scanner"
)

// Inputs lists the files a command scans; empty means stdin.
type Inputs []string

// BindingOptions configures type mapping and class emission.
type BindingOptions struct {
	Prefix    string            `help:"Type name prefix marking domain objects" default:"Purple" env:"MONOBIND_PREFIX"`
	Library   string            `help:"Native library named in [DllImport]" default:"libpurple" env:"MONOBIND_LIBRARY"`
	Namespace string            `help:"C# namespace of generated classes" default:"Purple" env:"MONOBIND_NAMESPACE"`
	BaseClass string            `help:"Base class of generated wrappers" default:"Object" env:"MONOBIND_BASE_CLASS"`
	Primitive map[string]string `help:"C type aliases mapped at pointer depth zero (KEY=VALUE)" default:"gboolean=bool" env:"MONOBIND_PRIMITIVE"`
}

func (b BindingOptions) generatorOptions(in Inputs) generator.Options {
	primitives := b.Primitive
	if len(primitives) == 0 {
		primitives = common.DefaultPrimitives()
	}
	return generator.Options{
		Inputs: in,
		Mapper: common.TypeMapper{Prefix: b.Prefix, Primitives: primitives},
		CSharp: csharp.Options{Namespace: b.Namespace, Library: b.Library, BaseClass: b.BaseClass},
	}
}

// SignalOptions names the registration and value-constructor calls.
type SignalOptions struct {
	RegisterFunc string   `help:"Signal registration function" default:"purple_signal_register" env:"MONOBIND_REGISTER_FUNC"`
	ValueCtor    string   `help:"Value descriptor constructor" default:"purple_value_new" env:"MONOBIND_VALUE_CTOR"`
	Marker       []string `help:"Leading value constructor arguments to drop" default:"PURPLE_TYPE_SUBTYPE,PURPLE_TYPE_BOXED" env:"MONOBIND_MARKER"`
}

func (s SignalOptions) generatorOptions(in Inputs) generator.Options {
	return generator.Options{
		Inputs: in,
		Signals: scanner.SignalOptions{
			RegisterFunc: s.RegisterFunc,
			ValueCtor:    s.ValueCtor,
			Markers:      s.Marker,
		},
	}
}
