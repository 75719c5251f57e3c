package csharp

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Alia5/monobind/internal/codegen/common"
	"github.com/Alia5/monobind/internal/codegen/meta"
)

const classTemplate = `{{writeFileHeader}}using System;
using System.Runtime.InteropServices;

namespace {{.Namespace}}
{
	public class {{.ClassName}} : {{.BaseClass}}
	{
		public {{.ClassName}}(IntPtr handle)
			: base(handle)
		{
		}
{{- range .Properties}}

		public {{.Type}} {{.Name}}
		{
{{- if .Get}}
			get
			{
				{{.Get}}
			}
{{- end}}
{{- if .Set}}
			set
			{
				{{.Set}}
			}
{{- end}}
		}
{{- end}}
{{- range .Imports}}

		[DllImport("{{$.Library}}")]
		static private extern {{.Return}} {{.Name}}({{.Params}});
{{- end}}
	}
}
`

var classTmpl = template.Must(template.New("class").Funcs(template.FuncMap{
	"writeFileHeader": writeFileHeader,
}).Parse(classTemplate))

type importView struct {
	Return string
	Name   string
	Params string
}

type classView struct {
	Options
	ClassName  string
	Properties []propertyView
	Imports    []importView
}

func buildClass(s *meta.Struct, opts Options) classView {
	view := classView{Options: opts, ClassName: s.ClassName}
	for _, p := range s.Properties.Values() {
		if pv, ok := buildProperty(p); ok {
			view.Properties = append(view.Properties, pv)
		}
	}
	for _, m := range s.Methods {
		view.Imports = append(view.Imports, buildImport(m))
	}
	return view
}

func buildImport(m *meta.Method) importView {
	params := make([]string, len(m.Args))
	for i, a := range m.Args {
		if a.Marshal == common.VarargsType {
			params[i] = common.VarargsType
			continue
		}
		params[i] = a.Marshal + " " + paramName(a, i)
	}
	return importView{Return: m.Return.Marshal, Name: m.Name, Params: strings.Join(params, ", ")}
}

// RenderClass writes the wrapper class for s: constructor, properties in
// first-reference order, then one native entry point per claimed function.
func RenderClass(w io.Writer, s *meta.Struct, opts Options) error {
	if err := classTmpl.Execute(w, buildClass(s, opts)); err != nil {
		return fmt.Errorf("execute class template for %s: %w", s.ClassName, err)
	}
	return nil
}
