package csharp

import (
	"fmt"
	"strings"

	"github.com/Alia5/monobind/internal/codegen/common"
	"github.com/Alia5/monobind/internal/codegen/meta"
)

type propertyView struct {
	Type string
	Name string
	// Get and Set are single C# statements; empty when the accessor is absent.
	Get string
	Set string
}

// buildProperty renders the accessor bodies of p. It reports false for
// properties that have nothing to render.
//
// Only arguments passing the instance handle are threaded into the getter.
// The setter passes the handle once and the incoming value to every other
// argument whose API type matches the property type; the rest are left out.
func buildProperty(p *meta.Property) (propertyView, bool) {
	typ := p.Type()
	if !p.Renderable() || typ == "" {
		return propertyView{}, false
	}
	view := propertyView{Type: typ, Name: p.AccessorName}

	if g := p.Getter(); g != nil {
		var args []string
		for _, a := range g.Args {
			if a.IsHandleOf(p.ClassName) {
				args = append(args, "Handle")
			}
		}
		call := callExpr(g.Name, args)
		switch {
		case g.Return.CSharp == common.TextType:
			view.Get = fmt.Sprintf("return Util.build_string(%s);", call)
		case g.Return.IsObject:
			view.Get = fmt.Sprintf("return ObjectManager.GetObject(%s, typeof(%s)) as %s;", call, typ, typ)
		default:
			view.Get = fmt.Sprintf("return %s;", call)
		}
	}

	if s := p.Setter(); s != nil {
		var args []string
		self := false
		for _, a := range s.Args {
			switch {
			case !self && a.IsHandleOf(p.ClassName):
				self = true
				args = append(args, "Handle")
			case a.CSharp == typ:
				if a.IsObject {
					args = append(args, "value.Handle")
				} else {
					args = append(args, "value")
				}
			}
		}
		view.Set = callExpr(s.Name, args) + ";"
	}
	return view, true
}

func callExpr(name string, args []string) string {
	return name + "(" + strings.Join(args, ", ") + ")"
}
