package lower

import (
	"github.com/cinderlang/cinder/compiler"
	"github.com/cinderlang/cinder/pkg/ir"
)

// CompileFunction lowers one (defn name:type [param:type ...] body*)
// form into a Function unit. The context's registries are reset first;
// parameters are allocated and bound in declaration order; the declared
// return type is threaded through the body; body forms compile with
// their results discarded; the body's value is not implicitly returned.
func (c *Context) CompileFunction(f *compiler.ListForm) (*ir.Function, error) {
	c.Reset()

	args := f.Args()
	if len(args) < 2 {
		return nil, formError(ErrArity, f, "defn takes a name and a parameter vector")
	}

	nameSym, ok := args[0].(*compiler.SymbolForm)
	if !ok {
		return nil, formError(ErrUnsupportedForm, f, "defn needs a name")
	}
	name, retName := compiler.SplitTyped(nameSym.Name)
	if retName == "" {
		retName = ir.TypeInt
	}
	retType, err := c.resolveType(retName, f)
	if err != nil {
		return nil, err
	}

	params, ok := args[1].(*compiler.VecForm)
	if !ok {
		return nil, formError(ErrUnsupportedForm, f, "defn needs a parameter vector")
	}
	for _, p := range params.Items {
		sym, ok := p.(*compiler.SymbolForm)
		if !ok {
			return nil, formError(ErrUnsupportedForm, p, "parameter must be a name")
		}
		pname, ptype := compiler.SplitTyped(sym.Name)
		if ptype == "" {
			ptype = ir.TypeInt
		}
		t, err := c.resolveType(ptype, p)
		if err != nil {
			return nil, err
		}
		slot := c.AllocSlot(pname)
		c.emit(ir.Bind(slot, t))
	}

	c.returnType = retType
	for _, form := range args[2:] {
		if _, err := c.compileForm(form, true, ir.NoType); err != nil {
			return nil, err
		}
	}

	return &ir.Function{
		LinkName:   name,
		ParamCount: len(params.Items),
		Code:       c.Code(),
	}, nil
}

// CompileProgram lowers a sequence of top-level forms: (deftype name)
// registers a type and announces it to the backend; (defn ...) compiles
// one function and hands it over. A failed form aborts the whole run.
// Functions are compiled one at a time; the context is reset between
// them.
func CompileProgram(forms []compiler.Form, types *ir.TypeTable, b Backend) error {
	c := NewContext(types)

	for _, form := range forms {
		list, ok := form.(*compiler.ListForm)
		if !ok {
			return formError(ErrUnsupportedForm, form, "expected a top-level definition")
		}

		switch list.Head() {
		case "deftype":
			args := list.Args()
			if len(args) != 1 {
				return formError(ErrArity, list, "deftype takes a name")
			}
			sym, ok := args[0].(*compiler.SymbolForm)
			if !ok {
				return formError(ErrUnsupportedForm, list, "deftype needs a name")
			}
			id := types.Register(sym.Name)
			if err := b.DeclareType(sym.Name, id); err != nil {
				return err
			}

		case "defn":
			fn, err := c.CompileFunction(list)
			if err != nil {
				return err
			}
			if err := b.Emit(fn); err != nil {
				return err
			}

		default:
			return formError(ErrUnsupportedForm, list, "expected deftype or defn")
		}
	}

	return nil
}
