package exprtree

import (
	"sort"
	"strconv"
)

// Context binds variable names to values for evaluating expressions. Nodes
// never retain a context. Any number of goroutines may evaluate against the
// same Context, but Set must not run concurrently with any other use.
//
// A nil *Context is valid and binds no variables.
type Context struct {
	names map[string]int
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  int
	}
	varsopt map[string]int
)

func (varopt) ctxOption()  {}
func (varsopt) ctxOption() {}

// SetVar sets the value of a variable in the context.
func SetVar(name string, val int) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[string]int) ContextOption {
	return varsopt(vars)
}

// NewContext creates a new evaluation context. Options are applied in order,
// so later bindings of a name replace earlier ones.
func NewContext(opts ...ContextOption) *Context {
	var ctx Context
	return ctx.Clone(opts...)
}

// Eval evaluates e against ctx. It is shorthand for e.Eval(ctx).
func (ctx *Context) Eval(e Expr) (int, error) {
	return e.Eval(ctx)
}

// Set sets the value of a variable. Returns ctx for chaining.
func (ctx *Context) Set(name string, value int) *Context {
	if ctx.names == nil {
		ctx.names = make(map[string]int)
	}
	ctx.names[name] = value
	return ctx
}

// Lookup returns the value of a variable and whether it is bound.
func (ctx *Context) Lookup(name string) (int, bool) {
	if ctx == nil {
		return 0, false
	}
	v, ok := ctx.names[name]
	return v, ok
}

// Vars returns the names bound in the context in sorted order.
func (ctx *Context) Vars() []string {
	if ctx == nil {
		return nil
	}
	r := make([]string, 0, len(ctx.names))
	for name := range ctx.names {
		r = append(r, name)
	}
	sort.Strings(r)
	return r
}

// Clone creates a copy of a context and applies options to it. Changes to the
// copy do not affect ctx.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{names: make(map[string]int)}
	if ctx != nil {
		for name, val := range ctx.names {
			n.names[name] = val
		}
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.names[opt.name] = opt.val
		case varsopt:
			for k, v := range opt {
				n.names[k] = v
			}
		default:
			panic("exprtree: unknown option type")
		}
	}
	return &n
}

// UnboundVariableError is an error from evaluating a variable that is missing
// from the evaluation context. It passes unchanged through every enclosing
// node.
type UnboundVariableError struct {
	// Name is the name that was missing.
	Name string
}

func (err *UnboundVariableError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}
