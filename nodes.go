package exprtree

import (
	"strconv"
	"strings"
)

// Expr is a node in an expression tree. The set of implementations is closed:
// *Constant, *Variable, *Addition, and *Multiplication.
//
// Nodes are immutable once constructed, so a single node may appear any
// number of times within one tree or across many trees.
type Expr interface {
	// Eval computes the value of the expression with variables bound by ctx.
	// The only error it returns is *UnboundVariableError.
	Eval(ctx *Context) (int, error)
	// String renders the expression in fully parenthesized infix form, e.g.
	// "((2 + x) * 4)".
	String() string

	fmt(b *strings.Builder)
}

// Constant is an integer literal. Constants are obtained from a Factory.
type Constant struct {
	value int
	text  string
}

// Value returns the constant's value.
func (c *Constant) Value() int {
	return c.value
}

// Eval returns the constant's value. It never fails.
func (c *Constant) Eval(*Context) (int, error) {
	return c.value, nil
}

func (c *Constant) String() string {
	return c.text
}

func (c *Constant) fmt(b *strings.Builder) {
	b.WriteString(c.text)
}

func newConstant(v int) *Constant {
	return &Constant{value: v, text: strconv.Itoa(v)}
}

// Variable is a named value looked up in the evaluation context. Variables are
// obtained from a Factory.
type Variable struct {
	name string
}

// Name returns the variable's name.
func (v *Variable) Name() string {
	return v.name
}

// Eval looks up the variable in ctx. If ctx has no binding for the name, the
// error is an *UnboundVariableError.
func (v *Variable) Eval(ctx *Context) (int, error) {
	x, ok := ctx.Lookup(v.name)
	if !ok {
		return 0, &UnboundVariableError{Name: v.name}
	}
	return x, nil
}

func (v *Variable) String() string {
	return v.name
}

func (v *Variable) fmt(b *strings.Builder) {
	b.WriteString(v.name)
}

// Addition is the sum of two subexpressions.
type Addition struct {
	left, right Expr
}

// Add creates the node (l + r). Panics if either operand is nil.
func Add(l, r Expr) *Addition {
	mustOperands("Add", l, r)
	return &Addition{left: l, right: r}
}

// Left returns the left operand.
func (n *Addition) Left() Expr { return n.left }

// Right returns the right operand.
func (n *Addition) Right() Expr { return n.right }

// Eval evaluates the left operand, then the right, and adds them. An error
// from the left operand is returned without evaluating the right. The sum
// wraps on overflow.
func (n *Addition) Eval(ctx *Context) (int, error) {
	l, err := n.left.Eval(ctx)
	if err != nil {
		return 0, err
	}
	r, err := n.right.Eval(ctx)
	if err != nil {
		return 0, err
	}
	return l + r, nil
}

func (n *Addition) String() string {
	return render(n)
}

func (n *Addition) fmt(b *strings.Builder) {
	binary(b, n.left, " + ", n.right)
}

// Multiplication is the product of two subexpressions.
type Multiplication struct {
	left, right Expr
}

// Mul creates the node (l * r). Panics if either operand is nil.
func Mul(l, r Expr) *Multiplication {
	mustOperands("Mul", l, r)
	return &Multiplication{left: l, right: r}
}

// Left returns the left operand.
func (n *Multiplication) Left() Expr { return n.left }

// Right returns the right operand.
func (n *Multiplication) Right() Expr { return n.right }

// Eval evaluates the left operand, then the right, and multiplies them. An
// error from the left operand is returned without evaluating the right. The
// product wraps on overflow.
func (n *Multiplication) Eval(ctx *Context) (int, error) {
	l, err := n.left.Eval(ctx)
	if err != nil {
		return 0, err
	}
	r, err := n.right.Eval(ctx)
	if err != nil {
		return 0, err
	}
	return l * r, nil
}

func (n *Multiplication) String() string {
	return render(n)
}

func (n *Multiplication) fmt(b *strings.Builder) {
	binary(b, n.left, " * ", n.right)
}

func render(e Expr) string {
	var b strings.Builder
	e.fmt(&b)
	return b.String()
}

func binary(b *strings.Builder, l Expr, op string, r Expr) {
	b.WriteByte('(')
	l.fmt(b)
	b.WriteString(op)
	r.fmt(b)
	b.WriteByte(')')
}

// mustOperands panics if either operand of a binary node is missing. A nil
// interface and a typed nil pointer are both rejected.
func mustOperands(op string, l, r Expr) {
	if isNil(l) || isNil(r) {
		panic("exprtree: " + op + " with nil operand")
	}
}

func isNil(e Expr) bool {
	switch e := e.(type) {
	case nil:
		return true
	case *Constant:
		return e == nil
	case *Variable:
		return e == nil
	case *Addition:
		return e == nil
	case *Multiplication:
		return e == nil
	}
	return false
}

var (
	_ Expr = (*Constant)(nil)
	_ Expr = (*Variable)(nil)
	_ Expr = (*Addition)(nil)
	_ Expr = (*Multiplication)(nil)
)
