// Package exprtree implements integer arithmetic expression trees.
//
// Trees are built from leaves created by a Factory and the binary nodes Add
// and Mul. Evaluating a tree against a Context substitutes variables; a
// variable missing from the context is the only way evaluation can fail.
//
//	f := exprtree.NewFactory()
//	e := exprtree.Mul(exprtree.Add(f.Constant(2), f.Variable("x")), f.Constant(4))
//	v, err := e.Eval(exprtree.NewContext(exprtree.SetVar("x", 3)))
//	// e.String() == "((2 + x) * 4)", v == 20, err == nil
//
// The factory shares leaves between trees for as long as any tree uses them,
// so trees are generally DAGs. Nodes are immutable and safe to share between
// goroutines. Arithmetic uses int and wraps on overflow.
package exprtree
