package main

import "github.com/zephyrtronium/exprtree"

// sample is a named expression tree the driver knows how to build.
type sample struct {
	name  string
	build func(f *exprtree.Factory) exprtree.Expr
}

var samples = []sample{
	{"linear", func(f *exprtree.Factory) exprtree.Expr {
		// (2 + x) * 4
		return exprtree.Mul(exprtree.Add(f.Constant(2), f.Variable("x")), f.Constant(4))
	}},
	{"square", func(f *exprtree.Factory) exprtree.Expr {
		x := f.Variable("x")
		return exprtree.Add(exprtree.Mul(x, x), f.Constant(1000))
	}},
	{"shared", func(f *exprtree.Factory) exprtree.Expr {
		xy := exprtree.Add(f.Variable("x"), f.Variable("y"))
		return exprtree.Mul(xy, xy)
	}},
}

func findSample(name string) (sample, bool) {
	for _, s := range samples {
		if s.name == name {
			return s, true
		}
	}
	return sample{}, false
}
