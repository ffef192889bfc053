package exprtree

// Vars returns the names of the variables in e in order of first appearance,
// left to right. Each name appears once.
func Vars(e Expr) []string {
	var r []string
	seen := make(map[string]bool)
	var walk func(Expr)
	walk = func(e Expr) {
		switch e := e.(type) {
		case *Constant: // no variables
		case *Variable:
			if !seen[e.name] {
				seen[e.name] = true
				r = append(r, e.name)
			}
		case *Addition:
			walk(e.left)
			walk(e.right)
		case *Multiplication:
			walk(e.left)
			walk(e.right)
		default:
			panic("exprtree: invalid node")
		}
	}
	walk(e)
	return r
}
