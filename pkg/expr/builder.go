package expr

import "strings"

// Vars splits s on whitespace and returns one Var per field, e.g.
// Vars("x y z") == []*Expr{Var("x"), Var("y"), Var("z")}.
func Vars(s string) []*Expr {
	return VarsSep(s, "")
}

// VarsSep splits s on sep (or on whitespace, if sep is empty) and returns
// one Var per non-empty field, trimming surrounding whitespace from each.
func VarsSep(s string, sep string) []*Expr {
	var fields []string
	if sep == "" {
		fields = strings.Fields(s)
	} else {
		for _, f := range strings.Split(s, sep) {
			f = strings.TrimSpace(f)
			if f != "" {
				fields = append(fields, f)
			}
		}
	}
	out := make([]*Expr, len(fields))
	for i, f := range fields {
		out[i] = Var(f)
	}
	return out
}
