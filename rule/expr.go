package rule

import (
	"context"

	"github.com/expr-lang/expr"

	goform "github.com/reoring/goform"
)

type exprEnv struct {
	Value  any            `expr:"value"`
	Values map[string]any `expr:"values"`
}

// Expr compiles src into a validator. The expression sees two variables,
// `value` (the field value) and `values` (the whole-form snapshot), and must
// yield a boolean: true passes, false reports msg. Runtime evaluation errors
// are infrastructure failures and surface as the generic ValidationFailed
// message.
//
//	rule.MustExpr(`value != nil && len(value) >= 3`, "too short")
//	rule.MustExpr(`value == values.password`, "passwords do not match")
func Expr(src, msg string) (goform.Validator, error) {
	program, err := expr.Compile(src, expr.Env(exprEnv{}), expr.AsBool())
	if err != nil {
		return nil, err
	}
	return func(_ context.Context, value any, values goform.Values) (string, error) {
		out, err := expr.Run(program, exprEnv{Value: value, Values: map[string]any(values)})
		if err != nil {
			return "", err
		}
		if ok, _ := out.(bool); !ok {
			return msg, nil
		}
		return "", nil
	}, nil
}

// MustExpr is Expr panicking on compile errors, for package-level validator
// variables.
func MustExpr(src, msg string) goform.Validator {
	v, err := Expr(src, msg)
	if err != nil {
		panic("rule.MustExpr: " + err.Error())
	}
	return v
}
