package anf

import (
	"fmt"

	"lambcalc/pkg/ast"
	"lambcalc/pkg/fresh"
)

// MustApplyNamedError reports an application whose function position did
// not reduce to a named value (a local binder or a hoisted global). This
// cannot arise from well-formed parser output; it indicates a bug in an
// earlier pass or in a hand-built AST.
type MustApplyNamedError struct{ Value Value }

func (e *MustApplyNamedError) Error() string {
	return fmt.Sprintf("must apply a named value, got %s", DumpValue(e.Value))
}

// cont is a value continuation: given the Value an expression reduced to,
// it returns the ANF term representing "the rest of the computation".
type cont func(Value) (Exp, error)

// Convert is the direct, continuation-passing rendition of ANF conversion.
// It recurses natively and is kept as the readable reference translation;
// ConvertDefunc is the stack-safe variant actually used by the compile
// pipeline, and both must produce identical dumps on any input that
// doesn't overflow Convert's own native call stack.
func Convert(exp ast.Exp, counter *fresh.Counter) (Exp, error) {
	return convert(exp, counter, func(v Value) (Exp, error) {
		return &HaltExp{Value: v}, nil
	})
}

func convert(exp ast.Exp, counter *fresh.Counter, k cont) (Exp, error) {
	switch n := exp.(type) {
	case *ast.IntExp:
		return k(IntValue{Value: n.Value})

	case *ast.VarExp:
		return k(VarValue{Name: n.Name})

	case *ast.LamExp:
		// The body is converted (and so allocates its own temporaries)
		// before the function's own name is drawn from the counter: S2
		// (`(fn x => x + 1) 1`) must yield tmp0 for the body's "+" result
		// and tmp1 for the function name, not the reverse.
		body, err := convert(n.Body, counter, func(v Value) (Exp, error) {
			return &HaltExp{Value: v}, nil
		})
		if err != nil {
			return nil, err
		}
		funName := counter.Next()
		rest, err := k(VarValue{Name: funName})
		if err != nil {
			return nil, err
		}
		return &FunExp{Name: funName, Params: []string{n.Param}, Body: body, Rest: rest}, nil

	case *ast.AppExp:
		return convert(n.Fn, counter, func(fnValue Value) (Exp, error) {
			funName, err := valueName(fnValue)
			if err != nil {
				return nil, err
			}
			return convert(n.Arg, counter, func(argValue Value) (Exp, error) {
				name := counter.Next()
				rest, err := k(VarValue{Name: name})
				if err != nil {
					return nil, err
				}
				return &AppExp{Name: name, FunName: funName, Args: []Value{argValue}, Rest: rest}, nil
			})
		})

	case *ast.BopExp:
		return convert(n.Arg1, counter, func(v1 Value) (Exp, error) {
			return convert(n.Arg2, counter, func(v2 Value) (Exp, error) {
				name := counter.Next()
				rest, err := k(VarValue{Name: name})
				if err != nil {
					return nil, err
				}
				return &BopExp{Name: name, Op: n.Op, Arg1: v1, Arg2: v2, Rest: rest}, nil
			})
		})

	case *ast.IfExp:
		return convert(n.Cond, counter, func(condValue Value) (Exp, error) {
			joinName := counter.Next()
			slot := counter.Next()

			body, err := k(VarValue{Name: slot})
			if err != nil {
				return nil, err
			}

			toJoin := func(v Value) (Exp, error) {
				return &JumpExp{JoinName: joinName, SlotValue: v, HasSlot: true}, nil
			}
			thenExp, err := convert(n.Then, counter, toJoin)
			if err != nil {
				return nil, err
			}
			elseExp, err := convert(n.Else, counter, toJoin)
			if err != nil {
				return nil, err
			}

			slotCopy := slot
			return &JoinExp{
				Name: joinName,
				Slot: &slotCopy,
				Body: body,
				Rest: &IfExp{Cond: condValue, Then: thenExp, Else: elseExp},
			}, nil
		})

	default:
		return nil, fmt.Errorf("convert: unrecognized expression %T", n)
	}
}

// valueName resolves a Value that must name something callable: a local
// binder or a hoisted global. Any other Value (an IntValue) means the
// program applied a non-function.
func valueName(v Value) (string, error) {
	switch vv := v.(type) {
	case VarValue:
		return vv.Name, nil
	case GlobValue:
		return vv.Name, nil
	default:
		return "", &MustApplyNamedError{Value: v}
	}
}
