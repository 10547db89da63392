package anf

import (
	"fmt"

	"lambcalc/pkg/ast"
	"lambcalc/pkg/fresh"
	"lambcalc/pkg/utils"
)

// ConvertDefunc is the canonical ANF conversion entry point: a
// defunctionalized rendition of Convert's continuation-passing algorithm,
// needed so that stack usage during conversion stays proportional to the
// size of the input rather than to its nesting depth. It replaces
// Convert's two kinds of native call (the outer
// "what to do with this value" continuation, and the nested nested calls
// that assemble a completed ANF fragment around it) with two explicit
// stacks of frames, driven by a three-state dispatch loop:
//
//   - GO(node): start converting an ast.Exp.
//   - APPLY_K(value): a Value was just produced; pop a K frame (a pending
//     value-consumer) to decide what happens next, or — if K is empty —
//     the value is the result of the current sub-conversion, which always
//     means wrapping it in a HaltExp and handing that to APPLY_K2.
//   - APPLY_K2(exp): a complete ANF fragment was just produced; pop a K2
//     frame (a pending fragment-consumer) to splice it into an
//     outer fragment under construction, or — if K2 is empty — it is the
//     final result.
//
// Every frame below corresponds to one kind of pending work Convert would
// otherwise have left on the native call stack.
func ConvertDefunc(root ast.Exp, counter *fresh.Counter) (Exp, error) {
	d := &defunc{counter: counter, k: utils.NewStack[kFrame](), k2: utils.NewStack[k2Frame]()}

	st := step{kind: stepGo, node: root}
	for st.kind != stepDone {
		var err error
		switch st.kind {
		case stepGo:
			st, err = d.doGo(st.node)
		case stepApplyK:
			st, err = d.doApplyK(st.value)
		case stepApplyK2:
			st, err = d.doApplyK2(st.frag)
		}
		if err != nil {
			return nil, err
		}
	}
	return st.frag, nil
}

// ----------------------------------------------------------------------------
// Dispatch state

type stepKind int

const (
	stepGo stepKind = iota
	stepApplyK
	stepApplyK2
	stepDone
)

type step struct {
	kind  stepKind
	node  ast.Exp
	value Value
	frag  Exp
}

type defunc struct {
	counter *fresh.Counter
	k       utils.Stack[kFrame]
	k2      utils.Stack[k2Frame]
}

// ----------------------------------------------------------------------------
// K frames: pending Value consumers

type kFrame interface{}

// AppArg(astArg): the fn subexpression just produced a value; evaluate arg next.
type kAppArg struct{ arg ast.Exp }

// AppFn(funValue): the arg subexpression just produced a value; funValue
// must resolve to a named, callable value.
type kAppFn struct{ fnValue Value }

// BopRight(astArg, op): arg1 just produced a value; evaluate arg2 next.
type kBopRight struct {
	arg ast.Exp
	op  ast.Bop
}

// BopLeft(xValue, op): arg2 just produced a value; combine with xValue.
type kBopLeft struct {
	x  Value
	op ast.Bop
}

// IfArms(thenAst, elseAst): the condition just produced a value.
type kIfArms struct{ then, els ast.Exp }

// IfJumpTarget(joinName): the bottom frame of an isolated then/else
// sub-conversion — in place of wrapping the produced value in a Halt, wrap
// it in a Jump to the enclosing join point.
type kIfJumpTarget struct{ joinName string }

// ----------------------------------------------------------------------------
// K2 frames: pending Exp-fragment consumers

type k2Frame interface{}

// Lam1(savedK, param): the lambda's body is converted with a fresh, empty
// K stack (it is its own independent program, not a continuation of the
// surrounding one); savedK is restored once the body's fragment is ready.
// The function's own name is not allocated here: it is drawn from the
// counter only once the body fragment returns (in APPLY_K2's lam1Frame
// case), so that the body's temporaries are numbered first — matching
// Convert's direct formulation, where convert(n.Body, ...) runs to
// completion before funName := counter.Next().
type lam1Frame struct {
	savedK utils.Stack[kFrame]
	param  string
}

// Lam2(funName, param, body): the body fragment has arrived; once the
// outer continuation's fragment ("rest") arrives, assemble the FunExp.
type lam2Frame struct {
	funName string
	param   string
	body    Exp
}

// App1(resultName, funName, argValue): assemble the AppExp once "rest" arrives.
type app1Frame struct {
	name    string
	funName string
	arg     Value
}

// Bop1(resultName, op, x, y): assemble the BopExp once "rest" arrives.
type bop1Frame struct {
	name string
	op   ast.Bop
	x, y Value
}

// If1(thenAst, elseAst, joinName, slot, cond): the join body (the outer
// continuation applied to the join's slot value) has arrived as restExp;
// next convert the then-branch in isolation.
type if1Frame struct {
	then, els      ast.Exp
	joinName, slot string
	cond           Value
}

// If2(elseAst, joinName, slot, cond, restExp): the then-branch fragment has
// arrived; next convert the else-branch in isolation.
type if2Frame struct {
	els            ast.Exp
	joinName, slot string
	cond           Value
	restExp        Exp
}

// If3(thenExp, joinName, slot, cond, restExp): the else-branch fragment has
// arrived; assemble the If and its enclosing Join.
type if3Frame struct {
	thenExp        Exp
	joinName, slot string
	cond           Value
	restExp        Exp
}

// ----------------------------------------------------------------------------
// GO

func (d *defunc) doGo(node ast.Exp) (step, error) {
	switch n := node.(type) {
	case *ast.IntExp:
		return step{kind: stepApplyK, value: IntValue{Value: n.Value}}, nil

	case *ast.VarExp:
		return step{kind: stepApplyK, value: VarValue{Name: n.Name}}, nil

	case *ast.LamExp:
		savedK := d.k
		d.k = utils.NewStack[kFrame]()
		d.k2.Push(lam1Frame{savedK: savedK, param: n.Param})
		return step{kind: stepGo, node: n.Body}, nil

	case *ast.AppExp:
		d.k.Push(kAppArg{arg: n.Arg})
		return step{kind: stepGo, node: n.Fn}, nil

	case *ast.BopExp:
		d.k.Push(kBopRight{arg: n.Arg2, op: n.Op})
		return step{kind: stepGo, node: n.Arg1}, nil

	case *ast.IfExp:
		d.k.Push(kIfArms{then: n.Then, els: n.Else})
		return step{kind: stepGo, node: n.Cond}, nil

	default:
		return step{}, fmt.Errorf("convertDefunc: unrecognized expression %T", n)
	}
}

// ----------------------------------------------------------------------------
// APPLY_K

func (d *defunc) doApplyK(v Value) (step, error) {
	frame, err := d.k.Pop()
	if err != nil {
		return step{kind: stepApplyK2, frag: &HaltExp{Value: v}}, nil
	}

	switch f := frame.(type) {
	case kAppArg:
		d.k.Push(kAppFn{fnValue: v})
		return step{kind: stepGo, node: f.arg}, nil

	case kAppFn:
		funName, err := valueName(f.fnValue)
		if err != nil {
			return step{}, err
		}
		resultName := d.counter.Next()
		d.k2.Push(app1Frame{name: resultName, funName: funName, arg: v})
		return step{kind: stepApplyK, value: VarValue{Name: resultName}}, nil

	case kBopRight:
		d.k.Push(kBopLeft{x: v, op: f.op})
		return step{kind: stepGo, node: f.arg}, nil

	case kBopLeft:
		resultName := d.counter.Next()
		d.k2.Push(bop1Frame{name: resultName, op: f.op, x: f.x, y: v})
		return step{kind: stepApplyK, value: VarValue{Name: resultName}}, nil

	case kIfArms:
		joinName := d.counter.Next()
		slot := d.counter.Next()
		d.k2.Push(if1Frame{then: f.then, els: f.els, joinName: joinName, slot: slot, cond: v})
		return step{kind: stepApplyK, value: VarValue{Name: slot}}, nil

	case kIfJumpTarget:
		return step{kind: stepApplyK2, frag: &JumpExp{JoinName: f.joinName, SlotValue: v, HasSlot: true}}, nil

	default:
		return step{}, fmt.Errorf("convertDefunc: unrecognized K frame %T", f)
	}
}

// ----------------------------------------------------------------------------
// APPLY_K2

func (d *defunc) doApplyK2(exp Exp) (step, error) {
	frame, err := d.k2.Pop()
	if err != nil {
		return step{kind: stepDone, frag: exp}, nil
	}

	switch f := frame.(type) {
	case lam1Frame:
		// The body fragment is complete; only now does the function draw
		// its own name, so that its temporaries (allocated while GO/APPLY_K
		// converted the body above) are numbered before it.
		funName := d.counter.Next()
		d.k2.Push(lam2Frame{funName: funName, param: f.param, body: exp})
		d.k = f.savedK
		return step{kind: stepApplyK, value: VarValue{Name: funName}}, nil

	case lam2Frame:
		fn := &FunExp{Name: f.funName, Params: []string{f.param}, Body: f.body, Rest: exp}
		return step{kind: stepApplyK2, frag: fn}, nil

	case app1Frame:
		app := &AppExp{Name: f.name, FunName: f.funName, Args: []Value{f.arg}, Rest: exp}
		return step{kind: stepApplyK2, frag: app}, nil

	case bop1Frame:
		bop := &BopExp{Name: f.name, Op: f.op, Arg1: f.x, Arg2: f.y, Rest: exp}
		return step{kind: stepApplyK2, frag: bop}, nil

	case if1Frame:
		d.k2.Push(if2Frame{els: f.els, joinName: f.joinName, slot: f.slot, cond: f.cond, restExp: exp})
		d.k = utils.NewStack[kFrame]()
		d.k.Push(kIfJumpTarget{joinName: f.joinName})
		return step{kind: stepGo, node: f.then}, nil

	case if2Frame:
		d.k2.Push(if3Frame{thenExp: exp, joinName: f.joinName, slot: f.slot, cond: f.cond, restExp: f.restExp})
		d.k = utils.NewStack[kFrame]()
		d.k.Push(kIfJumpTarget{joinName: f.joinName})
		return step{kind: stepGo, node: f.els}, nil

	case if3Frame:
		ifNode := &IfExp{Cond: f.cond, Then: f.thenExp, Else: exp}
		slotCopy := f.slot
		join := &JoinExp{Name: f.joinName, Slot: &slotCopy, Body: f.restExp, Rest: ifNode}
		return step{kind: stepApplyK2, frag: join}, nil

	default:
		return step{}, fmt.Errorf("convertDefunc: unrecognized K2 frame %T", f)
	}
}
