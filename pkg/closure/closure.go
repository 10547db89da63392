// Package closure implements the third pass of the pipeline: closure
// conversion. It replaces each lexically-scoped anf.FunExp with a
// first-order function that takes an explicit environment (a closure
// tuple) as its first parameter, and rewrites every call site to project
// the callee's code pointer out of that tuple before calling it.
package closure

import (
	"sort"

	"lambcalc/pkg/anf"
	"lambcalc/pkg/fresh"
	"lambcalc/pkg/utils"
)

// ----------------------------------------------------------------------------
// Free-variable computation

// fvTask is either "visit this subtree, adding every Var/Glob reference to
// the free set" or a deferred "remove these binder names from the free
// set" — pushed before the task that visits the binder's scope so it pops
// (and runs) only once that whole scope has been walked. Same worklist
// discipline as ast.Rename (pkg/ast/rename.go).
type fvTask struct {
	visit  anf.Exp
	remove []string
}

// FreeVars returns the free variables of exp — the Var/Glob names it
// references that are not bound by any Fun/Join/App/Bop/Tuple/Proj binder
// within exp itself — sorted lexicographically so that the layout closure
// conversion builds from them is reproducible across runs.
func FreeVars(exp anf.Exp) []string {
	free := map[string]struct{}{}
	stack := utils.NewStack[fvTask]()
	stack.Push(fvTask{visit: exp})

	for stack.Count() > 0 {
		task, _ := stack.Pop()
		if task.remove != nil {
			for _, name := range task.remove {
				delete(free, name)
			}
			continue
		}
		visitFreeVars(task.visit, free, &stack)
	}

	names := make([]string, 0, len(free))
	for name := range free {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func addValue(free map[string]struct{}, v anf.Value) {
	switch vv := v.(type) {
	case anf.VarValue:
		free[vv.Name] = struct{}{}
	case anf.GlobValue:
		free[vv.Name] = struct{}{}
	}
}

func visitFreeVars(exp anf.Exp, free map[string]struct{}, stack *utils.Stack[fvTask]) {
	switch n := exp.(type) {
	case *anf.HaltExp:
		addValue(free, n.Value)

	case *anf.FunExp:
		stack.Push(fvTask{remove: []string{n.Name}})
		stack.Push(fvTask{visit: n.Rest})
		stack.Push(fvTask{remove: append([]string(nil), n.Params...)})
		stack.Push(fvTask{visit: n.Body})

	case *anf.JoinExp:
		stack.Push(fvTask{remove: []string{n.Name}})
		stack.Push(fvTask{visit: n.Rest})
		if n.Slot != nil {
			stack.Push(fvTask{remove: []string{*n.Slot}})
		}
		stack.Push(fvTask{visit: n.Body})

	case *anf.JumpExp:
		if n.HasSlot {
			addValue(free, n.SlotValue)
		}

	case *anf.AppExp:
		free[n.FunName] = struct{}{}
		for _, v := range n.Args {
			addValue(free, v)
		}
		stack.Push(fvTask{remove: []string{n.Name}})
		stack.Push(fvTask{visit: n.Rest})

	case *anf.BopExp:
		addValue(free, n.Arg1)
		addValue(free, n.Arg2)
		stack.Push(fvTask{remove: []string{n.Name}})
		stack.Push(fvTask{visit: n.Rest})

	case *anf.IfExp:
		addValue(free, n.Cond)
		stack.Push(fvTask{visit: n.Else})
		stack.Push(fvTask{visit: n.Then})

	case *anf.TupleExp:
		for _, v := range n.Values {
			addValue(free, v)
		}
		stack.Push(fvTask{remove: []string{n.Name}})
		stack.Push(fvTask{visit: n.Rest})

	case *anf.ProjExp:
		free[n.Tuple] = struct{}{}
		stack.Push(fvTask{remove: []string{n.Name}})
		stack.Push(fvTask{visit: n.Rest})
	}
}

// ----------------------------------------------------------------------------
// Closure conversion

// ccTask carries the address of the slot a subtree occupies in its parent,
// so Fun/App rewrites can splice a new node into that exact slot — the
// same parent-link discipline the rename and hoist worklists use.
type ccTask struct{ link *anf.Exp }

// Convert closure-converts exp: every anf.FunExp gains an explicit
// closure-environment parameter and is paired with a tuple built at its
// binding site (the per-function rewrite); every call through an
// anf.AppExp projects its callee's code pointer out of that tuple before
// calling (the per-application rewrite). Unlike alpha-rename, this pass
// never fails: it assumes its input is already valid ANF.
func Convert(root anf.Exp, counter *fresh.Counter) anf.Exp {
	stack := utils.NewStack[ccTask]()
	stack.Push(ccTask{link: &root})

	for stack.Count() > 0 {
		task, _ := stack.Pop()
		visitConvert(task.link, counter, &stack)
	}

	return root
}

func visitConvert(link *anf.Exp, counter *fresh.Counter, stack *utils.Stack[ccTask]) {
	switch n := (*link).(type) {
	case *anf.HaltExp:
		// leaf

	case *anf.FunExp:
		convertFun(n, counter, stack)

	case *anf.JoinExp:
		stack.Push(ccTask{link: &n.Rest})
		stack.Push(ccTask{link: &n.Body})

	case *anf.JumpExp:
		// leaf

	case *anf.AppExp:
		convertApp(link, n, counter, stack)

	case *anf.BopExp:
		stack.Push(ccTask{link: &n.Rest})

	case *anf.IfExp:
		stack.Push(ccTask{link: &n.Else})
		stack.Push(ccTask{link: &n.Then})

	case *anf.TupleExp:
		stack.Push(ccTask{link: &n.Rest})

	case *anf.ProjExp:
		stack.Push(ccTask{link: &n.Rest})
	}
}

// freeVarsOfFun returns the free variables of the entire Fun form — those
// of Body (minus Params) joined with those of Rest (minus n's own Name),
// per spec step 1: "FV = freeVars(*link) — the free variables of the
// entire Fun form". FreeVars already treats a *anf.FunExp as a binder node
// that excludes Params from Body and Name from Rest, so this is just
// FreeVars dispatched on n itself rather than on n.Body alone — restricting
// it to n.Body would drop any free variable this closure only picks up
// through n.Rest (e.g. one captured by a sibling tuple built alongside it).
func freeVarsOfFun(n *anf.FunExp) []string {
	return FreeVars(n)
}

// convertFun implements the per-function rewrite: the free
// variables are computed before any field is touched, since mutating
// Params first would fold the fresh closure parameter into its own
// free-variable computation.
func convertFun(n *anf.FunExp, counter *fresh.Counter, stack *utils.Stack[ccTask]) {
	fv := freeVarsOfFun(n)
	closureParam := counter.NextPrefixed("closure")
	n.Params = append([]string{closureParam}, n.Params...)

	origBody := n.Body
	if len(fv) == 0 {
		stack.Push(ccTask{link: &n.Body})
	} else {
		var head, tail *anf.ProjExp
		for i, name := range fv {
			proj := &anf.ProjExp{Name: name, Tuple: closureParam, Index: i + 1}
			if head == nil {
				head = proj
			} else {
				tail.Rest = proj
			}
			tail = proj
		}
		tail.Rest = origBody
		n.Body = head
		stack.Push(ccTask{link: &tail.Rest})
	}

	values := make([]anf.Value, 0, len(fv)+1)
	values = append(values, anf.GlobValue{Name: n.Name})
	for _, name := range fv {
		values = append(values, anf.VarValue{Name: name})
	}
	origRest := n.Rest
	tuple := &anf.TupleExp{Name: n.Name, Values: values, Rest: origRest}
	n.Rest = tuple
	stack.Push(ccTask{link: &tuple.Rest})
}

// convertApp implements the per-application rewrite: the
// closure itself (still a Var at this point — binding-site Tuple
// construction happens in convertFun) is passed as the call's first
// argument, and the callee's code pointer is projected out of slot 0.
func convertApp(link *anf.Exp, n *anf.AppExp, counter *fresh.Counter, stack *utils.Stack[ccTask]) {
	projName := counter.NextPrefixed("proj")
	args := make([]anf.Value, 0, len(n.Args)+1)
	args = append(args, anf.VarValue{Name: n.FunName})
	args = append(args, n.Args...)

	app := &anf.AppExp{Name: n.Name, FunName: projName, Args: args, Rest: n.Rest}
	proj := &anf.ProjExp{Name: projName, Tuple: n.FunName, Index: 0, Rest: app}
	*link = proj
	stack.Push(ccTask{link: &app.Rest})
}
