// Package hoist implements the fourth and final pass of the pipeline:
// flattening nested anf.FunExp and anf.JoinExp definitions into a flat,
// per-function list of labeled blocks.
package hoist

import (
	"lambcalc/pkg/anf"
	"lambcalc/pkg/fresh"
	"lambcalc/pkg/utils"
)

// Block is a labeled join point: a name, an optional single parameter,
// and a tail-form body containing no Fun or Join node.
type Block struct {
	Name string
	Slot *string
	Body anf.Exp
}

// Function is a fully hoisted, first-order function: its entry block runs
// first; every other block is reachable only via a Jump.
type Function struct {
	Name   string
	Params []string
	Entry  Block
	Blocks []Block
}

// hoistTask is either "visit the node at this slot" or a deferred action
// that runs once that node's subtree has been fully visited — the same
// worklist discipline as ast.Rename and closure.Convert, with one addition:
// Fun/Join nodes are removed from the tree entirely, so their "after" task
// also splices their Rest into the slot they themselves occupied.
type hoistTask struct {
	visit *anf.Exp
	after func()
}

type state struct {
	counter      *fresh.Counter
	currentJoins []Block
	collected    []Function
}

// Hoist flattens exp into a list of first-order Functions. The whole
// input is first wrapped in a synthetic "main" function, so main is
// produced the same way every other function is; its trailing Halt(0) is
// unreachable and exists only to satisfy the Rest slot. Hoisting cannot
// fail: it assumes the invariants alpha-rename, ANF conversion and
// closure conversion already established.
func Hoist(exp anf.Exp, counter *fresh.Counter) []Function {
	var root anf.Exp = &anf.FunExp{
		Name:   "main",
		Params: nil,
		Body:   exp,
		Rest:   &anf.HaltExp{Value: anf.IntValue{Value: 0}},
	}

	st := &state{counter: counter}
	stack := utils.NewStack[hoistTask]()
	stack.Push(hoistTask{visit: &root})

	for stack.Count() > 0 {
		task, _ := stack.Pop()
		if task.after != nil {
			task.after()
			continue
		}
		st.visit(task.visit, &stack)
	}

	return st.collected
}

func (st *state) visit(link *anf.Exp, stack *utils.Stack[hoistTask]) {
	switch n := (*link).(type) {
	case *anf.HaltExp:
		// leaf

	case *anf.FunExp:
		savedJoins := st.currentJoins
		st.currentJoins = nil
		slot := link

		// The four tasks below are popped in reverse push order (a stack),
		// so execution order is: visit(body), collect-and-restore,
		// visit(rest), splice.
		stack.Push(hoistTask{after: func() { *slot = n.Rest }})
		stack.Push(hoistTask{visit: &n.Rest})
		stack.Push(hoistTask{after: func() {
			entry := Block{Name: st.counter.NextPrefixed("entry"), Body: n.Body}
			st.collected = append(st.collected, Function{
				Name: n.Name, Params: n.Params, Entry: entry, Blocks: st.currentJoins,
			})
			st.currentJoins = savedJoins
		}})
		stack.Push(hoistTask{visit: &n.Body})

	case *anf.JoinExp:
		slot := link
		stack.Push(hoistTask{after: func() { *slot = n.Rest }})
		stack.Push(hoistTask{visit: &n.Rest})
		stack.Push(hoistTask{after: func() {
			st.currentJoins = append(st.currentJoins, Block{Name: n.Name, Slot: n.Slot, Body: n.Body})
		}})
		stack.Push(hoistTask{visit: &n.Body})

	case *anf.JumpExp:
		// leaf

	case *anf.AppExp:
		stack.Push(hoistTask{visit: &n.Rest})

	case *anf.BopExp:
		stack.Push(hoistTask{visit: &n.Rest})

	case *anf.IfExp:
		stack.Push(hoistTask{after: func() {
			thenName := st.counter.NextPrefixed("then")
			elseName := st.counter.NextPrefixed("else")
			st.currentJoins = append(st.currentJoins, Block{Name: thenName, Body: n.Then})
			st.currentJoins = append(st.currentJoins, Block{Name: elseName, Body: n.Else})
			n.Then = &anf.JumpExp{JoinName: thenName}
			n.Else = &anf.JumpExp{JoinName: elseName}
		}})
		stack.Push(hoistTask{visit: &n.Else})
		stack.Push(hoistTask{visit: &n.Then})

	case *anf.TupleExp:
		stack.Push(hoistTask{visit: &n.Rest})

	case *anf.ProjExp:
		stack.Push(hoistTask{visit: &n.Rest})
	}
}
