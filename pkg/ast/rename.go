package ast

import (
	"fmt"

	"lambcalc/pkg/fresh"
	"lambcalc/pkg/utils"
)

// NotInScopeError reports a variable reference with no enclosing binder.
// This is fatal: well-formed input never produces it.
type NotInScopeError struct{ Name string }

func (e *NotInScopeError) Error() string {
	return fmt.Sprintf("variable not in scope: %q", e.Name)
}

// renameTask is the single task variant this pass pushes onto its worklist.
// A task is either "visit the node occupying this slot" or "the deferred
// restoration of a binding that a Visit task installed". Restorations are
// pushed before the task that visits the binder's body, so they pop only
// once every descendant of that body has been fully processed — giving the
// explicit stack the same bracket-matching a native call stack gives a
// recursive renamer, without recursing.
type renameTask struct {
	visit *Exp // non-nil: visit the node stored at this slot

	restore   bool // true: this is a Restore task
	name      string
	hadPrior  bool
	priorName string
}

// Rename alpha-renames every binder in exp to a fresh, globally unique name,
// rewriting all bound references in place, and reports NotInScopeError for
// any variable with no enclosing binder. Traversal uses an explicit LIFO
// worklist rather than native recursion: stack usage stays proportional to
// the number of pending tasks, not to the input's nesting depth.
func Rename(exp Exp, counter *fresh.Counter) error {
	env := map[string]string{}
	stack := utils.NewStack[renameTask]()
	root := exp
	stack.Push(renameTask{visit: &root})

	for stack.Count() > 0 {
		task, _ := stack.Pop()

		if task.restore {
			if task.hadPrior {
				env[task.name] = task.priorName
			} else {
				delete(env, task.name)
			}
			continue
		}

		switch n := (*task.visit).(type) {
		case *IntExp:
			// leaf, nothing to rename

		case *VarExp:
			renamed, ok := env[n.Name]
			if !ok {
				return &NotInScopeError{Name: n.Name}
			}
			n.Name = renamed

		case *LamExp:
			prior, hadPrior := env[n.Param]
			freshName := counter.NextPrefixed(n.Param)
			env[n.Param] = freshName

			stack.Push(renameTask{restore: true, name: n.Param, hadPrior: hadPrior, priorName: prior})
			stack.Push(renameTask{visit: &n.Body})

			n.Param = freshName

		case *AppExp:
			// Pushed fn first, arg second: since the worklist is LIFO, arg is
			// visited (and its own fresh names allocated) before fn.
			stack.Push(renameTask{visit: &n.Fn})
			stack.Push(renameTask{visit: &n.Arg})

		case *BopExp:
			stack.Push(renameTask{visit: &n.Arg1})
			stack.Push(renameTask{visit: &n.Arg2})

		case *IfExp:
			stack.Push(renameTask{visit: &n.Cond})
			stack.Push(renameTask{visit: &n.Then})
			stack.Push(renameTask{visit: &n.Else})

		default:
			return fmt.Errorf("rename: unrecognized expression %T", n)
		}
	}

	return nil
}
