package anf

import (
	"strconv"
	"strings"
)

// Dump renders exp in the record-like "VariantName { field1, field2, ... }"
// form, recursing through Rest/Body/Then/Else. Like ast.Dump, this is a
// diagnostic-only recursive walk: pretty-printing carries none of the
// stack-safety discipline the compile passes follow.
func Dump(exp Exp) string {
	var b strings.Builder
	dumpExp(&b, exp)
	return b.String()
}

// DumpValue renders a single Value the same way Dump embeds one.
func DumpValue(v Value) string {
	var b strings.Builder
	dumpValue(&b, v)
	return b.String()
}

func dumpValue(b *strings.Builder, v Value) {
	switch vv := v.(type) {
	case IntValue:
		b.WriteString(strconv.FormatInt(vv.Value, 10))
	case VarValue:
		b.WriteString(vv.Name)
	case GlobValue:
		b.WriteString(vv.Name)
	default:
		b.WriteString("<unknown-value>")
	}
}

func dumpValues(b *strings.Builder, vs []Value) {
	b.WriteString("[")
	for i, v := range vs {
		if i > 0 {
			b.WriteString(", ")
		}
		dumpValue(b, v)
	}
	b.WriteString("]")
}

func dumpOptSlot(b *strings.Builder, slot *string) {
	if slot == nil {
		b.WriteString("<>")
		return
	}
	b.WriteString("<")
	b.WriteString(*slot)
	b.WriteString(">")
}

func dumpOptValue(b *strings.Builder, v Value, has bool) {
	if !has {
		b.WriteString("<>")
		return
	}
	b.WriteString("<")
	dumpValue(b, v)
	b.WriteString(">")
}

func dumpExp(b *strings.Builder, exp Exp) {
	switch n := exp.(type) {
	case *HaltExp:
		b.WriteString("HaltExp { ")
		dumpValue(b, n.Value)
		b.WriteString(" }")

	case *FunExp:
		b.WriteString("FunExp { ")
		b.WriteString(n.Name)
		b.WriteString(", ")
		dumpStrings(b, n.Params)
		b.WriteString(", ")
		dumpExp(b, n.Body)
		b.WriteString(", ")
		dumpExp(b, n.Rest)
		b.WriteString(" }")

	case *JoinExp:
		b.WriteString("JoinExp { ")
		b.WriteString(n.Name)
		b.WriteString(", ")
		dumpOptSlot(b, n.Slot)
		b.WriteString(", ")
		dumpExp(b, n.Body)
		b.WriteString(", ")
		dumpExp(b, n.Rest)
		b.WriteString(" }")

	case *JumpExp:
		b.WriteString("JumpExp { ")
		b.WriteString(n.JoinName)
		b.WriteString(", ")
		dumpOptValue(b, n.SlotValue, n.HasSlot)
		b.WriteString(" }")

	case *AppExp:
		b.WriteString("AppExp { ")
		b.WriteString(n.Name)
		b.WriteString(", ")
		b.WriteString(n.FunName)
		b.WriteString(", ")
		dumpValues(b, n.Args)
		b.WriteString(", ")
		dumpExp(b, n.Rest)
		b.WriteString(" }")

	case *BopExp:
		b.WriteString("BopExp { ")
		b.WriteString(n.Name)
		b.WriteString(", ")
		b.WriteString(n.Op.String())
		b.WriteString(", ")
		dumpValue(b, n.Arg1)
		b.WriteString(", ")
		dumpValue(b, n.Arg2)
		b.WriteString(", ")
		dumpExp(b, n.Rest)
		b.WriteString(" }")

	case *IfExp:
		b.WriteString("IfExp { ")
		dumpValue(b, n.Cond)
		b.WriteString(", ")
		dumpExp(b, n.Then)
		b.WriteString(", ")
		dumpExp(b, n.Else)
		b.WriteString(" }")

	case *TupleExp:
		b.WriteString("TupleExp { ")
		b.WriteString(n.Name)
		b.WriteString(", ")
		dumpValues(b, n.Values)
		b.WriteString(", ")
		dumpExp(b, n.Rest)
		b.WriteString(" }")

	case *ProjExp:
		b.WriteString("ProjExp { ")
		b.WriteString(n.Name)
		b.WriteString(", ")
		b.WriteString(n.Tuple)
		b.WriteString(", ")
		b.WriteString(strconv.Itoa(n.Index))
		b.WriteString(", ")
		dumpExp(b, n.Rest)
		b.WriteString(" }")

	default:
		b.WriteString("<unknown-exp>")
	}
}

func dumpStrings(b *strings.Builder, ss []string) {
	b.WriteString("[")
	for i, s := range ss {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s)
	}
	b.WriteString("]")
}
