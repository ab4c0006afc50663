// Package aglint runs cheap structural checks over a parsed grammar that
// have nothing to do with attribute evaluation order — checks a user would
// want flagged before ever running the closure and scheduling passes.
package aglint

import (
	"fmt"
	"unicode"

	"github.com/dekarrin/attrflow/internal/agrammar"
	"github.com/dekarrin/attrflow/internal/util"
)

// isNonterminal follows the convention used throughout this tool's demo
// grammars: an upper-case leading rune names a nonterminal, anything else
// names a terminal.
func isNonterminal(sym string) bool {
	for _, r := range sym {
		return unicode.IsUpper(r)
	}
	return false
}

// UnreachableNonterminals returns, in grammar's LHS order, every
// nonterminal that has productions but is never referenced on the
// right-hand side of any production and is not the start symbol (the
// first LHS the grammar defines).
func UnreachableNonterminals(gr *agrammar.Grammar) []string {
	defined := util.NewStringSet()
	referenced := util.NewStringSet()

	lhsSymbols := gr.LHSSymbols()
	for _, lhs := range lhsSymbols {
		defined.Add(lhs)
		for _, p := range gr.Productions(lhs) {
			for _, sym := range p.RHS {
				if isNonterminal(sym) {
					referenced.Add(sym)
				}
			}
		}
	}

	if len(lhsSymbols) > 0 {
		referenced.Add(lhsSymbols[0])
	}

	unreachable := defined.Difference(referenced)
	var out []string
	for _, lhs := range lhsSymbols {
		if unreachable.Has(lhs) {
			out = append(out, lhs)
		}
	}
	return out
}

// DescribeUnreachable renders UnreachableNonterminals as a single sentence,
// or "" if there is nothing to report.
func DescribeUnreachable(gr *agrammar.Grammar) string {
	names := UnreachableNonterminals(gr)
	if len(names) == 0 {
		return ""
	}
	return fmt.Sprintf("unreachable from the start symbol: %s", util.MakeTextList(names))
}
