// Package agfmt renders an analyzed agrammar.Grammar as text: a dependency
// dump, a per-production execution-order dump, and a per-nonterminal
// groups dump. Output is assembled with strings.Builder directly; only the
// --groups pretty-printer reaches for rosed, to wrap long group lists
// instead of emitting one unreadable line per nonterminal.
package agfmt

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/attrflow/internal/agrammar"
)

// DumpDependencies renders one line per Variable occurrence in every
// production: "<name>: <a> -> <b>\t<a> -> <c>\t...", one entry per used_for
// edge owned by that occurrence's attributes.
func DumpDependencies(gr *agrammar.Grammar) string {
	var sb strings.Builder
	for _, lhs := range gr.LHSSymbols() {
		for _, p := range gr.Productions(lhs) {
			for _, v := range p.Variables {
				var edges []string
				for _, name := range v.AttributeNames() {
					a, _ := v.Attribute(name)
					for _, b := range gr.Graph.UsedFor(a) {
						edges = append(edges, fmt.Sprintf("%s -> %s", gr.Graph.Name(a), gr.Graph.Name(b)))
					}
				}
				sb.WriteString(fmt.Sprintf("%s: %s\n", v.Name, strings.Join(edges, "\t")))
			}
		}
	}
	return sb.String()
}

// DumpExecutionOrders renders one line per production:
// "Production <LHS><idx>: <LHS> -> <RHS...>\t\t[<G1>, <G2>, ...] cycle-free: <bool>".
func DumpExecutionOrders(gr *agrammar.Grammar) string {
	var sb strings.Builder
	for _, lhs := range gr.LHSSymbols() {
		for _, p := range gr.Productions(lhs) {
			groups := make([]string, len(p.Order))
			for i, g := range p.Order {
				groups[i] = g.String(gr)
			}
			sb.WriteString(fmt.Sprintf(
				"Production %s%d: %s -> %s\t\t[%s] cycle-free: %t\n",
				p.LHS, p.Index, p.LHS, strings.Join(p.RHS, " "),
				strings.Join(groups, ", "), p.Acyclic,
			))
		}
	}
	return sb.String()
}

// DumpGroups renders one line per nonterminal, using its representative
// occurrence's group sequence: "<name>: [<G1>, <G2>, ...]".
func DumpGroups(gr *agrammar.Grammar) string {
	var sb strings.Builder
	for _, lhs := range gr.LHSSymbols() {
		occs := gr.Occurrences(lhs)
		if len(occs) == 0 {
			continue
		}
		groups := make([]string, len(occs[0].Groups))
		for i, g := range occs[0].Groups {
			groups[i] = g.String(gr)
		}
		sb.WriteString(fmt.Sprintf("%s: [%s]\n", lhs, strings.Join(groups, ", ")))
	}
	return sb.String()
}

// PrettyGroups is DumpGroups wrapped to width columns per line, for
// terminal-friendly display of grammars with large attribute sets.
func PrettyGroups(gr *agrammar.Grammar, width int) string {
	return rosed.Edit(DumpGroups(gr)).Wrap(width).String()
}
