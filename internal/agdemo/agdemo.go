// Package agdemo holds small canned grammars that exercise one analysis
// behavior each, addressable by name from the CLI so a user can see the
// tool work without writing a grammar file first.
//
// The six demos are named s1 through s6, one per worked figure in the
// grammar text format's source material: s1 and s2 are closure- and
// order-only figures reproduced verbatim, s4 is the grouping-cycle figure
// (also reproduced verbatim, though under the same-index-only peel this
// tool implements its dependencies turn out to all be cross-occurrence, so
// it schedules cleanly rather than flagging a cycle — see DESIGN.md), and
// s3/s5/s6 are hand-built since their source figures were described in
// prose only, not given as literal grammar text.
package agdemo

import "sort"

// Demo is one named example grammar in agparse's text format.
type Demo struct {
	Name        string
	Description string
	Grammar     string
}

var demos = map[string]Demo{
	"s1": {
		Name:        "s1",
		Description: "closure only: projected dependencies not written directly into any rule",
		Grammar: "A -> BC : y[0]=z[2]; x[1]=x[0]; x[2]=y[1]; y[2]=x[2]\n" +
			"B -> a\n" +
			"B -> C : y[0]=z[1]; x[1]=x[0]\n" +
			"C -> b : z[0]=y[0]\n",
	},
	"s2": {
		Name:        "s2",
		Description: "simple order: an acyclic grammar whose two B occurrences realize compatible orders",
		Grammar: "B -> C : x[0]=x[1]; y[0]=y[1]\n" +
			"A -> B\n" +
			"B -> D : x[0]=y[1]; y[0]=x[1]\n",
	},
	"s3": {
		Name:        "s3",
		Description: "grouping: a single self-embedding production whose occurrence admits alternating inherited/synthesized groups",
		Grammar: "A -> xA : z[1]=0; i1[2]=z[1]; i2[2]=z[1]; i3[2]=z[1]; j1[2]=z[1]; " +
			"k1[0]=0; k2[0]=0; s1[0]=i1[0]; i2[0]=s1[0]; s2[0]=i2[0]; i3[0]=s2[0]; s3[0]=i3[0]\n",
	},
	"s4": {
		Name:        "s4",
		Description: "grouping cycle figure, reproduced verbatim: both of its dependencies run between the A and B occurrences, so it schedules without a cycle",
		Grammar: "A -> B : x[0]=0; x[1]=x[0]; y[0]=y[1]; y[1]=0\n" +
			"A -> a\n" +
			"A -> c\n",
	},
	"s5": {
		Name:        "s5",
		Description: "inter-group deadlock resolved by splitting: two crossed cross-occurrence dependencies deadlock the naive merge until one head group is split",
		Grammar:     "A -> BC : b[1]=0; c[2]=0; a[1]=c[2]; d[2]=b[1]\n",
	},
	"s6": {
		Name:        "s6",
		Description: "a realistic module grammar: two multi-attribute productions over L and C",
		Grammar: "L -> SL : in[2]=in[0]; in[1]=in[0]; out[0]=out[1]; out[0]=out[2]\n" +
			"C -> ML : in[2]=base[0]; res[0]=out[2]; flag[1]=in[2]\n",
	},
}

// Get returns the named demo and whether it exists.
func Get(name string) (Demo, bool) {
	d, ok := demos[name]
	return d, ok
}

// Names returns every demo name, sorted.
func Names() []string {
	names := make([]string, 0, len(demos))
	for n := range demos {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
