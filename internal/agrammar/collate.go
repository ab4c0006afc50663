package agrammar

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dekarrin/attrflow/internal/agraph"
)

// nameCollator breaks ties between equally-ready attributes by name during
// grouping. A real collator (rather than a byte-wise string compare) is used
// so tie-break order is locale-stable.
var nameCollator = collate.New(language.Und)

// sortByName orders handles by their attribute name, ascending.
func sortByName(g *agraph.Graph, handles []agraph.AttrHandle) {
	sort.SliceStable(handles, func(i, j int) bool {
		return nameCollator.CompareString(g.Name(handles[i]), g.Name(handles[j])) < 0
	})
}
