package agrammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/attrflow/internal/agraph"
)

// Group is a maximal run of one Variable's attributes that share an
// effective kind and are, at the point the group is formed, mutually
// independent of each other. End labels the group's position in the
// owner's group sequence as a running count of attributes emitted through
// (and including) this group; it is recorded but never used to match groups
// across occurrences.
//
// ID is this repository's answer to the "stable group identity" open
// question in DESIGN.md: rather than re-deriving a group's identity from
// End plus member count (which can collide when two unrelated groups
// happen to share both), every group and every occurrence's mirrored copy
// of it carries the same ID from the moment it is first created in
// (*Variable).CreateGroups. When a group is split, the residual keeps its
// ID and the split-off group gets a fresh ID, shared by its mirrors at
// every other occurrence.
type Group struct {
	Owner   *Variable
	ID      int
	End     int
	Members []agraph.AttrHandle
}

// Kind returns the effective kind shared by this group's members. Group
// purity guarantees every member folds to the same value; an empty group
// (possible only transiently, before the needed-sweep drops it) reports
// Inherited as an arbitrary default.
func (g *Group) Kind(gr *Grammar) agraph.Kind {
	if len(g.Members) == 0 {
		return agraph.Inherited
	}
	return gr.Graph.EffectiveKind(g.Members[0])
}

// String renders the group the way the execution-order dump does:
// {symbolIndex.attrName, ...}.
func (g *Group) String(gr *Grammar) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, a := range g.Members {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%s%d.%s", g.Owner.Name, gr.Graph.Index(a), gr.Graph.Name(a)))
	}
	sb.WriteByte('}')
	return sb.String()
}
