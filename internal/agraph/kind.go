// Package agraph holds the attribute dependence graph: an arena of attribute
// nodes addressed by stable handles, plus the primitive edge operations
// (add/remove dependency, path search) that the grouping and scheduling
// passes in agrammar build on top of.
package agraph

import "fmt"

// Kind is the tag distinguishing how an attribute's value is produced.
type Kind int

const (
	// Inherited attributes are defined from attributes visible at the
	// production's application site; they live on a RHS symbol (index > 0).
	Inherited Kind = iota

	// Synthesized attributes are defined from attributes of the RHS; they
	// live on the LHS symbol (index 0).
	Synthesized

	// InitByValue attributes are defined by a constant: the rule that set
	// them referenced no attributes on its right-hand side.
	InitByValue
)

func (k Kind) String() string {
	switch k {
	case Inherited:
		return "inherited"
	case Synthesized:
		return "synthesized"
	case InitByValue:
		return "init-by-value"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// EffectiveKind folds InitByValue into Synthesized or Inherited depending on
// where the attribute sits: at index 0 it behaves as a synthesized attribute
// (it is produced once and read by the parent), anywhere else it behaves as
// an inherited one. Grouping and scheduling only ever need to reason about
// this two-valued view, so this predicate exists to keep the index/kind
// interaction from being re-derived at every call site.
func EffectiveKind(kind Kind, index int) Kind {
	if kind != InitByValue {
		return kind
	}
	if index == 0 {
		return Synthesized
	}
	return Inherited
}
