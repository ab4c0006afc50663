// Package agparse reads the line-oriented attribute grammar text format and
// builds an agrammar.Grammar from it:
//
//	<LHS> -> <sym>{<sym>} [ : <rule> {; <rule>} ]
//	<rule>     ::= <attr-ref> = <attr-ref> {<attr-ref>}
//	<attr-ref> ::= <name> '[' <index> ']'
//
// LHS and every RHS symbol are single characters; a line beginning with '#'
// (after leading whitespace) is a comment and is skipped; a blank line ends
// the grammar (used when reading an interactive demo grammar off stdin,
// where a trailing newline signals "no more productions").
package agparse

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/dekarrin/attrflow/internal/agerrors"
	"github.com/dekarrin/attrflow/internal/agraph"
	"github.com/dekarrin/attrflow/internal/agrammar"
)

var attrRefPattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\[(\d+)\]`)

// lhsRefPattern additionally tolerates a "Symbol." qualifier prefix on a
// rule's left-hand attribute reference (e.g. "S.v[0]"), which is purely
// documentation for the reader — the symbol name is never checked against
// the production's actual symbol at that index.
var lhsRefPattern = regexp.MustCompile(`^(?:[A-Za-z_][A-Za-z0-9_]*\.)?([A-Za-z_][A-Za-z0-9_]*)\[(\d+)\]$`)

// ParseGrammar reads productions from r until a blank line or EOF and
// returns the resulting Grammar.
func ParseGrammar(r io.Reader) (*agrammar.Grammar, error) {
	gr := agrammar.New()
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		raw := sc.Text()
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			break
		}
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		if err := parseLine(gr, trimmed, lineNo); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, agerrors.Wrap(err, "reading grammar text")
	}
	return gr, nil
}

// ParseGrammarString parses src as a complete grammar (EOF terminates it;
// a blank line inside src still ends parsing early, matching ParseGrammar).
func ParseGrammarString(src string) (*agrammar.Grammar, error) {
	return ParseGrammar(strings.NewReader(src))
}

func parseLine(gr *agrammar.Grammar, line string, lineNo int) error {
	arrowIdx := strings.Index(line, "->")
	if arrowIdx < 0 {
		return agerrors.NewParseError(lineNo, line, "missing '->'")
	}

	lhs := strings.TrimSpace(line[:arrowIdx])
	if len(lhs) != 1 {
		return agerrors.NewParseError(lineNo, line, fmt.Sprintf("left-hand symbol must be a single character, got %q", lhs))
	}

	rest := line[arrowIdx+2:]
	symsPart, rulesPart, hasRules := strings.Cut(rest, ":")

	var symbols []string
	for _, r := range symsPart {
		if unicode.IsSpace(r) {
			continue
		}
		symbols = append(symbols, string(r))
	}
	if len(symbols) == 0 {
		return agerrors.NewParseError(lineNo, line, "production must have at least one right-hand symbol")
	}

	prod := gr.AddProduction(lhs, symbols)

	if !hasRules {
		return nil
	}
	for _, ruleText := range strings.Split(rulesPart, ";") {
		ruleText = strings.TrimSpace(ruleText)
		if ruleText == "" {
			continue
		}
		if err := parseRule(gr, prod, ruleText, lineNo, line); err != nil {
			return err
		}
	}
	return nil
}

func parseRule(gr *agrammar.Grammar, prod *agrammar.Production, rule string, lineNo int, rawLine string) error {
	lhsText, rhsText, ok := strings.Cut(rule, "=")
	if !ok {
		return agerrors.NewParseError(lineNo, rawLine, fmt.Sprintf("rule %q is missing '='", rule))
	}

	lhsName, lhsIndex, err := parseAttrRef(strings.TrimSpace(lhsText))
	if err != nil {
		return agerrors.NewParseError(lineNo, rawLine, err.Error())
	}
	if lhsIndex >= len(prod.Variables) {
		return agerrors.NewParseError(lineNo, rawLine, fmt.Sprintf("attribute index %d out of range for a production with %d symbols", lhsIndex, len(prod.Variables)-1))
	}

	matches := attrRefPattern.FindAllStringSubmatch(rhsText, -1)
	type ref struct {
		name  string
		index int
	}
	refs := make([]ref, 0, len(matches))
	for _, m := range matches {
		idx, _ := strconv.Atoi(m[2])
		if idx >= len(prod.Variables) {
			return agerrors.NewParseError(lineNo, rawLine, fmt.Sprintf("attribute index %d out of range for a production with %d symbols", idx, len(prod.Variables)-1))
		}
		refs = append(refs, ref{m[1], idx})
	}

	lhsKind := agraph.InitByValue
	if len(refs) > 0 {
		if lhsIndex == 0 {
			lhsKind = agraph.Synthesized
		} else {
			lhsKind = agraph.Inherited
		}
	}

	lhsVar := prod.Variables[lhsIndex]
	lhsHandle := gr.EnsureAttribute(lhsVar, lhsName, lhsKind)
	gr.Graph.SetNeeded(lhsHandle, true)

	for _, rf := range refs {
		rhsVar := prod.Variables[rf.index]
		kind := agraph.Inherited
		if rf.index == 0 {
			kind = agraph.Synthesized
		}
		rhsHandle := gr.EnsureAttribute(rhsVar, rf.name, kind)
		gr.Graph.SetNeeded(rhsHandle, true)
		gr.Graph.AddDependencyOn(lhsHandle, rhsHandle)
	}
	return nil
}

func parseAttrRef(s string) (name string, index int, err error) {
	m := lhsRefPattern.FindStringSubmatch(s)
	if m == nil {
		return "", 0, fmt.Errorf("%q is not a valid attribute reference (expected [symbol.]name[index])", s)
	}
	idx, convErr := strconv.Atoi(m[2])
	if convErr != nil {
		return "", 0, fmt.Errorf("%q has an invalid index", s)
	}
	return m[1], idx, nil
}
