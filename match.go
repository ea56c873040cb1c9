// Copyright 2024 The rulemux authors. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/rulemux/rulemux/blob/master/LICENSE.txt.

package rulemux

import "strings"

// MatchResult carries everything needed to dispatch a matched request. It is
// built fresh per successful match and owned by the caller. The matcher never
// invokes Handler: calling it with [MatchResult.Args] is the caller's
// responsibility.
type MatchResult struct {
	// Handler is the matched rule's handler.
	Handler HandlerFunc
	// Rule is the rule that won the match.
	Rule *Rule
	// Vars holds the variables captured from the request path, in pattern
	// order.
	Vars Params
}

// Args returns the captured variables merged with the matched rule's static
// params. On key collision the static param wins.
func (m *MatchResult) Args() Params {
	args := m.Vars.Clone()
	for _, p := range m.Rule.params {
		replaced := false
		for i := range args {
			if args[i].Key == p.Key {
				args[i].Value = p.Value
				replaced = true
				break
			}
		}
		if !replaced {
			args = append(args, p)
		}
	}
	return args
}

// Match selects the single best-matching rule for the given request path.
// The second return value reports whether any rule matched: an unmatched path
// is a normal outcome, not an error, and fallback behavior (such as a
// reserved not-found rule) is left to the caller.
//
// Rules are scanned in registration order and the first rule satisfying all
// structural and requisite constraints wins, except that wildcard rules are
// strictly fallbacks. The scan runs in two passes: the first treats every
// wildcard token as inert, so only exact rules can win; the second lets a
// wildcard segment accept the remainder of the path. A catch-all rule
// therefore never shadows a more specific one, regardless of registration
// order. Requisites are evaluated eagerly per rule in both passes, preserving
// their observable side-effect ordering.
func (t *Table) Match(path string) (*MatchResult, bool) {
	segs := strings.Split(path, "/")
	if res, ok := t.scan(segs, false); ok {
		return res, true
	}
	return t.scan(segs, true)
}

// MatchSpecific behaves like [Table.Match] but never lets a wildcard accept:
// only the specific-rules pass runs, with wildcard tokens inert. A rule whose
// pattern contains [*] can then only match a path carrying that literal
// segment.
func (t *Table) MatchSpecific(path string) (*MatchResult, bool) {
	return t.scan(strings.Split(path, "/"), false)
}

func (t *Table) scan(path []string, wildcardLive bool) (*MatchResult, bool) {
	for _, r := range t.rules {
		if !r.eligible() {
			continue
		}
		vars, ok := r.match(path, wildcardLive)
		if !ok {
			continue
		}
		return &MatchResult{Handler: r.handler, Rule: r, Vars: vars}, true
	}
	return nil, false
}
