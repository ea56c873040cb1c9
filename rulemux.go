// Copyright 2024 The rulemux authors. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/rulemux/rulemux/blob/master/LICENSE.txt.

// Package rulemux implements an ordered-rule request router. Rules are
// registered once at startup into a [Table] and matched against incoming
// request paths with [Table.Match]. A rule pattern is a sequence of
// '/'-delimited segments where each segment is either literal text, a named
// variable such as {id}, or the full-segment wildcard token [*]. Captured
// variables can be constrained with per-variable regular expression filters,
// and rules can be gated by side-effecting boolean requisites evaluated in
// order at match time.
//
// Matching is first-match-wins over registration order, with one exception:
// a rule containing a live wildcard segment is strictly a fallback and never
// preempts a more specific rule, regardless of where either was registered.
//
// The Table follows a build-then-freeze lifecycle: it is populated during
// startup configuration, then treated as immutable while requests are being
// matched. Concurrent reads are safe; mutating the table while a match is in
// progress is not, and must be excluded by the caller.
package rulemux

import (
	"fmt"
	"strings"
)

const (
	slashDelim      byte = '/'
	varOpenDelim    byte = '{'
	varCloseDelim   byte = '}'
	varPlaceholder       = "{}"
	wildcardSegment      = "[*]"
)

// HandlerFunc is the conventional shape for a rule's payload. The matcher
// never invokes it: a matched rule's handler is carried through to the
// [MatchResult] and dispatching it with the merged arguments is entirely the
// caller's responsibility.
type HandlerFunc func(args Params)

// Requisite is a boolean gate evaluated per rule per match attempt.
// Requisites are opaque to the matcher and may perform blocking work or
// mutate external state; only the returned boolean is observed. They are
// evaluated eagerly in the order they were attached and short-circuit on the
// first false, so order-sensitive side effects (logging, session checks) are
// preserved.
type Requisite interface {
	// Check reports whether the rule is currently eligible to match.
	Check() bool
}

// RequisiteFunc is an adapter allowing ordinary functions to be used as
// a [Requisite].
type RequisiteFunc func() bool

// Check calls f.
func (f RequisiteFunc) Check() bool {
	return f()
}

type segKind uint8

const (
	segLiteral segKind = iota
	segVariable
	segWildcard
)

// segment is one '/'-delimited token of a parsed pattern. For variable
// segments, value holds the name without the surrounding braces.
type segment struct {
	value string
	kind  segKind
}

// parsePattern splits a raw pattern into validated segments.
func parsePattern(pattern string, maxVars int) ([]segment, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidRule)
	}

	for i := 0; i < len(pattern); i++ {
		if c := pattern[i]; c < ' ' || c == 0x7f {
			return nil, fmt.Errorf("%w: illegal control character in pattern", ErrInvalidRule)
		}
	}

	parts := strings.Split(pattern, "/")
	segs := make([]segment, 0, len(parts))
	varCnt := 0
	var seen []string

	for _, part := range parts {
		if part == wildcardSegment {
			segs = append(segs, segment{value: part, kind: segWildcard})
			continue
		}

		if strings.HasPrefix(part, string(varOpenDelim)) {
			if !strings.HasSuffix(part, string(varCloseDelim)) {
				return nil, fmt.Errorf("%w: unclosed '{' in segment %q", ErrInvalidRule, part)
			}
			name := part[1 : len(part)-1]
			if name == "" {
				return nil, fmt.Errorf("%w: missing variable name between '{}'", ErrInvalidRule)
			}
			if idx := strings.IndexAny(name, "{}"); idx != -1 {
				return nil, fmt.Errorf("%w: illegal character '%s' in '{%s}'", ErrInvalidRule, string(name[idx]), name)
			}
			for _, s := range seen {
				if s == name {
					return nil, fmt.Errorf("%w: duplicate variable name '%s'", ErrInvalidRule, name)
				}
			}
			varCnt++
			if maxVars > 0 && varCnt > maxVars {
				return nil, fmt.Errorf("%w: %w", ErrInvalidRule, ErrTooManyVars)
			}
			seen = append(seen, name)
			segs = append(segs, segment{value: name, kind: segVariable})
			continue
		}

		if idx := strings.IndexAny(part, "{}"); idx != -1 {
			return nil, fmt.Errorf("%w: illegal character '%s' in segment %q", ErrInvalidRule, string(part[idx]), part)
		}
		segs = append(segs, segment{value: part, kind: segLiteral})
	}

	return segs, nil
}

// normalizedKey collapses every variable segment to the canonical {} marker
// so that two patterns differing only by variable names produce the same key.
// Wildcard segments are preserved literally.
func normalizedKey(segs []segment) string {
	sb := strings.Builder{}
	for i, seg := range segs {
		if i > 0 {
			sb.WriteByte(slashDelim)
		}
		switch seg.kind {
		case segVariable:
			sb.WriteString(varPlaceholder)
		case segWildcard:
			sb.WriteString(wildcardSegment)
		default:
			sb.WriteString(seg.value)
		}
	}
	return sb.String()
}
