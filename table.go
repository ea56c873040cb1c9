// Copyright 2024 The rulemux authors. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/rulemux/rulemux/blob/master/LICENSE.txt.

package rulemux

import (
	"fmt"
	"iter"
	"log/slog"
	"math"
	"strings"

	"github.com/rulemux/rulemux/internal/slogpretty"
)

// Table is an ordered mapping from normalized pattern keys to rules. It owns
// prefix application and duplicate detection at registration time and is the
// entry point for matching. A Table is not safe for concurrent mutation:
// build it during startup, then share it read-only between request goroutines.
type Table struct {
	index   map[string]int
	log     *slog.Logger
	prefix  string
	rules   []*Rule
	maxVars int
}

// New creates a new [Table] configured with the given options.
func New(opts ...TableOption) (*Table, error) {
	t := &Table{
		index:   make(map[string]int),
		log:     slog.New(slogpretty.DefaultHandler),
		maxVars: math.MaxUint8,
	}
	for _, opt := range opts {
		if err := opt.applyTable(sealedOption{table: t}); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Register validates and stores a new rule for pattern. The table's prefix,
// if any, is prepended when the raw pattern starts with '/'. The returned
// rule may be further configured (params, filters, requisites) until matching
// begins. Registering a pattern whose normalized key collides with an
// existing rule fails with a [DuplicateRuleError] that is [ErrRuleExist].
func (t *Table) Register(pattern string, handler HandlerFunc, opts ...RuleOption) (*Rule, error) {
	rule, err := t.newRule(pattern, handler, opts)
	if err != nil {
		return nil, err
	}

	if idx, ok := t.index[rule.key]; ok {
		return nil, &DuplicateRuleError{New: rule, Existing: t.rules[idx]}
	}

	t.index[rule.key] = len(t.rules)
	t.rules = append(t.rules, rule)
	t.log.Debug("rule registered", "pattern", rule.pattern, "key", rule.key)
	return rule, nil
}

// Override registers a rule like [Table.Register], but a colliding normalized
// key is not an error: the existing rule is removed first, then the new rule
// is registered, which moves it to the end of the registration order. The
// second return value reports whether an existing rule was actually replaced.
// When nothing existed to override, the registration still succeeds and a
// non-fatal advisory is logged, since overriding a rule that was never
// registered is usually a misconfiguration.
func (t *Table) Override(pattern string, handler HandlerFunc, opts ...RuleOption) (*Rule, bool, error) {
	rule, err := t.newRule(pattern, handler, opts)
	if err != nil {
		return nil, false, err
	}

	replaced := false
	if idx, ok := t.index[rule.key]; ok {
		old := t.rules[idx]
		t.remove(idx)
		replaced = true
		t.log.Debug("rule overridden", "pattern", rule.pattern, "old", old.pattern)
	}

	t.index[rule.key] = len(t.rules)
	t.rules = append(t.rules, rule)
	if !replaced {
		t.log.Warn("override without existing rule", "pattern", rule.pattern, "key", rule.key)
	}
	return rule, replaced, nil
}

// Delete removes the rule whose normalized key collides with pattern and
// reports whether a rule was removed. The pattern goes through the same
// prefix application and normalization as registration.
func (t *Table) Delete(pattern string) bool {
	segs, err := parsePattern(t.applyPrefix(pattern), t.maxVars)
	if err != nil {
		return false
	}
	idx, ok := t.index[normalizedKey(segs)]
	if !ok {
		return false
	}
	t.remove(idx)
	return true
}

func (t *Table) remove(idx int) {
	delete(t.index, t.rules[idx].key)
	t.rules = append(t.rules[:idx], t.rules[idx+1:]...)
	for key, i := range t.index {
		if i > idx {
			t.index[key] = i - 1
		}
	}
}

// SetPrefix sets the prefix prepended to every subsequently registered rule
// whose raw pattern starts with '/'. Already registered rules are not
// rewritten. A non-empty prefix must start with '/' and must not end with
// '/', otherwise SetPrefix fails with an error that is [ErrInvalidPrefix].
func (t *Table) SetPrefix(prefix string) error {
	if err := checkPrefix(prefix); err != nil {
		return err
	}
	t.prefix = prefix
	return nil
}

// Prefix returns the current registration prefix.
func (t *Table) Prefix() string {
	return t.prefix
}

// Has reports whether a rule colliding with pattern is registered.
func (t *Table) Has(pattern string) bool {
	return t.Lookup(pattern) != nil
}

// Lookup returns the registered rule whose normalized key collides with
// pattern, or nil. Like registration, the table's prefix applies first.
func (t *Table) Lookup(pattern string) *Rule {
	segs, err := parsePattern(t.applyPrefix(pattern), t.maxVars)
	if err != nil {
		return nil
	}
	if idx, ok := t.index[normalizedKey(segs)]; ok {
		return t.rules[idx]
	}
	return nil
}

// Len returns the number of registered rules.
func (t *Table) Len() int {
	return len(t.rules)
}

// Iter returns an iterator over normalized keys and rules in registration
// order.
func (t *Table) Iter() iter.Seq2[string, *Rule] {
	return func(yield func(string, *Rule) bool) {
		for _, r := range t.rules {
			if !yield(r.key, r) {
				return
			}
		}
	}
}

// Rules returns an iterator over all rules in registration order.
func (t *Table) Rules() iter.Seq[*Rule] {
	return func(yield func(*Rule) bool) {
		for _, r := range t.rules {
			if !yield(r) {
				return
			}
		}
	}
}

func (t *Table) String() string {
	sb := new(strings.Builder)
	for i, r := range t.rules {
		if i > 0 {
			sb.WriteByte('\n')
		}
		rulef(sb, r)
	}
	return sb.String()
}

func (t *Table) newRule(pattern string, handler HandlerFunc, opts []RuleOption) (*Rule, error) {
	rule, err := newRule(t.applyPrefix(pattern), handler, t.maxVars)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt.applyRule(sealedOption{table: t, rule: rule}); err != nil {
			return nil, err
		}
	}
	return rule, nil
}

// applyPrefix prepends the table's prefix to patterns anchored at the path
// root. Patterns not starting with '/' are stored as-is.
func (t *Table) applyPrefix(pattern string) string {
	if t.prefix != "" && strings.HasPrefix(pattern, "/") {
		return t.prefix + pattern
	}
	return pattern
}

func checkPrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("%w: prefix must start with '/'", ErrInvalidPrefix)
	}
	if strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("%w: illegal trailing '/' in prefix", ErrInvalidPrefix)
	}
	return nil
}
