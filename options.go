// Copyright 2024 The rulemux authors. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/rulemux/rulemux/blob/master/LICENSE.txt.

package rulemux

import (
	"fmt"
	"log/slog"
)

type TableOption interface {
	applyTable(sealedOption) error
}

type RuleOption interface {
	applyRule(sealedOption) error
}

type sealedOption struct {
	table *Table
	rule  *Rule
}

type optionFunc func(sealedOption) error

func (o optionFunc) applyTable(s sealedOption) error {
	return o(s)
}

func (o optionFunc) applyRule(s sealedOption) error {
	return o(s)
}

// WithPrefix sets the table's registration prefix. The prefix is prepended
// to every subsequently registered rule whose raw pattern starts with '/'.
// A non-empty prefix must start with '/' and must not end with '/'; the
// trailing slash is rejected at construction so a misconfigured prefix is
// caught before any rule is registered.
func WithPrefix(prefix string) TableOption {
	return optionFunc(func(s sealedOption) error {
		return s.table.SetPrefix(prefix)
	})
}

// WithLogHandler sets the [slog.Handler] used for registration events and
// non-fatal advisories. By default advisories go to a pretty handler at warn
// level.
func WithLogHandler(handler slog.Handler) TableOption {
	return optionFunc(func(s sealedOption) error {
		if handler == nil {
			return fmt.Errorf("%w: log handler cannot be nil", ErrInvalidConfig)
		}
		s.table.log = slog.New(handler)
		return nil
	})
}

// WithMaxRuleVars sets the maximum number of variables allowed in a rule
// pattern. The default max is [math.MaxUint8]. Patterns exceeding this limit
// fail with an error that is [ErrInvalidRule] and [ErrTooManyVars].
func WithMaxRuleVars(max int) TableOption {
	return optionFunc(func(s sealedOption) error {
		if max <= 0 {
			return fmt.Errorf("%w: max rule vars must be positive", ErrInvalidConfig)
		}
		s.table.maxVars = max
		return nil
	})
}

// WithParam attaches a static key/value pair at registration time.
// Equivalent to [Rule.AddParam] on the returned rule.
func WithParam(key, value string) RuleOption {
	return optionFunc(func(s sealedOption) error {
		s.rule.AddParam(key, value)
		return nil
	})
}

// WithFilter constrains a pattern variable at registration time. Equivalent
// to [Rule.SetFilter] on the returned rule: an invalid expression fails with
// an error that is [ErrInvalidFilter].
func WithFilter(name, expr string) RuleOption {
	return optionFunc(func(s sealedOption) error {
		return s.rule.SetFilter(name, expr)
	})
}

// WithRequisite attaches a [Requisite] gate at registration time.
func WithRequisite(req Requisite) RuleOption {
	return optionFunc(func(s sealedOption) error {
		if req == nil {
			return fmt.Errorf("%w: requisite cannot be nil", ErrInvalidConfig)
		}
		s.rule.AddRequisite(req)
		return nil
	})
}
