// Copyright 2024 The rulemux authors. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/rulemux/rulemux/blob/master/LICENSE.txt.

package rulemux

import (
	"errors"
	"strings"
)

var (
	ErrRuleExist     = errors.New("rule already registered")
	ErrInvalidRule   = errors.New("invalid rule")
	ErrInvalidFilter = errors.New("invalid filter")
	ErrInvalidPrefix = errors.New("invalid prefix")
	ErrInvalidConfig = errors.New("invalid config")
	ErrTooManyVars   = errors.New("too many variables")
)

// DuplicateRuleError represents a conflict that occurred during rule
// registration. It contains the rule being registered, and the existing rule
// whose normalized pattern key caused the conflict.
type DuplicateRuleError struct {
	// New is the rule that was being registered when the conflict was detected.
	New *Rule
	// Existing is the previously registered rule that conflicts with New.
	Existing *Rule
}

func (e *DuplicateRuleError) Error() string {
	var sb strings.Builder
	sb.WriteString("rule already registered: new rule ")
	sb.WriteString(e.New.pattern)
	sb.WriteString(" conflicts with ")
	sb.WriteString(e.Existing.pattern)
	if e.New.pattern != e.Existing.pattern {
		sb.WriteString(" (key ")
		sb.WriteString(e.Existing.key)
		sb.WriteByte(')')
	}
	return sb.String()
}

// Unwrap returns the sentinel value [ErrRuleExist].
func (e *DuplicateRuleError) Unwrap() error {
	return ErrRuleExist
}
