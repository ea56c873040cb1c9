// Copyright 2024 The rulemux authors. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/rulemux/rulemux/blob/master/LICENSE.txt.

package rulemux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithPrefix(t *testing.T) {
	t.Parallel()

	tbl, err := New(WithPrefix("/api/v1"))
	require.NoError(t, err)
	assert.Equal(t, "/api/v1", tbl.Prefix())

	_, err = New(WithPrefix("api"))
	assert.ErrorIs(t, err, ErrInvalidPrefix)

	_, err = New(WithPrefix("/api/"))
	assert.ErrorIs(t, err, ErrInvalidPrefix)
}

func TestWithLogHandler(t *testing.T) {
	t.Parallel()

	_, err := New(WithLogHandler(nil))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestWithMaxRuleVars(t *testing.T) {
	t.Parallel()

	_, err := New(WithMaxRuleVars(0))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(WithMaxRuleVars(-1))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	tbl, err := New(WithMaxRuleVars(1))
	require.NoError(t, err)
	_, err = tbl.Register("/a/{b}", emptyHandler)
	assert.NoError(t, err)
}

func TestWithFilter_Invalid(t *testing.T) {
	t.Parallel()

	tbl, err := New()
	require.NoError(t, err)

	_, err = tbl.Register("/user/{id}", emptyHandler, WithFilter("id", "["))
	assert.ErrorIs(t, err, ErrInvalidFilter)
	// A failed rule option leaves the table untouched.
	assert.Equal(t, 0, tbl.Len())
}

func TestWithRequisite_Nil(t *testing.T) {
	t.Parallel()

	tbl, err := New()
	require.NoError(t, err)

	_, err = tbl.Register("/page", emptyHandler, WithRequisite(nil))
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, 0, tbl.Len())
}

func TestWithParam(t *testing.T) {
	t.Parallel()

	tbl, err := New()
	require.NoError(t, err)

	rule, err := tbl.Register("/page", emptyHandler, WithParam("layout", "wide"))
	require.NoError(t, err)
	assert.Equal(t, 1, rule.ParamsLen())
}
