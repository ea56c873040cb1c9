// Copyright 2024 The rulemux authors. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/rulemux/rulemux/blob/master/LICENSE.txt.

package rulemux

import netcontext "context"

// paramsKey is the key that holds the Params in a context.Context.
var paramsKey = struct{}{}

type Param struct {
	Key   string
	Value string
}

type Params []Param

// Get the value bound to name, or the empty string.
func (p Params) Get(name string) string {
	for i := range p {
		if p[i].Key == name {
			return p[i].Value
		}
	}
	return ""
}

// Has checks whether the parameter exists by name.
func (p Params) Has(name string) bool {
	for i := range p {
		if p[i].Key == name {
			return true
		}
	}

	return false
}

// Clone make a copy of Params.
func (p Params) Clone() Params {
	cloned := make(Params, len(p))
	copy(cloned, p)
	return cloned
}

// ContextWithParams returns a copy of ctx carrying the given params, for
// callers passing captured variables through request-scoped contexts.
func ContextWithParams(ctx netcontext.Context, p Params) netcontext.Context {
	return netcontext.WithValue(ctx, paramsKey, p)
}

// ParamsFromContext allows extracting params from the given context.
func ParamsFromContext(ctx netcontext.Context) Params {
	p, _ := ctx.Value(paramsKey).(Params)

	return p
}
