package rulemux

import (
	"fmt"
	"iter"
	"regexp"
	"strings"
)

// Rule represents one registered pattern-to-handler binding. The pattern is
// fixed once the rule is stored in a [Table]; filters, static params and
// requisites may be configured at any time before matching begins.
type Rule struct {
	handler    HandlerFunc
	filters    map[string]*regexp.Regexp
	pattern    string
	key        string
	segs       []segment
	params     []Param
	requisites []Requisite
}

func newRule(pattern string, handler HandlerFunc, maxVars int) (*Rule, error) {
	segs, err := parsePattern(pattern, maxVars)
	if err != nil {
		return nil, err
	}
	return &Rule{
		handler: handler,
		pattern: pattern,
		key:     normalizedKey(segs),
		segs:    segs,
	}, nil
}

// Pattern returns the registered pattern, prefix included.
func (r *Rule) Pattern() string {
	return r.pattern
}

// Key returns the normalized pattern key under which this rule is stored.
// Every variable segment is collapsed to {}, wildcard segments are kept
// literally, so /user/{id} and /user/{name} share the same key.
func (r *Rule) Key() string {
	return r.key
}

// Handler returns the opaque handler carried by this rule. It is never
// invoked by the matcher.
func (r *Rule) Handler() HandlerFunc {
	return r.handler
}

// AddParam attaches a static key/value pair to this rule. Static params are
// merged into every match result for the rule and take precedence over
// captured variables of the same name. A param registered twice keeps the
// latest value.
func (r *Rule) AddParam(key, value string) *Rule {
	for i := range r.params {
		if r.params[i].Key == key {
			r.params[i].Value = value
			return r
		}
	}
	r.params = append(r.params, Param{Key: key, Value: value})
	return r
}

// SetFilter constrains the variable name with a regular expression. At match
// time the captured segment must contain a match for expr (the expression is
// not implicitly anchored) or the rule is rejected. Setting a filter for a
// name absent from the pattern is allowed and has no effect on matching.
func (r *Rule) SetFilter(name, expr string) error {
	re, err := regexp.Compile(expr)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidFilter, err)
	}
	if r.filters == nil {
		r.filters = make(map[string]*regexp.Regexp)
	}
	r.filters[name] = re
	return nil
}

// AddRequisite appends a [Requisite] gate to this rule. Requisites run in
// the order they were added.
func (r *Rule) AddRequisite(req Requisite) *Rule {
	if req != nil {
		r.requisites = append(r.requisites, req)
	}
	return r
}

// ParamsLen returns the number of static params attached to this rule.
func (r *Rule) ParamsLen() int {
	return len(r.params)
}

// Params returns an iterator over the static params of this rule, in the
// order they were added.
func (r *Rule) Params() iter.Seq[Param] {
	return func(yield func(Param) bool) {
		for _, p := range r.params {
			if !yield(p) {
				return
			}
		}
	}
}

// Filters returns an iterator over the variable filters of this rule.
// Iteration order is unspecified.
func (r *Rule) Filters() iter.Seq2[string, *regexp.Regexp] {
	return func(yield func(string, *regexp.Regexp) bool) {
		for name, re := range r.filters {
			if !yield(name, re) {
				return
			}
		}
	}
}

// RequisitesLen returns the number of requisites attached to this rule.
func (r *Rule) RequisitesLen() int {
	return len(r.requisites)
}

// Requisites returns an iterator over the requisites of this rule, in
// evaluation order.
func (r *Rule) Requisites() iter.Seq[Requisite] {
	return func(yield func(Requisite) bool) {
		for _, req := range r.requisites {
			if !yield(req) {
				return
			}
		}
	}
}

func (r *Rule) String() string {
	sb := new(strings.Builder)
	rulef(sb, r)
	return sb.String()
}

// eligible evaluates the rule's requisites eagerly in order, stopping at the
// first gate reporting false.
func (r *Rule) eligible() bool {
	for _, req := range r.requisites {
		if !req.Check() {
			return false
		}
	}
	return true
}

// match walks the rule's segments pairwise against the split request path.
// When wildcardLive is false, a wildcard segment is inert and behaves as the
// literal [*] token; when true, it accepts the remainder of the path
// unconditionally. A missing segment on either side is treated as absent: it
// never equals a literal and never satisfies a filter, but an unfiltered
// variable binds it as the empty string. Unless a live wildcard fired, the
// segment counts must match exactly.
func (r *Rule) match(path []string, wildcardLive bool) (Params, bool) {
	var vars Params
	for i, seg := range r.segs {
		present := i < len(path)
		var part string
		if present {
			part = path[i]
		}

		switch seg.kind {
		case segWildcard:
			if wildcardLive {
				// Fallback accepted: anything after this point, including
				// nothing at all, belongs to the wildcard.
				return vars, true
			}
			if !present || part != wildcardSegment {
				return nil, false
			}
		case segLiteral:
			if !present || part != seg.value {
				return nil, false
			}
		case segVariable:
			if re, ok := r.filters[seg.value]; ok {
				if !present || !re.MatchString(part) {
					return nil, false
				}
			}
			vars = append(vars, Param{Key: seg.value, Value: part})
		}
	}

	if len(r.segs) != len(path) {
		return nil, false
	}
	return vars, true
}

// HasWildcard reports whether any segment of this rule is the wildcard token.
// Wildcard rules are strictly fallbacks at match time.
func (r *Rule) HasWildcard() bool {
	for _, seg := range r.segs {
		if seg.kind == segWildcard {
			return true
		}
	}
	return false
}

func rulef(sb *strings.Builder, r *Rule) {
	sb.WriteString("pattern:")
	sb.WriteString(r.pattern)
	sb.WriteString(" key:")
	sb.WriteString(r.key)

	if len(r.params) > 0 {
		sb.WriteString(" params:{")
		for i, p := range r.params {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(p.Key)
			sb.WriteByte('=')
			sb.WriteString(p.Value)
		}
		sb.WriteByte('}')
	}

	if len(r.filters) > 0 {
		sb.WriteString(" filters:{")
		first := true
		for name, re := range r.filters {
			if !first {
				sb.WriteByte(',')
			}
			first = false
			sb.WriteString(name)
			sb.WriteByte('=')
			sb.WriteString(re.String())
		}
		sb.WriteByte('}')
	}

	if len(r.requisites) > 0 {
		fmt.Fprintf(sb, " requisites:%d", len(r.requisites))
	}
}
