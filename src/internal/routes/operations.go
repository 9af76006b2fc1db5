package routes

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/lukassup/route-ctl/src/internal/errors"
	"github.com/lukassup/route-ctl/src/internal/log"
)

// matchTimeout bounds a single filter evaluation. Backtracking expressions
// can otherwise run for a very long time on hostile input.
const matchTimeout = time.Second

// Filter selects records by the value of a single field.
type Filter struct {
	Key        string
	Value      string
	IgnoreCase bool
	// ExactMatch requires equality (or a match anchored at the start of the
	// field when IgnoreCase is set). Otherwise the value may match anywhere.
	ExactMatch bool
}

// Matcher is a compiled Filter.
type Matcher struct {
	filter Filter
	re     *regexp2.Regexp
}

// NewMatcher compiles f. Unless f asks for a case-sensitive exact match, the
// filter value is a backtracking regular expression, so lookaround and
// backreferences are available.
func NewMatcher(f Filter) (*Matcher, error) {
	if f.Key == "" {
		f.Key = FieldName
	}
	m := &Matcher{filter: f}
	if f.ExactMatch && !f.IgnoreCase {
		return m, nil
	}

	expr := f.Value
	if f.ExactMatch {
		expr = `^(?:` + expr + `)`
	}
	opts := regexp2.None
	if f.IgnoreCase {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return nil, errors.NewInvalidOperationError(
			fmt.Sprintf("invalid filter expression %q", f.Value), err)
	}
	re.MatchTimeout = matchTimeout
	m.re = re
	return m, nil
}

// Filter returns the filter m was compiled from.
func (m *Matcher) Filter() Filter {
	return m.filter
}

// Match reports whether rec satisfies the filter. Missing fields compare as
// the empty string.
func (m *Matcher) Match(rec *Record) bool {
	value, _ := rec.Get(m.filter.Key)
	if m.re == nil {
		return value == m.filter.Value
	}
	ok, err := m.re.MatchString(value)
	if err != nil {
		log.Warnf("Filter %q on %s gave up on route %q: %v", m.filter.Value, m.filter.Key, rec.Name, err)
		return false
	}
	return ok
}

// Find returns the records matching m, in their original order.
func Find(records []*Record, m *Matcher) []*Record {
	return filterRecords(records, m.Match)
}

// Delete returns the records NOT matching m, in their original order.
func Delete(records []*Record, m *Matcher) []*Record {
	return filterRecords(records, func(rec *Record) bool {
		return !m.Match(rec)
	})
}

func filterRecords(records []*Record, keep func(*Record) bool) []*Record {
	out := make([]*Record, 0, len(records))
	for _, rec := range records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// IdentityPolicy decides when two records describe the same route.
type IdentityPolicy string

const (
	// IdentityNameOrNetwork matches on name, or on the network/netmask pair.
	IdentityNameOrNetwork IdentityPolicy = "name_or_network"
	// IdentityName matches on name only.
	IdentityName IdentityPolicy = "name"
	// IdentityNetwork matches on the network/netmask pair only.
	IdentityNetwork IdentityPolicy = "network"
)

// IdentityPolicies lists every supported identity policy.
var IdentityPolicies = []IdentityPolicy{IdentityNameOrNetwork, IdentityName, IdentityNetwork}

// ParseIdentityPolicy converts a configuration value into a policy. The empty
// string selects IdentityNameOrNetwork.
func ParseIdentityPolicy(s string) (IdentityPolicy, error) {
	if s == "" {
		return IdentityNameOrNetwork, nil
	}
	for _, p := range IdentityPolicies {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown identity policy %q", s)
}

// Same reports whether existing and candidate share an identity under p. The
// network/netmask pair only identifies a route when the candidate sets both.
func (p IdentityPolicy) Same(existing, candidate *Record) bool {
	sameName := existing.Name == candidate.Name
	sameNet := candidate.Network != "" && candidate.Netmask != "" &&
		existing.Network == candidate.Network && existing.Netmask == candidate.Netmask
	switch p {
	case IdentityName:
		return sameName
	case IdentityNetwork:
		return sameNet
	default:
		return sameName || sameNet
	}
}

// FindExisting returns every record sharing an identity with candidate.
func FindExisting(records []*Record, candidate *Record, policy IdentityPolicy) []*Record {
	return filterRecords(records, func(rec *Record) bool {
		return policy.Same(rec, candidate)
	})
}

// Validation maps each field of an input record to whether it equals the
// stored value.
type Validation map[string]bool

// Valid reports whether every field validated.
func (v Validation) Valid() bool {
	for _, ok := range v {
		if !ok {
			return false
		}
	}
	return true
}

// Count returns the number of fields that validated.
func (v Validation) Count() int {
	n := 0
	for _, ok := range v {
		if ok {
			n++
		}
	}
	return n
}

// ValidationResult pairs an input record with its validation.
type ValidationResult struct {
	Input  *Record    `json:"input"`
	Output Validation `json:"output"`
}

func newValidation(input *Record) Validation {
	v := make(Validation)
	for _, k := range input.Fields() {
		v[k] = false
	}
	return v
}

func compare(v Validation, input, stored *Record) {
	for k := range v {
		want, _ := input.Get(k)
		got, _ := stored.Get(k)
		v[k] = want == got
	}
}

func findByName(records []*Record, name string) []*Record {
	return filterRecords(records, func(rec *Record) bool {
		return rec.Name == name
	})
}

// Validate compares input field by field with the record of the same name.
// When no such record exists every field is reported invalid.
func Validate(records []*Record, input *Record) (Validation, error) {
	if input.Name == "" {
		return nil, errors.NewInvalidRecordError(`input route must have a value for the "name" key`, nil)
	}
	v := newValidation(input)

	found := findByName(records, input.Name)
	switch len(found) {
	case 0:
		return v, nil
	case 1:
		compare(v, input, found[0])
		return v, nil
	default:
		return nil, errors.Newf(errors.ErrCodeMultipleRecordsFound,
			"more than one route with name %q found", input.Name)
	}
}

// ValidateBatch validates every input. Unlike Validate, an unknown name fails
// the whole batch.
func ValidateBatch(records []*Record, inputs []*Record) ([]ValidationResult, error) {
	results := make([]ValidationResult, 0, len(inputs))
	for i, input := range inputs {
		if input.Name == "" {
			return nil, errors.NewInvalidRecordError(
				fmt.Sprintf(`input route #%d must have the "name" key`, i), nil)
		}
		found := findByName(records, input.Name)
		if len(found) == 0 {
			return nil, errors.Newf(errors.ErrCodeRecordNotFound, "no route with name %q", input.Name)
		}
		if len(found) > 1 {
			return nil, errors.Newf(errors.ErrCodeMultipleRecordsFound,
				"more than one route with name %q found", input.Name)
		}
		v := newValidation(input)
		compare(v, input, found[0])
		results = append(results, ValidationResult{Input: input, Output: v})
	}
	return results, nil
}
