package params

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrDuplicateParam  = errors.New("duplicate parameter name")
	ErrOverlappingKeys = errors.New("parameter overlaps fixed parameters")
	ErrEmptyParamName  = errors.New("parameter name is required")
)

// Param is one swept parameter: a name and its ordered candidate values.
type Param struct {
	Name   string
	Values []any
}

// Space is an ordered set of swept parameters. Immutable once built.
type Space struct {
	params []Param
}

// Fixed holds parameters that stay the same across every run.
type Fixed map[string]any

// NewSpace builds a parameter space from the given parameters, preserving
// declaration order. Each parameter's value is coerced with Candidates, so
// a scalar declares a one-element candidate sequence.
func NewSpace(in ...Param) (*Space, error) {
	seen := make(map[string]bool, len(in))
	space := &Space{params: make([]Param, 0, len(in))}
	for _, p := range in {
		if p.Name == "" {
			return nil, ErrEmptyParamName
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParam, p.Name)
		}
		seen[p.Name] = true
		space.params = append(space.params, Param{
			Name:   p.Name,
			Values: append([]any(nil), p.Values...),
		})
	}
	return space, nil
}

// Value declares a parameter from a raw value: slices and arrays become the
// candidate sequence, anything else (strings included) a single candidate.
func Value(name string, raw any) Param {
	return Param{Name: name, Values: Candidates(raw)}
}

// Candidates coerces a raw declaration into a candidate sequence. Slices
// and arrays are expanded element by element; strings stay whole rather
// than splitting into runes; any other value becomes a one-element
// sequence.
func Candidates(raw any) []any {
	if raw == nil {
		return []any{nil}
	}
	v := reflect.ValueOf(raw)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = v.Index(i).Interface()
		}
		return out
	default:
		return []any{raw}
	}
}

// Names returns the parameter names in declaration order.
func (s *Space) Names() []string {
	names := make([]string, len(s.params))
	for i, p := range s.params {
		names[i] = p.Name
	}
	return names
}

// Values returns the candidate sequence for one parameter.
func (s *Space) Values(name string) ([]any, bool) {
	for _, p := range s.params {
		if p.Name == name {
			return append([]any(nil), p.Values...), true
		}
	}
	return nil, false
}

// Len reports the number of declared parameters.
func (s *Space) Len() int {
	return len(s.params)
}

// CheckDisjoint rejects fixed parameters that shadow a swept parameter.
// Silent override was the inherited behavior; overlapping keys are now a
// configuration-time error.
func (s *Space) CheckDisjoint(fixed Fixed) error {
	for _, p := range s.params {
		if _, ok := fixed[p.Name]; ok {
			return fmt.Errorf("%w: %s", ErrOverlappingKeys, p.Name)
		}
	}
	return nil
}
