package construct

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// TagName is the struct tag consulted when binding run parameters to a
// model configuration.
const TagName = "sweep"

// ConfigurationError reports a run configuration that could not be bound
// to the model's configuration struct under any strategy. It carries both
// parameter maps so the offending values are visible at the abort site.
type ConfigurationError struct {
	Variable map[string]any
	Fixed    map[string]any
	Reason   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("cannot configure model with variable params %v and fixed params %v: %v", e.Variable, e.Fixed, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return e.Reason }

// Binder decodes merged run parameters into a typed model configuration.
// Whether the configuration accepts a residual options bundle is declared
// statically, with a single map field tagged `sweep:",remain"`, and
// resolved once when the binder is built rather than per run.
type Binder struct {
	prototype reflect.Type
	residual  bool
}

// NewBinder inspects a configuration prototype (a struct or pointer to
// struct) and prepares a binder for it.
func NewBinder(prototype any) (*Binder, error) {
	t := reflect.TypeOf(prototype)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("config prototype must be a struct, got %T", prototype)
	}
	return &Binder{prototype: t, residual: hasResidualField(t)}, nil
}

// HasResidual reports whether the configuration declares a residual
// options field. Parameters that match no named field land there; without
// it, unmatched parameters fail the binding.
func (b *Binder) HasResidual() bool { return b.residual }

// Bind decodes the union of variable and fixed parameters into out, a
// pointer to a struct of the binder's prototype type. Fixed values win on
// key collision.
func (b *Binder) Bind(variable, fixed map[string]any, out any) error {
	t := reflect.TypeOf(out)
	if t == nil || t.Kind() != reflect.Pointer || t.Elem() != b.prototype {
		return fmt.Errorf("bind target must be *%s, got %T", b.prototype, out)
	}

	merged := make(map[string]any, len(variable)+len(fixed))
	for k, v := range variable {
		merged[k] = v
	}
	for k, v := range fixed {
		merged[k] = v
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		TagName:     TagName,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(merged); err != nil {
		return &ConfigurationError{
			Variable: cloneParams(variable),
			Fixed:    cloneParams(fixed),
			Reason:   err,
		}
	}
	return nil
}

func hasResidualField(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get(TagName)
		parts := strings.Split(tag, ",")
		for _, part := range parts[1:] {
			if part == "remain" {
				return true
			}
		}
	}
	return false
}

func cloneParams(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
