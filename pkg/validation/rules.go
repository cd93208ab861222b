package validation

import (
	"errors"
	"fmt"
	"slices"
)

// FieldError is one failed cross-field rule. Field is the dotted yaml path.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Is reports every FieldError as ErrInvalid
func (e *FieldError) Is(target error) bool {
	return target == ErrInvalid
}

// Rules collects cross-field checks that struct tags cannot express. Every
// rule runs; Err joins the failures.
type Rules struct {
	prefix string
	errs   *[]error
}

// NewRules starts a rule set rooted at the yaml section prefix
func NewRules(prefix string) *Rules {
	return &Rules{prefix: prefix, errs: new([]error)}
}

func (r *Rules) path(field string) string {
	if r.prefix == "" {
		return field
	}
	return r.prefix + "." + field
}

func (r *Rules) fail(field, format string, args ...any) {
	*r.errs = append(*r.errs, &FieldError{Field: r.path(field), Message: fmt.Sprintf(format, args...)})
}

// Section runs fn with rules rooted at the nested section name
func (r *Rules) Section(name string, fn func(*Rules)) *Rules {
	fn(&Rules{prefix: r.path(name), errs: r.errs})
	return r
}

// When runs fn only if cond holds
func (r *Rules) When(cond bool, fn func(*Rules)) *Rules {
	if cond {
		fn(r)
	}
	return r
}

// Required fails when value is empty
func (r *Rules) Required(field, value string) *Rules {
	if value == "" {
		r.fail(field, "field is required")
	}
	return r
}

// Together fails when exactly one of the two fields is set
func (r *Rules) Together(fieldA, a, fieldB, b string) *Rules {
	if (a == "") != (b == "") {
		r.fail(fieldA, "must be set together with %s", r.path(fieldB))
	}
	return r
}

// Unique fails on the first repeated value
func (r *Rules) Unique(field string, values []string) *Rules {
	for i, v := range values {
		if slices.Contains(values[:i], v) {
			r.fail(field, "%q listed twice", v)
			break
		}
	}
	return r
}

// Check records fn's error against field
func (r *Rules) Check(field string, fn func() error) *Rules {
	if err := fn(); err != nil {
		r.fail(field, "%v", err)
	}
	return r
}

// Errors returns the failures so far
func (r *Rules) Errors() []error {
	return *r.errs
}

// Err returns nil or every failure joined
func (r *Rules) Err() error {
	if len(*r.errs) == 0 {
		return nil
	}
	return errors.Join(*r.errs...)
}
