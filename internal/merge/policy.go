package merge

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/maraichr/cdm/internal/entity"
)

// ErrUndecidedField is matched by UndecidedFieldError.
var ErrUndecidedField = errors.New("policy left a field undecided")

// FieldDiff is one differing field: its name and both sides rendered as strings.
type FieldDiff struct {
	Field string
	Self  string
	Other string
}

// Conflict is what a Policy is asked to decide. Diff only holds differing
// fields, in schema order.
type Conflict struct {
	Kind      entity.Kind
	ID        string
	SelfFile  string
	OtherFile string
	Diff      []FieldDiff
}

// Policy decides, per differing field, whether the existing entity adopts the
// other definition's value. The returned map must hold a key for every field
// in the diff.
type Policy func(Conflict) map[string]bool

// UndecidedFieldError is returned when a Policy omits a field from its answer.
type UndecidedFieldError struct {
	Kind  entity.Kind
	ID    string
	Field string
}

func (e *UndecidedFieldError) Error() string {
	return fmt.Sprintf("merge %s %q: policy gave no decision for field %q", e.Kind, e.ID, e.Field)
}

func (e *UndecidedFieldError) Unwrap() error { return ErrUndecidedField }

// KeepFirst keeps the first definition and logs every rejected field.
func KeepFirst(logger *slog.Logger) Policy {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c Conflict) map[string]bool {
		out := make(map[string]bool, len(c.Diff))
		for _, d := range c.Diff {
			logger.Warn("conflicting definition ignored",
				slog.String("kind", c.Kind.String()),
				slog.String("id", c.ID),
				slog.String("field", d.Field),
				slog.String("kept", d.Self),
				slog.String("kept_from", c.SelfFile),
				slog.String("ignored", d.Other),
				slog.String("ignored_from", c.OtherFile))
			out[d.Field] = false
		}
		return out
	}
}

// AdoptNewest lets every later definition win.
func AdoptNewest() Policy {
	return func(c Conflict) map[string]bool {
		out := make(map[string]bool, len(c.Diff))
		for _, d := range c.Diff {
			out[d.Field] = true
		}
		return out
	}
}

// Counting wraps p and calls observe once per conflict it is asked to decide.
func Counting(p Policy, observe func(Conflict)) Policy {
	return func(c Conflict) map[string]bool {
		observe(c)
		return p(c)
	}
}

// ByName returns the built-in policy registered under name.
func ByName(name string, logger *slog.Logger) (Policy, error) {
	switch name {
	case "", "keep-first":
		return KeepFirst(logger), nil
	case "adopt-newest":
		return AdoptNewest(), nil
	default:
		return nil, fmt.Errorf("unknown conflict policy %q (want keep-first, adopt-newest or prompt)", name)
	}
}
