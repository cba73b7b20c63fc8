package merge

import (
	"sort"
	"strconv"
	"strings"
)

// String describes a plain string field; "" is unset.
func String[T any](name string, get func(*T) *string) Field[T] {
	return Field[T]{
		Name:   name,
		Format: func(e *T) string { return *get(e) },
		Adopt:  func(dst, src *T) { *get(dst) = *get(src) },
	}
}

// Float describes an optional float field.
func Float[T any](name string, get func(*T) **float64) Field[T] {
	return Field[T]{
		Name: name,
		Format: func(e *T) string {
			if v := *get(e); v != nil {
				return strconv.FormatFloat(*v, 'g', -1, 64)
			}
			return ""
		},
		Adopt: func(dst, src *T) { *get(dst) = cloneOpt(*get(src)) },
	}
}

// Uint describes an optional unsigned integer field.
func Uint[T any](name string, get func(*T) **uint32) Field[T] {
	return Field[T]{
		Name: name,
		Format: func(e *T) string {
			if v := *get(e); v != nil {
				return strconv.FormatUint(uint64(*v), 10)
			}
			return ""
		},
		Adopt: func(dst, src *T) { *get(dst) = cloneOpt(*get(src)) },
	}
}

// Bool describes an optional boolean field.
func Bool[T any](name string, get func(*T) **bool) Field[T] {
	return Field[T]{
		Name: name,
		Format: func(e *T) string {
			if v := *get(e); v != nil {
				return strconv.FormatBool(*v)
			}
			return ""
		},
		Adopt: func(dst, src *T) { *get(dst) = cloneOpt(*get(src)) },
	}
}

// Ref describes a reference to another entity. The value is rendered by the
// target's ID and adopting shares the target pointer.
func Ref[T, R any](name string, get func(*T) **R, id func(*R) string) Field[T] {
	return Field[T]{
		Name: name,
		Format: func(e *T) string {
			if r := *get(e); r != nil {
				return id(r)
			}
			return ""
		},
		Adopt: func(dst, src *T) { *get(dst) = *get(src) },
	}
}

// Custom describes a structured field rendered by format. Adopt replaces the
// whole value.
func Custom[T, V any](name string, get func(*T) *V, format func(V) string) Field[T] {
	return Field[T]{
		Name:   name,
		Format: func(e *T) string { return format(*get(e)) },
		Adopt:  func(dst, src *T) { *get(dst) = *get(src) },
	}
}

// FormatStringMap renders a map as "k=v" pairs in key order.
func FormatStringMap(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + m[k]
	}
	return strings.Join(parts, ", ")
}

// FormatOpt renders an optional float for composite fields.
func FormatOpt(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func cloneOpt[V any](v *V) *V {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
