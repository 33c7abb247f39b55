package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Filter is the predicate set a store applies to its entities. The zero
// value of every filter type matches everything.
type Filter[T any] interface {
	// Match reports whether v satisfies every active predicate.
	Match(v T) bool

	// IsZero reports whether no predicate is active.
	IsZero() bool

	// Validate returns ErrInvalidFilter if a predicate carries a value no
	// entity can hold, such as an unknown status or an inverted date range.
	Validate() error
}

// Select returns the elements of list that f matches, in list order. A zero
// filter yields a copy of list without evaluating any predicate.
func Select[T any, F Filter[T]](f F, list []T) []T {
	if f.IsZero() {
		return append(make([]T, 0, len(list)), list...)
	}
	out := make([]T, 0, len(list))
	for _, v := range list {
		if f.Match(v) {
			out = append(out, v)
		}
	}
	return out
}

// MatchesSearch reports whether query is contained, case-insensitively, in
// the union of fields. A blank query matches everything.
func MatchesSearch(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(strings.Join(fields, " ")), q)
}

// inRange reports whether t falls within [from, to]. Nil bounds are open.
func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

// checkRange rejects a range whose lower bound is after its upper bound.
func checkRange(from, to *time.Time) error {
	if from != nil && to != nil && from.After(*to) {
		return fmt.Errorf("%w: from %s is after to %s", ErrInvalidFilter,
			from.Format(time.RFC3339), to.Format(time.RFC3339))
	}
	return nil
}

// checkStatus rejects a status that is set but not one of the known values.
func checkStatus[S ~string](s S, valid func() bool) error {
	if s != "" && !valid() {
		return fmt.Errorf("%w: status %q", ErrInvalidFilter, string(s))
	}
	return nil
}

// blank reports whether a search string carries no predicate.
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Patch is a shallow merge applied to the current value of an entity.
type Patch[T any] interface {
	Apply(current T) T
}

// PatchFunc adapts a plain function to the Patch interface.
type PatchFunc[T any] func(current T) T

// Apply calls f(current).
func (f PatchFunc[T]) Apply(current T) T {
	return f(current)
}

// Replace returns a patch that swaps the entity for v wholesale while keeping
// the identity and creation time of the current value.
func Replace[T Entity[T]](v T) Patch[T] {
	return PatchFunc[T](func(current T) T {
		createdAt, _ := current.Timestamps()
		_, updatedAt := v.Timestamps()
		return v.WithStamp(current.EntityID(), createdAt, updatedAt)
	})
}

// jsonPatch overlays a JSON object onto a deep copy of the current value.
type jsonPatch[T any] struct {
	raw json.RawMessage
}

// NewJSONPatch validates raw as a JSON object whose keys are all fields of T
// and returns a patch that overlays it. Fields absent from raw keep their
// current values.
func NewJSONPatch[T any](raw []byte) (Patch[T], error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	var zero T
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&zero); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	cp := make(json.RawMessage, len(raw))
	copy(cp, raw)
	return jsonPatch[T]{raw: cp}, nil
}

// Apply decodes a fresh copy of current and overlays the patch. The copy
// keeps slices of current from being overwritten in place. On any decoding
// failure current is returned unchanged.
func (p jsonPatch[T]) Apply(current T) T {
	base, err := json.Marshal(current)
	if err != nil {
		return current
	}
	var next T
	if err := json.Unmarshal(base, &next); err != nil {
		return current
	}
	if err := json.Unmarshal(p.raw, &next); err != nil {
		return current
	}
	return next
}

// parseStatus converts raw to a status of type S if it is in valid.
func parseStatus[S ~string](raw string, valid map[S]bool) (S, error) {
	s := S(strings.ToLower(strings.TrimSpace(raw)))
	if !valid[s] {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}
