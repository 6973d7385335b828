// Package collection holds the create/update/delete/toggle operations shared
// by every page's dataset. All functions are total and never modify their
// input slice; callers save the returned slice as the whole new collection.
package collection

import (
	"strconv"
	"strings"
	"time"
)

// Entity is a record addressable by an opaque id.
type Entity interface {
	EntityID() string
}

// Toggler is an entity carrying a completed flag.
type Toggler[T any] interface {
	Entity
	Toggled() T
}

// Blank reports whether a primary text field is empty or whitespace only.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// NewID derives an id from now (unix milliseconds) and bumps it until no
// entity in items uses it.
func NewID[T Entity](items []T, now time.Time) string {
	n := now.UnixMilli()
	for {
		id := strconv.FormatInt(n, 10)
		if !Contains(items, id) {
			return id
		}
		n++
	}
}

// Create appends the entity built by newItem under a fresh id.
func Create[T Entity](items []T, now time.Time, newItem func(id string) T) ([]T, T) {
	item := newItem(NewID(items, now))
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	out = append(out, item)
	return out, item
}

// Update applies patch to the entity with the given id. An unknown id leaves
// the collection unchanged. The patched entity keeps its id.
func Update[T Entity](items []T, id string, patch func(T) T) []T {
	out := Clone(items)
	for i := range out {
		if out[i].EntityID() != id {
			continue
		}
		patched := patch(out[i])
		if patched.EntityID() == id {
			out[i] = patched
		}
		break
	}
	return out
}

// Delete removes the entity with the given id, if present.
func Delete[T Entity](items []T, id string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.EntityID() != id {
			out = append(out, it)
		}
	}
	return out
}

// ToggleCompleted flips the completed flag of the entity with the given id.
func ToggleCompleted[T Toggler[T]](items []T, id string) []T {
	return Update(items, id, func(it T) T { return it.Toggled() })
}

// Find returns the entity with the given id.
func Find[T Entity](items []T, id string) (T, bool) {
	for _, it := range items {
		if it.EntityID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func Contains[T Entity](items []T, id string) bool {
	_, ok := Find(items, id)
	return ok
}

// Clone returns a copy of items; nil becomes an empty slice.
func Clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

// Duplicate returns the first id that appears twice, if any.
func Duplicate[T Entity](items []T) (string, bool) {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		id := it.EntityID()
		if _, ok := seen[id]; ok {
			return id, true
		}
		seen[id] = struct{}{}
	}
	return "", false
}
