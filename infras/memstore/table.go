package memstore

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrReadOnly     = errors.New("table is read-only")
)

// Entity is anything a Table can hold. Clone must return a copy that shares
// no mutable memory with the receiver.
type Entity[T any] interface {
	Key() string
	Clone() T
}

// Table is an insertion-ordered collection keyed by Entity.Key. Values go in
// and come out as clones, so callers never hold memory the table owns.
type Table[T Entity[T]] struct {
	name     string
	order    []string
	rows     map[string]T
	readOnly bool
}

func NewTable[T Entity[T]](name string) *Table[T] {
	return &Table[T]{
		name: name,
		rows: map[string]T{},
	}
}

func (t *Table[T]) Name() string {
	return t.name
}

func (t *Table[T]) Insert(value T) error {
	if t.readOnly {
		return fmt.Errorf("insert into %s: %w", t.name, ErrReadOnly)
	}

	key := value.Key()
	if _, ok := t.rows[key]; ok {
		return fmt.Errorf("insert %s %q: %w", t.name, key, ErrDuplicateKey)
	}

	t.rows[key] = value.Clone()
	t.order = append(t.order, key)

	return nil
}

// Put replaces an existing row.
func (t *Table[T]) Put(value T) error {
	if t.readOnly {
		return fmt.Errorf("put into %s: %w", t.name, ErrReadOnly)
	}

	key := value.Key()
	if _, ok := t.rows[key]; !ok {
		return fmt.Errorf("put %s %q: %w", t.name, key, ErrNotFound)
	}

	t.rows[key] = value.Clone()

	return nil
}

func (t *Table[T]) Get(key string) (T, bool) {
	value, ok := t.rows[key]
	if !ok {
		var zero T

		return zero, false
	}

	return value.Clone(), true
}

func (t *Table[T]) Exist(key string) bool {
	_, ok := t.rows[key]

	return ok
}

func (t *Table[T]) All() []T {
	return t.Filter(nil)
}

// Filter returns the rows matching fn in insertion order. A nil fn matches
// every row.
func (t *Table[T]) Filter(fn func(T) bool) []T {
	res := make([]T, 0, len(t.order))

	for _, key := range t.order {
		value := t.rows[key]
		if fn == nil || fn(value) {
			res = append(res, value.Clone())
		}
	}

	return res
}

func (t *Table[T]) Count(fn func(T) bool) int {
	count := 0

	for _, key := range t.order {
		if fn == nil || fn(t.rows[key]) {
			count++
		}
	}

	return count
}

func (t *Table[T]) Len() int {
	return len(t.order)
}

// fork returns a table with its own index. Rows are stored as clones and
// replaced wholesale by Put, so sharing them between forks is safe.
func (t *Table[T]) fork(readOnly bool) *Table[T] {
	if readOnly {
		return &Table[T]{name: t.name, order: t.order, rows: t.rows, readOnly: true}
	}

	rows := make(map[string]T, len(t.rows))
	for k, v := range t.rows {
		rows[k] = v
	}

	order := make([]string, len(t.order), len(t.order)+1)
	copy(order, t.order)

	return &Table[T]{name: t.name, order: order, rows: rows}
}
