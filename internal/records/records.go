// Package records provides create/read/update/delete helpers for arrays of JSON
// records kept under a single key of a kv.Store.
//
// Every operation reads the whole array and writes it back (last write wins).
// Callers are expected to run sequentially; there is no locking between the
// read and the write.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ezshop/internal/kv"
)

// ErrCorrupt is returned by mutating operations when the stored array cannot be
// decoded. The stored value is left untouched.
var ErrCorrupt = errors.New("stored records are corrupt")

// Repository operates on JSON arrays of T.
type Repository[T any] struct {
	store kv.Store
	log   *zap.Logger
}

// New returns a Repository over store.
func New[T any](store kv.Store, log *zap.Logger) *Repository[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repository[T]{store: store, log: log}
}

// Create appends record to the array at key. There is no uniqueness check;
// the caller generates ids.
func (r *Repository[T]) Create(ctx context.Context, key string, record T) error {
	raw, _, err := r.load(ctx, key)
	if err != nil {
		return err
	}
	b, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	raw = append(raw, b)
	return r.write(ctx, key, raw)
}

// Read returns the records at key. A missing key or an undecodable value yields
// an empty slice; the latter is logged.
func (r *Repository[T]) Read(ctx context.Context, key string) ([]T, error) {
	v, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if !ok || v == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(v), &out); err != nil {
		r.log.Warn("failed to read records", zap.String("key", key), zap.Error(err))
		return []T{}, nil
	}
	if out == nil { // JSON null
		out = []T{}
	}
	return out, nil
}

// Update replaces every record whose idField equals record's idField.
// A missing key is a silent no-op.
func (r *Repository[T]) Update(ctx context.Context, key string, record T, idField string) error {
	raw, ok, err := r.load(ctx, key)
	if err != nil || !ok {
		return err
	}
	b, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	id, found := idOf(b, idField)
	if !found {
		return fmt.Errorf("record has no string field %q", idField)
	}
	for i := range raw {
		if got, ok := idOf(raw[i], idField); ok && got == id {
			raw[i] = b
		}
	}
	return r.write(ctx, key, raw)
}

// Delete removes every record whose idField equals id.
// A missing key is a silent no-op.
func (r *Repository[T]) Delete(ctx context.Context, key, id, idField string) error {
	raw, ok, err := r.load(ctx, key)
	if err != nil || !ok {
		return err
	}
	kept := raw[:0]
	for _, rec := range raw {
		if got, ok := idOf(rec, idField); ok && got == id {
			continue
		}
		kept = append(kept, rec)
	}
	return r.write(ctx, key, kept)
}

// Replace overwrites the array at key with records.
func (r *Repository[T]) Replace(ctx context.Context, key string, records []T) error {
	if records == nil {
		records = []T{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	return r.store.Set(ctx, key, string(b))
}

// load returns the raw array at key. Records are kept as raw JSON so fields
// unknown to T survive a rewrite of their neighbours.
func (r *Repository[T]) load(ctx context.Context, key string) ([]json.RawMessage, bool, error) {
	v, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !ok || v == "" {
		return []json.RawMessage{}, ok, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(v), &raw); err != nil {
		r.log.Warn("refusing to rewrite corrupt records", zap.String("key", key), zap.Error(err))
		return nil, true, fmt.Errorf("%w: %s", ErrCorrupt, key)
	}
	return raw, true, nil
}

func (r *Repository[T]) write(ctx context.Context, key string, raw []json.RawMessage) error {
	if raw == nil {
		raw = []json.RawMessage{}
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	return r.store.Set(ctx, key, string(b))
}

// idOf extracts the string value of field from a JSON object.
func idOf(rec json.RawMessage, field string) (string, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(rec, &obj); err != nil {
		return "", false
	}
	v, ok := obj[field]
	if !ok {
		return "", false
	}
	var id string
	if err := json.Unmarshal(v, &id); err != nil {
		return "", false
	}
	return id, true
}
