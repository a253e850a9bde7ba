// Package storage persists named JSON values on top of a database.Store.
//
// Reads tolerate absent or unreadable keys by reporting "not found" so the
// caller falls back to its default. Writes never fail the caller: errors are
// logged, counted, and returned only for inspection.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/bryan-buckman/mvphub/internal/database"
	"github.com/bryan-buckman/mvphub/internal/metrics"
)

// Adapter encodes values as JSON and stores them under string keys.
type Adapter struct {
	store   database.Store
	logger  *slog.Logger
	metrics metrics.Recorder
}

// New creates an Adapter. A nil recorder discards metrics.
func New(store database.Store, logger *slog.Logger, rec metrics.Recorder) *Adapter {
	if rec == nil {
		rec = metrics.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{store: store, logger: logger, metrics: rec}
}

// Load decodes the value stored under key into dst and reports whether it did.
// dst must be a non-nil pointer. Absent keys, read errors and values that do
// not decode into dst's type all report false and leave dst unchanged. Fields
// missing from a stored object keep the values dst already held.
func (a *Adapter) Load(key string, dst any) bool {
	raw, ok, err := a.store.Get(key)
	if err != nil {
		a.logger.Warn("storage read failed", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		a.logger.Error("storage load target is not a pointer", "key", key)
		return false
	}
	// Decode into a copy of the current value so a partial decode never
	// reaches dst.
	fresh := reflect.New(target.Type().Elem())
	if base, err := json.Marshal(dst); err == nil {
		_ = json.Unmarshal(base, fresh.Interface())
	}
	if err := json.Unmarshal(raw, fresh.Interface()); err != nil {
		a.logger.Warn("storage value unreadable", "key", key, "error", err)
		return false
	}
	target.Elem().Set(fresh.Elem())
	return true
}

// Save encodes v and stores it under key. A failure is logged and counted;
// the returned error is informational and callers are free to ignore it.
func (a *Adapter) Save(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		err = fmt.Errorf("encode %s: %w", key, err)
	} else {
		err = a.store.Set(key, raw)
	}
	if err != nil {
		a.logger.Warn("could not save to storage", "key", key, "error", err)
		a.metrics.RecordPersistenceFailure(key)
		return err
	}
	return nil
}
