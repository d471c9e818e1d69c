// Copyright 2026 The Asciidoctor Kroki Authors
// SPDX-License-Identifier: MIT

package testutil

import (
	"context"
	"log/slog"
	"sync"
)

// LogRecorder is a slog.Handler that captures records so tests can
// assert on diagnostic output (warnings for soft-skipped includes,
// unresolved remote references).
//
//	recorder := testutil.NewLogRecorder()
//	expander := preprocess.Expander{Logger: slog.New(recorder)}
type LogRecorder struct {
	mu      sync.Mutex
	records []CapturedRecord
}

// CapturedRecord is one captured log record, flattened for easy
// assertions.
type CapturedRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]string
}

// NewLogRecorder returns an empty recorder.
func NewLogRecorder() *LogRecorder {
	return &LogRecorder{}
}

// Enabled implements slog.Handler. Everything is recorded.
func (r *LogRecorder) Enabled(context.Context, slog.Level) bool { return true }

// Handle implements slog.Handler.
func (r *LogRecorder) Handle(_ context.Context, record slog.Record) error {
	captured := CapturedRecord{
		Level:   record.Level,
		Message: record.Message,
		Attrs:   make(map[string]string),
	}
	record.Attrs(func(a slog.Attr) bool {
		captured.Attrs[a.Key] = a.Value.String()
		return true
	})
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, captured)
	return nil
}

// WithAttrs implements slog.Handler. Grouping is not needed for
// assertions; the recorder is returned unchanged.
func (r *LogRecorder) WithAttrs([]slog.Attr) slog.Handler { return r }

// WithGroup implements slog.Handler.
func (r *LogRecorder) WithGroup(string) slog.Handler { return r }

// Records returns a snapshot of everything captured so far.
func (r *LogRecorder) Records() []CapturedRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]CapturedRecord(nil), r.records...)
}

// Messages returns the captured messages in order.
func (r *LogRecorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	messages := make([]string, len(r.records))
	for i, record := range r.records {
		messages[i] = record.Message
	}
	return messages
}
