package wool

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrUnresolvedType marks a declared type that could not be mapped to a descriptor.
	ErrUnresolvedType = errors.New("unresolved type reference")
	// ErrNameCollision marks a second class registered under an existing name with different members.
	ErrNameCollision = errors.New("class name collision")
	// ErrMergeConflict marks a duplicate class found while relocating classes to their owning module.
	ErrMergeConflict = errors.New("cross-module merge conflict")
	// ErrMalformedTree marks tree shapes the engine cannot interpret.
	ErrMalformedTree = errors.New("malformed schema tree")
	// ErrNotWrapped is returned when merging before every module was wrapped.
	ErrNotWrapped = errors.New("module not wrapped")
)

// Warning is a non-fatal fault found while building descriptors. Kind is one
// of the Err* sentinels, so errors.Is works on a Warning returned as an error.
type Warning struct {
	Kind    error
	Module  string
	Message string
	Attrs   []any
}

func (w *Warning) Error() string {
	if w.Module == "" {
		return fmt.Sprintf("%s: %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("%s: %s (module %s)", w.Kind, w.Message, w.Module)
}

func (w *Warning) Unwrap() error {
	return w.Kind
}

// Policy decides what happens to a Warning. Returning a non-nil error aborts
// the batch.
type Policy interface {
	Report(w *Warning) error
}

// WarnPolicy logs every warning and keeps going.
type WarnPolicy struct {
	Logger *slog.Logger
}

func (p *WarnPolicy) Report(w *Warning) error {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	args := append([]any{"kind", w.Kind.Error(), "module", w.Module}, w.Attrs...)
	logger.Warn(w.Message, args...)
	return nil
}

// StrictPolicy turns every warning into a hard failure.
type StrictPolicy struct{}

func (StrictPolicy) Report(w *Warning) error {
	return w
}
