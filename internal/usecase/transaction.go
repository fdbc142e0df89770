package usecase

import (
	"context"
	"fmt"
	"log/slog"
)

// Transaction runs a list of named operations in order. On failure it walks
// the registered compensations backwards, best-effort. Compensations align
// with operations by index; steps without one are skipped during rollback.
type Transaction struct {
	operations    []operation
	compensations []operation
	log           *slog.Logger
}

type operation struct {
	name string
	fn   func(context.Context) error
}

func NewTransaction(log *slog.Logger) *Transaction {
	if log == nil {
		log = slog.Default()
	}
	return &Transaction{log: log}
}

func (t *Transaction) AddOperation(name string, fn func(context.Context) error) {
	t.operations = append(t.operations, operation{name, fn})
}

func (t *Transaction) AddCompensation(name string, fn func(context.Context) error) {
	t.compensations = append(t.compensations, operation{name, fn})
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, op := range t.operations {
		if err := op.fn(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("operation %q failed: %w", op.name, err)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAt int) {
	for i := failedAt - 1; i >= 0; i-- {
		if i >= len(t.compensations) {
			continue
		}
		comp := t.compensations[i]
		if err := comp.fn(ctx); err != nil {
			// Nothing left to do but flag the inconsistency.
			t.log.Warn("compensation failed", "name", comp.name, "error", err)
		}
	}
}
