package stock

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidAdjustment = errors.New("invalid stock adjustment")
	ErrInvalidSale       = errors.New("invalid sale")
	ErrNotFound          = errors.New("not found")
	ErrPersistence       = errors.New("persistence failure")
)

var sentinels = []error{
	ErrInsufficientStock,
	ErrInvalidAdjustment,
	ErrInvalidSale,
	ErrNotFound,
	ErrPersistence,
}

// classify leaves domain errors untouched and folds everything else
// (driver errors, commit failures, cancelled contexts) into ErrPersistence.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return err
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: transaction aborted: %w", ErrPersistence, err)
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}
