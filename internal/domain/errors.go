package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrServiceNotFound   = fmt.Errorf("service %w", ErrNotFound)
	ErrDepositNotFound   = fmt.Errorf("deposit %w", ErrNotFound)
	ErrOrderNotFound     = fmt.Errorf("order %w", ErrNotFound)
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyProcessed  = errors.New("deposit already processed")
	ErrInvalidTransition = errors.New("invalid deposit status transition")
	ErrNotAuthorized     = errors.New("not authorized")
	ErrStorageFailure    = errors.New("storage failure")
)

// StorageFailure marks err as a storage-layer failure. Domain errors pass through unchanged.
func StorageFailure(err error) error {
	if err == nil || IsDomainError(err) || errors.Is(err, ErrStorageFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorageFailure, err)
}

func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound,
		ErrInvalidAmount,
		ErrInsufficientFunds,
		ErrAlreadyProcessed,
		ErrInvalidTransition,
		ErrNotAuthorized,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
