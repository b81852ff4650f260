package model

import "errors"

// Ledger errors. Operations wrap these with the offending id, so match with errors.Is.
var (
	// Asset errors
	ErrAssetNotFound      = errors.New("asset not found")
	ErrAssetAlreadyExists = errors.New("asset already exists")
	ErrWrongAssetKind     = errors.New("asset is of the wrong kind")

	// Faculty errors
	ErrFacultyAlreadyOwned = errors.New("faculty is already owned")
	ErrFacultyHasNoOwner   = errors.New("faculty has no owner")

	// Player errors
	ErrPlayerBroke      = errors.New("player cannot afford this")
	ErrPlayerEliminated = errors.New("player has been eliminated")
	ErrCreditOverflow   = errors.New("credit would exceed the maximum balance")

	// Input errors
	ErrInvalidAmount = errors.New("amount must not be negative")
)

var ledgerErrors = []error{
	ErrAssetNotFound, ErrAssetAlreadyExists, ErrWrongAssetKind,
	ErrFacultyAlreadyOwned, ErrFacultyHasNoOwner,
	ErrPlayerBroke, ErrPlayerEliminated, ErrCreditOverflow,
	ErrInvalidAmount,
}

// IsLedgerError reports whether err is a rule violation rather than a
// failure of the store underneath
func IsLedgerError(err error) bool {
	for _, target := range ledgerErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
