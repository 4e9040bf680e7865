// internal/services/errors.go
package services

import (
	"errors"
)

var (
	// ErrNotFound covers both missing rows and rows owned by another
	// user; ownership is folded into every WHERE clause, so the two are
	// indistinguishable on purpose.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateAsset is returned when a card is already staged in a
	// session's evaluation set or cart.
	ErrDuplicateAsset = errors.New("asset already in session")

	// ErrAlreadyOwned guards the one-active-purchase rule: a user holds
	// at most one purchase transaction per global asset at a time.
	ErrAlreadyOwned = errors.New("asset already purchased")

	// ErrCartEmpty rejects checkout of a session with nothing carted.
	ErrCartEmpty = errors.New("cart is empty")

	ErrConsignmentNotActive = errors.New("consignment is not active")

	// ErrSessionNumberExhausted is raised after the bounded retry loop
	// fails to insert a unique session number.
	ErrSessionNumberExhausted = errors.New("session number generation exhausted")
)
