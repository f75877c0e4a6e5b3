package swap

import "errors"

// Precondition errors. All of them surface before any instruction is
// appended, a partially built transaction is never returned.
var (
	ErrWrongAddress             = errors.New("source address belongs to the relay fee payer")
	ErrSwapPoolsNotFound        = errors.New("swap pools not found for the mint pair")
	ErrTransitTokenMintNotFound = errors.New("transit token mint not found for the route")
	ErrInvalidAmount            = errors.New("amount is not valid")
	ErrInvalidSlippage          = errors.New("slippage is not valid")
	ErrRelayContextMissing      = errors.New("relay context is not loaded")
)
