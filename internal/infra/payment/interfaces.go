package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// VerifierInterface checks that a referenced gateway transaction matches the
// amount the caller expects to have been paid. Implementations must
// fail closed: any doubt means not verified.
type VerifierInterface interface {
	Verify(ctx context.Context, paymentRef string, expectedAmount decimal.Decimal) (bool, error)
}

var (
	_ VerifierInterface = (*PayPalClient)(nil)
	_ VerifierInterface = (*CardVerifier)(nil)
)
