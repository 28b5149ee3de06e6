// Package pricing computes the deterministic VND price breakdown for a
// vehicle order. All amounts are whole-dong decimals; percentage fees are
// rounded half away from zero to the nearest dong.
package pricing

import (
	"fmt"

	"github.com/minhvo/go-ev-store/internal/models"
	"github.com/shopspring/decimal"
)

var (
	// LicensePlateFee is a flat government fee charged on every order.
	LicensePlateFee = decimal.NewFromInt(1_500_000)

	// FlatDeposit is the fixed upfront amount for the "deposit" method.
	FlatDeposit = decimal.NewFromInt(3_000_000)

	registrationRate = decimal.NewFromFloat(0.10)
	installmentRate  = decimal.NewFromFloat(0.30)
)

// Quote is the full pricing breakdown attached to an order.
type Quote struct {
	BasePrice       decimal.Decimal `json:"base_price"`
	Discount        decimal.Decimal `json:"discount"`
	RegistrationFee decimal.Decimal `json:"registration_fee"`
	LicensePlateFee decimal.Decimal `json:"license_plate_fee"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	DepositAmount   decimal.Decimal `json:"deposit_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
}

// Compute prices an order from the vehicle's base price and discount.
//
//	registrationFee = round(basePrice * 0.10)
//	totalAmount     = basePrice - discount + registrationFee + licensePlateFee
//
// The deposit/remaining split depends on the payment method; an unknown or
// empty method yields a zero split.
func Compute(basePrice, discount decimal.Decimal, paymentMethod string) Quote {
	registrationFee := basePrice.Mul(registrationRate).Round(0)
	total := basePrice.Sub(discount).Add(registrationFee).Add(LicensePlateFee)

	q := Quote{
		BasePrice:       basePrice,
		Discount:        discount,
		RegistrationFee: registrationFee,
		LicensePlateFee: LicensePlateFee,
		TotalAmount:     total,
		DepositAmount:   decimal.Zero,
		RemainingAmount: decimal.Zero,
	}

	switch paymentMethod {
	case models.PaymentMethodDeposit:
		q.DepositAmount = FlatDeposit
		q.RemainingAmount = total.Sub(FlatDeposit)
	case models.PaymentMethodFullPayment:
		q.DepositAmount = total
		q.RemainingAmount = decimal.Zero
	case models.PaymentMethodInstallment:
		q.DepositAmount = total.Mul(installmentRate).Round(0)
		q.RemainingAmount = total.Sub(q.DepositAmount)
	}

	return q
}

// FormatOrderCode renders a sequence value as a human-facing order code,
// "DH" followed by the value zero-padded to six digits.
func FormatOrderCode(seq int64) string {
	return fmt.Sprintf("DH%06d", seq)
}

// FormatTransactionID builds the id of a payment transaction from its order
// code and the creation time in epoch milliseconds.
func FormatTransactionID(orderCode string, epochMillis int64) string {
	return fmt.Sprintf("TXN%s_%d", orderCode, epochMillis)
}
