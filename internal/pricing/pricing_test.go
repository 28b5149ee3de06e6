package pricing

import (
	"regexp"
	"testing"

	"github.com/minhvo/go-ev-store/internal/models"
	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestComputeTotal(t *testing.T) {
	cases := []struct {
		name     string
		price    int64
		discount int64
		total    int64
	}{
		{"no discount", 15_990_000, 0, 19_089_000},
		{"with discount", 20_000_000, 1_000_000, 22_500_000},
		{"zero price", 0, 0, 1_500_000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, method := range []string{
				models.PaymentMethodDeposit,
				models.PaymentMethodFullPayment,
				models.PaymentMethodInstallment,
				"",
			} {
				q := Compute(d(tc.price), d(tc.discount), method)
				if !q.TotalAmount.Equal(d(tc.total)) {
					t.Errorf("method %q: total = %s, want %d", method, q.TotalAmount, tc.total)
				}
				wantReg := d(tc.price).Mul(decimal.NewFromFloat(0.10)).Round(0)
				if !q.RegistrationFee.Equal(wantReg) {
					t.Errorf("method %q: registration fee = %s, want %s", method, q.RegistrationFee, wantReg)
				}
			}
		})
	}
}

func TestComputeFullPayment(t *testing.T) {
	q := Compute(d(25_000_000), d(500_000), models.PaymentMethodFullPayment)
	if !q.DepositAmount.Equal(q.TotalAmount) {
		t.Errorf("deposit = %s, want total %s", q.DepositAmount, q.TotalAmount)
	}
	if !q.RemainingAmount.IsZero() {
		t.Errorf("remaining = %s, want 0", q.RemainingAmount)
	}
}

func TestComputeDepositScenario(t *testing.T) {
	// price 15,990,000 VND, no discount, deposit method
	q := Compute(d(15_990_000), d(0), models.PaymentMethodDeposit)

	if !q.RegistrationFee.Equal(d(1_599_000)) {
		t.Errorf("registration fee = %s, want 1599000", q.RegistrationFee)
	}
	if !q.TotalAmount.Equal(d(19_089_000)) {
		t.Errorf("total = %s, want 19089000", q.TotalAmount)
	}
	if !q.DepositAmount.Equal(d(3_000_000)) {
		t.Errorf("deposit = %s, want 3000000", q.DepositAmount)
	}
	if !q.RemainingAmount.Equal(d(16_089_000)) {
		t.Errorf("remaining = %s, want 16089000", q.RemainingAmount)
	}
}

func TestComputeInstallmentSplit(t *testing.T) {
	prices := []int64{15_990_000, 21_490_000, 9_999_999, 1}
	for _, p := range prices {
		q := Compute(d(p), d(0), models.PaymentMethodInstallment)

		if !q.DepositAmount.Add(q.RemainingAmount).Equal(q.TotalAmount) {
			t.Errorf("price %d: deposit %s + remaining %s != total %s",
				p, q.DepositAmount, q.RemainingAmount, q.TotalAmount)
		}
		wantDeposit := q.TotalAmount.Mul(decimal.NewFromFloat(0.30)).Round(0)
		if !q.DepositAmount.Equal(wantDeposit) {
			t.Errorf("price %d: deposit = %s, want %s", p, q.DepositAmount, wantDeposit)
		}
	}
}

func TestComputeUnknownMethod(t *testing.T) {
	q := Compute(d(10_000_000), d(0), "cod")
	if !q.DepositAmount.IsZero() || !q.RemainingAmount.IsZero() {
		t.Errorf("unknown method split = %s/%s, want 0/0", q.DepositAmount, q.RemainingAmount)
	}
}

func TestFormatOrderCode(t *testing.T) {
	re := regexp.MustCompile(`^DH\d{6}$`)

	cases := map[int64]string{
		1:      "DH000001",
		42:     "DH000042",
		999999: "DH999999",
	}
	for seq, want := range cases {
		got := FormatOrderCode(seq)
		if got != want {
			t.Errorf("FormatOrderCode(%d) = %q, want %q", seq, got, want)
		}
		if !re.MatchString(got) {
			t.Errorf("FormatOrderCode(%d) = %q does not match DH\\d{6}", seq, got)
		}
	}
}

func TestFormatTransactionID(t *testing.T) {
	got := FormatTransactionID("DH000007", 1700000000000)
	if got != "TXNDH000007_1700000000000" {
		t.Errorf("transaction id = %q", got)
	}
}
