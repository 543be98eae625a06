package model

import (
	"errors"
	"log/slog"
	"math"

	"github.com/shopspring/decimal"
)

// payoffHorizonSentinel is returned by ProjectPayoff when the payment can
// never amortize the principal. Callers present it as "effectively never".
const payoffHorizonSentinel = 999

// MinimumPayment computes the fixed monthly payment for a loan using the
// standard annuity formula
//
//	PMT = P * i(1+i)^n / ((1+i)^n - 1)   with i = annualRatePercent/100/12
//
// When the rate is zero (or rounds to a zero monthly rate) the payment falls
// back to a straight-line split P/n. If the formula goes numerically
// degenerate the result falls back to a simple-interest approximation rather
// than surfacing the arithmetic failure; the fallback is logged as a warning.
//
// The result is rounded to cents, half-up.
func MinimumPayment(principal, annualRatePercent decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if !principal.IsPositive() {
		return decimal.Zero, errors.New("principal must be positive")
	}
	if termMonths <= 0 {
		return decimal.Zero, errors.New("term months must be positive")
	}
	if annualRatePercent.IsNegative() {
		return decimal.Zero, errors.New("interest rate must not be negative")
	}

	n := decimal.NewFromInt(int64(termMonths))

	monthlyRate := annualRatePercent.InexactFloat64() / 100.0 / 12.0
	if monthlyRate == 0 {
		return principal.Div(n).Round(2), nil
	}

	// The power term needs float64; monetary rounding happens once at the end.
	factor := math.Pow(1+monthlyRate, float64(termMonths))
	payment := principal.InexactFloat64() * monthlyRate * factor / (factor - 1)

	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		// Graceful degradation: approximate with principal split plus one
		// month of simple interest instead of propagating the failure.
		slog.Warn("annuity formula degenerate, using simple-interest approximation",
			"principal", principal, "annual_rate_percent", annualRatePercent, "term_months", termMonths)
		approx := principal.Div(n).Add(monthlyInterest(principal, annualRatePercent))
		return approx.Round(2), nil
	}

	return decimal.NewFromFloat(payment).Round(2), nil
}

// PayoffProjection is the closed-form counterpart to a full simulation run,
// using a single blended rate instead of per-loan granularity.
type PayoffProjection struct {
	Months       int
	InterestPaid decimal.Decimal
}

// ProjectPayoff computes how many months a fixed monthly payment needs to
// retire totalPrincipal at a blended annual rate, via the loan-duration
// formula
//
//	N = -ln(1 - i*P/PMT) / ln(1+i)
//
// When the payment does not exceed the monthly interest on the full
// principal the debt never amortizes; the projection then carries the
// 999-month sentinel with interest-only cost over that horizon instead of a
// NaN or an unbounded loop.
//
// This is an approximation for summary displays. It cannot model
// strategy-dependent loan ordering and is not a substitute for Simulate.
func ProjectPayoff(totalPrincipal, weightedAnnualRate, monthlyPayment decimal.Decimal) (PayoffProjection, error) {
	if !totalPrincipal.IsPositive() {
		return PayoffProjection{}, errors.New("total principal must be positive")
	}
	if !monthlyPayment.IsPositive() {
		return PayoffProjection{}, errors.New("monthly payment must be positive")
	}
	if weightedAnnualRate.IsNegative() {
		return PayoffProjection{}, errors.New("weighted rate must not be negative")
	}

	i := weightedAnnualRate.InexactFloat64() / 100.0 / 12.0
	p := totalPrincipal.InexactFloat64()
	pmt := monthlyPayment.InexactFloat64()

	if i == 0 {
		months := int(math.Ceil(p / pmt))
		return PayoffProjection{Months: months, InterestPaid: decimal.Zero}, nil
	}

	// Payment at or below the monthly interest never touches principal.
	if pmt <= p*i {
		interestOnly := monthlyInterest(totalPrincipal, weightedAnnualRate).
			Mul(decimal.NewFromInt(payoffHorizonSentinel))
		return PayoffProjection{
			Months:       payoffHorizonSentinel,
			InterestPaid: interestOnly.Round(2),
		}, nil
	}

	n := -math.Log(1-i*p/pmt) / math.Log(1+i)
	months := int(math.Ceil(n))

	interest := monthlyPayment.Mul(decimal.NewFromFloat(n)).Sub(totalPrincipal)
	if interest.IsNegative() {
		interest = decimal.Zero
	}

	return PayoffProjection{Months: months, InterestPaid: interest.Round(2)}, nil
}
