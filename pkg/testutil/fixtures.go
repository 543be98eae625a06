package testutil

import (
	"github.com/shopspring/decimal"
)

// Fixed identifiers for deterministic testing.
var (
	TestWalletID  = "00000000-0000-0000-0000-000000000001"
	TestWalletID2 = "00000000-0000-0000-0000-000000000002"
	TestGoalID    = "00000000-0000-0000-0000-000000000010"
	TestLoanID    = "00000000-0000-0000-0000-000000000020"
	TestLoanID2   = "00000000-0000-0000-0000-000000000021"
)

// Dec parses a decimal literal, panicking on malformed input. Test-only helper.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
