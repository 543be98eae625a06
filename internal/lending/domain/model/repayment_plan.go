package model

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/nestfin/nestfin/internal/lending/domain/valueobject"
)

// maxSimulationMonths bounds a payoff simulation. A budget that cannot retire
// the debt inside a 100-year horizon is treated as divergent rather than
// truncated to a misleading number.
const maxSimulationMonths = 1200

var (
	// ErrSimulationDiverged is returned when a simulation exceeds the
	// maximum horizon without retiring every loan.
	ErrSimulationDiverged = errors.New("repayment simulation exceeded the 1200-month horizon")

	// ErrNoLoans is returned when a simulation is requested with no loans.
	ErrNoLoans = errors.New("at least one loan is required")

	// ErrBudgetBelowMinimums is returned when the monthly budget does not
	// cover the sum of contractual minimum payments.
	ErrBudgetBelowMinimums = errors.New("monthly budget is below the total minimum payments")
)

// LoanSnapshot is the simulator's read-only view of a loan. Snapshots are
// plain values: the simulator copies them on entry, so callers can hand over
// live aggregate state without risking mutation.
type LoanSnapshot struct {
	ID                 string
	Principal          decimal.Decimal
	RemainingBalance   decimal.Decimal
	AnnualInterestRate decimal.Decimal // percentage, e.g. 12.5 = 12.5% p.a.
	MinimumPayment     decimal.Decimal
	TermMonths         int
}

// PayoffEvent records the month in which a loan reached zero balance.
type PayoffEvent struct {
	Month  int    `json:"month"`
	LoanID string `json:"loan_id"`
}

// SimulationResult is the outcome of a single-strategy payoff simulation.
type SimulationResult struct {
	Strategy          valueobject.Strategy
	MonthsToPayoff    int
	TotalInterestPaid decimal.Decimal
	FirstTarget       string
	PayoffLog         []PayoffEvent
}

// Simulate projects the month-by-month payoff of the given loans under one
// repayment strategy and a fixed monthly budget.
//
// Each month the simulation accrues interest on every open balance (rounded
// to cents per period), pays the contractual minimum on every loan, and
// directs the entire remaining budget at the single top-ranked loan under the
// strategy's ordering rule. Surplus beyond that loan's balance is not
// cascaded to the next target within the same month.
//
// The input slice is never mutated; the simulation runs on its own copy.
func Simulate(
	loans []LoanSnapshot,
	monthlyBudget decimal.Decimal,
	strategy valueobject.Strategy,
) (SimulationResult, error) {
	if err := validateSimulationInput(loans, monthlyBudget, strategy); err != nil {
		return SimulationResult{}, err
	}

	active := cloneSnapshots(loans)

	// The first target is fixed by the ordering of the initial loan set,
	// before any interest accrues.
	rankLoans(active, strategy)
	firstTarget := active[0].ID

	months := 0
	totalInterest := decimal.Zero
	var payoffLog []PayoffEvent

	for len(active) > 0 {
		months++
		if months > maxSimulationMonths {
			return SimulationResult{}, fmt.Errorf("strategy %s: %w", strategy, ErrSimulationDiverged)
		}

		// 1. Accrue one month of interest on every open balance.
		for i := range active {
			interest := monthlyInterest(active[i].RemainingBalance, active[i].AnnualInterestRate)
			active[i].RemainingBalance = active[i].RemainingBalance.Add(interest)
			totalInterest = totalInterest.Add(interest)
		}

		// 2. Pay minimums, capped at each loan's balance.
		paidMinimums := decimal.Zero
		for i := range active {
			payment := decimal.Min(active[i].RemainingBalance, active[i].MinimumPayment)
			active[i].RemainingBalance = active[i].RemainingBalance.Sub(payment)
			paidMinimums = paidMinimums.Add(payment)
		}

		// 3. Direct the leftover budget at the top-ranked loan. The ranking
		// runs before zeroed loans are retired, so a loan finished off by its
		// own minimum this month can still be the target and absorb the
		// surplus as a no-op.
		extra := monthlyBudget.Sub(paidMinimums)
		if extra.IsPositive() {
			rankLoans(active, strategy)
			target := &active[0]
			payment := decimal.Min(target.RemainingBalance, extra)
			target.RemainingBalance = target.RemainingBalance.Sub(payment)
		}

		// 4. Retire loans that reached zero.
		remaining := make([]LoanSnapshot, 0, len(active))
		for _, l := range active {
			if l.RemainingBalance.LessThanOrEqual(decimal.Zero) {
				payoffLog = append(payoffLog, PayoffEvent{Month: months, LoanID: l.ID})
				continue
			}
			remaining = append(remaining, l)
		}
		active = remaining
	}

	return SimulationResult{
		Strategy:          strategy,
		MonthsToPayoff:    months,
		TotalInterestPaid: totalInterest.Round(2),
		FirstTarget:       firstTarget,
		PayoffLog:         payoffLog,
	}, nil
}

// monthlyInterest returns one month of interest on balance at the given
// annual percentage rate, rounded to cents half-up. Rounding happens every
// period, not once at the end, so compounding matches real amortization.
func monthlyInterest(balance, annualRatePercent decimal.Decimal) decimal.Decimal {
	return balance.Mul(annualRatePercent).Div(decimal.NewFromInt(1200)).Round(2)
}

// rankLoans sorts loans in place by the strategy's ordering rule.
// Avalanche: interest rate descending, ties broken by lower balance.
// Snowball: remaining balance ascending, ties broken by higher rate.
func rankLoans(loans []LoanSnapshot, strategy valueobject.Strategy) {
	if strategy.Equal(valueobject.StrategyAvalanche) {
		sort.SliceStable(loans, func(i, j int) bool {
			if !loans[i].AnnualInterestRate.Equal(loans[j].AnnualInterestRate) {
				return loans[i].AnnualInterestRate.GreaterThan(loans[j].AnnualInterestRate)
			}
			return loans[i].RemainingBalance.LessThan(loans[j].RemainingBalance)
		})
		return
	}
	sort.SliceStable(loans, func(i, j int) bool {
		if !loans[i].RemainingBalance.Equal(loans[j].RemainingBalance) {
			return loans[i].RemainingBalance.LessThan(loans[j].RemainingBalance)
		}
		return loans[i].AnnualInterestRate.GreaterThan(loans[j].AnnualInterestRate)
	})
}

func validateSimulationInput(
	loans []LoanSnapshot,
	monthlyBudget decimal.Decimal,
	strategy valueobject.Strategy,
) error {
	if strategy.IsZero() {
		return errors.New("strategy is required")
	}
	if len(loans) == 0 {
		return ErrNoLoans
	}

	totalMinimums := decimal.Zero
	for _, l := range loans {
		if l.ID == "" {
			return errors.New("loan snapshot is missing an ID")
		}
		if !l.RemainingBalance.IsPositive() {
			return fmt.Errorf("loan %s: remaining balance must be positive", l.ID)
		}
		if !l.MinimumPayment.IsPositive() {
			return fmt.Errorf("loan %s: minimum payment must be positive", l.ID)
		}
		if l.AnnualInterestRate.IsNegative() {
			return fmt.Errorf("loan %s: interest rate must not be negative", l.ID)
		}
		totalMinimums = totalMinimums.Add(l.MinimumPayment)
	}

	if monthlyBudget.LessThan(totalMinimums) {
		return fmt.Errorf("budget %s vs minimums %s: %w",
			monthlyBudget, totalMinimums, ErrBudgetBelowMinimums)
	}
	return nil
}

func cloneSnapshots(loans []LoanSnapshot) []LoanSnapshot {
	out := make([]LoanSnapshot, len(loans))
	copy(out, loans)
	return out
}
