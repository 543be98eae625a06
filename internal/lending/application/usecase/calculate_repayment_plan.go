package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nestfin/nestfin/internal/lending/application/dto"
	"github.com/nestfin/nestfin/internal/lending/domain/model"
	"github.com/nestfin/nestfin/internal/lending/domain/port"
	"github.com/nestfin/nestfin/internal/lending/domain/valueobject"
)

// planCacheTTL bounds how stale a cached plan can be. Plans change only when
// a loan is approved, repaid, or paid off, so a short TTL is enough.
const planCacheTTL = 5 * time.Minute

// CalculateRepaymentPlanUseCase compares the avalanche and snowball payoff
// strategies across a wallet's approved loans under a fixed monthly budget.
type CalculateRepaymentPlanUseCase struct {
	loanRepo port.LoanRepository
	cache    port.PlanCache
	logger   *slog.Logger
}

// NewCalculateRepaymentPlanUseCase wires dependencies. The cache may be nil,
// in which case every request runs the simulations.
func NewCalculateRepaymentPlanUseCase(
	loanRepo port.LoanRepository,
	cache port.PlanCache,
	logger *slog.Logger,
) *CalculateRepaymentPlanUseCase {
	return &CalculateRepaymentPlanUseCase{
		loanRepo: loanRepo,
		cache:    cache,
		logger:   logger,
	}
}

// Execute builds the payoff plan. Both strategy simulations run concurrently
// over independent copies of the loan snapshots.
func (uc *CalculateRepaymentPlanUseCase) Execute(
	ctx context.Context,
	req dto.CalculatePlanRequest,
) (dto.PlanResponse, error) {
	if req.WalletID == "" {
		return dto.PlanResponse{}, fmt.Errorf("wallet ID is required")
	}

	// 1. Serve from cache when the same what-if was asked recently.
	cacheKey := planCacheKey(req.WalletID, req.MonthlyBudget)
	if uc.cache != nil {
		if raw, ok := uc.cache.Get(ctx, cacheKey); ok {
			var cached dto.PlanResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
			uc.logger.Warn("discarding undecodable cached plan", "key", cacheKey)
		}
	}

	// 2. Load the wallet's open loans.
	loans, err := uc.loanRepo.FindByWalletID(ctx, req.WalletID, valueobject.LoanStatusApproved)
	if err != nil {
		return dto.PlanResponse{}, fmt.Errorf("load loans: %w", err)
	}
	if len(loans) == 0 {
		return dto.PlanResponse{}, model.ErrNoLoans
	}

	snapshots := make([]model.LoanSnapshot, 0, len(loans))
	totalBalance := decimal.Zero
	totalMinimums := decimal.Zero
	weightedRate := decimal.Zero
	for _, loan := range loans {
		snap := loan.Snapshot()
		snapshots = append(snapshots, snap)
		totalBalance = totalBalance.Add(snap.RemainingBalance)
		totalMinimums = totalMinimums.Add(snap.MinimumPayment)
		weightedRate = weightedRate.Add(snap.RemainingBalance.Mul(snap.AnnualInterestRate))
	}
	// totalBalance is positive here: the empty-loans case returned above and
	// approved loans always carry a positive remaining balance.
	weightedRate = weightedRate.Div(totalBalance)

	// 3. Run both strategies concurrently.
	var wg sync.WaitGroup
	var avalanche, snowball model.SimulationResult
	var avaErr, snoErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		avalanche, avaErr = model.Simulate(snapshots, req.MonthlyBudget, valueobject.StrategyAvalanche)
	}()
	go func() {
		defer wg.Done()
		snowball, snoErr = model.Simulate(snapshots, req.MonthlyBudget, valueobject.StrategySnowball)
	}()
	wg.Wait()

	if avaErr != nil {
		return dto.PlanResponse{}, fmt.Errorf("simulate avalanche: %w", avaErr)
	}
	if snoErr != nil {
		return dto.PlanResponse{}, fmt.Errorf("simulate snowball: %w", snoErr)
	}

	// 4. Closed-form consolidated estimate for the summary display.
	projection, err := model.ProjectPayoff(totalBalance, weightedRate, req.MonthlyBudget)
	if err != nil {
		return dto.PlanResponse{}, fmt.Errorf("project payoff: %w", err)
	}

	resp := dto.PlanResponse{
		WalletID: req.WalletID,
		Summary: dto.PlanSummaryResponse{
			TotalLoans:          len(loans),
			MonthlyBudget:       req.MonthlyBudget,
			TotalMinimumPayment: totalMinimums,
			ExtraPayment:        req.MonthlyBudget.Sub(totalMinimums),
		},
		Avalanche: toStrategyResult(avalanche),
		Snowball:  toStrategyResult(snowball),
		Consolidated: dto.ProjectionResponse{
			Months:       projection.Months,
			InterestPaid: projection.InterestPaid,
		},
		CachedAt: time.Now().UTC(),
	}

	// 5. Cache the assembled plan. Failures here are logged, not surfaced.
	if uc.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := uc.cache.Set(ctx, cacheKey, raw, planCacheTTL); err != nil {
				uc.logger.Warn("failed to cache repayment plan", "key", cacheKey, "error", err)
			}
		}
	}

	return resp, nil
}

func planCacheKey(walletID string, budget decimal.Decimal) string {
	return fmt.Sprintf("repayment-plan:%s:%s", walletID, budget.String())
}

func toStrategyResult(res model.SimulationResult) dto.StrategyResultResponse {
	log := make([]dto.PayoffEventResponse, 0, len(res.PayoffLog))
	for _, evt := range res.PayoffLog {
		log = append(log, dto.PayoffEventResponse{Month: evt.Month, LoanID: evt.LoanID})
	}
	return dto.StrategyResultResponse{
		Strategy:          res.Strategy.String(),
		MonthsToPayoff:    res.MonthsToPayoff,
		TotalInterestPaid: res.TotalInterestPaid,
		FirstTarget:       res.FirstTarget,
		PayoffLog:         log,
	}
}
