package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nestfin/nestfin/internal/wallet/domain/model"
	"github.com/nestfin/nestfin/internal/wallet/domain/port"
	pkgkafka "github.com/nestfin/nestfin/pkg/kafka"
	"github.com/nestfin/nestfin/pkg/money"
)

const loanApprovedEventType = "lending.loan.approved"

// loanApprovedPayload is the subset of the lending context's LoanApproved
// event this handler needs. It is decoded from the wire format rather than
// imported so the wallet context does not depend on lending internals.
type loanApprovedPayload struct {
	AggregateID string          `json:"aggregate_id"`
	WalletID    string          `json:"wallet_id"`
	Principal   decimal.Decimal `json:"principal"`
}

// LoanApprovalHandler disburses approved loans: when the lending context
// approves a loan, the principal is credited to the borrower's wallet.
type LoanApprovalHandler struct {
	walletRepo port.WalletRepository
	ledger     port.LedgerRepository
	publisher  port.EventPublisher
	logger     *slog.Logger
}

// NewLoanApprovalHandler wires dependencies.
func NewLoanApprovalHandler(
	walletRepo port.WalletRepository,
	ledger port.LedgerRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *LoanApprovalHandler {
	return &LoanApprovalHandler{
		walletRepo: walletRepo,
		ledger:     ledger,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes one lending event. Events other than LoanApproved are
// acknowledged without action.
func (h *LoanApprovalHandler) Handle(ctx context.Context, msg pkgkafka.Message) error {
	if msg.Headers["event_type"] != loanApprovedEventType {
		return nil
	}

	var payload loanApprovedPayload
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		return fmt.Errorf("decode loan approved event: %w", err)
	}

	now := time.Now().UTC()

	wallet, err := h.walletRepo.FindByID(ctx, payload.WalletID)
	if err != nil {
		return fmt.Errorf("find wallet %s: %w", payload.WalletID, err)
	}

	wallet, err = wallet.Credit(money.New(payload.Principal, money.USD), now)
	if err != nil {
		return fmt.Errorf("credit disbursement: %w", err)
	}

	if err := h.walletRepo.Save(ctx, wallet); err != nil {
		return fmt.Errorf("save wallet: %w", err)
	}

	balanceAfter := wallet.Balance().Amount()
	entry := model.NewLedgerEntry(
		wallet.ID(), model.EntryLoanDisbursement, payload.Principal,
		&balanceAfter, payload.AggregateID,
		fmt.Sprintf("disbursement of loan %s", payload.AggregateID), now,
	)
	if err := h.ledger.Append(ctx, entry); err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}

	if err := h.publisher.Publish(ctx, wallet.DomainEvents()...); err != nil {
		return fmt.Errorf("publish events: %w", err)
	}

	h.logger.InfoContext(ctx, "loan disbursed to wallet",
		"loan_id", payload.AggregateID,
		"wallet_id", payload.WalletID,
		"principal", payload.Principal,
	)
	return nil
}
