package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestfin/nestfin/internal/wallet/domain/event"
	"github.com/nestfin/nestfin/internal/wallet/domain/model"
	"github.com/nestfin/nestfin/internal/wallet/interfaces/consumer"
	pkgkafka "github.com/nestfin/nestfin/pkg/kafka"
	"github.com/nestfin/nestfin/pkg/money"
	"github.com/nestfin/nestfin/pkg/testutil"
)

type stubWalletRepository struct {
	wallet       model.Wallet
	findErr      error
	savedWallets []model.Wallet
}

func (s *stubWalletRepository) Save(_ context.Context, w model.Wallet) error {
	s.savedWallets = append(s.savedWallets, w)
	return nil
}

func (s *stubWalletRepository) FindByID(_ context.Context, _ string) (model.Wallet, error) {
	return s.wallet, s.findErr
}

type stubLedgerRepository struct {
	entries []model.LedgerEntry
}

func (s *stubLedgerRepository) Append(_ context.Context, entry model.LedgerEntry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubLedgerRepository) FindByWalletID(_ context.Context, _ string, _ time.Time, _ int) ([]model.LedgerEntry, error) {
	return nil, nil
}

func (s *stubLedgerRepository) FindByRelatedID(_ context.Context, _, _ string, _ int) ([]model.LedgerEntry, error) {
	return nil, nil
}

type stubPublisher struct {
	published []event.DomainEvent
}

func (s *stubPublisher) Publish(_ context.Context, events ...event.DomainEvent) error {
	s.published = append(s.published, events...)
	return nil
}

func approvedMessage(t *testing.T, loanID, walletID, principal string) pkgkafka.Message {
	t.Helper()
	value, err := json.Marshal(map[string]any{
		"aggregate_id": loanID,
		"wallet_id":    walletID,
		"principal":    principal,
	})
	require.NoError(t, err)
	return pkgkafka.Message{
		Key:     []byte(loanID),
		Value:   value,
		Headers: map[string]string{"event_type": "lending.loan.approved"},
	}
}

func TestLoanApprovalHandler_Handle(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	existing := model.ReconstructWallet(
		testutil.TestWalletID, "Ada",
		money.New(testutil.Dec("100"), money.USD),
		1, time.Now(), time.Now(),
	)

	t.Run("credits the approved principal to the wallet", func(t *testing.T) {
		walletRepo := &stubWalletRepository{wallet: existing}
		ledger := &stubLedgerRepository{}
		publisher := &stubPublisher{}
		handler := consumer.NewLoanApprovalHandler(walletRepo, ledger, publisher, logger)

		err := handler.Handle(context.Background(), approvedMessage(t, testutil.TestLoanID, testutil.TestWalletID, "1200"))

		require.NoError(t, err)
		require.Len(t, walletRepo.savedWallets, 1)
		testutil.AssertDecimalEqual(t, testutil.Dec("1300"), walletRepo.savedWallets[0].Balance().Amount())

		require.Len(t, ledger.entries, 1)
		assert.Equal(t, model.EntryLoanDisbursement, ledger.entries[0].Type)
		assert.Equal(t, testutil.TestLoanID, ledger.entries[0].RelatedID)

		assert.NotEmpty(t, publisher.published)
	})

	t.Run("ignores other lending events", func(t *testing.T) {
		walletRepo := &stubWalletRepository{wallet: existing}
		handler := consumer.NewLoanApprovalHandler(walletRepo, &stubLedgerRepository{}, &stubPublisher{}, logger)

		msg := approvedMessage(t, testutil.TestLoanID, testutil.TestWalletID, "1200")
		msg.Headers["event_type"] = "lending.loan.rejected"

		err := handler.Handle(context.Background(), msg)

		require.NoError(t, err)
		assert.Empty(t, walletRepo.savedWallets)
	})

	t.Run("propagates wallet lookup failures for redelivery", func(t *testing.T) {
		walletRepo := &stubWalletRepository{findErr: errors.New("connection reset")}
		handler := consumer.NewLoanApprovalHandler(walletRepo, &stubLedgerRepository{}, &stubPublisher{}, logger)

		err := handler.Handle(context.Background(), approvedMessage(t, testutil.TestLoanID, testutil.TestWalletID, "1200"))

		require.Error(t, err)
	})
}
