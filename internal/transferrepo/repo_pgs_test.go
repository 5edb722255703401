package transferrepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/petrbank/ledger-core/internal/domain"
	"github.com/petrbank/ledger-core/internal/ledgerrepo"
	"github.com/petrbank/ledger-core/pkg/configpkg"
	"github.com/petrbank/ledger-core/pkg/currencypkg"
	"github.com/petrbank/ledger-core/pkg/randompkg"
)

var (
	testRepo       *RepoPGS
	testLedgerRepo *ledgerrepo.RepoPGS
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	testDB, err := sql.Open(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal("cannot connect to db:", err)
	}

	testRepo = NewRepoPGS(testDB)
	testLedgerRepo = ledgerrepo.NewRepoPGS(testDB)

	os.Exit(m.Run())
}

func createRandomTransfer(t *testing.T) domain.Transfer {
	t.Helper()

	source, err := testLedgerRepo.Create(context.Background(),
		randompkg.AccountNumber(), "1000.00", currencypkg.USD, domain.StatusActive)
	require.NoError(t, err)

	destination, err := testLedgerRepo.Create(context.Background(),
		randompkg.AccountNumber(), "1000.00", currencypkg.USD, domain.StatusActive)
	require.NoError(t, err)

	id := uuid.NewString()

	transfer, err := testRepo.Create(context.Background(), domain.Transfer{
		ID:                 id,
		SourceAccount:      source.Number,
		DestinationAccount: destination.Number,
		Amount:             "100.00",
		Currency:           currencypkg.USD,
		ReferenceNumber:    "TRF-" + randompkg.String(12),
		CreatedBy:          randompkg.Owner(),
	})
	require.NoError(t, err)
	require.Equal(t, domain.TransferPending, transfer.Status)
	require.NotZero(t, transfer.CreatedAt)
	require.Nil(t, transfer.CompletedAt)

	return transfer
}

func TestCreate(t *testing.T) {
	createRandomTransfer(t)
}

func TestCreateUnknownAccount(t *testing.T) {
	_, err := testRepo.Create(context.Background(), domain.Transfer{
		ID:                 uuid.NewString(),
		SourceAccount:      "0000000000",
		DestinationAccount: "0000000001",
		Amount:             "100.00",
		Currency:           currencypkg.USD,
		ReferenceNumber:    "TRF-" + randompkg.String(12),
	})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestGet(t *testing.T) {
	transfer := createRandomTransfer(t)

	got, err := testRepo.Get(context.Background(), transfer.ID)
	require.NoError(t, err)
	require.Equal(t, transfer.ID, got.ID)
	require.Equal(t, transfer.SourceAccount, got.SourceAccount)
	require.Equal(t, transfer.Amount, got.Amount)

	_, err = testRepo.Get(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, domain.ErrTransferNotFound)
}

func TestTransitionStatus(t *testing.T) {
	transfer := createRandomTransfer(t)

	processing, err := testRepo.TransitionStatus(context.Background(),
		transfer.ID, domain.TransferPending, domain.TransferProcessing, "")
	require.NoError(t, err)
	require.Equal(t, domain.TransferProcessing, processing.Status)
	require.Nil(t, processing.CompletedAt)

	completed, err := testRepo.TransitionStatus(context.Background(),
		transfer.ID, domain.TransferProcessing, domain.TransferCompleted, "")
	require.NoError(t, err)
	require.Equal(t, domain.TransferCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)

	// Terminal records never change.
	_, err = testRepo.TransitionStatus(context.Background(),
		transfer.ID, domain.TransferCompleted, domain.TransferFailed, "late failure")
	require.ErrorIs(t, err, domain.ErrTransferInvalidState)
}

func TestTransitionStatusStaleFrom(t *testing.T) {
	transfer := createRandomTransfer(t)

	_, err := testRepo.TransitionStatus(context.Background(),
		transfer.ID, domain.TransferPending, domain.TransferCancelled, "cancelled by user")
	require.NoError(t, err)

	// A second actor still holding the PENDING snapshot loses the race.
	_, err = testRepo.TransitionStatus(context.Background(),
		transfer.ID, domain.TransferPending, domain.TransferProcessing, "")
	require.ErrorIs(t, err, domain.ErrTransferInvalidState)
}

func TestTransitionStatusNotFound(t *testing.T) {
	_, err := testRepo.TransitionStatus(context.Background(),
		uuid.NewString(), domain.TransferPending, domain.TransferProcessing, "")
	require.ErrorIs(t, err, domain.ErrTransferNotFound)
}
