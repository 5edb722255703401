package balancerepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
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

func createRandomAccount(t *testing.T, balance string) domain.Account {
	t.Helper()

	account, err := testLedgerRepo.Create(context.Background(),
		randompkg.AccountNumber(), balance, currencypkg.USD, domain.StatusActive)
	require.NoError(t, err)
	require.NotEmpty(t, account)
	require.Equal(t, balance, account.Balance)
	require.Equal(t, "0.00", account.HoldAmount)
	require.NotZero(t, account.CreatedAt)

	return account
}

func TestDebit(t *testing.T) {
	account := createRandomAccount(t, "1000.00")

	arg := domain.BalanceOperationParams{
		AccountNumber: account.Number,
		Amount:        "100.00",
		Reference:     randompkg.Reference(),
		Actor:         randompkg.Owner(),
		Description:   "test debit",
	}

	entry, err := testRepo.Debit(context.Background(), arg)
	require.NoError(t, err)
	require.Equal(t, domain.OperationDebit, entry.Operation)
	require.Equal(t, "1000.00", entry.PreviousBalance)
	require.Equal(t, "900.00", entry.NewBalance)
	require.Equal(t, "900.00", entry.AvailableBalance)
	require.Equal(t, arg.Reference, entry.Reference)
	require.Equal(t, arg.Actor, entry.Actor)
	require.NotZero(t, entry.ID)

	got, err := testRepo.GetAccount(context.Background(), account.Number)
	require.NoError(t, err)
	require.Equal(t, "900.00", got.Balance)
}

func TestDebitDuplicateReference(t *testing.T) {
	account := createRandomAccount(t, "1000.00")

	arg := domain.BalanceOperationParams{
		AccountNumber: account.Number,
		Amount:        "100.00",
		Reference:     randompkg.Reference(),
	}

	_, err := testRepo.Debit(context.Background(), arg)
	require.NoError(t, err)

	_, err = testRepo.Debit(context.Background(), arg)
	require.ErrorIs(t, err, domain.ErrDuplicateReference)

	// The balance must have moved exactly once.
	got, err := testRepo.GetAccount(context.Background(), account.Number)
	require.NoError(t, err)
	require.Equal(t, "900.00", got.Balance)

	entry, err := testRepo.GetEntryByReference(context.Background(), arg.Reference)
	require.NoError(t, err)
	require.Equal(t, domain.OperationDebit, entry.Operation)
}

func TestDebitInsufficientFunds(t *testing.T) {
	account := createRandomAccount(t, "50.00")

	_, err := testRepo.Debit(context.Background(), domain.BalanceOperationParams{
		AccountNumber: account.Number,
		Amount:        "100.00",
		Reference:     randompkg.Reference(),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	got, err := testRepo.GetAccount(context.Background(), account.Number)
	require.NoError(t, err)
	require.Equal(t, "50.00", got.Balance)
}

func TestDebitFrozenAccount(t *testing.T) {
	account := createRandomAccount(t, "1000.00")

	_, err := testLedgerRepo.SetStatus(context.Background(), account.Number, domain.StatusFrozen)
	require.NoError(t, err)

	_, err = testRepo.Debit(context.Background(), domain.BalanceOperationParams{
		AccountNumber: account.Number,
		Amount:        "100.00",
		Reference:     randompkg.Reference(),
	})
	require.ErrorIs(t, err, domain.ErrAccountNotEligible)
}

func TestCreditDormantAccount(t *testing.T) {
	account := createRandomAccount(t, "1000.00")

	_, err := testLedgerRepo.SetStatus(context.Background(), account.Number, domain.StatusDormant)
	require.NoError(t, err)

	// Dormant accounts still accept credits.
	entry, err := testRepo.Credit(context.Background(), domain.BalanceOperationParams{
		AccountNumber: account.Number,
		Amount:        "100.00",
		Reference:     randompkg.Reference(),
	})
	require.NoError(t, err)
	require.Equal(t, "1100.00", entry.NewBalance)

	// But no debits.
	_, err = testRepo.Debit(context.Background(), domain.BalanceOperationParams{
		AccountNumber: account.Number,
		Amount:        "100.00",
		Reference:     randompkg.Reference(),
	})
	require.ErrorIs(t, err, domain.ErrAccountNotEligible)
}

func TestHoldAndReleaseHold(t *testing.T) {
	account := createRandomAccount(t, "1000.00")

	hold, err := testRepo.Hold(context.Background(), domain.BalanceOperationParams{
		AccountNumber: account.Number,
		Amount:        "300.00",
		Reference:     randompkg.Reference(),
	})
	require.NoError(t, err)
	require.Equal(t, "1000.00", hold.NewBalance)
	require.Equal(t, "300.00", hold.HoldAmount)
	require.Equal(t, "700.00", hold.AvailableBalance)

	// A debit above the available balance must bounce even though the
	// nominal balance covers it.
	_, err = testRepo.Debit(context.Background(), domain.BalanceOperationParams{
		AccountNumber: account.Number,
		Amount:        "800.00",
		Reference:     randompkg.Reference(),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// Releasing more than is held is invalid.
	_, err = testRepo.ReleaseHold(context.Background(), domain.BalanceOperationParams{
		AccountNumber: account.Number,
		Amount:        "400.00",
		Reference:     randompkg.Reference(),
	})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	release, err := testRepo.ReleaseHold(context.Background(), domain.BalanceOperationParams{
		AccountNumber: account.Number,
		Amount:        "300.00",
		Reference:     randompkg.Reference(),
	})
	require.NoError(t, err)
	require.Equal(t, "0.00", release.HoldAmount)
	require.Equal(t, "1000.00", release.AvailableBalance)
}

func TestConcurrentDebits(t *testing.T) {
	account := createRandomAccount(t, "1000.00")

	const n = 10

	var wg sync.WaitGroup

	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := testRepo.Debit(context.Background(), domain.BalanceOperationParams{
				AccountNumber: account.Number,
				Amount:        "10.00",
				Reference:     randompkg.Reference(),
			})
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	got, err := testRepo.GetAccount(context.Background(), account.Number)
	require.NoError(t, err)

	want := decimal.RequireFromString("1000.00").
		Sub(decimal.RequireFromString("10.00").Mul(decimal.NewFromInt(n)))
	require.Equal(t, want.StringFixed(2), got.Balance)
}
