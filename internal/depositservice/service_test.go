package depositservice

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/petrbank/ledger-core/internal/domain"
	"github.com/petrbank/ledger-core/pkg/randompkg"
)

func TestOpen(t *testing.T) {
	accountNumber := randompkg.AccountNumber()

	arg := domain.OpenDepositParams{
		AccountNumber: accountNumber,
		Principal:     "500.00",
		TermMonths:    12,
		RatePercent:   "4.50",
	}

	testCases := []struct {
		name          string
		arg           domain.OpenDepositParams
		buildStubs    func(repo *MockRepo, locks *MockLockRegistry)
		checkResponse func(res domain.Deposit, err error)
	}{
		{
			name: "OK",
			arg:  arg,
			buildStubs: func(repo *MockRepo, locks *MockLockRegistry) {
				locks.EXPECT().
					Lock(gomock.Any(), gomock.Any()).
					Times(1).
					DoAndReturn(func(_ context.Context, p domain.LockFundsParams) (domain.LockFundsResult, error) {
						require.Equal(t, accountNumber, p.AccountNumber)
						require.Equal(t, "500.00", p.Amount)
						require.Equal(t, "DEPOSIT", p.LockType)
						require.NotEmpty(t, p.ReferenceID)

						return domain.LockFundsResult{
							LockID:        uuid.NewString(),
							AccountNumber: accountNumber,
							LockedAmount:  p.Amount,
							Status:        domain.LockStatusLocked,
						}, nil
					})
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					DoAndReturn(func(_ context.Context, d domain.Deposit) (domain.Deposit, error) {
						d.Status = domain.DepositActive
						return d, nil
					})
			},
			checkResponse: func(res domain.Deposit, err error) {
				require.NoError(t, err)
				require.Equal(t, domain.DepositActive, res.Status)
				require.Equal(t, "500.00", res.Principal)
				require.NotEmpty(t, res.ID)
			},
		},
		{
			name: "InvalidPrincipal",
			arg: domain.OpenDepositParams{
				AccountNumber: accountNumber,
				Principal:     "abc",
				TermMonths:    12,
			},
			buildStubs: func(repo *MockRepo, locks *MockLockRegistry) {
				locks.EXPECT().Lock(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Deposit, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name: "NegativePrincipal",
			arg: domain.OpenDepositParams{
				AccountNumber: accountNumber,
				Principal:     "-500",
				TermMonths:    12,
			},
			buildStubs: func(repo *MockRepo, locks *MockLockRegistry) {
				locks.EXPECT().Lock(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Deposit, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrNegativeAmount.Error())
			},
		},
		{
			name: "ZeroTerm",
			arg: domain.OpenDepositParams{
				AccountNumber: accountNumber,
				Principal:     "500.00",
				TermMonths:    0,
			},
			buildStubs: func(repo *MockRepo, locks *MockLockRegistry) {
				locks.EXPECT().Lock(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Deposit, err error) {
				require.Empty(t, res)
				require.Error(t, err)
			},
		},
		{
			name: "LockFails",
			arg:  arg,
			buildStubs: func(repo *MockRepo, locks *MockLockRegistry) {
				locks.EXPECT().
					Lock(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.LockFundsResult{}, domain.ErrInsufficientFunds)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Deposit, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInsufficientFunds.Error())
			},
		},
		{
			name: "CreateFailsRollsBackInReverse",
			arg:  arg,
			buildStubs: func(repo *MockRepo, locks *MockLockRegistry) {
				locks.EXPECT().
					Lock(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.LockFundsResult{Status: domain.LockStatusLocked}, nil)

				createErr := errors.New("insert failed")
				gomock.InOrder(
					repo.EXPECT().
						Create(gomock.Any(), gomock.Any()).
						Times(1).
						Return(domain.Deposit{}, createErr),
					repo.EXPECT().
						Delete(gomock.Any(), gomock.Any()).
						Times(1).
						Return(nil),
					locks.EXPECT().
						UnlockByReference(gomock.Any(), gomock.Any(), gomock.Any()).
						Times(1).
						Return(domain.FundLock{Status: domain.LockStatusReleased}, nil),
				)
			},
			checkResponse: func(res domain.Deposit, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, "insert failed")
			},
		},
		{
			name: "RollbackUnlockFailureIsSwallowed",
			arg:  arg,
			buildStubs: func(repo *MockRepo, locks *MockLockRegistry) {
				locks.EXPECT().
					Lock(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.LockFundsResult{Status: domain.LockStatusLocked}, nil)

				createErr := errors.New("insert failed")
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Deposit{}, createErr)
				repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil)
				locks.EXPECT().
					UnlockByReference(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.FundLock{}, domain.ErrConcurrencyConflict)
			},
			checkResponse: func(res domain.Deposit, err error) {
				// The original failure surfaces, not the rollback's.
				require.EqualError(t, err, "insert failed")
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := NewMockRepo(ctrl)
			locks := NewMockLockRegistry(ctrl)
			service := New(repo, locks)

			tc.buildStubs(repo, locks)

			res, err := service.Open(context.Background(), tc.arg)
			tc.checkResponse(res, err)
		})
	}
}

func TestClose(t *testing.T) {
	depositID := uuid.NewString()

	active := domain.Deposit{
		ID:            depositID,
		AccountNumber: randompkg.AccountNumber(),
		Principal:     "500.00",
		TermMonths:    12,
		Status:        domain.DepositActive,
	}

	closed := active
	closed.Status = domain.DepositClosed

	testCases := []struct {
		name          string
		buildStubs    func(repo *MockRepo, locks *MockLockRegistry)
		checkResponse func(res domain.Deposit, err error)
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo, locks *MockLockRegistry) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(depositID)).
					Times(1).
					Return(active, nil)
				locks.EXPECT().
					UnlockByReference(gomock.Any(), gomock.Eq(depositID), gomock.Any()).
					Times(1).
					Return(domain.FundLock{Status: domain.LockStatusReleased}, nil)
				repo.EXPECT().
					Close(gomock.Any(), gomock.Eq(depositID)).
					Times(1).
					Return(closed, nil)
			},
			checkResponse: func(res domain.Deposit, err error) {
				require.NoError(t, err)
				require.Equal(t, domain.DepositClosed, res.Status)
			},
		},
		{
			name: "LockAlreadyReleased",
			buildStubs: func(repo *MockRepo, locks *MockLockRegistry) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(depositID)).
					Times(1).
					Return(active, nil)
				locks.EXPECT().
					UnlockByReference(gomock.Any(), gomock.Eq(depositID), gomock.Any()).
					Times(1).
					Return(domain.FundLock{}, domain.ErrLockNotFound)
				repo.EXPECT().
					Close(gomock.Any(), gomock.Eq(depositID)).
					Times(1).
					Return(closed, nil)
			},
			checkResponse: func(res domain.Deposit, err error) {
				require.NoError(t, err)
				require.Equal(t, domain.DepositClosed, res.Status)
			},
		},
		{
			name: "AlreadyClosed",
			buildStubs: func(repo *MockRepo, locks *MockLockRegistry) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(depositID)).
					Times(1).
					Return(closed, nil)
				locks.EXPECT().UnlockByReference(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Deposit, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrDepositNotActive.Error())
			},
		},
		{
			name: "UnlockFails",
			buildStubs: func(repo *MockRepo, locks *MockLockRegistry) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(depositID)).
					Times(1).
					Return(active, nil)
				locks.EXPECT().
					UnlockByReference(gomock.Any(), gomock.Eq(depositID), gomock.Any()).
					Times(1).
					Return(domain.FundLock{}, domain.ErrConcurrencyConflict)
				repo.EXPECT().Close(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Deposit, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrConcurrencyConflict.Error())
			},
		},
		{
			name: "NotFound",
			buildStubs: func(repo *MockRepo, locks *MockLockRegistry) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(depositID)).
					Times(1).
					Return(domain.Deposit{}, domain.ErrDepositNotFound)
			},
			checkResponse: func(res domain.Deposit, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrDepositNotFound.Error())
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := NewMockRepo(ctrl)
			locks := NewMockLockRegistry(ctrl)
			service := New(repo, locks)

			tc.buildStubs(repo, locks)

			res, err := service.Close(context.Background(), depositID)
			tc.checkResponse(res, err)
		})
	}
}
