package fundlockservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/petrbank/ledger-core/internal/domain"
	"github.com/petrbank/ledger-core/pkg/currencypkg"
	"github.com/petrbank/ledger-core/pkg/randompkg"
)

func TestLock(t *testing.T) {
	accountNumber := randompkg.AccountNumber()
	referenceID := randompkg.Reference()
	lockID := uuid.NewString()

	lock := domain.FundLock{
		ID:            lockID,
		AccountNumber: accountNumber,
		Amount:        "200.00",
		LockType:      "DEPOSIT",
		ReferenceID:   referenceID,
		Status:        domain.LockStatusLocked,
		CreatedAt:     time.Now().Truncate(time.Second).UTC(),
	}

	account := domain.Account{
		Number:     accountNumber,
		Balance:    "1000.00",
		HoldAmount: "200.00",
		Currency:   currencypkg.USD,
		Status:     domain.StatusActive,
	}

	testCases := []struct {
		name          string
		arg           domain.LockFundsParams
		buildStubs    func(repo *MockRepo)
		checkResponse func(res domain.LockFundsResult, err error)
	}{
		{
			name: "OK",
			arg: domain.LockFundsParams{
				AccountNumber: accountNumber,
				Amount:        "200.00",
				LockType:      "DEPOSIT",
				ReferenceID:   referenceID,
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Lock(gomock.Any(), gomock.Any()).
					Times(1).
					Return(lock, account, nil)
			},
			checkResponse: func(res domain.LockFundsResult, err error) {
				require.NoError(t, err)
				require.Equal(t, lockID, res.LockID)
				require.Equal(t, "800.00", res.AvailableBalance)
				require.Equal(t, domain.LockStatusLocked, res.Status)
			},
		},
		{
			name: "InvalidAmount",
			arg: domain.LockFundsParams{
				AccountNumber: accountNumber,
				Amount:        "abc",
				LockType:      "DEPOSIT",
				ReferenceID:   referenceID,
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Lock(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.LockFundsResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name: "NegativeAmount",
			arg: domain.LockFundsParams{
				AccountNumber: accountNumber,
				Amount:        "-5",
				LockType:      "DEPOSIT",
				ReferenceID:   referenceID,
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Lock(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.LockFundsResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrNegativeAmount.Error())
			},
		},
		{
			name: "MissingLockType",
			arg: domain.LockFundsParams{
				AccountNumber: accountNumber,
				Amount:        "200.00",
				ReferenceID:   referenceID,
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Lock(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.LockFundsResult, err error) {
				require.Empty(t, res)
				require.Error(t, err)
			},
		},
		{
			name: "InsufficientFunds",
			arg: domain.LockFundsParams{
				AccountNumber: accountNumber,
				Amount:        "200.00",
				LockType:      "DEPOSIT",
				ReferenceID:   referenceID,
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Lock(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.FundLock{}, domain.Account{}, domain.ErrInsufficientFunds)
			},
			checkResponse: func(res domain.LockFundsResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInsufficientFunds.Error())
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
			service := New(repo)

			tc.buildStubs(repo)

			res, err := service.Lock(context.Background(), tc.arg)
			tc.checkResponse(res, err)
		})
	}
}

func TestUnlock(t *testing.T) {
	t.Parallel()

	lockID := uuid.NewString()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := NewMockRepo(ctrl)
	service := New(repo)

	repo.EXPECT().
		Unlock(gomock.Any(), gomock.Eq(lockID), gomock.Eq("order cancelled")).
		Times(1).
		Return(domain.FundLock{ID: lockID, Status: domain.LockStatusReleased}, nil)

	lock, err := service.Unlock(context.Background(), lockID, "order cancelled")

	require.NoError(t, err)
	require.Equal(t, domain.LockStatusReleased, lock.Status)
}

func TestUnlockByReference(t *testing.T) {
	t.Parallel()

	referenceID := randompkg.Reference()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := NewMockRepo(ctrl)
	service := New(repo)

	repo.EXPECT().
		UnlockByReference(gomock.Any(), gomock.Eq(referenceID), gomock.Any()).
		Times(1).
		Return(domain.FundLock{}, domain.ErrLockNotFound)

	_, err := service.UnlockByReference(context.Background(), referenceID, "cleanup")

	require.EqualError(t, err, domain.ErrLockNotFound.Error())
}
