package accountservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/petrbank/ledger-core/internal/domain"
	"github.com/petrbank/ledger-core/pkg/currencypkg"
	"github.com/petrbank/ledger-core/pkg/randompkg"
)

func TestOpen(t *testing.T) {
	number := randompkg.AccountNumber()

	account := domain.Account{
		Number:     number,
		Balance:    "100.00",
		HoldAmount: "0.00",
		Currency:   currencypkg.USD,
		Status:     domain.StatusActive,
		CreatedAt:  time.Now().Truncate(time.Second).UTC(),
	}

	testCases := []struct {
		name           string
		number         string
		openingBalance string
		currency       string
		buildStubs     func(repo *MockRepo)
		checkResponse  func(res domain.Account, err error)
	}{
		{
			name:           "OK",
			number:         number,
			openingBalance: "100",
			currency:       currencypkg.USD,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Eq(number), gomock.Eq("100.00"),
						gomock.Eq(currencypkg.USD), gomock.Eq(domain.StatusActive)).
					Times(1).
					Return(account, nil)
			},
			checkResponse: func(res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, account, res)
			},
		},
		{
			name:           "GeneratedNumber",
			number:         "",
			openingBalance: "0",
			currency:       currencypkg.USD,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Not(gomock.Eq("")), gomock.Eq("0.00"),
						gomock.Eq(currencypkg.USD), gomock.Eq(domain.StatusActive)).
					Times(1).
					Return(account, nil)
			},
			checkResponse: func(res domain.Account, err error) {
				require.NoError(t, err)
			},
		},
		{
			name:           "UnsupportedCurrency",
			number:         number,
			openingBalance: "100",
			currency:       "RUB",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrCurrencyMismatch.Error())
			},
		},
		{
			name:           "NegativeOpeningBalance",
			number:         number,
			openingBalance: "-100",
			currency:       currencypkg.USD,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name:           "AlreadyExists",
			number:         number,
			openingBalance: "100",
			currency:       currencypkg.USD,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Eq(number), gomock.Eq("100.00"),
						gomock.Eq(currencypkg.USD), gomock.Eq(domain.StatusActive)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountAlreadyExists)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAccountAlreadyExists.Error())
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
			audit := NewMockAuditReader(ctrl)
			service := New(repo, audit)

			tc.buildStubs(repo)

			res, err := service.Open(context.Background(), tc.number, tc.openingBalance, tc.currency)
			tc.checkResponse(res, err)
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	number := randompkg.AccountNumber()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := NewMockRepo(ctrl)
	audit := NewMockAuditReader(ctrl)
	service := New(repo, audit)

	repo.EXPECT().
		Get(gomock.Any(), gomock.Eq(number)).
		Times(1).
		Return(domain.Account{
			Number:     number,
			Balance:    "1000.00",
			HoldAmount: "300.00",
			Currency:   currencypkg.USD,
			Status:     domain.StatusActive,
		}, nil)

	got, err := service.Get(context.Background(), number)

	require.NoError(t, err)
	require.Equal(t, "700.00", got.AvailableBalance)
	require.Equal(t, number, got.Number)
}

func TestStatement(t *testing.T) {
	number := randompkg.AccountNumber()

	entries := []domain.AuditEntry{
		{ID: 1, AccountNumber: number, Operation: domain.OperationCredit},
		{ID: 2, AccountNumber: number, Operation: domain.OperationDebit},
	}

	testCases := []struct {
		name          string
		buildStubs    func(repo *MockRepo, audit *MockAuditReader)
		checkResponse func(res []domain.AuditEntry, err error)
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo, audit *MockAuditReader) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(number)).
					Times(1).
					Return(domain.Account{Number: number}, nil)
				audit.EXPECT().
					ListByAccount(gomock.Any(), gomock.Eq(number), gomock.Eq(int32(50)), gomock.Eq(int32(0))).
					Times(1).
					Return(entries, nil)
			},
			checkResponse: func(res []domain.AuditEntry, err error) {
				require.NoError(t, err)
				require.Len(t, res, 2)
			},
		},
		{
			name: "AccountNotFound",
			buildStubs: func(repo *MockRepo, audit *MockAuditReader) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(number)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				audit.EXPECT().
					ListByAccount(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			checkResponse: func(res []domain.AuditEntry, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAccountNotFound.Error())
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
			audit := NewMockAuditReader(ctrl)
			service := New(repo, audit)

			tc.buildStubs(repo, audit)

			res, err := service.Statement(context.Background(), number, 50, 0)
			tc.checkResponse(res, err)
		})
	}
}
