package services_test

import (
	"context"
	"testing"

	"github.com/finvo/invoice_ledger_app/internal/core/domain"
	"github.com/finvo/invoice_ledger_app/internal/core/glmapping"
	portsrepo "github.com/finvo/invoice_ledger_app/internal/core/ports/repositories"
	"github.com/finvo/invoice_ledger_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	args := m.Called(ctx, accounts)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, organizationID, code string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, organizationID string) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func TestSeedChartOfAccounts(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	svc := services.NewAccountService(accountRepo)

	var seeded []domain.Account
	accountRepo.On("SaveAccounts", mock.Anything, mock.AnythingOfType("[]domain.Account")).
		Run(func(args mock.Arguments) {
			seeded = args.Get(1).([]domain.Account)
		}).
		Return(nil)

	err := svc.SeedChartOfAccounts(context.Background(), testOrgID, "user-1")
	require.NoError(t, err)

	registry := glmapping.Accounts()
	require.Len(t, seeded, len(registry))

	byCode := map[string]domain.Account{}
	for _, account := range seeded {
		assert.Equal(t, testOrgID, account.OrganizationID)
		assert.NotEmpty(t, account.AccountID)
		assert.Equal(t, "user-1", account.CreatedBy)
		byCode[account.Code] = account
	}

	ar, ok := byCode[glmapping.AccountsReceivableCode]
	require.True(t, ok)
	assert.Equal(t, domain.Asset, ar.AccountType)
	assert.Equal(t, domain.Debit, ar.NormalBalance)

	revenue, ok := byCode[glmapping.ServiceRevenueCode]
	require.True(t, ok)
	assert.Equal(t, domain.Revenue, revenue.AccountType)
	assert.Equal(t, domain.Credit, revenue.NormalBalance)

	accountRepo.AssertExpectations(t)
}

func TestGetAccountByCode(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	svc := services.NewAccountService(accountRepo)

	want := &domain.Account{Code: glmapping.CashOnHandCode, Name: "Cash on Hand"}
	accountRepo.On("FindAccountByCode", mock.Anything, testOrgID, glmapping.CashOnHandCode).Return(want, nil)

	got, err := svc.GetAccountByCode(context.Background(), testOrgID, glmapping.CashOnHandCode)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestListAccounts(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	svc := services.NewAccountService(accountRepo)

	chart := []domain.Account{
		{Code: glmapping.CashOnHandCode},
		{Code: glmapping.AccountsReceivableCode},
	}
	accountRepo.On("ListAccounts", mock.Anything, testOrgID).Return(chart, nil)

	got, err := svc.ListAccounts(context.Background(), testOrgID)
	require.NoError(t, err)
	assert.Equal(t, chart, got)
}
