package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-provider-wallet/internal/facades"
	"github.com/sbilibin2017/gw-provider-wallet/internal/models"
	"github.com/sbilibin2017/gw-provider-wallet/internal/repositories"
	"github.com/sbilibin2017/gw-provider-wallet/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type walletMocks struct {
	users       *services.MockUserGetter
	assigner    *services.MockCustomerAssigner
	walletRead  *services.MockWalletReader
	walletWrite *services.MockWalletWriter
	txWrite     *services.MockTransactionWriter
	provider    *services.MockProviderAPI
}

func newWalletService(ctrl *gomock.Controller) (*services.WalletService, walletMocks) {
	m := walletMocks{
		users:       services.NewMockUserGetter(ctrl),
		assigner:    services.NewMockCustomerAssigner(ctrl),
		walletRead:  services.NewMockWalletReader(ctrl),
		walletWrite: services.NewMockWalletWriter(ctrl),
		txWrite:     services.NewMockTransactionWriter(ctrl),
		provider:    services.NewMockProviderAPI(ctrl),
	}
	svc := services.NewWalletService(m.users, m.assigner, m.walletRead, m.walletWrite, m.txWrite, m.provider, nil)
	return svc, m
}

func TestWalletService_EnsureCustomer(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	existing := "cus_existing"

	t.Run("existing customer id is reused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := newWalletService(ctrl)

		m.users.EXPECT().GetByID(ctx, userID).Return(&models.UserDB{UserID: userID, CustomerID: &existing}, nil)

		got, err := svc.EnsureCustomer(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, existing, got)
	})

	t.Run("first use creates and assigns", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := newWalletService(ctrl)

		m.users.EXPECT().GetByID(ctx, userID).Return(&models.UserDB{
			UserID: userID, FirstName: "Ada", LastName: "Eze", Email: "ada@example.com",
		}, nil)
		m.provider.EXPECT().CreateCustomer(ctx, "Ada", "Eze", "ada@example.com", "NG").Return("cus_new", nil)
		m.assigner.EXPECT().SetCustomerID(ctx, userID, "cus_new").Return(nil)

		got, err := svc.EnsureCustomer(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "cus_new", got)
	})

	t.Run("concurrent assignment keeps the winner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := newWalletService(ctrl)

		winner := "cus_winner"
		m.users.EXPECT().GetByID(ctx, userID).Return(&models.UserDB{UserID: userID}, nil)
		m.provider.EXPECT().CreateCustomer(ctx, gomock.Any(), gomock.Any(), gomock.Any(), "NG").Return("cus_loser", nil)
		m.assigner.EXPECT().SetCustomerID(ctx, userID, "cus_loser").Return(repositories.ErrCustomerIDAssigned)
		m.users.EXPECT().GetByID(ctx, userID).Return(&models.UserDB{UserID: userID, CustomerID: &winner}, nil)

		got, err := svc.EnsureCustomer(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, winner, got)
	})

	t.Run("unknown user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := newWalletService(ctrl)

		m.users.EXPECT().GetByID(ctx, userID).Return(nil, nil)

		_, err := svc.EnsureCustomer(ctx, userID)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
	})
}

func TestWalletService_Withdraw_InsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := newWalletService(ctrl)

	ctx := context.Background()
	userID := uuid.New()
	walletID := uuid.New()
	customerID := "cus_1"

	m.users.EXPECT().GetByID(ctx, userID).Return(&models.UserDB{UserID: userID, CustomerID: &customerID}, nil).Times(2)
	m.walletRead.EXPECT().GetByUserAndCurrency(ctx, userID, models.NGN).
		Return(&models.WalletDB{WalletID: walletID, UserID: userID, Currency: models.NGN}, nil)
	m.walletWrite.EXPECT().Debit(ctx, walletID, models.NGN, models.Amount(100000)).
		Return(repositories.ErrInsufficientBalance)

	// The provider is never called; no transaction is recorded.
	_, err := svc.Withdraw(ctx, userID, models.Amount(100000), models.NGN,
		services.WithdrawalDestination{BankCode: "044", AccountNumber: "0123456789"}, "")
	assert.ErrorIs(t, err, services.ErrInsufficientFunds)
}

func TestWalletService_Withdraw_ProviderFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := newWalletService(ctrl)

	ctx := context.Background()
	userID := uuid.New()
	walletID := uuid.New()
	customerID := "cus_1"
	amount := models.Amount(50000)

	m.users.EXPECT().GetByID(ctx, userID).Return(&models.UserDB{
		UserID: userID, CustomerID: &customerID, FirstName: "Ada", LastName: "Eze",
	}, nil).Times(2)
	m.walletRead.EXPECT().GetByUserAndCurrency(ctx, userID, models.NGN).
		Return(&models.WalletDB{WalletID: walletID, UserID: userID, Currency: models.NGN}, nil)
	m.walletWrite.EXPECT().Debit(ctx, walletID, models.NGN, amount).Return(nil)
	m.provider.EXPECT().CreateTransfer(ctx, gomock.Any()).
		Return(nil, &facades.APIError{StatusCode: 400, Message: "invalid account"})
	m.walletWrite.EXPECT().Credit(ctx, walletID, models.NGN, amount).Return(nil)
	m.txWrite.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, tx *models.TransactionDB) error {
		assert.Equal(t, models.TxTypeWithdrawal, tx.Type)
		assert.Equal(t, models.TxStatusFailed, tx.Status)
		return nil
	})

	_, err := svc.Withdraw(ctx, userID, amount, models.NGN,
		services.WithdrawalDestination{BankCode: "044", AccountNumber: "0123456789"}, "rent")

	var apiErr *facades.APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestWalletService_Withdraw_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := newWalletService(ctrl)

	ctx := context.Background()
	userID := uuid.New()
	walletID := uuid.New()
	customerID := "cus_1"
	amount := models.Amount(50000)

	m.users.EXPECT().GetByID(ctx, userID).Return(&models.UserDB{
		UserID: userID, CustomerID: &customerID, FirstName: "Ada", LastName: "Eze",
	}, nil).Times(2)
	m.walletRead.EXPECT().GetByUserAndCurrency(ctx, userID, models.NGN).
		Return(&models.WalletDB{WalletID: walletID, UserID: userID, Currency: models.NGN}, nil)
	m.walletWrite.EXPECT().Debit(ctx, walletID, models.NGN, amount).Return(nil)
	m.provider.EXPECT().CreateTransfer(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req facades.TransferRequest) (*facades.Transfer, error) {
			assert.Equal(t, customerID, req.CustomerID)
			assert.Equal(t, int64(50000), req.Amount)
			assert.Equal(t, models.NGN, req.Currency)
			assert.Equal(t, "044", req.Destination.BankCode)
			assert.Equal(t, "Ada Eze", req.Destination.Name)
			return &facades.Transfer{ID: "trf_1", Reference: "ref_1", Status: "pending"}, nil
		})
	m.txWrite.EXPECT().Save(ctx, gomock.Any()).Return(nil)

	tx, err := svc.Withdraw(ctx, userID, amount, models.NGN,
		services.WithdrawalDestination{BankCode: "044", AccountNumber: "0123456789"}, "")
	require.NoError(t, err)
	assert.Equal(t, models.TxStatusPending, tx.Status)
	require.NotNil(t, tx.Reference)
	assert.Equal(t, "ref_1", *tx.Reference)
}

func TestWalletService_Withdraw_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _ := newWalletService(ctrl)

	ctx := context.Background()
	userID := uuid.New()
	dest := services.WithdrawalDestination{BankCode: "044", AccountNumber: "0123456789"}

	_, err := svc.Withdraw(ctx, userID, models.Amount(100), "XXX", dest, "")
	assert.ErrorIs(t, err, models.ErrUnsupportedCurrency)

	_, err = svc.Withdraw(ctx, userID, models.Amount(0), models.NGN, dest, "")
	assert.Error(t, err)
}

func TestWalletService_CreateVirtualAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := newWalletService(ctrl)

	ctx := context.Background()
	userID := uuid.New()
	customerID := "cus_1"

	m.users.EXPECT().GetByID(ctx, userID).Return(&models.UserDB{UserID: userID, CustomerID: &customerID}, nil)
	m.provider.EXPECT().CreateVirtualAccount(ctx, customerID, models.NGN).Return(&facades.VirtualAccount{
		ID: "va_1", AccountNumber: "0123456789", BankName: "Test Bank",
	}, nil)
	m.walletRead.EXPECT().GetByUserAndCurrency(ctx, userID, models.NGN).Return(nil, nil)
	m.walletWrite.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, w *models.WalletDB) error {
		assert.Equal(t, userID, w.UserID)
		assert.Equal(t, models.NGN, w.Currency)
		require.NotNil(t, w.AccountNumber)
		assert.Equal(t, "0123456789", *w.AccountNumber)
		return nil
	})

	wallet, err := svc.CreateVirtualAccount(ctx, userID, models.NGN)
	require.NoError(t, err)
	require.NotNil(t, wallet.BankName)
	assert.Equal(t, "Test Bank", *wallet.BankName)
}

func TestWalletService_GetBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := newWalletService(ctrl)

	ctx := context.Background()
	userID := uuid.New()

	m.walletRead.EXPECT().ListByUser(ctx, userID).Return([]models.WalletDB{
		{UserID: userID, Currency: models.NGN, NGN: models.Amount(50000)},
		{UserID: userID, Currency: models.USD, USD: models.Amount(1234)},
	}, nil)

	balance, err := svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, balance.NGN)
	assert.Equal(t, 12.34, balance.USD)
	assert.Equal(t, 0.0, balance.GBP)
}

func TestWalletService_GetBalance_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := newWalletService(ctrl)

	ctx := context.Background()
	userID := uuid.New()
	dbErr := errors.New("db down")

	m.walletRead.EXPECT().ListByUser(ctx, userID).Return(nil, dbErr)

	_, err := svc.GetBalance(ctx, userID)
	assert.ErrorIs(t, err, dbErr)
}
