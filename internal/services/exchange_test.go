package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-provider-wallet/internal/models"
	"github.com/sbilibin2017/gw-provider-wallet/internal/repositories"
	"github.com/sbilibin2017/gw-provider-wallet/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exchangeMocks struct {
	walletRead  *services.MockWalletReader
	walletWrite *services.MockWalletWriter
	txWrite     *services.MockTransactionWriter
	reader      *services.MockExchangeRateForCurrencyReader
	cashReader  *services.MockExchangeRateForCurrencyCashReader
}

func newExchangeService(ctrl *gomock.Controller) (*services.ExchangeService, exchangeMocks) {
	m := exchangeMocks{
		walletRead:  services.NewMockWalletReader(ctrl),
		walletWrite: services.NewMockWalletWriter(ctrl),
		txWrite:     services.NewMockTransactionWriter(ctrl),
		reader:      services.NewMockExchangeRateForCurrencyReader(ctrl),
		cashReader:  services.NewMockExchangeRateForCurrencyCashReader(ctrl),
	}
	svc := services.NewExchangeService(m.walletRead, m.walletWrite, m.txWrite, m.reader, m.cashReader)
	return svc, m
}

func TestExchangeService_Exchange_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := newExchangeService(ctrl)

	ctx := context.Background()
	userID := uuid.New()
	fromWallet := &models.WalletDB{WalletID: uuid.New(), UserID: userID, Currency: models.NGN}
	toWallet := &models.WalletDB{WalletID: uuid.New(), UserID: userID, Currency: models.USD}

	// 100.00 NGN at 0.0005 becomes 0.05 USD.
	amount := models.Amount(10000)

	m.cashReader.EXPECT().GetExchangeRateForCurrency(ctx, models.NGN, models.USD).Return(float32(0.0005), nil)
	m.walletRead.EXPECT().GetByUserAndCurrency(ctx, userID, models.NGN).Return(fromWallet, nil)
	m.walletWrite.EXPECT().Debit(ctx, fromWallet.WalletID, models.NGN, amount).Return(nil)
	m.walletRead.EXPECT().GetByUserAndCurrency(ctx, userID, models.USD).Return(toWallet, nil)
	m.walletWrite.EXPECT().Credit(ctx, toWallet.WalletID, models.USD, models.Amount(5)).Return(nil)
	m.txWrite.EXPECT().Save(ctx, gomock.Any()).Return(nil)
	// The snapshot predates the uncommitted legs; the response must still
	// reflect the exchange that just ran.
	m.walletRead.EXPECT().ListByUser(ctx, userID).Return([]models.WalletDB{
		{NGN: models.Amount(100000)},
		{USD: models.Amount(0)},
	}, nil)

	exchanged, balance, err := svc.Exchange(ctx, userID, models.NGN, models.USD, amount)
	require.NoError(t, err)
	assert.Equal(t, models.Amount(5), exchanged)
	assert.Equal(t, 900.0, balance.NGN)
	assert.Equal(t, 0.05, balance.USD)
}

func TestExchangeService_Exchange_CreatesTargetWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := newExchangeService(ctrl)

	ctx := context.Background()
	userID := uuid.New()
	survivingID := uuid.New()
	fromWallet := &models.WalletDB{WalletID: uuid.New(), UserID: userID, Currency: models.NGN}
	amount := models.Amount(10000)

	m.cashReader.EXPECT().GetExchangeRateForCurrency(ctx, models.NGN, models.USD).Return(float32(0.0005), nil)
	m.walletRead.EXPECT().GetByUserAndCurrency(ctx, userID, models.NGN).Return(fromWallet, nil)
	m.walletWrite.EXPECT().Debit(ctx, fromWallet.WalletID, models.NGN, amount).Return(nil)
	m.walletRead.EXPECT().GetByUserAndCurrency(ctx, userID, models.USD).Return(nil, nil)
	// A concurrent create already took the (user, currency) slot: Save hands
	// back the surviving row's id and the credit must land on that row.
	m.walletWrite.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, w *models.WalletDB) error {
		assert.Equal(t, userID, w.UserID)
		assert.Equal(t, models.USD, w.Currency)
		w.WalletID = survivingID
		return nil
	})
	m.walletWrite.EXPECT().Credit(ctx, survivingID, models.USD, models.Amount(5)).Return(nil)
	m.txWrite.EXPECT().Save(ctx, gomock.Any()).Return(nil)
	m.walletRead.EXPECT().ListByUser(ctx, userID).Return([]models.WalletDB{
		{NGN: models.Amount(100000)},
	}, nil)

	exchanged, balance, err := svc.Exchange(ctx, userID, models.NGN, models.USD, amount)
	require.NoError(t, err)
	assert.Equal(t, models.Amount(5), exchanged)
	assert.Equal(t, 900.0, balance.NGN)
	assert.Equal(t, 0.05, balance.USD)
}

func TestExchangeService_Exchange_CacheMissWarmsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := newExchangeService(ctrl)

	ctx := context.Background()
	userID := uuid.New()
	fromWallet := &models.WalletDB{WalletID: uuid.New(), UserID: userID, Currency: models.USD}
	toWallet := &models.WalletDB{WalletID: uuid.New(), UserID: userID, Currency: models.GBP}

	m.cashReader.EXPECT().GetExchangeRateForCurrency(ctx, models.USD, models.GBP).
		Return(float32(0), errors.New("cache miss"))
	m.reader.EXPECT().GetExchangeRateForCurrency(ctx, models.USD, models.GBP).Return(float32(0.8), nil)
	m.cashReader.EXPECT().SetExchangeRateForCurrency(ctx, models.USD, models.GBP, float32(0.8)).Return(nil)

	m.walletRead.EXPECT().GetByUserAndCurrency(ctx, userID, models.USD).Return(fromWallet, nil)
	m.walletWrite.EXPECT().Debit(ctx, fromWallet.WalletID, models.USD, models.Amount(1000)).Return(nil)
	m.walletRead.EXPECT().GetByUserAndCurrency(ctx, userID, models.GBP).Return(toWallet, nil)
	m.walletWrite.EXPECT().Credit(ctx, toWallet.WalletID, models.GBP, models.Amount(800)).Return(nil)
	m.txWrite.EXPECT().Save(ctx, gomock.Any()).Return(nil)
	m.walletRead.EXPECT().ListByUser(ctx, userID).Return(nil, nil)

	exchanged, _, err := svc.Exchange(ctx, userID, models.USD, models.GBP, models.Amount(1000))
	require.NoError(t, err)
	assert.Equal(t, models.Amount(800), exchanged)
}

func TestExchangeService_Exchange_InsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := newExchangeService(ctrl)

	ctx := context.Background()
	userID := uuid.New()
	fromWallet := &models.WalletDB{WalletID: uuid.New(), UserID: userID, Currency: models.NGN}

	m.cashReader.EXPECT().GetExchangeRateForCurrency(ctx, models.NGN, models.USD).Return(float32(0.0005), nil)
	m.walletRead.EXPECT().GetByUserAndCurrency(ctx, userID, models.NGN).Return(fromWallet, nil)
	m.walletWrite.EXPECT().Debit(ctx, fromWallet.WalletID, models.NGN, models.Amount(10000)).
		Return(repositories.ErrInsufficientBalance)

	_, _, err := svc.Exchange(ctx, userID, models.NGN, models.USD, models.Amount(10000))
	assert.ErrorIs(t, err, services.ErrInsufficientFunds)
}

func TestExchangeService_Exchange_NoSourceWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := newExchangeService(ctrl)

	ctx := context.Background()
	userID := uuid.New()

	m.cashReader.EXPECT().GetExchangeRateForCurrency(ctx, models.NGN, models.USD).Return(float32(0.0005), nil)
	m.walletRead.EXPECT().GetByUserAndCurrency(ctx, userID, models.NGN).Return(nil, nil)

	_, _, err := svc.Exchange(ctx, userID, models.NGN, models.USD, models.Amount(10000))
	assert.ErrorIs(t, err, services.ErrInsufficientFunds)
}

func TestExchangeService_Exchange_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _ := newExchangeService(ctrl)

	ctx := context.Background()
	userID := uuid.New()

	_, _, err := svc.Exchange(ctx, userID, "XXX", models.USD, models.Amount(100))
	assert.ErrorIs(t, err, models.ErrUnsupportedCurrency)

	_, _, err = svc.Exchange(ctx, userID, models.NGN, models.NGN, models.Amount(100))
	assert.Error(t, err)

	_, _, err = svc.Exchange(ctx, userID, models.NGN, models.USD, models.Amount(0))
	assert.Error(t, err)
}

func TestExchangeService_Exchange_RateUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := newExchangeService(ctrl)

	ctx := context.Background()
	userID := uuid.New()
	rateErr := errors.New("rates service down")

	m.cashReader.EXPECT().GetExchangeRateForCurrency(ctx, models.NGN, models.USD).
		Return(float32(0), errors.New("cache miss"))
	m.reader.EXPECT().GetExchangeRateForCurrency(ctx, models.NGN, models.USD).Return(float32(0), rateErr)

	_, _, err := svc.Exchange(ctx, userID, models.NGN, models.USD, models.Amount(100))
	assert.ErrorIs(t, err, rateErr)
}
