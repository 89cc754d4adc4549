package services

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-provider-wallet/internal/logger"
	"github.com/sbilibin2017/gw-provider-wallet/internal/models"
	"github.com/sbilibin2017/gw-provider-wallet/internal/repositories"
)

// ExchangeRateForCurrencyReader fetches current exchange rates from an external service
type ExchangeRateForCurrencyReader interface {
	GetExchangeRateForCurrency(ctx context.Context, fromCurrency, toCurrency string) (float32, error)
}

// ExchangeRateForCurrencyCashReader fetches cached exchange rates
type ExchangeRateForCurrencyCashReader interface {
	GetExchangeRateForCurrency(ctx context.Context, fromCurrency, toCurrency string) (float32, error)
	SetExchangeRateForCurrency(ctx context.Context, fromCurrency, toCurrency string, rate float32) error
}

// ExchangeService converts balance between two currencies of the same user.
// Both legs run against the wallet rows inside the request transaction, so a
// failed credit leg never leaves the debit applied.
type ExchangeService struct {
	walletRead  WalletReader
	walletWrite WalletWriter
	txWrite     TransactionWriter
	reader      ExchangeRateForCurrencyReader
	cashReader  ExchangeRateForCurrencyCashReader
}

// NewExchangeService creates a new service instance
func NewExchangeService(
	walletRead WalletReader,
	walletWrite WalletWriter,
	txWrite TransactionWriter,
	reader ExchangeRateForCurrencyReader,
	cashReader ExchangeRateForCurrencyCashReader,
) *ExchangeService {
	return &ExchangeService{
		walletRead:  walletRead,
		walletWrite: walletWrite,
		txWrite:     txWrite,
		reader:      reader,
		cashReader:  cashReader,
	}
}

// rate returns the exchange rate, preferring the cache and falling back to
// the rates service, warming the cache on a miss.
func (svc *ExchangeService) rate(ctx context.Context, fromCurrency, toCurrency string) (float32, error) {
	rate, err := svc.cashReader.GetExchangeRateForCurrency(ctx, fromCurrency, toCurrency)
	if err == nil {
		return rate, nil
	}

	rate, err = svc.reader.GetExchangeRateForCurrency(ctx, fromCurrency, toCurrency)
	if err != nil {
		logger.Log.Error(err)
		return 0, err
	}
	if err := svc.cashReader.SetExchangeRateForCurrency(ctx, fromCurrency, toCurrency, rate); err != nil {
		logger.Log.Error(err)
	}
	return rate, nil
}

// Exchange performs a currency exchange
func (svc *ExchangeService) Exchange(
	ctx context.Context,
	userID uuid.UUID,
	fromCurrency, toCurrency string,
	amount models.Amount,
) (exchanged models.Amount, newBalance *models.CurrencyBalance, err error) {
	if !models.ValidCurrency(fromCurrency) || !models.ValidCurrency(toCurrency) {
		return 0, nil, models.ErrUnsupportedCurrency
	}
	if fromCurrency == toCurrency {
		return 0, nil, errors.New("currencies must differ")
	}
	if !amount.IsPositive() {
		return 0, nil, errors.New("amount must be positive")
	}

	rate, err := svc.rate(ctx, fromCurrency, toCurrency)
	if err != nil {
		return 0, nil, err
	}

	fromWallet, err := svc.walletRead.GetByUserAndCurrency(ctx, userID, fromCurrency)
	if err != nil {
		return 0, nil, err
	}
	if fromWallet == nil {
		return 0, nil, ErrInsufficientFunds
	}

	if err := svc.walletWrite.Debit(ctx, fromWallet.WalletID, fromCurrency, amount); err != nil {
		if errors.Is(err, repositories.ErrInsufficientBalance) {
			return 0, nil, ErrInsufficientFunds
		}
		return 0, nil, err
	}

	// The rate applies to minor units; round half up to the nearest minor unit.
	exchanged = models.Amount(math.Round(float64(amount.Minor()) * float64(rate)))

	toWallet, err := svc.walletRead.GetByUserAndCurrency(ctx, userID, toCurrency)
	if err != nil {
		return 0, nil, err
	}
	if toWallet == nil {
		toWallet = &models.WalletDB{
			WalletID: uuid.New(),
			UserID:   userID,
			Currency: toCurrency,
		}
		// Save resolves a concurrent create to the surviving wallet id.
		if err := svc.walletWrite.Save(ctx, toWallet); err != nil {
			logger.Log.Error(err)
			return 0, nil, err
		}
	}

	if err := svc.walletWrite.Credit(ctx, toWallet.WalletID, toCurrency, exchanged); err != nil {
		logger.Log.Error(err)
		return 0, nil, err
	}

	tx := &models.TransactionDB{
		TransactionID: uuid.New(),
		UserID:        userID,
		Amount:        amount,
		Currency:      fromCurrency,
		Type:          models.TxTypeTransfer,
		Status:        models.TxStatusSuccess,
		Description:   "Exchange " + fromCurrency + " to " + toCurrency,
	}
	if err := svc.txWrite.Save(ctx, tx); err != nil {
		logger.Log.Error(err)
		return 0, nil, err
	}

	wallets, err := svc.walletRead.ListByUser(ctx, userID)
	if err != nil {
		logger.Log.Error(err)
		return 0, nil, err
	}
	var ngn, usd, gbp models.Amount
	for _, w := range wallets {
		ngn += w.NGN
		usd += w.USD
		gbp += w.GBP
	}
	// Both legs are still uncommitted in the request transaction, so the
	// snapshot read from the pool does not include them yet.
	addBalance(&ngn, &usd, &gbp, fromCurrency, -amount)
	addBalance(&ngn, &usd, &gbp, toCurrency, exchanged)
	newBalance = &models.CurrencyBalance{
		NGN: ngn.Major(),
		USD: usd.Major(),
		GBP: gbp.Major(),
	}

	return exchanged, newBalance, nil
}

func addBalance(ngn, usd, gbp *models.Amount, currency string, delta models.Amount) {
	switch currency {
	case models.NGN:
		*ngn += delta
	case models.USD:
		*usd += delta
	case models.GBP:
		*gbp += delta
	}
}
