package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-provider-wallet/internal/facades"
	"github.com/sbilibin2017/gw-provider-wallet/internal/logger"
	"github.com/sbilibin2017/gw-provider-wallet/internal/models"
	"github.com/sbilibin2017/gw-provider-wallet/internal/repositories"
)

// ErrCardNotFound is returned when a card id does not exist or belongs to
// another user.
var ErrCardNotFound = errors.New("card not found")

// CardReader defines card read operations used by services.
type CardReader interface {
	GetByID(ctx context.Context, cardID uuid.UUID) (*models.VirtualCardDB, error)
	ListByWallet(ctx context.Context, walletID uuid.UUID) ([]models.VirtualCardDB, error)
}

// CardWriter defines card write operations used by services.
type CardWriter interface {
	Save(ctx context.Context, card *models.VirtualCardDB) error
	SetFrozen(ctx context.Context, cardID uuid.UUID, frozen bool) error
}

// WalletGetter reads single wallets for ownership checks.
type WalletGetter interface {
	GetByID(ctx context.Context, walletID uuid.UUID) (*models.WalletDB, error)
	GetByUserAndCurrency(ctx context.Context, userID uuid.UUID, currency string) (*models.WalletDB, error)
}

// CardProviderAPI is the outbound provider surface used by card commands.
type CardProviderAPI interface {
	CreateCard(ctx context.Context, customerID, currency, brand string) (*facades.Card, error)
	FundCard(ctx context.Context, cardID string, amount int64) error
	WithdrawFromCard(ctx context.Context, cardID string, amount int64) error
	FreezeCard(ctx context.Context, cardID string) error
	UnfreezeCard(ctx context.Context, cardID string) error
}

// CustomerProvisioner lazily provisions the provider customer for a user.
type CustomerProvisioner interface {
	EnsureCustomer(ctx context.Context, userID uuid.UUID) (string, error)
}

// CardService issues and manages virtual cards. Card funds live on the
// wallet: funding debits the wallet before the provider moves money onto the
// card, and a card withdrawal credits the wallet after the provider confirms.
type CardService struct {
	cardRead    CardReader
	cardWrite   CardWriter
	wallets     WalletGetter
	walletWrite WalletWriter
	txWrite     TransactionWriter
	provider    CardProviderAPI
	customers   CustomerProvisioner
}

// NewCardService creates a new CardService.
func NewCardService(
	cardRead CardReader,
	cardWrite CardWriter,
	wallets WalletGetter,
	walletWrite WalletWriter,
	txWrite TransactionWriter,
	provider CardProviderAPI,
	customers CustomerProvisioner,
) *CardService {
	return &CardService{
		cardRead:    cardRead,
		cardWrite:   cardWrite,
		wallets:     wallets,
		walletWrite: walletWrite,
		txWrite:     txWrite,
		provider:    provider,
		customers:   customers,
	}
}

// IssueCard creates a virtual card on the user's wallet for the currency.
// The card starts inactive; the provider's issuance webhook activates it.
func (s *CardService) IssueCard(ctx context.Context, userID uuid.UUID, currency, brand string) (*models.VirtualCardDB, error) {
	if !models.ValidCurrency(currency) {
		return nil, models.ErrUnsupportedCurrency
	}
	if brand == "" {
		brand = "VISA"
	}

	customerID, err := s.customers.EnsureCustomer(ctx, userID)
	if err != nil {
		return nil, err
	}

	wallet, err := s.wallets.GetByUserAndCurrency(ctx, userID, currency)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, ErrWalletNotFound
	}

	providerCard, err := s.provider.CreateCard(ctx, customerID, currency, brand)
	if err != nil {
		logger.Log.Errorw("failed to issue card", "userID", userID, "currency", currency, "error", err)
		return nil, err
	}

	card := &models.VirtualCardDB{
		CardID:         uuid.New(),
		WalletID:       wallet.WalletID,
		ProviderCardID: providerCard.ID,
		MaskedPan:      providerCard.MaskedPan,
		Currency:       currency,
		Status:         models.CardStatusInactive,
		Frozen:         false,
	}
	if err := s.cardWrite.Save(ctx, card); err != nil {
		logger.Log.Errorw("failed to save card", "userID", userID, "providerCardID", providerCard.ID, "error", err)
		return nil, err
	}

	return card, nil
}

// getOwnedCard loads the card and checks it belongs to one of the user's
// wallets.
func (s *CardService) getOwnedCard(ctx context.Context, userID, cardID uuid.UUID) (*models.VirtualCardDB, *models.WalletDB, error) {
	card, err := s.cardRead.GetByID(ctx, cardID)
	if err != nil {
		return nil, nil, err
	}
	if card == nil {
		return nil, nil, ErrCardNotFound
	}

	wallet, err := s.wallets.GetByID(ctx, card.WalletID)
	if err != nil {
		return nil, nil, err
	}
	if wallet == nil || wallet.UserID != userID {
		return nil, nil, ErrCardNotFound
	}
	return card, wallet, nil
}

// FundCard moves amount from the wallet onto the card. The wallet is debited
// first; a provider failure refunds the debit.
func (s *CardService) FundCard(ctx context.Context, userID, cardID uuid.UUID, amount models.Amount) error {
	if !amount.IsPositive() {
		return errors.New("amount must be positive")
	}

	card, wallet, err := s.getOwnedCard(ctx, userID, cardID)
	if err != nil {
		return err
	}

	if err := s.walletWrite.Debit(ctx, wallet.WalletID, card.Currency, amount); err != nil {
		if errors.Is(err, repositories.ErrInsufficientBalance) {
			return ErrInsufficientFunds
		}
		return err
	}

	if err := s.provider.FundCard(ctx, card.ProviderCardID, amount.Minor()); err != nil {
		logger.Log.Errorw("card funding failed, rolling back debit", "cardID", cardID, "amount", amount, "error", err)
		if cerr := s.walletWrite.Credit(ctx, wallet.WalletID, card.Currency, amount); cerr != nil {
			logger.Log.Errorw("failed to roll back card funding debit", "walletID", wallet.WalletID, "amount", amount, "error", cerr)
		}
		return err
	}

	tx := &models.TransactionDB{
		TransactionID: uuid.New(),
		UserID:        userID,
		Amount:        amount,
		Currency:      card.Currency,
		Type:          models.TxTypeTransfer,
		Status:        models.TxStatusSuccess,
		Description:   "Card funding " + card.MaskedPan,
	}
	if err := s.txWrite.Save(ctx, tx); err != nil {
		logger.Log.Errorw("failed to record card funding", "cardID", cardID, "error", err)
	}
	return nil
}

// WithdrawFromCard moves amount from the card back to the wallet. The
// provider confirms the card-side debit before the wallet is credited.
func (s *CardService) WithdrawFromCard(ctx context.Context, userID, cardID uuid.UUID, amount models.Amount) error {
	if !amount.IsPositive() {
		return errors.New("amount must be positive")
	}

	card, wallet, err := s.getOwnedCard(ctx, userID, cardID)
	if err != nil {
		return err
	}

	if err := s.provider.WithdrawFromCard(ctx, card.ProviderCardID, amount.Minor()); err != nil {
		logger.Log.Errorw("card withdrawal failed", "cardID", cardID, "amount", amount, "error", err)
		return err
	}

	if err := s.walletWrite.Credit(ctx, wallet.WalletID, card.Currency, amount); err != nil {
		logger.Log.Errorw("failed to credit wallet after card withdrawal", "walletID", wallet.WalletID, "amount", amount, "error", err)
		return err
	}

	tx := &models.TransactionDB{
		TransactionID: uuid.New(),
		UserID:        userID,
		Amount:        amount,
		Currency:      card.Currency,
		Type:          models.TxTypeTransfer,
		Status:        models.TxStatusSuccess,
		Description:   "Card withdrawal " + card.MaskedPan,
	}
	if err := s.txWrite.Save(ctx, tx); err != nil {
		logger.Log.Errorw("failed to record card withdrawal", "cardID", cardID, "error", err)
	}
	return nil
}

// SetFrozen freezes or unfreezes a card at the provider and mirrors the flag
// locally.
func (s *CardService) SetFrozen(ctx context.Context, userID, cardID uuid.UUID, frozen bool) error {
	card, _, err := s.getOwnedCard(ctx, userID, cardID)
	if err != nil {
		return err
	}
	if card.Frozen == frozen {
		return nil
	}

	if frozen {
		err = s.provider.FreezeCard(ctx, card.ProviderCardID)
	} else {
		err = s.provider.UnfreezeCard(ctx, card.ProviderCardID)
	}
	if err != nil {
		logger.Log.Errorw("failed to change card freeze state", "cardID", cardID, "frozen", frozen, "error", err)
		return err
	}

	return s.cardWrite.SetFrozen(ctx, cardID, frozen)
}

// ListCards returns all cards issued for the user's wallet in the currency.
func (s *CardService) ListCards(ctx context.Context, userID uuid.UUID, currency string) ([]models.VirtualCardDB, error) {
	if !models.ValidCurrency(currency) {
		return nil, models.ErrUnsupportedCurrency
	}

	wallet, err := s.wallets.GetByUserAndCurrency(ctx, userID, currency)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return []models.VirtualCardDB{}, nil
	}
	return s.cardRead.ListByWallet(ctx, wallet.WalletID)
}
