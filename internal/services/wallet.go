package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-provider-wallet/internal/facades"
	"github.com/sbilibin2017/gw-provider-wallet/internal/logger"
	"github.com/sbilibin2017/gw-provider-wallet/internal/models"
	"github.com/sbilibin2017/gw-provider-wallet/internal/repositories"
	"github.com/segmentio/kafka-go"
)

var (
	// ErrInsufficientFunds is returned when a debit would drive a balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrUserNotFound is returned when the target user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrWalletNotFound is returned when the user has no wallet for the currency.
	ErrWalletNotFound = errors.New("wallet not found")
)

// UserGetter reads users for command dispatch.
type UserGetter interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// CustomerAssigner persists the provider customer id exactly once.
type CustomerAssigner interface {
	SetCustomerID(ctx context.Context, userID uuid.UUID, customerID string) error
}

// WalletReader defines wallet read operations used by services.
type WalletReader interface {
	GetByUserAndCurrency(ctx context.Context, userID uuid.UUID, currency string) (*models.WalletDB, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WalletDB, error)
}

// WalletWriter defines wallet mutation operations used by services. Credit
// and Debit are atomic row-level updates. Save upserts by (user, currency)
// and writes the surviving row's id back into the wallet.
type WalletWriter interface {
	Save(ctx context.Context, wallet *models.WalletDB) error
	Credit(ctx context.Context, walletID uuid.UUID, currency string, amount models.Amount) error
	Debit(ctx context.Context, walletID uuid.UUID, currency string, amount models.Amount) error
}

// TransactionWriter appends transaction records.
type TransactionWriter interface {
	Save(ctx context.Context, tx *models.TransactionDB) error
}

// ProviderAPI is the outbound provider surface used by the wallet commands.
type ProviderAPI interface {
	CreateCustomer(ctx context.Context, firstName, lastName, email, country string) (string, error)
	CreateVirtualAccount(ctx context.Context, customerID, currency string) (*facades.VirtualAccount, error)
	CreateTransfer(ctx context.Context, req facades.TransferRequest) (*facades.Transfer, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// WithdrawalDestination is the receiving bank account of a withdrawal.
type WithdrawalDestination struct {
	BankCode      string
	AccountNumber string
	AccountName   string
}

// WalletService implements customer provisioning, virtual account creation
// and withdrawals against the provider, with optimistic local debits.
type WalletService struct {
	users       UserGetter
	assigner    CustomerAssigner
	walletRead  WalletReader
	walletWrite WalletWriter
	txWrite     TransactionWriter
	provider    ProviderAPI
	kafkaWriter KafkaWriter
}

// NewWalletService creates a new WalletService.
func NewWalletService(
	users UserGetter,
	assigner CustomerAssigner,
	walletRead WalletReader,
	walletWrite WalletWriter,
	txWrite TransactionWriter,
	provider ProviderAPI,
	kafkaWriter KafkaWriter,
) *WalletService {
	return &WalletService{
		users:       users,
		assigner:    assigner,
		walletRead:  walletRead,
		walletWrite: walletWrite,
		txWrite:     txWrite,
		provider:    provider,
		kafkaWriter: kafkaWriter,
	}
}

// publishTransaction publishes a settled transaction to Kafka, best effort.
func publishTransaction(ctx context.Context, w KafkaWriter, tx *models.TransactionDB) {
	if w == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "transaction_id", tx.TransactionID)
		return
	}

	event := models.TransactionEvent{
		TransactionID: tx.TransactionID.String(),
		Timestamp:     time.Now().Unix(),
		AmountMinor:   tx.Amount.Minor(),
		Currency:      tx.Currency,
		UserID:        tx.UserID.String(),
		Operation:     tx.Type,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal transaction for Kafka", "transaction_id", tx.TransactionID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.TransactionID),
		Value: data,
	}

	if err := w.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish transaction to Kafka", "transaction_id", tx.TransactionID, "error", err)
	} else {
		logger.Log.Infow("Transaction published to Kafka", "transaction_id", tx.TransactionID, "amount", tx.Amount)
	}
}

// EnsureCustomer returns the user's provider customer id, creating it lazily
// on first use. The id is immutable once assigned; a concurrent assignment
// race resolves by re-reading the winning id.
func (s *WalletService) EnsureCustomer(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to load user", "userID", userID, "error", err)
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	if user.CustomerID != nil {
		return *user.CustomerID, nil
	}

	customerID, err := s.provider.CreateCustomer(ctx, user.FirstName, user.LastName, user.Email, "NG")
	if err != nil {
		logger.Log.Errorw("failed to create provider customer", "userID", userID, "error", err)
		return "", err
	}

	if err := s.assigner.SetCustomerID(ctx, userID, customerID); err != nil {
		if errors.Is(err, repositories.ErrCustomerIDAssigned) {
			user, rerr := s.users.GetByID(ctx, userID)
			if rerr != nil || user == nil || user.CustomerID == nil {
				return "", err
			}
			return *user.CustomerID, nil
		}
		logger.Log.Errorw("failed to persist customer id", "userID", userID, "error", err)
		return "", err
	}

	return customerID, nil
}

// CreateVirtualAccount provisions a provider virtual account and upserts the
// wallet row carrying the account linkage.
func (s *WalletService) CreateVirtualAccount(ctx context.Context, userID uuid.UUID, currency string) (*models.WalletDB, error) {
	if !models.ValidCurrency(currency) {
		return nil, models.ErrUnsupportedCurrency
	}

	customerID, err := s.EnsureCustomer(ctx, userID)
	if err != nil {
		return nil, err
	}

	account, err := s.provider.CreateVirtualAccount(ctx, customerID, currency)
	if err != nil {
		logger.Log.Errorw("failed to create virtual account", "userID", userID, "currency", currency, "error", err)
		return nil, err
	}

	wallet, err := s.walletRead.GetByUserAndCurrency(ctx, userID, currency)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		wallet = &models.WalletDB{
			WalletID: uuid.New(),
			UserID:   userID,
			Currency: currency,
		}
	}
	wallet.AccountID = &account.ID
	wallet.AccountNumber = &account.AccountNumber
	wallet.BankName = &account.BankName

	if err := s.walletWrite.Save(ctx, wallet); err != nil {
		logger.Log.Errorw("failed to save wallet", "userID", userID, "currency", currency, "error", err)
		return nil, err
	}

	return wallet, nil
}

// Withdraw debits the wallet optimistically, then initiates the provider
// transfer. The debit and the transaction record are one logical unit: a
// provider failure rolls the debit back and records a failed transaction.
// Settlement to the final status happens via webhook.
func (s *WalletService) Withdraw(ctx context.Context, userID uuid.UUID, amount models.Amount, currency string, destination WithdrawalDestination, description string) (*models.TransactionDB, error) {
	if !models.ValidCurrency(currency) {
		return nil, models.ErrUnsupportedCurrency
	}
	if !amount.IsPositive() {
		return nil, errors.New("amount must be positive")
	}
	if description == "" {
		description = "Wallet withdrawal"
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	customerID, err := s.EnsureCustomer(ctx, userID)
	if err != nil {
		return nil, err
	}

	wallet, err := s.walletRead.GetByUserAndCurrency(ctx, userID, currency)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, ErrWalletNotFound
	}

	// Insufficient balance is rejected here, before any provider call.
	if err := s.walletWrite.Debit(ctx, wallet.WalletID, currency, amount); err != nil {
		if errors.Is(err, repositories.ErrInsufficientBalance) {
			return nil, ErrInsufficientFunds
		}
		return nil, err
	}

	name := destination.AccountName
	if name == "" {
		name = user.FirstName + " " + user.LastName
	}

	transfer, err := s.provider.CreateTransfer(ctx, facades.TransferRequest{
		CustomerID: customerID,
		Amount:     amount.Minor(),
		Currency:   currency,
		Reason:     description,
		Destination: facades.TransferDestination{
			Type:          "bank_account",
			BankCode:      destination.BankCode,
			AccountNumber: destination.AccountNumber,
			Name:          name,
		},
	})
	if err != nil {
		logger.Log.Errorw("provider transfer failed, rolling back debit", "userID", userID, "amount", amount, "currency", currency, "error", err)

		if cerr := s.walletWrite.Credit(ctx, wallet.WalletID, currency, amount); cerr != nil {
			logger.Log.Errorw("failed to roll back debit", "walletID", wallet.WalletID, "amount", amount, "currency", currency, "error", cerr)
		}
		failed := &models.TransactionDB{
			TransactionID: uuid.New(),
			UserID:        userID,
			Amount:        amount,
			Currency:      currency,
			Type:          models.TxTypeWithdrawal,
			Status:        models.TxStatusFailed,
			Description:   description,
		}
		if serr := s.txWrite.Save(ctx, failed); serr != nil {
			logger.Log.Errorw("failed to record failed withdrawal", "userID", userID, "error", serr)
		}
		return nil, err
	}

	tx := &models.TransactionDB{
		TransactionID: uuid.New(),
		UserID:        userID,
		Amount:        amount,
		Currency:      currency,
		Type:          models.TxTypeWithdrawal,
		Status:        models.TxStatusPending,
		Reference:     &transfer.Reference,
		Description:   description,
	}
	if err := s.txWrite.Save(ctx, tx); err != nil {
		logger.Log.Errorw("failed to record pending withdrawal", "userID", userID, "reference", transfer.Reference, "error", err)
		return nil, err
	}

	return tx, nil
}

// GetBalance aggregates per-currency balances over all wallets of the user.
func (s *WalletService) GetBalance(ctx context.Context, userID uuid.UUID) (*models.CurrencyBalance, error) {
	wallets, err := s.walletRead.ListByUser(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list wallets", "userID", userID, "error", err)
		return nil, err
	}

	var ngn, usd, gbp models.Amount
	for _, w := range wallets {
		ngn += w.NGN
		usd += w.USD
		gbp += w.GBP
	}

	return &models.CurrencyBalance{
		NGN: ngn.Major(),
		USD: usd.Major(),
		GBP: gbp.Major(),
	}, nil
}
