package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-provider-wallet/internal/logger"
	"github.com/sbilibin2017/gw-provider-wallet/internal/models"
)

var (
	// ErrInvalidSignature is returned when the webhook signature does not match.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrMissingEventID is returned for events without a deduplication key.
	ErrMissingEventID = errors.New("webhook event has no id")
)

// SignatureVerifier authenticates provider webhooks by recomputing the HMAC
// of the raw request body and comparing in constant time.
type SignatureVerifier struct {
	secret []byte
	hasher func() hash.Hash
}

// NewSignatureVerifier creates a verifier for the given shared secret.
// Supported algorithms are "sha512" (the provider default) and "sha256".
func NewSignatureVerifier(secret, algorithm string) (*SignatureVerifier, error) {
	if secret == "" {
		return nil, errors.New("webhook secret is not configured")
	}

	var hasher func() hash.Hash
	switch algorithm {
	case "", "sha512":
		hasher = sha512.New
	case "sha256":
		hasher = sha256.New
	default:
		return nil, fmt.Errorf("unsupported webhook signature algorithm: %s", algorithm)
	}

	return &SignatureVerifier{secret: []byte(secret), hasher: hasher}, nil
}

// Verify returns ErrInvalidSignature unless signature is the hex-encoded HMAC
// of body under the shared secret.
func (v *SignatureVerifier) Verify(body []byte, signature string) error {
	if signature == "" {
		return ErrInvalidSignature
	}

	mac := hmac.New(v.hasher, v.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

// EventAdmitter records event ids and reports whether an id is new.
type EventAdmitter interface {
	Admit(ctx context.Context, eventID, eventType string) (bool, error)
}

// UserByCustomerGetter resolves the local user behind a provider customer id.
type UserByCustomerGetter interface {
	GetByCustomerID(ctx context.Context, customerID string) (*models.UserDB, error)
}

// TransactionSettler finalizes pending transactions and appends new records.
type TransactionSettler interface {
	Save(ctx context.Context, tx *models.TransactionDB) error
	SettleByReference(ctx context.Context, reference, status string) (*models.TransactionDB, error)
}

// CardStatusSetter updates the lifecycle status of an issued card.
type CardStatusSetter interface {
	SetStatus(ctx context.Context, providerCardID, status string) error
}

// WebhookService turns provider event notifications into exactly-once local
// state changes. Every event is admitted through the dedup ledger first;
// dispatch only runs for events seen for the first time.
type WebhookService struct {
	admitter    EventAdmitter
	users       UserByCustomerGetter
	walletRead  WalletReader
	walletWrite WalletWriter
	txs         TransactionSettler
	cards       CardStatusSetter
	kafkaWriter KafkaWriter
}

// NewWebhookService creates a new WebhookService.
func NewWebhookService(
	admitter EventAdmitter,
	users UserByCustomerGetter,
	walletRead WalletReader,
	walletWrite WalletWriter,
	txs TransactionSettler,
	cards CardStatusSetter,
	kafkaWriter KafkaWriter,
) *WebhookService {
	return &WebhookService{
		admitter:    admitter,
		users:       users,
		walletRead:  walletRead,
		walletWrite: walletWrite,
		txs:         txs,
		cards:       cards,
		kafkaWriter: kafkaWriter,
	}
}

// Process admits the event and dispatches it by type. It returns an error
// only when the event could not be admitted; once admitted, dispatch failures
// are logged and swallowed so the provider does not redeliver an event whose
// id is already recorded.
func (s *WebhookService) Process(ctx context.Context, event *models.ProviderEvent) error {
	eventID := event.ID
	if eventID == "" {
		eventID = event.Data.ID
	}
	if eventID == "" {
		return ErrMissingEventID
	}

	admitted, err := s.admitter.Admit(ctx, eventID, event.Event)
	if err != nil {
		logger.Log.Errorw("failed to admit webhook event", "eventID", eventID, "event", event.Event, "error", err)
		return err
	}
	if !admitted {
		logger.Log.Infow("duplicate webhook event skipped", "eventID", eventID, "event", event.Event)
		return nil
	}

	if err := s.dispatch(ctx, event); err != nil {
		logger.Log.Errorw("webhook event dispatch failed", "eventID", eventID, "event", event.Event, "error", err)
	}
	return nil
}

func (s *WebhookService) dispatch(ctx context.Context, event *models.ProviderEvent) error {
	switch event.Event {
	case models.EventTransactionSuccess, models.EventCollectionSuccessful:
		return s.handleDeposit(ctx, event)
	case models.EventTransferSuccess:
		return s.handleTransferSettled(ctx, event, models.TxStatusSuccess)
	case models.EventTransferFailed:
		return s.handleTransferSettled(ctx, event, models.TxStatusFailed)
	case models.EventIssuingCreated:
		return s.handleCardIssued(ctx, event)
	case models.EventVirtualAccountApproved:
		return s.handleAccountApproved(ctx, event)
	default:
		logger.Log.Infow("unhandled webhook event type", "event", event.Event)
		return nil
	}
}

// handleDeposit credits the customer's wallet with the incoming amount and
// records a successful deposit transaction.
func (s *WebhookService) handleDeposit(ctx context.Context, event *models.ProviderEvent) error {
	data := event.Data
	if data.CustomerID == "" {
		return errors.New("deposit event has no customer id")
	}
	if data.Amount <= 0 {
		return fmt.Errorf("deposit event has non-positive amount: %d", data.Amount)
	}
	currency := data.Currency
	if !models.ValidCurrency(currency) {
		return fmt.Errorf("%w: %s", models.ErrUnsupportedCurrency, currency)
	}

	user, err := s.users.GetByCustomerID(ctx, data.CustomerID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("no user for provider customer %s", data.CustomerID)
	}

	amount := models.Amount(data.Amount)

	wallet, err := s.walletRead.GetByUserAndCurrency(ctx, user.UserID, currency)
	if err != nil {
		return err
	}
	if wallet == nil {
		wallet = &models.WalletDB{
			WalletID: uuid.New(),
			UserID:   user.UserID,
			Currency: currency,
		}
		// Save resolves a concurrent create to the surviving wallet id.
		if err := s.walletWrite.Save(ctx, wallet); err != nil {
			return err
		}
	}

	if err := s.walletWrite.Credit(ctx, wallet.WalletID, currency, amount); err != nil {
		return err
	}

	tx := &models.TransactionDB{
		TransactionID: uuid.New(),
		UserID:        user.UserID,
		Amount:        amount,
		Currency:      currency,
		Type:          models.TxTypeDeposit,
		Status:        models.TxStatusSuccess,
		Description:   "Wallet deposit",
	}
	if data.Reference != "" {
		ref := data.Reference
		tx.Reference = &ref
	}
	if err := s.txs.Save(ctx, tx); err != nil {
		logger.Log.Errorw("failed to record deposit transaction", "userID", user.UserID, "amount", amount, "error", err)
		return err
	}

	logger.Log.Infow("deposit credited", "userID", user.UserID, "amount", amount, "currency", currency)
	publishTransaction(ctx, s.kafkaWriter, tx)
	return nil
}

// handleTransferSettled moves the matching pending withdrawal to its final
// status. A failed transfer additionally refunds the debited amount and
// records a reversal so the refund is visible in the transaction history.
func (s *WebhookService) handleTransferSettled(ctx context.Context, event *models.ProviderEvent, status string) error {
	reference := event.Data.Reference
	if reference == "" {
		reference = event.Data.ID
	}
	if reference == "" {
		return errors.New("transfer event has no reference")
	}

	tx, err := s.txs.SettleByReference(ctx, reference, status)
	if err != nil {
		return err
	}
	if tx == nil {
		logger.Log.Warnw("no pending transaction for transfer reference", "reference", reference, "status", status)
		return nil
	}

	logger.Log.Infow("withdrawal settled", "reference", reference, "status", status, "userID", tx.UserID)

	if status == models.TxStatusFailed {
		wallet, err := s.walletRead.GetByUserAndCurrency(ctx, tx.UserID, tx.Currency)
		if err != nil {
			return err
		}
		if wallet == nil {
			return fmt.Errorf("no %s wallet for user %s to refund", tx.Currency, tx.UserID)
		}
		if err := s.walletWrite.Credit(ctx, wallet.WalletID, tx.Currency, tx.Amount); err != nil {
			return err
		}

		reversal := &models.TransactionDB{
			TransactionID: uuid.New(),
			UserID:        tx.UserID,
			Amount:        tx.Amount,
			Currency:      tx.Currency,
			Type:          models.TxTypeDeposit,
			Status:        models.TxStatusSuccess,
			Description:   "Reversal of failed withdrawal " + reference,
		}
		if err := s.txs.Save(ctx, reversal); err != nil {
			logger.Log.Errorw("failed to record reversal", "reference", reference, "error", err)
			return err
		}
		publishTransaction(ctx, s.kafkaWriter, reversal)
		return nil
	}

	publishTransaction(ctx, s.kafkaWriter, tx)
	return nil
}

// handleAccountApproved fills in the wallet's external account linkage once
// the provider approves the virtual account. Balances stay untouched.
func (s *WebhookService) handleAccountApproved(ctx context.Context, event *models.ProviderEvent) error {
	data := event.Data
	if data.CustomerID == "" || !models.ValidCurrency(data.Currency) {
		logger.Log.Warnw("account approval event missing customer or currency", "eventID", event.ID)
		return nil
	}

	user, err := s.users.GetByCustomerID(ctx, data.CustomerID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("no user for provider customer %s", data.CustomerID)
	}

	wallet, err := s.walletRead.GetByUserAndCurrency(ctx, user.UserID, data.Currency)
	if err != nil {
		return err
	}
	if wallet == nil {
		wallet = &models.WalletDB{
			WalletID: uuid.New(),
			UserID:   user.UserID,
			Currency: data.Currency,
		}
	}

	if data.ID != "" {
		accountID := data.ID
		wallet.AccountID = &accountID
	}
	if data.AccountNumber != "" {
		accountNumber := data.AccountNumber
		wallet.AccountNumber = &accountNumber
	}
	if data.BankName != "" {
		bankName := data.BankName
		wallet.BankName = &bankName
	}

	if err := s.walletWrite.Save(ctx, wallet); err != nil {
		return err
	}

	logger.Log.Infow("virtual account approved", "userID", user.UserID, "accountNumber", data.AccountNumber, "bank", data.BankName)
	return nil
}

// handleCardIssued marks the card active once the provider confirms issuance.
func (s *WebhookService) handleCardIssued(ctx context.Context, event *models.ProviderEvent) error {
	cardID := event.Data.ID
	if cardID == "" {
		return errors.New("card event has no card id")
	}
	return s.cards.SetStatus(ctx, cardID, models.CardStatusActive)
}
