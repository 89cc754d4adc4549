package models

import "time"

// Provider webhook event names handled by the reconciler.
const (
	EventTransactionSuccess     = "transaction.success"
	EventCollectionSuccessful   = "collection.successful"
	EventTransferSuccess        = "transfer.success"
	EventTransferFailed         = "transfer.failed"
	EventIssuingCreated         = "issuing.created"
	EventVirtualAccountApproved = "virtual_account.approved"
)

// ProviderEvent is the inbound webhook payload from the provider.
type ProviderEvent struct {
	ID    string            `json:"id"`    // Provider event id, dedup key
	Event string            `json:"event"` // Event name, e.g. transaction.success
	Data  ProviderEventData `json:"data"`  // Event payload
}

// ProviderEventData carries the provider-specific payload fields. Deposit
// amounts arrive in minor units.
type ProviderEventData struct {
	ID            string `json:"id"`             // Resource id (account, card, transfer)
	Amount        int64  `json:"amount"`         // Amount in minor units
	Currency      string `json:"currency"`       // Currency code
	CustomerID    string `json:"customer_id"`    // Provider customer id
	Reference     string `json:"reference"`      // Provider reference
	Status        string `json:"status"`         // Final provider status
	Reason        string `json:"reason"`         // Failure reason, if any
	AccountNumber string `json:"account_number"` // Virtual account number, approval events
	BankName      string `json:"bank_name"`      // Bank name, approval events
}

// WebhookEventDB is the durable dedup record for provider events. The event
// id is the primary key; insertion precedes all business effects.
type WebhookEventDB struct {
	EventID   string    `json:"event_id" db:"event_id"`     // Provider event id
	EventType string    `json:"event_type" db:"event_type"` // Provider event name
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Time the event was first admitted
}
