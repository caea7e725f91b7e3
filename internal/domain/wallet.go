package domain

import (
	"context"
	"time"
)

// WalletAccount is one user's prepaid balance in minor currency units.
// The balance never goes negative; it changes only through ledger entries.
// swagger:model WalletAccount
type WalletAccount struct {
	UserID    string    `json:"user_id"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Wallet transaction reference types, identifying what triggered the entry.
const (
	WalletRefRegistration = "registration"
	WalletRefRefund       = "refund"
	WalletRefPayment      = "payment"
)

// WalletTransaction is one immutable ledger entry. Amount is signed (debits
// negative), BalanceAfter is the balance resulting from this entry.
// swagger:model WalletTransaction
type WalletTransaction struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Amount       int64     `json:"amount"`
	BalanceAfter int64     `json:"balance_after"`
	RefType      string    `json:"ref_type"`
	RefID        string    `json:"ref_id"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

// PaymentOrder tracks one gateway top-up from creation to confirmation.
// swagger:model PaymentOrder
type PaymentOrder struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Amount    int64     `json:"amount"`
	Receipt   string    `json:"receipt"`
	GatewayID string    `json:"gateway_order_id"`
	Paid      bool      `json:"paid"`
	CreatedAt time.Time `json:"created_at"`
}

// WalletRepository defines storage operations for wallets and their ledger.
type WalletRepository interface {
	// GetOrCreate returns the user's wallet, creating a zero-balance account
	// on first access.
	GetOrCreate(ctx context.Context, userID string) (*WalletAccount, error)
	// ApplyEntry atomically adjusts the balance by the signed amount and
	// appends the ledger entry. A debit that would drive the balance negative
	// returns ErrInsufficientFunds with no mutation.
	ApplyEntry(ctx context.Context, userID string, amount int64, refType, refID, description string) (*WalletTransaction, error)
	ListTransactions(ctx context.Context, userID string) ([]*WalletTransaction, error)

	CreateOrder(ctx context.Context, order *PaymentOrder) error
	// SettleOrder marks the order paid and credits the wallet in one
	// transaction. A second settle of the same order returns
	// ErrOrderAlreadyPaid and leaves the ledger untouched; a failed credit
	// rolls the paid flag back.
	SettleOrder(ctx context.Context, gatewayOrderID, description string) (*WalletTransaction, error)
}

// WalletService exposes balance queries and gateway-funded top-ups.
type WalletService interface {
	Balance(ctx context.Context, userID string) (*WalletAccount, error)
	Transactions(ctx context.Context, userID string) ([]*WalletTransaction, error)
	CreatePaymentOrder(ctx context.Context, userID string, amount int64) (*PaymentOrder, error)
	// ConfirmPayment verifies the gateway signature and credits the wallet
	// exactly once per order.
	ConfirmPayment(ctx context.Context, gatewayOrderID, gatewayPaymentID, signature string) (*WalletTransaction, error)
}

// PaymentGateway is the external credit source for the wallet ledger.
type PaymentGateway interface {
	// CreateOrder registers an order with the gateway and returns its ID.
	CreateOrder(ctx context.Context, receipt string, amount int64) (gatewayOrderID string, err error)
	// VerifySignature reports whether the HMAC signature over the order and
	// payment IDs is authentic.
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool
}
