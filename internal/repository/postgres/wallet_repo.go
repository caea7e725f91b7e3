package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tourneyslots/internal/domain"
)

type walletRepository struct {
	DB *sql.DB
}

func NewWalletRepository(db *sql.DB) domain.WalletRepository {
	return &walletRepository{
		DB: db,
	}
}

func (r *walletRepository) GetOrCreate(ctx context.Context, userID string) (*domain.WalletAccount, error) {
	if _, err := r.DB.ExecContext(ctx, `
		INSERT INTO wallets (user_id, balance, created_at, updated_at)
		VALUES ($1, 0, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`, userID); err != nil {
		return nil, err
	}
	acct := &domain.WalletAccount{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT user_id, balance, created_at, updated_at
		FROM wallets
		WHERE user_id = $1
	`, userID).Scan(&acct.UserID, &acct.Balance, &acct.CreatedAt, &acct.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return acct, nil
}

func (r *walletRepository) ApplyEntry(ctx context.Context, userID string, amount int64, refType, refID, description string) (entry *domain.WalletTransaction, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin wallet tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO wallets (user_id, balance, created_at, updated_at)
		VALUES ($1, 0, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`, userID); err != nil {
		return nil, err
	}

	var balanceAfter int64
	err = tx.QueryRowContext(ctx, `
		UPDATE wallets
		SET balance = balance + $2, updated_at = NOW()
		WHERE user_id = $1 AND balance + $2 >= 0
		RETURNING balance
	`, userID, amount).Scan(&balanceAfter)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInsufficientFunds
		}
		return nil, err
	}

	entry = &domain.WalletTransaction{
		UserID:       userID,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		RefType:      refType,
		RefID:        refID,
		Description:  description,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO wallet_transactions (user_id, amount, balance_after, ref_type, ref_id, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`, userID, amount, balanceAfter, refType, refID, description).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *walletRepository) ListTransactions(ctx context.Context, userID string) ([]*domain.WalletTransaction, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, amount, balance_after, ref_type, ref_id, description, created_at
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.WalletTransaction
	for rows.Next() {
		entry := &domain.WalletTransaction{}
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Amount, &entry.BalanceAfter,
			&entry.RefType, &entry.RefID, &entry.Description, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*domain.WalletTransaction{}
	}
	return entries, nil
}

func (r *walletRepository) CreateOrder(ctx context.Context, order *domain.PaymentOrder) error {
	query := `
		INSERT INTO payment_orders (user_id, amount, receipt, gateway_order_id, paid, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		order.UserID, order.Amount, order.Receipt, order.GatewayID, order.CreatedAt).
		Scan(&order.ID)
}

// SettleOrder flips the order to paid and credits the wallet in one
// transaction. The row lock plus the paid guard make settlement idempotent: a
// concurrent or repeated confirm sees paid=TRUE and gets ErrOrderAlreadyPaid,
// and a failed credit rolls the flag back so the order stays settleable.
func (r *walletRepository) SettleOrder(ctx context.Context, gatewayOrderID, description string) (entry *domain.WalletTransaction, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin settle tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	order := &domain.PaymentOrder{}
	err = tx.QueryRowContext(ctx, `
		SELECT id, user_id, amount, paid
		FROM payment_orders
		WHERE gateway_order_id = $1
		FOR UPDATE
	`, gatewayOrderID).Scan(&order.ID, &order.UserID, &order.Amount, &order.Paid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if order.Paid {
		return nil, domain.ErrOrderAlreadyPaid
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE payment_orders SET paid = TRUE WHERE id = $1
	`, order.ID); err != nil {
		return nil, err
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO wallets (user_id, balance, created_at, updated_at)
		VALUES ($1, 0, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`, order.UserID); err != nil {
		return nil, err
	}
	var balanceAfter int64
	err = tx.QueryRowContext(ctx, `
		UPDATE wallets
		SET balance = balance + $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING balance
	`, order.UserID, order.Amount).Scan(&balanceAfter)
	if err != nil {
		return nil, err
	}

	entry = &domain.WalletTransaction{
		UserID:       order.UserID,
		Amount:       order.Amount,
		BalanceAfter: balanceAfter,
		RefType:      domain.WalletRefPayment,
		RefID:        order.ID,
		Description:  description,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO wallet_transactions (user_id, amount, balance_after, ref_type, ref_id, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`, order.UserID, order.Amount, balanceAfter, domain.WalletRefPayment, order.ID, description).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return entry, nil
}
