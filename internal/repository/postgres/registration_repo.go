package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"tourneyslots/internal/domain"
)

// registerMaxAttempts bounds the transparent retries on serialization
// conflicts before the workflow surfaces ErrContention to the caller.
const registerMaxAttempts = 3

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

const registrationColumns = `id, user_id, email, match_id, match_type, match_time,
		leader_ign, leader_game_id, teammates, seat_number, status, entry_fee,
		room_code, room_password, auto_cleanup, client_time, created_at`

func scanRegistration(row interface{ Scan(...any) error }) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var teammates []byte
	err := row.Scan(&reg.ID, &reg.UserID, &reg.Email, &reg.MatchID, &reg.MatchType, &reg.MatchTime,
		&reg.LeaderIGN, &reg.LeaderGameID, &teammates, &reg.SeatNumber, &reg.Status, &reg.EntryFee,
		&reg.RoomCode, &reg.RoomPassword, &reg.AutoCleanup, &reg.ClientTime, &reg.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(teammates) > 0 {
		if err := json.Unmarshal(teammates, &reg.Teammates); err != nil {
			return nil, fmt.Errorf("decode teammates: %w", err)
		}
	}
	return reg, nil
}

// isSerializationFailure reports whether the error is a Postgres
// serialization or deadlock abort worth retrying.
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

func (r *registrationRepository) Register(ctx context.Context, reg *domain.Registration) error {
	var lastErr error
	for attempt := 0; attempt < registerMaxAttempts; attempt++ {
		err := r.registerOnce(ctx, reg)
		if err == nil {
			return nil
		}
		if !isSerializationFailure(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("%w: %v", domain.ErrContention, lastErr)
}

// registerOnce runs the authoritative booking checks and the registration
// insert in a single serializable transaction. The match_slots row lock
// serializes concurrent attempts for the same match, so the capacity count,
// the seat assignment, and the wallet debit observe a consistent snapshot.
func (r *registrationRepository) registerOnce(ctx context.Context, reg *domain.Registration) (err error) {
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin registration tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var capacity int
	var entryFee int64
	var active bool
	err = tx.QueryRowContext(ctx, `
		SELECT capacity, entry_fee, active
		FROM match_slots
		WHERE id = $1
		FOR UPDATE
	`, reg.MatchID).Scan(&capacity, &entryFee, &active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if !active {
		return domain.ErrMatchInactive
	}

	var alreadyRegistered bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM registrations
			WHERE user_id = $1 AND match_id = $2 AND status = 'registered'
		)
	`, reg.UserID, reg.MatchID).Scan(&alreadyRegistered)
	if err != nil {
		return err
	}
	if alreadyRegistered {
		return domain.ErrDuplicateRegistration
	}

	occupied, err := r.occupiedSeats(ctx, tx, reg.MatchID)
	if err != nil {
		return err
	}
	if len(occupied) >= capacity {
		return domain.ErrMatchFull
	}
	seat := 0
	for candidate := 1; candidate <= capacity; candidate++ {
		if _, taken := occupied[candidate]; !taken {
			seat = candidate
			break
		}
	}
	if seat == 0 {
		// Count said there was room but no seat is free: the stored seats are
		// inconsistent with the registered count.
		return domain.ErrNoSeatAvailable
	}

	teammates, err := json.Marshal(reg.Teammates)
	if err != nil {
		return fmt.Errorf("encode teammates: %w", err)
	}
	reg.SeatNumber = seat
	reg.Status = domain.StatusRegistered
	reg.EntryFee = entryFee
	err = tx.QueryRowContext(ctx, `
		INSERT INTO registrations (user_id, email, match_id, match_type, match_time,
			leader_ign, leader_game_id, teammates, seat_number, status, entry_fee,
			room_code, room_password, auto_cleanup, client_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'registered', $10, '', '', $11, $12, $13)
		RETURNING id
	`, reg.UserID, reg.Email, reg.MatchID, reg.MatchType, reg.MatchTime,
		reg.LeaderIGN, reg.LeaderGameID, teammates, seat, entryFee,
		reg.AutoCleanup, reg.ClientTime, reg.CreatedAt).Scan(&reg.ID)
	if err != nil {
		return err
	}

	if entryFee > 0 {
		if err := debitWallet(ctx, tx, reg.UserID, entryFee, reg.ID,
			fmt.Sprintf("Entry fee for %s at %s", reg.MatchType, reg.MatchTime)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *registrationRepository) occupiedSeats(ctx context.Context, tx *sql.Tx, matchID string) (map[int]struct{}, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT seat_number FROM registrations
		WHERE match_id = $1 AND status = 'registered'
		ORDER BY seat_number ASC
	`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	occupied := make(map[int]struct{})
	for rows.Next() {
		var seat int
		if err := rows.Scan(&seat); err != nil {
			return nil, err
		}
		occupied[seat] = struct{}{}
	}
	return occupied, rows.Err()
}

// debitWallet subtracts amount from the user's balance and appends the ledger
// entry, all within the caller's transaction. The balance guard in the UPDATE
// is what enforces the non-negative invariant.
func debitWallet(ctx context.Context, tx *sql.Tx, userID string, amount int64, refID, description string) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO wallets (user_id, balance, created_at, updated_at)
		VALUES ($1, 0, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`, userID); err != nil {
		return err
	}
	var balanceAfter int64
	err := tx.QueryRowContext(ctx, `
		UPDATE wallets
		SET balance = balance - $2, updated_at = NOW()
		WHERE user_id = $1 AND balance >= $2
		RETURNING balance
	`, userID, amount).Scan(&balanceAfter)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrInsufficientFunds
		}
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO wallet_transactions (user_id, amount, balance_after, ref_type, ref_id, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`, userID, -amount, balanceAfter, domain.WalletRefRegistration, refID, description)
	return err
}

// creditWallet adds amount to the user's balance and appends the ledger entry
// within the caller's transaction.
func creditWallet(ctx context.Context, tx *sql.Tx, userID string, amount int64, refType, refID, description string) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO wallets (user_id, balance, created_at, updated_at)
		VALUES ($1, 0, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`, userID); err != nil {
		return err
	}
	var balanceAfter int64
	err := tx.QueryRowContext(ctx, `
		UPDATE wallets
		SET balance = balance + $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING balance
	`, userID, amount).Scan(&balanceAfter)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO wallet_transactions (user_id, amount, balance_after, ref_type, ref_id, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`, userID, amount, balanceAfter, refType, refID, description)
	return err
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, userID)
}

func (r *registrationRepository) ListAll(ctx context.Context) ([]*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		ORDER BY created_at DESC
	`
	return r.list(ctx, query)
}

func (r *registrationRepository) ListRegistered(ctx context.Context) ([]*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE status = 'registered'
		ORDER BY created_at ASC
	`
	return r.list(ctx, query)
}

func (r *registrationRepository) ListRegisteredByMatchID(ctx context.Context, matchID string) ([]*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE match_id = $1 AND status = 'registered'
		ORDER BY seat_number ASC
	`
	return r.list(ctx, query, matchID)
}

func (r *registrationRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Registration, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []*domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	return regs, nil
}

func (r *registrationRepository) Cancel(ctx context.Context, id string) (prev *domain.Registration, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin cancel tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1 FOR UPDATE`
	prev, err = scanRegistration(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if prev.Status == domain.StatusCanceled {
		return nil, domain.ErrAlreadyCanceled
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE registrations
		SET status = 'canceled', room_code = '', room_password = ''
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}

	if prev.Status == domain.StatusRegistered && prev.EntryFee > 0 {
		if err = creditWallet(ctx, tx, prev.UserID, prev.EntryFee, domain.WalletRefRefund, prev.ID,
			fmt.Sprintf("Refund for canceled %s at %s", prev.MatchType, prev.MatchTime)); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return prev, nil
}

func (r *registrationRepository) Delete(ctx context.Context, id string) (prev *domain.Registration, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1 FOR UPDATE`
	prev, err = scanRegistration(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM registrations WHERE id = $1`, id); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return prev, nil
}

func (r *registrationRepository) UpdateStatus(ctx context.Context, id string, status domain.RegistrationStatus) error {
	return r.exec(ctx, `UPDATE registrations SET status = $2 WHERE id = $1`, id, string(status))
}

func (r *registrationRepository) MarkCompleted(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE registrations SET status = 'completed' WHERE id = $1`, id)
}

func (r *registrationRepository) UpdateAutoCleanup(ctx context.Context, id string, autoCleanup bool) error {
	return r.exec(ctx, `UPDATE registrations SET auto_cleanup = $2 WHERE id = $1`, id, autoCleanup)
}

func (r *registrationRepository) SetRoomDetails(ctx context.Context, id, roomCode, roomPassword string) error {
	return r.exec(ctx, `UPDATE registrations SET room_code = $2, room_password = $3 WHERE id = $1`, id, roomCode, roomPassword)
}

func (r *registrationRepository) SetRoomDetailsByMatch(ctx context.Context, matchID, roomCode, roomPassword string) (int, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE registrations
		SET room_code = $2, room_password = $3
		WHERE match_id = $1 AND status = 'registered'
	`, matchID, roomCode, roomPassword)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

func (r *registrationRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
