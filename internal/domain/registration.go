package domain

import (
	"context"
	"time"
)

// RegistrationStatus is the lifecycle state of a registration.
type RegistrationStatus string

// Registration lifecycle: none -> registered -> {canceled, completed}.
// Canceled and completed are terminal; a registration may also be hard-deleted.
const (
	StatusRegistered RegistrationStatus = "registered"
	StatusCanceled   RegistrationStatus = "canceled"
	StatusCompleted  RegistrationStatus = "completed"
)

// Teammate is one additional squad member on a registration.
// swagger:model Teammate
type Teammate struct {
	IGN    string `json:"ign"`
	GameID string `json:"game_id"`
}

// Registration is one user's claim on one numbered seat of a match slot
// occurrence. Match type, time, and entry fee are denormalized at registration
// time so later slot edits do not rewrite history.
// swagger:model Registration
type Registration struct {
	ID           string             `json:"id"`
	UserID       string             `json:"user_id"`
	Email        string             `json:"email"`
	MatchID      string             `json:"match_id"`
	MatchType    string             `json:"match_type"`
	MatchTime    string             `json:"match_time"`
	LeaderIGN    string             `json:"leader_ign"`
	LeaderGameID string             `json:"leader_game_id"`
	Teammates    []Teammate         `json:"teammates"`
	SeatNumber   int                `json:"seat_number"`
	Status       RegistrationStatus `json:"status"`
	EntryFee     int64              `json:"entry_fee"`
	RoomCode     string             `json:"room_code"`
	RoomPassword string             `json:"room_password"`
	AutoCleanup  bool               `json:"auto_cleanup"`
	ClientTime   string             `json:"client_time,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// RegistrationView is a Registration decorated with display fields derived at
// read time (completion per the time policy, 12-hour match time).
// swagger:model RegistrationView
type RegistrationView struct {
	*Registration
	MatchTime12h string `json:"match_time_12h"`
	IsCompleted  bool   `json:"is_completed"`
}

// MatchParticipant is the lobby view of one registered entry: public player
// details plus the assigned seat, without contact or room data.
// swagger:model MatchParticipant
type MatchParticipant struct {
	LeaderIGN    string     `json:"leader_ign"`
	LeaderGameID string     `json:"leader_game_id"`
	SeatNumber   int        `json:"seat_number"`
	Teammates    []Teammate `json:"teammates"`
}

// RegistrationRepository defines storage operations for registrations.
//
// Register persists a new registration atomically with respect to concurrent
// attempts for the same match: inside one store transaction it re-verifies that
// the slot is active, that the user has no registered entry for the match, that
// capacity is not exhausted, assigns the lowest free seat, and debits the
// wallet when reg.EntryFee > 0. On success reg.ID and reg.SeatNumber are set.
// Write conflicts are retried a bounded number of times before ErrContention.
type RegistrationRepository interface {
	Register(ctx context.Context, reg *Registration) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	ListByUserID(ctx context.Context, userID string) ([]*Registration, error)
	ListAll(ctx context.Context) ([]*Registration, error)
	ListRegistered(ctx context.Context) ([]*Registration, error)
	ListRegisteredByMatchID(ctx context.Context, matchID string) ([]*Registration, error)
	// Cancel transitions registered -> canceled, clears room credentials, and
	// credits the entry fee back to the wallet in the same transaction.
	// Returns the registration as it was before cancellation.
	Cancel(ctx context.Context, id string) (*Registration, error)
	// Delete removes the registration and returns its last persisted state so
	// the caller can decide whether a seat release is due.
	Delete(ctx context.Context, id string) (*Registration, error)
	UpdateStatus(ctx context.Context, id string, status RegistrationStatus) error
	MarkCompleted(ctx context.Context, id string) error
	UpdateAutoCleanup(ctx context.Context, id string, autoCleanup bool) error
	SetRoomDetails(ctx context.Context, id, roomCode, roomPassword string) error
	// SetRoomDetailsByMatch updates room credentials on every registered entry
	// of the match and returns the number of rows updated.
	SetRoomDetailsByMatch(ctx context.Context, matchID, roomCode, roomPassword string) (int, error)
}

// RegisterRequest is the input payload for the registration workflow.
type RegisterRequest struct {
	UserID       string
	Email        string
	MatchID      string
	LeaderIGN    string
	LeaderGameID string
	Teammates    []Teammate
	// ClientTime is the caller-reported submission time. Advisory only; the
	// server clock decides window checks.
	ClientTime string
}

// RegistrationService orchestrates the booking workflow and registration
// lifecycle operations.
type RegistrationService interface {
	Register(ctx context.Context, req *RegisterRequest) (*Registration, error)
	ListMyRegistrations(ctx context.Context, userID string) ([]*RegistrationView, error)
	ListMatchParticipants(ctx context.Context, matchID string) ([]*MatchParticipant, error)
	Cancel(ctx context.Context, actorID, registrationID string) error
	Delete(ctx context.Context, actorID, registrationID string) error
	UpdateAutoCleanup(ctx context.Context, actorID, registrationID string, autoCleanup bool) error

	// Admin operations. The actor must pass the Authorizer admin check.
	ListAllRegistrations(ctx context.Context, actorID string) ([]*RegistrationView, error)
	OverrideStatus(ctx context.Context, actorID, registrationID string, status RegistrationStatus) error
	SetRoomDetails(ctx context.Context, actorID, registrationID, roomCode, roomPassword string) error
	SetRoomDetailsByMatch(ctx context.Context, actorID, matchID, roomCode, roomPassword string) (int, error)
}
