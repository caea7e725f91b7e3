package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tourneyslots/internal/domain"
)

type walletService struct {
	walletRepo     domain.WalletRepository
	gateway        domain.PaymentGateway
	contextTimeout time.Duration
}

func NewWalletService(walletRepo domain.WalletRepository, gateway domain.PaymentGateway, timeout time.Duration) domain.WalletService {
	return &walletService{
		walletRepo:     walletRepo,
		gateway:        gateway,
		contextTimeout: timeout,
	}
}

func (s *walletService) Balance(ctx context.Context, userID string) (*domain.WalletAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	acct, err := s.walletRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	return acct, nil
}

func (s *walletService) Transactions(ctx context.Context, userID string) ([]*domain.WalletTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	entries, err := s.walletRepo.ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wallet transactions: %w", err)
	}
	return entries, nil
}

func (s *walletService) CreatePaymentOrder(ctx context.Context, userID string, amount int64) (*domain.PaymentOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}

	receipt := "topup_" + uuid.NewString()
	gatewayID, err := s.gateway.CreateOrder(ctx, receipt, amount)
	if err != nil {
		return nil, fmt.Errorf("create gateway order: %w", err)
	}

	order := &domain.PaymentOrder{
		UserID:    userID,
		Amount:    amount,
		Receipt:   receipt,
		GatewayID: gatewayID,
		CreatedAt: time.Now(),
	}
	if err := s.walletRepo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("persist payment order: %w", err)
	}
	return order, nil
}

func (s *walletService) ConfirmPayment(ctx context.Context, gatewayOrderID, gatewayPaymentID, signature string) (*domain.WalletTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if gatewayOrderID == "" || gatewayPaymentID == "" || signature == "" {
		return nil, fmt.Errorf("%w: order id, payment id and signature are required", domain.ErrInvalidInput)
	}
	if !s.gateway.VerifySignature(gatewayOrderID, gatewayPaymentID, signature) {
		return nil, domain.ErrSignatureMismatch
	}

	// Paid flip and credit share one store transaction, so a crash between
	// them cannot strand a paid order with an uncredited wallet.
	entry, err := s.walletRepo.SettleOrder(ctx, gatewayOrderID, "wallet top-up via payment gateway")
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrOrderAlreadyPaid) {
			return nil, err
		}
		return nil, fmt.Errorf("settle payment order: %w", err)
	}
	return entry, nil
}
