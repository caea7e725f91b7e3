package controllers

import (
	"log/slog"
	"net/http"

	"tourneyslots/internal/delivery/http/helpers"
	"tourneyslots/internal/delivery/http/middleware"
	"tourneyslots/internal/domain"
)

type WalletController struct {
	Logger  *slog.Logger
	Service domain.WalletService
}

func NewWalletController(logger *slog.Logger, svc domain.WalletService) *WalletController {
	return &WalletController{
		Logger:  logger,
		Service: svc,
	}
}

// BalanceSuccessResponse is the success response envelope for GET /api/wallet (200).
type BalanceSuccessResponse struct {
	Data  *domain.WalletAccount `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// Balance godoc
// @Summary Get wallet balance
// @Description Returns the authenticated user's wallet, creating a zero-balance account on first access. Amounts are in minor currency units.
// @Tags wallet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.BalanceSuccessResponse "data contains the wallet account"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/wallet [get]
func (c *WalletController) Balance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	acct, err := c.Service.Balance(r.Context(), userID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, acct)
}

// TransactionsSuccessResponse is the success response envelope for GET /api/wallet/transactions (200).
type TransactionsSuccessResponse struct {
	Data  []*domain.WalletTransaction `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

// Transactions godoc
// @Summary List wallet transactions
// @Description Returns the authenticated user's ledger entries, newest first. Debits are negative amounts.
// @Tags wallet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.TransactionsSuccessResponse "data is an array of ledger entries"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/wallet/transactions [get]
func (c *WalletController) Transactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	entries, err := c.Service.Transactions(r.Context(), userID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, entries)
}

// CreateOrderRequestBody is the request body for POST /api/payments/orders.
type CreateOrderRequestBody struct {
	Amount int64 `json:"amount"`
}

// Validate implements Validator.
func (b CreateOrderRequestBody) Validate() []string {
	if b.Amount <= 0 {
		return []string{"amount must be positive"}
	}
	return nil
}

// CreateOrderSuccessResponse is the success response envelope for POST /api/payments/orders (201).
type CreateOrderSuccessResponse struct {
	Data  *domain.PaymentOrder `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// CreateOrder godoc
// @Summary Create a wallet top-up order
// @Description Registers a top-up order with the payment gateway and persists it unpaid. The client completes the checkout against the gateway and confirms via POST /api/payments/confirm.
// @Tags wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateOrderRequestBody true "Top-up amount in minor units"
// @Success 201 {object} controllers.CreateOrderSuccessResponse "data contains the pending order"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/payments/orders [post]
func (c *WalletController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var body CreateOrderRequestBody
	if !helpers.DecodeAndValidate(w, r, &body) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	order, err := c.Service.CreatePaymentOrder(r.Context(), userID, body.Amount)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, order)
}

// ConfirmPaymentRequestBody is the request body for POST /api/payments/confirm.
type ConfirmPaymentRequestBody struct {
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	Signature        string `json:"signature"`
}

// Validate implements Validator.
func (b ConfirmPaymentRequestBody) Validate() []string {
	var errs []string
	if b.GatewayOrderID == "" {
		errs = append(errs, "gateway_order_id is required")
	}
	if b.GatewayPaymentID == "" {
		errs = append(errs, "gateway_payment_id is required")
	}
	if b.Signature == "" {
		errs = append(errs, "signature is required")
	}
	return errs
}

// ConfirmPaymentSuccessResponse is the success response envelope for POST /api/payments/confirm (200).
type ConfirmPaymentSuccessResponse struct {
	Data  *domain.WalletTransaction `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// ConfirmPayment godoc
// @Summary Confirm a completed gateway payment
// @Description Verifies the gateway's HMAC signature over the order and payment IDs and credits the wallet exactly once per order.
// @Tags wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ConfirmPaymentRequestBody true "Gateway checkout result"
// @Success 200 {object} controllers.ConfirmPaymentSuccessResponse "data contains the credit ledger entry"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request | signature_mismatch | order_already_paid"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/payments/confirm [post]
func (c *WalletController) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var body ConfirmPaymentRequestBody
	if !helpers.DecodeAndValidate(w, r, &body) {
		return
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	entry, err := c.Service.ConfirmPayment(r.Context(), body.GatewayOrderID, body.GatewayPaymentID, body.Signature)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, entry)
}
