package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"tourneyslots/internal/delivery/http/controllers"
	"tourneyslots/internal/delivery/http/middleware"
	"tourneyslots/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	matchController *controllers.MatchController,
	registrationController *controllers.RegistrationController,
	walletController *controllers.WalletController,
	contentController *controllers.ContentController,
	adminController *controllers.AdminController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Public
	mux.HandleFunc("GET /api/match-slots", matchController.ListOpenSlots)
	mux.HandleFunc("GET /api/schedule-items", contentController.ListScheduleItems)
	mux.HandleFunc("GET /api/prize-items", contentController.ListPrizeItems)
	mux.HandleFunc("GET /api/content", contentController.GetSiteContent)

	// Registrations
	mux.HandleFunc("POST /api/registrations", auth(registrationController.Register))
	mux.HandleFunc("GET /api/registrations", auth(registrationController.ListMyRegistrations))
	mux.HandleFunc("GET /api/matches/{matchID}/participants", auth(registrationController.ListMatchParticipants))
	mux.HandleFunc("POST /api/registrations/{registrationID}/cancel", auth(registrationController.Cancel))
	mux.HandleFunc("DELETE /api/registrations/{registrationID}", auth(registrationController.Delete))
	mux.HandleFunc("PATCH /api/registrations/{registrationID}/auto-cleanup", auth(registrationController.UpdateAutoCleanup))

	// Wallet and payments
	mux.HandleFunc("GET /api/wallet", auth(walletController.Balance))
	mux.HandleFunc("GET /api/wallet/transactions", auth(walletController.Transactions))
	mux.HandleFunc("POST /api/payments/orders", auth(walletController.CreateOrder))
	mux.HandleFunc("POST /api/payments/confirm", auth(walletController.ConfirmPayment))

	// Admin (admin role enforced in the services)
	mux.HandleFunc("POST /api/admin/match-slots", auth(adminController.ManageMatchSlot))
	mux.HandleFunc("POST /api/admin/schedule-items", auth(adminController.ManageScheduleItem))
	mux.HandleFunc("POST /api/admin/prize-items", auth(adminController.ManagePrizeItem))
	mux.HandleFunc("POST /api/admin/content", auth(adminController.UpdateSiteContent))
	mux.HandleFunc("POST /api/admin/room-details", auth(adminController.SetRoomDetails))
	mux.HandleFunc("GET /api/admin/registrations", auth(adminController.ListAllRegistrations))
	mux.HandleFunc("POST /api/admin/registrations/{registrationID}/status", auth(adminController.OverrideStatus))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
