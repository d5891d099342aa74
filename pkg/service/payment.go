package service

import (
	"context"
	"strings"

	"github.com/akili-ai/akili-cli/pkg/api"
	"github.com/akili-ai/akili-cli/pkg/formatter"
)

// PaymentService initiates mobile-money upgrades
type PaymentService struct {
	app *App
}

// NewPaymentService creates a new payment service
func NewPaymentService(app *App) *PaymentService {
	return &PaymentService{app: app}
}

// Pay starts an M-Pesa payment for a plan
func (s *PaymentService) Pay(planName, phoneNumber string) error {
	if s.app.Store.IsPaid() {
		formatter.PrintInfo("This device already has full access.")
		return nil
	}

	if err := s.app.RequireCredential(context.Background()); err != nil {
		formatter.PrintError("%s", err)
		return err
	}

	formatter.PrintInfo("Initializing M-Pesa payment for plan %s...", planName)
	resp, err := api.InitializeMpesaPayment(planName, phoneNumber)
	if err != nil {
		formatter.PrintError("Payment initialization failed: %v", err)
		return err
	}

	formatter.PrintInfo("%s", resp.DisplayText)
	formatter.PrintKeyValue(map[string]interface{}{
		"Status":    resp.Status,
		"Reference": resp.Reference,
	})

	// The STK push completes out of band; only an already-settled
	// status grants access right here.
	switch strings.ToLower(resp.Status) {
	case "success", "completed", "paid":
		s.app.Store.GrantAccess()
		formatter.PrintSuccess("Payment confirmed, full access unlocked.")
	}

	return nil
}
