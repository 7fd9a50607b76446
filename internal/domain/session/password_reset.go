package session

import (
	"context"

	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/pkg/hoaapi"
	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/pkg/validator"
)

// Password recovery is a three-step flow the server may have disabled; every
// step returns the server's status/message verbatim for display.

// SendResetLink emails a reset link/OTP to the account.
func (s *Service) SendResetLink(ctx context.Context, email string) (*hoaapi.StatusResponse, error) {
	req := hoaapi.SendResetLinkRequest{Email: email}
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	return s.api.SendResetLink(ctx, req)
}

// VerifyOTP checks the emailed one-time code.
func (s *Service) VerifyOTP(ctx context.Context, email, otp string) (*hoaapi.StatusResponse, error) {
	req := hoaapi.VerifyOTPRequest{Email: email, OTP: otp}
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	return s.api.VerifyOTP(ctx, req)
}

// ResetPassword completes the flow with the verified token.
func (s *Service) ResetPassword(ctx context.Context, req hoaapi.ResetPasswordRequest) (*hoaapi.StatusResponse, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	return s.api.ResetPassword(ctx, req)
}
