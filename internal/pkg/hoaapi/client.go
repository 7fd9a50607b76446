package hoaapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const defaultTimeout = 15 * time.Second

// TokenSource supplies the bearer credential for authenticated requests.
// The session store implements it; call sites never attach the token
// themselves.
type TokenSource interface {
	Token() string
}

// Client represents the HOA reservation API HTTP client.
type Client struct {
	baseURL string
	ua      string
	http    *http.Client

	tokens TokenSource

	// onUnauthorized runs once per 401 response, before the error is
	// returned, so the session can be wiped in one place.
	onUnauthorized func()
}

// NewClient creates a new API client.
func NewClient(baseURL string, timeout time.Duration, ua string) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		ua:      ua,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// SetTokenSource wires the session store the client reads the bearer
// credential from.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

// SetUnauthorizedHook registers the callback fired on every 401 response.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// Login establishes a session.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the session server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil)
}

// Register creates an account and establishes a session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me validates the stored token and refreshes the identity.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var resp MeResponse
	if err := c.do(ctx, http.MethodGet, "/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Availability fetches bookable time blocks for a facility on a date.
// The date must be formatted YYYY-MM-DD.
func (c *Client) Availability(ctx context.Context, facilityID int, date string) ([]SlotRecord, error) {
	var slots []SlotRecord
	path := fmt.Sprintf("/availability/%d/%s", facilityID, date)
	if err := c.do(ctx, http.MethodGet, path, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// Amenities fetches the priced add-on catalog.
func (c *Client) Amenities(ctx context.Context) ([]AmenityRecord, error) {
	var amenities []AmenityRecord
	if err := c.do(ctx, http.MethodGet, "/amenities", nil, &amenities); err != nil {
		return nil, err
	}
	return amenities, nil
}

// Reservations lists the user's confirmed reservations.
func (c *Client) Reservations(ctx context.Context) ([]ReservationRecord, error) {
	var reservations []ReservationRecord
	if err := c.do(ctx, http.MethodGet, "/reservations", nil, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// StoreReservation submits a completed reservation.
func (c *Client) StoreReservation(ctx context.Context, req StoreReservationRequest) (*ReservationRecord, error) {
	var resp ReservationRecord
	if err := c.do(ctx, http.MethodPost, "/reservations/store", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendResetLink starts the password-recovery flow. The server may have the
// flow disabled; its status/message is returned verbatim.
func (c *Client) SendResetLink(ctx context.Context, req SendResetLinkRequest) (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.do(ctx, http.MethodPost, "/password/send-link", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyOTP checks the one-time code sent to the user's email.
func (c *Client) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.do(ctx, http.MethodPost, "/password/verify-otp", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResetPassword completes the password-recovery flow.
func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.do(ctx, http.MethodPost, "/password/reset-password", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do builds, sends and decodes one request, normalizing every failure into
// *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("hoaapi request error: %w", err)
		}
		reader = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("hoaapi request error: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.New().String())
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		apiErr := classifyRequestError(ctx, err)
		log.Warn().
			Str("method", method).
			Str("path", path).
			Dur("duration", time.Since(start)).
			Err(err).
			Msg("API request failed")
		return apiErr
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Kind: KindNetwork, Message: "Failed to read server response"}
	}

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("API request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := normalizeResponse(resp.StatusCode, respBody)
		if apiErr.Kind == KindAuth && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apiErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &APIError{Kind: KindServer, Status: resp.StatusCode, Message: "Unexpected server response"}
	}
	return nil
}
