package scoreboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Device API constants.
const (
	// DefaultPort is the fixed TCP port of the scoreboard HTTP API.
	DefaultPort = 5005

	// DefaultTimeout bounds each device round trip. Unbounded waits are
	// disallowed; once issued, a call runs to completion or to this bound.
	DefaultTimeout = 5 * time.Second

	// maxResponseSize caps how much of a device response body is read.
	maxResponseSize = 1 << 16 // 64KB

	statePath    = "/"
	setPowerPath = "/setPower"
	setSportPath = "/setSport"
)

// State is the combined device state returned by GET /.
//
// The device owns this state; it is never cached durably on this side.
// Every read is a live round trip.
type State struct {
	// ScreenOn reports whether the scoreboard display is powered.
	ScreenOn bool `json:"screen_on"`

	// Sport is the numeric identifier of the active input source.
	Sport int `json:"sport"`
}

// ClientConfig holds configuration for creating a device client.
type ClientConfig struct {
	// Address is the resolved dotted-quad device address. Required.
	Address string

	// Port is the device HTTP port. Default: DefaultPort.
	Port int

	// Timeout bounds each round trip. Default: DefaultTimeout.
	Timeout time.Duration
}

// Client performs HTTP calls against one scoreboard device.
//
// A Client is stateless beyond its immutable base URL; overlapping calls are
// independent round trips and need no synchronisation.
type Client struct {
	address string
	baseURL string
	http    *http.Client
}

// NewClient creates a device client for the given resolved address.
//
// Parameters:
//   - cfg: Client configuration (zero Port/Timeout take defaults)
//
// Returns:
//   - *Client: Ready to use; no connection is opened until the first call
func NewClient(cfg ClientConfig) *Client {
	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		address: cfg.Address,
		baseURL: fmt.Sprintf("http://%s:%d", cfg.Address, port),
		http:    &http.Client{Timeout: timeout},
	}
}

// Address returns the resolved device address this client talks to.
func (c *Client) Address() string {
	return c.address
}

// State reads the combined device state with a live GET /.
//
// Both response fields are required; a 200 answer missing either one is
// ErrMalformedResponse, not a zero value.
//
// Parameters:
//   - ctx: Context for the request deadline
//
// Returns:
//   - State: Current device state
//   - error: ErrDeviceUnreachable or ErrMalformedResponse
func (c *Client) State(ctx context.Context) (State, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+statePath, nil)
	if err != nil {
		return State{}, fmt.Errorf("%w: building request: %w", ErrDeviceUnreachable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return State{}, fmt.Errorf("%w: %w", ErrDeviceUnreachable, err)
	}
	defer resp.Body.Close() //nolint:errcheck // Read-only body

	if resp.StatusCode != http.StatusOK {
		return State{}, fmt.Errorf("%w: unexpected status %d", ErrDeviceUnreachable, resp.StatusCode)
	}

	// Decode with pointer fields so an absent field is detectable rather
	// than silently defaulting.
	var body struct {
		ScreenOn *bool `json:"screen_on"`
		Sport    *int  `json:"sport"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&body); err != nil {
		return State{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if body.ScreenOn == nil {
		return State{}, fmt.Errorf("%w: missing screen_on field", ErrMalformedResponse)
	}
	if body.Sport == nil {
		return State{}, fmt.Errorf("%w: missing sport field", ErrMalformedResponse)
	}

	return State{ScreenOn: *body.ScreenOn, Sport: *body.Sport}, nil
}

// Power reads the display power state with a live round trip.
func (c *Client) Power(ctx context.Context) (bool, error) {
	state, err := c.State(ctx)
	if err != nil {
		return false, err
	}
	return state.ScreenOn, nil
}

// ActiveInput reads the active input-source identifier with a live round trip.
//
// This is the sport field of the combined response, distinct from the power
// field even though the device exposes both in one body.
func (c *Client) ActiveInput(ctx context.Context) (int, error) {
	state, err := c.State(ctx)
	if err != nil {
		return 0, err
	}
	return state.Sport, nil
}

// SetPower switches the scoreboard display on or off.
//
// Parameters:
//   - ctx: Context for the request deadline
//   - on: Desired display power state
//
// Returns:
//   - error: ErrDeviceUnreachable on failure; nil means the device answered 200
func (c *Client) SetPower(ctx context.Context, on bool) error {
	return c.post(ctx, setPowerPath, struct {
		ScreenOn bool `json:"screen_on"`
	}{ScreenOn: on})
}

// SetInput switches the scoreboard to the given input source.
//
// Parameters:
//   - ctx: Context for the request deadline
//   - sport: Numeric input-source identifier
//
// Returns:
//   - error: ErrDeviceUnreachable on failure; nil means the device answered 200
func (c *Client) SetInput(ctx context.Context, sport int) error {
	return c.post(ctx, setSportPath, struct {
		Sport int `json:"sport"`
	}{Sport: sport})
}

// post sends a JSON body and treats anything but a 200 answer as failure.
func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encoding request: %w", ErrDeviceUnreachable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: building request: %w", ErrDeviceUnreachable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeviceUnreachable, err)
	}
	defer resp.Body.Close() //nolint:errcheck // Response body unused

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize)) //nolint:errcheck // Best effort

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrDeviceUnreachable, resp.StatusCode)
	}

	return nil
}
