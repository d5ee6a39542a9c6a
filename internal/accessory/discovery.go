package accessory

import (
	"context"
	"fmt"
	"time"

	"github.com/nerrad567/scorelink-core/internal/bridges/scoreboard"
)

// TokenError records one configured token that failed discovery.
type TokenError struct {
	// Token is the configured token as given.
	Token string

	// Err is the resolution or registration failure.
	Err error
}

// Error implements the error interface.
func (e TokenError) Error() string {
	return fmt.Sprintf("token %q: %v", e.Token, e.Err)
}

// Unwrap exposes the underlying error for errors.Is checks.
func (e TokenError) Unwrap() error {
	return e.Err
}

// DiscoveryResult is the outcome of one discovery pass.
type DiscoveryResult struct {
	// Accessories are the successfully reconciled accessories, in token order.
	Accessories []*Accessory

	// Failures are the tokens that could not be processed, in token order.
	// A failure never prevents processing of the remaining tokens.
	Failures []TokenError
}

// Discoverer runs the startup discovery pass: resolve every configured
// token, reconcile each resolved address, and build one accessory per
// distinct device.
type Discoverer struct {
	registry *Registry
	port     int
	timeout  time.Duration
	recorder StateRecorder
	logger   Logger
}

// DiscovererConfig holds construction parameters for a Discoverer.
type DiscovererConfig struct {
	// Registry reconciles resolved addresses. Required.
	Registry *Registry

	// DevicePort is the scoreboard HTTP port.
	// Default: scoreboard.DefaultPort.
	DevicePort int

	// DeviceTimeout bounds each device round trip.
	// Default: scoreboard.DefaultTimeout.
	DeviceTimeout time.Duration

	// Recorder receives state observations. Optional.
	Recorder StateRecorder

	// Logger is optional.
	Logger Logger
}

// NewDiscoverer creates a discoverer.
func NewDiscoverer(cfg DiscovererConfig) (*Discoverer, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("registry is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = noopLogger{}
	}

	return &Discoverer{
		registry: cfg.Registry,
		port:     cfg.DevicePort,
		timeout:  cfg.DeviceTimeout,
		recorder: cfg.Recorder,
		logger:   logger,
	}, nil
}

// Run processes the configured tokens once.
//
// Each token is independent: a decode or registration failure is recorded in
// the result and the loop continues with the next token. Blanket suppression
// that would drop the remaining work is deliberately not how this works.
//
// Parameters:
//   - ctx: Context for repository operations
//   - tokens: Ordered list of configured device tokens
//
// Returns:
//   - DiscoveryResult: Reconciled accessories plus per-token failures
func (d *Discoverer) Run(ctx context.Context, tokens []string) DiscoveryResult {
	var result DiscoveryResult

	for _, token := range tokens {
		acc, err := d.processToken(ctx, token)
		if err != nil {
			d.logger.Warn("token discovery failed", "token", token, "error", err)
			result.Failures = append(result.Failures, TokenError{Token: token, Err: err})
			continue
		}
		result.Accessories = append(result.Accessories, acc)
	}

	d.logger.Info("discovery complete",
		"accessories", len(result.Accessories),
		"failures", len(result.Failures),
	)
	return result
}

// processToken resolves and reconciles a single token.
func (d *Discoverer) processToken(ctx context.Context, token string) (*Accessory, error) {
	address, err := scoreboard.Resolve(token)
	if err != nil {
		return nil, err
	}

	record, isNew, err := d.registry.Reconcile(ctx, address)
	if err != nil {
		return nil, err
	}

	client := scoreboard.NewClient(scoreboard.ClientConfig{
		Address: address,
		Port:    d.port,
		Timeout: d.timeout,
	})

	return NewAccessory(AccessoryConfig{
		Record:   record,
		Restored: !isNew,
		Client:   client,
		Recorder: d.recorder,
	})
}
