package accessory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Logger defines the logging interface used by this package.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// defaultNamePrefix is prepended to generated accessory names.
const defaultNamePrefix = "Scoreboard"

// Registry reconciles resolved addresses into accessory records.
//
// It guarantees that exactly one record exists per distinct resolved address
// per process lifetime: a persisted record is returned untouched, and a new
// record is created and registered at most once, even if the same address is
// reconciled repeatedly.
//
// All public methods are thread-safe.
type Registry struct {
	repo       Repository
	identity   IdentityFunc
	namePrefix string

	// registered tracks identities already seen this process, so a second
	// reconcile of the same identity can never register twice.
	registered map[string]bool
	mu         sync.Mutex

	logger Logger
}

// NewRegistry creates a new accessory registry backed by the given repository.
func NewRegistry(repo Repository) *Registry {
	return &Registry{
		repo:       repo,
		identity:   Identity,
		namePrefix: defaultNamePrefix,
		registered: make(map[string]bool),
		logger:     noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// SetNamePrefix sets the prefix used for newly created accessory names.
func (r *Registry) SetNamePrefix(prefix string) {
	if prefix != "" {
		r.namePrefix = prefix
	}
}

// SetIdentityFunc replaces the identity derivation.
// Host frameworks with their own deterministic UUID generator hook in here.
func (r *Registry) SetIdentityFunc(fn IdentityFunc) {
	if fn != nil {
		r.identity = fn
	}
}

// Reconcile maps a resolved address onto its accessory record.
//
// If a record with the derived identity is already persisted, it is returned
// exactly as stored with isNew=false. Otherwise a new record is created,
// registered via the repository, and returned with isNew=true. Registration
// happens at most once per identity per process lifetime.
//
// Parameters:
//   - ctx: Context for repository operations
//   - address: Resolved dotted-quad device address
//
// Returns:
//   - *Record: The restored or newly created record
//   - bool: true if the record was newly registered by this call
//   - error: Repository failure; never a silent partial result
func (r *Registry) Reconcile(ctx context.Context, address string) (*Record, bool, error) {
	id := r.identity(address)

	// The whole check-then-create sequence is serialised so two concurrent
	// reconciles of one identity cannot both register.
	r.mu.Lock()
	defer r.mu.Unlock()

	record, err := r.repo.GetByID(ctx, id)
	if err == nil {
		r.registered[id] = true
		r.logger.Debug("accessory restored", "id", id, "address", address)
		return record, false, nil
	}
	if !errors.Is(err, ErrAccessoryNotFound) {
		return nil, false, fmt.Errorf("looking up accessory %s: %w", id, err)
	}

	if r.registered[id] {
		// Already registered this process but the lookup missed: the store
		// is the collaborator's; report rather than re-register.
		return nil, false, fmt.Errorf("%w: identity %s registered this process but not persisted", ErrAccessoryNotFound, id)
	}

	now := time.Now().UTC()
	record = &Record{
		ID:        id,
		Address:   address,
		Name:      fmt.Sprintf("%s %s", r.namePrefix, address),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.repo.Create(ctx, record); err != nil {
		return nil, false, fmt.Errorf("registering accessory %s: %w", id, err)
	}
	r.registered[id] = true

	r.logger.Info("accessory registered", "id", id, "address", address, "name", record.Name)
	return record, true, nil
}

// List returns all persisted accessory records.
func (r *Registry) List(ctx context.Context) ([]Record, error) {
	return r.repo.List(ctx)
}
