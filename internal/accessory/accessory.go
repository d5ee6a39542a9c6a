package accessory

import (
	"context"
	"fmt"
	"sync"

	"github.com/nerrad567/scorelink-core/internal/bridges/scoreboard"
)

// StateRecorder receives successfully observed or written device state for
// telemetry. It is optional; a nil recorder disables recording. Implemented
// by the influxdb client.
//
// Recording is write-only telemetry, never a read cache: every accessory get
// still round-trips to the device.
type StateRecorder interface {
	// WritePowerState records a display power observation.
	WritePowerState(accessoryID string, on bool)

	// WriteInputState records an active input-source observation.
	WriteInputState(accessoryID string, sport int)
}

// Accessory ties one reconciled record to its device client and carries the
// per-accessory event operations the framework adapter drives.
//
// All methods are safe for concurrent use; overlapping event invocations
// perform independent device round trips.
type Accessory struct {
	record   *Record
	restored bool
	client   *scoreboard.Client
	sources  []InputSource
	recorder StateRecorder

	// activeIdentifier is a display-only cache of the last successfully
	// observed or set input source. The device stays authoritative; every
	// get re-queries it.
	activeIdentifier int
	activeMu         sync.RWMutex
}

// AccessoryConfig holds construction parameters for an Accessory.
type AccessoryConfig struct {
	// Record is the reconciled accessory record. Required.
	Record *Record

	// Restored is true when Record was loaded from the persisted store.
	Restored bool

	// Client is the device client for Record.Address. Required.
	Client *scoreboard.Client

	// Sources is the static input-source list.
	// Default: DefaultInputSources.
	Sources []InputSource

	// Recorder receives state observations. Optional.
	Recorder StateRecorder
}

// NewAccessory creates an accessory from a reconciled record.
func NewAccessory(cfg AccessoryConfig) (*Accessory, error) {
	if cfg.Record == nil {
		return nil, fmt.Errorf("%w: record is required", ErrInvalidRecord)
	}
	if cfg.Client == nil {
		return nil, fmt.Errorf("%w: device client is required", ErrInvalidRecord)
	}

	sources := cfg.Sources
	if len(sources) == 0 {
		sources = DefaultInputSources
	}

	return &Accessory{
		record:   cfg.Record,
		restored: cfg.Restored,
		client:   cfg.Client,
		sources:  sources,
		recorder: cfg.Recorder,
	}, nil
}

// Record returns the accessory's persisted record.
func (a *Accessory) Record() *Record {
	return a.record
}

// Restored reports whether the record was loaded from the persisted store.
func (a *Accessory) Restored() bool {
	return a.restored
}

// InputSources returns the static input-source list.
// The returned slice is a copy; callers can safely modify it.
func (a *Accessory) InputSources() []InputSource {
	sources := make([]InputSource, len(a.sources))
	copy(sources, a.sources)
	return sources
}

// ActiveIdentifier returns the display-only cached input source.
// Zero means no value has been observed yet.
func (a *Accessory) ActiveIdentifier() int {
	a.activeMu.RLock()
	defer a.activeMu.RUnlock()
	return a.activeIdentifier
}

// GetPower answers a "get power" accessory event with a live device read.
func (a *Accessory) GetPower(ctx context.Context) (bool, error) {
	on, err := a.client.Power(ctx)
	if err != nil {
		return false, err
	}
	if a.recorder != nil {
		a.recorder.WritePowerState(a.record.ID, on)
	}
	return on, nil
}

// SetPower answers a "set power" accessory event.
func (a *Accessory) SetPower(ctx context.Context, on bool) error {
	if err := a.client.SetPower(ctx, on); err != nil {
		return err
	}
	if a.recorder != nil {
		a.recorder.WritePowerState(a.record.ID, on)
	}
	return nil
}

// GetActiveInput answers a "get active input" accessory event with a live
// device read of the sport field.
func (a *Accessory) GetActiveInput(ctx context.Context) (int, error) {
	sport, err := a.client.ActiveInput(ctx)
	if err != nil {
		return 0, err
	}

	a.setActiveIdentifier(sport)
	if a.recorder != nil {
		a.recorder.WriteInputState(a.record.ID, sport)
	}
	return sport, nil
}

// SetActiveInput answers a "set active input" accessory event.
// The identifier must be one of the accessory's static sources.
func (a *Accessory) SetActiveInput(ctx context.Context, sport int) error {
	if !a.knownSource(sport) {
		return fmt.Errorf("%w: %d", ErrUnknownInputSource, sport)
	}

	if err := a.client.SetInput(ctx, sport); err != nil {
		return err
	}

	a.setActiveIdentifier(sport)
	if a.recorder != nil {
		a.recorder.WriteInputState(a.record.ID, sport)
	}
	return nil
}

// setActiveIdentifier updates the display-only cache.
func (a *Accessory) setActiveIdentifier(sport int) {
	a.activeMu.Lock()
	a.activeIdentifier = sport
	a.activeMu.Unlock()
}

// knownSource reports whether sport is in the static source list.
func (a *Accessory) knownSource(sport int) bool {
	for _, s := range a.sources {
		if s.ID == sport {
			return true
		}
	}
	return false
}
