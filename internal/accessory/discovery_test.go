package accessory

import (
	"context"
	"errors"
	"testing"

	"github.com/nerrad567/scorelink-core/internal/bridges/scoreboard"
)

func testDiscoverer(t *testing.T) *Discoverer {
	t.Helper()

	d, err := NewDiscoverer(DiscovererConfig{
		Registry: NewRegistry(NewSQLiteRepository(setupTestDB(t))),
	})
	if err != nil {
		t.Fatalf("NewDiscoverer() error = %v", err)
	}
	return d
}

func TestNewDiscoverer_RequiresRegistry(t *testing.T) {
	if _, err := NewDiscoverer(DiscovererConfig{}); err == nil {
		t.Error("NewDiscoverer() without registry succeeded, want error")
	}
}

func TestDiscoverer_Run(t *testing.T) {
	result := testDiscoverer(t).Run(context.Background(), []string{
		"AAAAAAAA",     // sync code for 0.0.0.0
		"192.168.1.50", // literal address
	})

	if len(result.Failures) != 0 {
		t.Fatalf("Failures = %v, want none", result.Failures)
	}
	if len(result.Accessories) != 2 {
		t.Fatalf("len(Accessories) = %d, want 2", len(result.Accessories))
	}

	if got := result.Accessories[0].Record().Address; got != "0.0.0.0" {
		t.Errorf("first address = %q, want 0.0.0.0", got)
	}
	if got := result.Accessories[1].Record().Address; got != "192.168.1.50" {
		t.Errorf("second address = %q, want 192.168.1.50", got)
	}
	for _, acc := range result.Accessories {
		if acc.Restored() {
			t.Errorf("accessory %s restored on first run, want newly registered", acc.Record().Address)
		}
	}
}

// TestDiscoverer_RunContinuesPastFailures puts a bad token in the middle of
// the list; the tokens after it must still produce accessories.
func TestDiscoverer_RunContinuesPastFailures(t *testing.T) {
	result := testDiscoverer(t).Run(context.Background(), []string{
		"AAAAAAAA",
		"JWAAAAAA", // first pair decodes to 256
		"192.168.1.50",
	})

	if len(result.Accessories) != 2 {
		t.Fatalf("len(Accessories) = %d, want 2", len(result.Accessories))
	}
	if len(result.Failures) != 1 {
		t.Fatalf("len(Failures) = %d, want 1", len(result.Failures))
	}

	failure := result.Failures[0]
	if failure.Token != "JWAAAAAA" {
		t.Errorf("failed token = %q, want JWAAAAAA", failure.Token)
	}
	if !errors.Is(failure, scoreboard.ErrInvalidSyncCode) {
		t.Errorf("failure error = %v, want ErrInvalidSyncCode", failure.Err)
	}
}

// TestDiscoverer_SecondRunRestores runs discovery twice over one store.
func TestDiscoverer_SecondRunRestores(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()
	tokens := []string{"AAAAAAAA", "192.168.1.50"}

	run := func() DiscoveryResult {
		d, err := NewDiscoverer(DiscovererConfig{Registry: NewRegistry(repo)})
		if err != nil {
			t.Fatalf("NewDiscoverer() error = %v", err)
		}
		return d.Run(ctx, tokens)
	}

	first := run()
	second := run()

	if len(second.Accessories) != len(first.Accessories) {
		t.Fatalf("accessory count changed across runs: %d vs %d",
			len(second.Accessories), len(first.Accessories))
	}
	for i, acc := range second.Accessories {
		if !acc.Restored() {
			t.Errorf("accessory %s not restored on second run", acc.Record().Address)
		}
		if acc.Record().ID != first.Accessories[i].Record().ID {
			t.Errorf("identity changed across runs for %s", acc.Record().Address)
		}
	}
}

// TestDiscoverer_DuplicateTokens feeds the same device twice, once as a sync
// code and once as its decoded literal; both resolve to one record.
func TestDiscoverer_DuplicateTokens(t *testing.T) {
	result := testDiscoverer(t).Run(context.Background(), []string{
		"AAAAAAAB", // 0.0.0.1
		"0.0.0.1",
	})

	if len(result.Failures) != 0 {
		t.Fatalf("Failures = %v, want none", result.Failures)
	}
	if len(result.Accessories) != 2 {
		t.Fatalf("len(Accessories) = %d, want 2", len(result.Accessories))
	}
	if result.Accessories[0].Restored() {
		t.Error("first accessory restored, want newly registered")
	}
	if !result.Accessories[1].Restored() {
		t.Error("second accessory not restored, want reconciled onto the first record")
	}
	if result.Accessories[0].Record().ID != result.Accessories[1].Record().ID {
		t.Error("duplicate tokens produced distinct identities")
	}
}
