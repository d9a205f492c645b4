package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yllada/ip-applet/common"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_Session(t *testing.T) {
	store := openTestStore(t)

	if _, err := uuid.Parse(store.Session()); err != nil {
		t.Errorf("Session() = %q is not a UUID: %v", store.Session(), err)
	}
}

func TestStore_RecordRecent(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	step := 0
	store.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}

	records := []struct {
		kind    common.ObservationKind
		name    string
		address string
	}{
		{common.ObservationInterface, "eth0", "10.0.0.2"},
		{common.ObservationPublic, "ipify", "203.0.113.5"},
		{common.ObservationInterface, "wlan0", "192.168.1.20"},
	}
	for _, r := range records {
		if err := store.Record(r.kind, r.name, r.address); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := store.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent() returned %d rows, want 2", len(got))
	}

	if got[0].Name != "wlan0" || got[0].Address != "192.168.1.20" {
		t.Errorf("newest row = %+v", got[0])
	}
	if got[1].Kind != common.ObservationPublic || got[1].Address != "203.0.113.5" {
		t.Errorf("second row = %+v", got[1])
	}
	if !got[0].ObservedAt.Equal(base.Add(3 * time.Second)) {
		t.Errorf("ObservedAt = %v", got[0].ObservedAt)
	}
	if got[0].Session != store.Session() {
		t.Errorf("Session = %q, want %q", got[0].Session, store.Session())
	}
}

func TestStore_RecentZeroLimit(t *testing.T) {
	store := openTestStore(t)

	got, err := store.Recent(context.Background(), 0)
	if err != nil || len(got) != 0 {
		t.Errorf("Recent(0) = %v, %v", got, err)
	}
}

func TestStore_ReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	first, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Record(common.ObservationInterface, "eth0", "10.0.0.2"); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	if second.Session() == first.Session() {
		t.Error("each open should start a new session")
	}

	got, err := second.Recent(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Session != first.Session() {
		t.Errorf("Recent() = %+v", got)
	}
}
