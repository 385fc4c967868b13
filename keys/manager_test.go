package keys

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"ytmix/internal/storage"
	"ytmix/quota"
	"ytmix/youtube"
)

// fakeAPI scripts per-key behavior for the probe and validation calls.
type fakeAPI struct {
	pingErr   error
	searchErr error
	pings     int
	searches  int
}

func (f *fakeAPI) SearchVideos(ctx context.Context, p youtube.SearchParams) ([]youtube.SearchResult, error) {
	f.searches++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return []youtube.SearchResult{{VideoID: "v1"}}, nil
}

func (f *fakeAPI) VideoDetails(ctx context.Context, videoID string) (*youtube.VideoDetails, error) {
	return &youtube.VideoDetails{VideoID: videoID}, nil
}

func (f *fakeAPI) ResolveChannelID(ctx context.Context, name string) (string, error) {
	return "UC1", nil
}

func (f *fakeAPI) Ping(ctx context.Context) error {
	f.pings++
	return f.pingErr
}

// testManager builds a manager over scripted fakes. Keys not present in
// fakes get a healthy client.
func testManager(t *testing.T, keys []string, fakes map[string]*fakeAPI) (*Manager, *quota.Ledger) {
	t.Helper()

	dir := t.TempDir()
	ledger := quota.Open(filepath.Join(dir, "quota.json"))
	m := NewManager(filepath.Join(dir, "keys.json"), "", ledger)
	m.keys = append([]string(nil), keys...)
	m.SetClientFactory(func(ctx context.Context, apiKey string) (youtube.API, error) {
		if f, ok := fakes[apiKey]; ok {
			return f, nil
		}
		return &fakeAPI{}, nil
	})
	return m, ledger
}

func TestNewManagerMergesBootstrapKey(t *testing.T) {
	dir := t.TempDir()
	ledger := quota.Open(filepath.Join(dir, "quota.json"))
	path := filepath.Join(dir, "keys.json")

	m := NewManager(path, "boot-key", ledger)
	if got := m.Keys(); len(got) != 1 || got[0] != "boot-key" {
		t.Fatalf("Keys() = %v, want [boot-key]", got)
	}

	// A bootstrap key already in the persisted list is not duplicated.
	if err := storage.WriteJSON(path, []string{"boot-key", "other"}); err != nil {
		t.Fatal(err)
	}
	m2 := NewManager(path, "boot-key", ledger)
	if got := m2.Keys(); len(got) != 2 {
		t.Errorf("Keys() = %v, want [boot-key other]", got)
	}
}

func TestRotateAdvancesToWorkingKey(t *testing.T) {
	m, _ := testManager(t, []string{"a", "b", "c"}, nil)

	if !m.Rotate(context.Background()) {
		t.Fatal("Rotate() = false, want true")
	}
	if got := m.ActiveKey(); got != "b" {
		t.Errorf("ActiveKey() = %q, want b", got)
	}
}

func TestRotateSkipsExhaustedKeepsKey(t *testing.T) {
	fakes := map[string]*fakeAPI{
		"b": {pingErr: youtube.ErrQuotaExceeded},
	}
	m, _ := testManager(t, []string{"a", "b", "c"}, fakes)

	if !m.Rotate(context.Background()) {
		t.Fatal("Rotate() = false, want true")
	}
	if got := m.ActiveKey(); got != "c" {
		t.Errorf("ActiveKey() = %q, want c", got)
	}
	// Exhausted keys stay in the ring for tomorrow.
	if got := m.Keys(); len(got) != 3 {
		t.Errorf("Keys() = %v, want all three", got)
	}
}

func TestRotateRemovesInvalidKey(t *testing.T) {
	fakes := map[string]*fakeAPI{
		"b": {pingErr: youtube.ErrInvalidKey},
	}
	m, _ := testManager(t, []string{"a", "b", "c"}, fakes)

	if !m.Rotate(context.Background()) {
		t.Fatal("Rotate() = false, want true")
	}
	if got := m.ActiveKey(); got != "c" {
		t.Errorf("ActiveKey() = %q, want c", got)
	}
	got := m.Keys()
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("Keys() = %v, want [a c]", got)
	}
}

func TestRotateAllExhaustedRestoresOriginal(t *testing.T) {
	fakes := map[string]*fakeAPI{
		"a": {pingErr: youtube.ErrQuotaExceeded},
		"b": {pingErr: youtube.ErrQuotaExceeded},
		"c": {pingErr: youtube.ErrQuotaExceeded},
	}
	m, _ := testManager(t, []string{"a", "b", "c"}, fakes)

	if m.Rotate(context.Background()) {
		t.Fatal("Rotate() = true, want false")
	}
	if got := m.ActiveKey(); got != "a" {
		t.Errorf("ActiveKey() = %q, want original a", got)
	}
	if got := m.Keys(); len(got) != 3 {
		t.Errorf("Keys() = %v, want all three", got)
	}
}

func TestRotateProbesEachCandidateOnce(t *testing.T) {
	fakes := map[string]*fakeAPI{
		"a": {pingErr: youtube.ErrQuotaExceeded},
		"b": {pingErr: youtube.ErrQuotaExceeded},
	}
	m, _ := testManager(t, []string{"a", "b"}, fakes)

	m.Rotate(context.Background())
	for key, f := range fakes {
		if f.pings > 1 {
			t.Errorf("key %s probed %d times, want at most once", key, f.pings)
		}
	}
}

func TestRotateIndexStaysInBoundsAfterRemovals(t *testing.T) {
	// Every alternative is invalid and the active key is exhausted, so
	// the ring shrinks to one and the index must be clamped.
	fakes := map[string]*fakeAPI{
		"a": {pingErr: youtube.ErrQuotaExceeded},
		"b": {pingErr: youtube.ErrInvalidKey},
		"c": {pingErr: youtube.ErrInvalidKey},
	}
	m, _ := testManager(t, []string{"a", "b", "c"}, fakes)

	if m.Rotate(context.Background()) {
		t.Fatal("Rotate() = true, want false")
	}
	if got := m.Keys(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("Keys() = %v, want [a]", got)
	}
	if got := m.ActiveKey(); got != "a" {
		t.Errorf("ActiveKey() = %q, want a", got)
	}
}

func TestRotateChargesProbeCost(t *testing.T) {
	m, ledger := testManager(t, []string{"a", "b"}, nil)

	m.Rotate(context.Background())
	if got := ledger.Usage("b", 1); got != youtube.CostPing {
		t.Errorf("probe cost for b = %d, want %d", got, youtube.CostPing)
	}
}

func TestAddRejectsDuplicate(t *testing.T) {
	m, _ := testManager(t, []string{"a"}, nil)

	if err := m.Add(context.Background(), "a"); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("Add(duplicate) error = %v, want ErrDuplicateKey", err)
	}
}

func TestAddValidKeyChargesSearchCost(t *testing.T) {
	m, ledger := testManager(t, []string{"a"}, nil)

	if err := m.Add(context.Background(), "new"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if got := m.Keys(); len(got) != 2 || got[1] != "new" {
		t.Errorf("Keys() = %v, want [a new]", got)
	}
	if got := ledger.Usage("new", 1); got != youtube.CostSearch {
		t.Errorf("validation cost = %d, want %d", got, youtube.CostSearch)
	}
}

func TestAddExhaustedKeyChargedFullPenalty(t *testing.T) {
	fakes := map[string]*fakeAPI{
		"tired": {searchErr: fmt.Errorf("search: %w", youtube.ErrQuotaExceeded)},
	}
	m, ledger := testManager(t, []string{"a"}, fakes)

	err := m.Add(context.Background(), "tired")
	if !errors.Is(err, youtube.ErrQuotaExceeded) {
		t.Fatalf("Add() error = %v, want ErrQuotaExceeded", err)
	}
	if got := m.Keys(); len(got) != 1 {
		t.Errorf("Keys() = %v, exhausted key must not be added", got)
	}
	if got := ledger.Usage("tired", 1); got != quota.DailyCeiling {
		t.Errorf("penalty = %d, want %d", got, quota.DailyCeiling)
	}
}

func TestAddInvalidKeyNotCharged(t *testing.T) {
	fakes := map[string]*fakeAPI{
		"bogus": {searchErr: youtube.ErrInvalidKey},
	}
	m, ledger := testManager(t, []string{"a"}, fakes)

	err := m.Add(context.Background(), "bogus")
	if !errors.Is(err, youtube.ErrInvalidKey) {
		t.Fatalf("Add() error = %v, want ErrInvalidKey", err)
	}
	if got := ledger.Usage("bogus", 1); got != 0 {
		t.Errorf("invalid key charged %d units, want 0", got)
	}
}

func TestRemove(t *testing.T) {
	m, _ := testManager(t, []string{"a", "b"}, nil)

	if err := m.Remove("a"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if got := m.Keys(); len(got) != 1 || got[0] != "b" {
		t.Errorf("Keys() = %v, want [b]", got)
	}
	if got := m.ActiveKey(); got != "b" {
		t.Errorf("ActiveKey() = %q, want b", got)
	}

	if err := m.Remove("a"); err == nil {
		t.Error("Remove(missing) error = nil, want error")
	}
}

func TestClientWithEmptyRing(t *testing.T) {
	m, _ := testManager(t, nil, nil)

	if _, err := m.Client(context.Background()); !errors.Is(err, ErrNoKeys) {
		t.Errorf("Client() error = %v, want ErrNoKeys", err)
	}
	if got := m.ActiveKey(); got != "" {
		t.Errorf("ActiveKey() = %q, want empty", got)
	}
	if m.Rotate(context.Background()) {
		t.Error("Rotate() on empty ring = true, want false")
	}
}

func TestRedact(t *testing.T) {
	if got := redact("AIzaSyExample1234"); got != "AIza...1234" {
		t.Errorf("redact() = %q", got)
	}
	if got := redact("short"); got != "****" {
		t.Errorf("redact(short) = %q", got)
	}
}
