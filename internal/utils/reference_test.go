package utils

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"
)

type memCounter struct {
	mu    sync.Mutex
	value int64
	set   bool
}

func (m *memCounter) ReadCounter(ctx context.Context) (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, m.set
}

func (m *memCounter) WriteCounter(ctx context.Context, value int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value, m.set = value, true
}

// lossyCounter never retains a write
type lossyCounter struct{}

func (lossyCounter) ReadCounter(ctx context.Context) (int64, bool) { return 0, false }

func (lossyCounter) WriteCounter(ctx context.Context, value int64) {}

var referencePattern = regexp.MustCompile(`^GTS-\d{8}-\d{4,}$`)
var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func fixedClock() time.Time {
	return time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)
}

func TestReferenceFromFreshCounter(t *testing.T) {
	counter := &memCounter{}
	gen := NewReferenceGenerator("GTS", counter, fixedClock)

	ref := gen.Next(context.Background())
	if ref != "GTS-20250307-1001" {
		t.Errorf("first reference = %s, want GTS-20250307-1001", ref)
	}
	if v, _ := counter.ReadCounter(context.Background()); v != 1001 {
		t.Errorf("counter = %d, want 1001", v)
	}
}

func TestReferenceSequence(t *testing.T) {
	counter := &memCounter{value: 1041, set: true}
	gen := NewReferenceGenerator("", counter, fixedClock)

	first := gen.Next(context.Background())
	second := gen.Next(context.Background())

	if first != "GTS-20250307-1042" {
		t.Errorf("first = %s", first)
	}
	if second != "GTS-20250307-1043" {
		t.Errorf("second = %s", second)
	}
	for _, ref := range []string{first, second} {
		if !referencePattern.MatchString(ref) {
			t.Errorf("%s does not match the reference pattern", ref)
		}
	}
}

func TestReferenceWidensPast9999(t *testing.T) {
	counter := &memCounter{value: 9999, set: true}
	gen := NewReferenceGenerator("GTS", counter, fixedClock)

	if ref := gen.Next(context.Background()); ref != "GTS-20250307-10000" {
		t.Errorf("ref = %s", ref)
	}
}

func TestReferenceConcurrentUnique(t *testing.T) {
	counter := &memCounter{}
	gen := NewReferenceGenerator("GTS", counter, fixedClock)

	const n = 50
	refs := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			refs <- gen.Next(context.Background())
		}()
	}
	wg.Wait()
	close(refs)

	seen := make(map[string]bool)
	for ref := range refs {
		if seen[ref] {
			t.Fatalf("duplicate reference %s", ref)
		}
		seen[ref] = true
	}
	if v, _ := counter.ReadCounter(context.Background()); v != 1000+n {
		t.Errorf("counter = %d, want %d", v, 1000+n)
	}
}

func TestReferenceUniqueWhenCounterWritesAreLost(t *testing.T) {
	gen := NewReferenceGenerator("GTS", lossyCounter{}, fixedClock)

	first := gen.Next(context.Background())
	second := gen.Next(context.Background())

	if first != "GTS-20250307-1001" {
		t.Errorf("first = %s, want GTS-20250307-1001", first)
	}
	if second != "GTS-20250307-1002" {
		t.Errorf("second = %s, want GTS-20250307-1002", second)
	}
}

func TestReferenceFollowsCounterAdvancedElsewhere(t *testing.T) {
	counter := &memCounter{}
	gen := NewReferenceGenerator("GTS", counter, fixedClock)

	gen.Next(context.Background())
	counter.WriteCounter(context.Background(), 1500)

	if ref := gen.Next(context.Background()); ref != "GTS-20250307-1501" {
		t.Errorf("ref = %s, want GTS-20250307-1501", ref)
	}
}

func TestReferenceDateIsUTC(t *testing.T) {
	gen := NewReferenceGenerator("GTS", &memCounter{}, fixedClock)
	lagos := time.FixedZone("WAT", 3600)

	// 00:30 on the 8th in Lagos is still the 7th in UTC
	at := time.Date(2025, 3, 8, 0, 30, 0, 0, lagos)
	if ref := gen.NextAt(context.Background(), at); ref != "GTS-20250307-1001" {
		t.Errorf("ref = %s, want GTS-20250307-1001", ref)
	}
}

func TestNewRecordID(t *testing.T) {
	a, b := NewRecordID(), NewRecordID()
	if a == b {
		t.Error("record ids should differ")
	}
	for _, id := range []string{a, b} {
		if !uuidPattern.MatchString(id) {
			t.Errorf("%s is not a canonical v4 uuid", id)
		}
	}
}
