package labelset

import (
	"sync"
	"sync/atomic"
	"testing"
)

func k(s string) ByteString { return ByteString(s) }

func TestGetAfterSet(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"simple", "env", "prod"},
		{"empty value", "flag", ""},
		{"longer key", "request-id", "a1b2c3d4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ls := New(0)
			if _, err := ls.Set(k(tt.key), k(tt.value)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, ok := ls.Get(k(tt.key))
			if !ok {
				t.Fatalf("Get(%q): not found", tt.key)
			}
			if !got.Value.Equal(k(tt.value)) {
				t.Fatalf("Get(%q).Value = %q, want %q", tt.key, got.Value, tt.value)
			}
			if ls.Count() != 1 {
				t.Fatalf("Count() = %d, want 1", ls.Count())
			}
		})
	}
}

func TestSetReplacesValueNotCount(t *testing.T) {
	ls := New(0)
	if _, err := ls.Set(k("k"), k("a")); err != nil {
		t.Fatal(err)
	}
	old, err := ls.Set(k("k"), k("b"))
	if err != nil {
		t.Fatal(err)
	}
	if !old.Equal(k("a")) {
		t.Fatalf("old value = %q, want %q", old, "a")
	}
	got, ok := ls.Get(k("k"))
	if !ok || !got.Value.Equal(k("b")) {
		t.Fatalf("Get(k) = %+v, ok=%v, want value b", got, ok)
	}
	if ls.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 after overwrite", ls.Count())
	}
}

func TestDeleteIdempotent(t *testing.T) {
	ls := New(0)
	ls.Delete(k("absent")) // no-op, must not panic

	if _, err := ls.Set(k("a"), k("1")); err != nil {
		t.Fatal(err)
	}
	ls.Delete(k("a"))
	if _, ok := ls.Get(k("a")); ok {
		t.Fatal("expected a to be deleted")
	}
	if ls.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", ls.Count())
	}
	// Second delete of the same (now-absent) key must be a no-op.
	ls.Delete(k("a"))
	if ls.Count() != 0 {
		t.Fatalf("Count() = %d after second delete, want 0", ls.Count())
	}
}

func TestSwapDeleteMiddle(t *testing.T) {
	ls := New(0)
	for _, p := range [][2]string{{"a", "1"}, {"b", "2"}, {"c", "3"}} {
		if _, err := ls.Set(k(p[0]), k(p[1])); err != nil {
			t.Fatal(err)
		}
	}
	ls.Delete(k("b"))
	if _, ok := ls.Get(k("b")); ok {
		t.Fatal("b should be gone")
	}
	for _, want := range [][2]string{{"a", "1"}, {"c", "3"}} {
		got, ok := ls.Get(k(want[0]))
		if !ok || !got.Value.Equal(k(want[1])) {
			t.Fatalf("Get(%q) = %+v, ok=%v, want %q", want[0], got, ok, want[1])
		}
	}
	if ls.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", ls.Count())
	}
}

func TestGrowPreservesLabels(t *testing.T) {
	ls := New(1)
	n := 50
	for i := 0; i < n; i++ {
		key := k(string(rune('a' + i%26)) + "-" + itoaHelper(i))
		if _, err := ls.Set(key, k(itoaHelper(i))); err != nil {
			t.Fatal(err)
		}
	}
	if ls.Count() != n {
		t.Fatalf("Count() = %d, want %d", ls.Count(), n)
	}
	if ls.Capacity() < n {
		t.Fatalf("Capacity() = %d, want >= %d", ls.Capacity(), n)
	}
}

func itoaHelper(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// TestReaderSnapshotIntegrity runs a concurrent reader that walks
// storage[0:count] while the careful Set/Delete protocol mutates the set,
// skipping tombstones and empty slots and resolving duplicate keys by first
// occurrence, and fails if any live label it sees has a nil value.
func TestReaderSnapshotIntegrity(t *testing.T) {
	ls := New(0)
	ls.MarkInstalled(true) // force the careful protocol, as if this were CurrentSet

	const writers = 200
	var stop atomic.Bool
	var wg sync.WaitGroup

	readFail := make(chan string, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for !stop.Load() {
			seen := map[string]string{}
			st := ls.storage.Load()
			n := ls.count.Load()
			for i := uint64(0); i < n && int(i) < len(st.slots); i++ {
				lbl := st.slots[i].label.Load()
				if lbl == nil || lbl.tombstoned() {
					continue
				}
				key := string(lbl.Key)
				if _, dup := seen[key]; dup {
					continue // first occurrence already recorded
				}
				seen[key] = string(lbl.Value)
				if lbl.Value == nil {
					select {
					case readFail <- "observed label with nil value":
					default:
					}
				}
			}
		}
	}()

	for i := 0; i < writers; i++ {
		key := k("k" + itoaHelper(i%10))
		if _, err := ls.Set(key, k(itoaHelper(i))); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 10; i++ {
		ls.Delete(k("k" + itoaHelper(i)))
	}

	stop.Store(true)
	wg.Wait()

	select {
	case msg := <-readFail:
		t.Fatal(msg)
	default:
	}
}

func TestClone(t *testing.T) {
	ls := New(0)
	if _, err := ls.Set(k("a"), k("1")); err != nil {
		t.Fatal(err)
	}
	clone := ls.Clone()
	if _, err := clone.Set(k("b"), k("2")); err != nil {
		t.Fatal(err)
	}
	if _, ok := ls.Get(k("b")); ok {
		t.Fatal("mutating clone must not affect original")
	}
	got, ok := clone.Get(k("a"))
	if !ok || !got.Value.Equal(k("1")) {
		t.Fatalf("clone missing original label: %+v ok=%v", got, ok)
	}
}

func TestFreeRejectsInstalled(t *testing.T) {
	ls := New(0)
	ls.MarkInstalled(true)
	if err := ls.Free(); err != ErrInstalled {
		t.Fatalf("Free() = %v, want ErrInstalled", err)
	}
	ls.MarkInstalled(false)
	if err := ls.Free(); err != nil {
		t.Fatalf("Free() = %v, want nil", err)
	}
}

func TestStringFormat(t *testing.T) {
	ls := New(0)
	if _, err := ls.Set(k("env"), k("prod")); err != nil {
		t.Fatal(err)
	}
	if _, err := ls.Set(k("tenant"), k("acme")); err != nil {
		t.Fatal(err)
	}
	got := ls.String()
	if got != "{env: prod, tenant: acme}" && got != "{tenant: acme, env: prod}" {
		t.Fatalf("String() = %q", got)
	}
}

func TestSetRejectsNilKey(t *testing.T) {
	ls := New(0)
	if _, err := ls.Set(nil, k("v")); err == nil {
		t.Fatal("expected error for nil key")
	}
}
