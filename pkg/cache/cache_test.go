package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var errPermanent = errors.New("permanent")

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	base := ArtifactKeyOpts{Format: "png", Resolution: 0.1, DisplayNames: true}

	// Every render parameter must change the artifact key.
	variants := []ArtifactKeyOpts{
		{Format: "bmp", Resolution: 0.1, DisplayNames: true},
		{Format: "png", Resolution: 0.2, DisplayNames: true},
		{Format: "png", Resolution: 0.1, Padding: 1, DisplayNames: true},
		{Format: "png", Resolution: 0.1},
		{Format: "png", Resolution: 0.1, DisplayNames: true, ShowCells: true},
		{Format: "png", Resolution: 0.1, DisplayNames: true, Hidden: []string{"screws"}},
		{Format: "png", Resolution: 0.1, DisplayNames: true, CellExclude: []int{1}},
	}
	baseKey := k.ArtifactKey("hash123", base)
	for i, v := range variants {
		if k.ArtifactKey("hash123", v) == baseKey {
			t.Errorf("variant %d produced the base key", i)
		}
	}

	if k.ArtifactKey("hash456", base) == baseKey {
		t.Error("Different layout hashes should produce different keys")
	}

	// Set-like fields are order independent
	a := k.ArtifactKey("h", ArtifactKeyOpts{Hidden: []string{"screws", "grooves"}, CellExclude: []int{7, 5}})
	b := k.ArtifactKey("h", ArtifactKeyOpts{Hidden: []string{"grooves", "screws"}, CellExclude: []int{5, 7}})
	if a != b {
		t.Error("Hidden/CellExclude order should not change the key")
	}

	tk1 := k.TransformKey("hash123", TransformKeyOpts{Resolution: 0.1})
	tk2 := k.TransformKey("hash123", TransformKeyOpts{Resolution: 0.1, Padding: 2})
	if tk1 == tk2 {
		t.Error("Different TransformKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(tk1, "transform:") || !strings.HasPrefix(baseKey, "artifact:") {
		t.Errorf("unexpected key prefixes: %s, %s", tk1, baseKey)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "staging:")

	opts := ArtifactKeyOpts{Format: "png", Resolution: 0.1}
	if got, want := scoped.ArtifactKey("h", opts), "staging:"+inner.ArtifactKey("h", opts); got != want {
		t.Errorf("ScopedKeyer ArtifactKey = %s, want %s", got, want)
	}

	tk := scoped.TransformKey("h", TransformKeyOpts{Resolution: 1})
	if !strings.HasPrefix(tk, "staging:transform:") {
		t.Errorf("ScopedKeyer TransformKey should be prefixed: %s", tk)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.TransformKey("h", TransformKeyOpts{})
	if key != "prefix:"+NewDefaultKeyer().TransformKey("h", TransformKeyOpts{}) {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Fatalf("Get on empty cache = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("image"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "image" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	// Expired entries are misses
	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted entry should miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	fc := c.(*FileCache)

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fc.path("k"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v; want miss", hit, err)
	}
	if _, err := os.Stat(fc.path("k")); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "cache")
	c, _ := NewFileCache(dir)
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.(Clearer).Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("cache dir should still exist: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Clear left %d entries", len(entries))
	}
}

func TestHashJSON(t *testing.T) {
	a, err := HashJSON(map[string]int{"x": 1})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := HashJSON(map[string]int{"x": 2})
	if a == b || len(a) != 64 {
		t.Errorf("HashJSON = %s, %s", a, b)
	}
	if _, err := HashJSON(func() {}); err == nil {
		t.Error("HashJSON of a func should fail")
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("COMBVIEW_TEST_REDIS")
	if addr == "" {
		t.Skip("COMBVIEW_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr, Prefix: "combview-test:"})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()

	key := "combview-test:k"
	if err := c.Set(ctx, key, []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("Clear should remove prefixed keys")
	}
}

func TestRedisCacheClearNeedsPrefix(t *testing.T) {
	c := NewRedisCacheFromClient(nil, "")
	if err := c.Clear(context.Background()); err == nil {
		t.Error("Clear without prefix should fail")
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrNetwork)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(errPermanent) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return errPermanent
	})
	if err != errPermanent {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
