package cache

import (
	"testing"
	"time"
)

func TestSetGetAndExpire(t *testing.T) {
	c := Default()
	key := KeyFromStrings("unit", "expire", time.Now().String())

	if _, ok := c.Get(key); ok {
		t.Fatalf("expected no value initially")
	}

	c.Set(key, "hello", 1*time.Second)
	if v, ok := c.Get(key); !ok || v.(string) != "hello" {
		t.Fatalf("expected value 'hello', got %v ok=%v", v, ok)
	}

	// expiry granularity is one second
	time.Sleep(2100 * time.Millisecond)
	if _, ok := c.Get(key); ok {
		t.Fatalf("expected expired value to be gone")
	}
}

func TestDelete(t *testing.T) {
	c := Default()
	key := KeyFromStrings("unit", "delete", time.Now().String())
	c.Set(key, 42, time.Minute)
	if v, ok := c.Get(key); !ok || v.(int) != 42 {
		t.Fatalf("expected 42 present before delete, got %v ok=%v", v, ok)
	}
	c.Delete(key)
	if _, ok := c.Get(key); ok {
		t.Fatalf("expected deleted value to be absent")
	}
}

func TestLRUEviction(t *testing.T) {
	c := New(2)
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	if _, ok := c.Get("a"); !ok { // touch a, b becomes LRU
		t.Fatal("expected a present")
	}
	c.Set("c", 3, 0)
	if _, ok := c.Get("b"); ok {
		t.Fatal("expected LRU entry b evicted")
	}
	for _, k := range []string{"a", "c"} {
		if _, ok := c.Get(k); !ok {
			t.Fatalf("expected %s to survive eviction", k)
		}
	}
}

func TestKeyFromStringsStability(t *testing.T) {
	k1 := KeyFromStrings("a", "b", "c")
	k2 := KeyFromStrings("a", "b", "c")
	if k1 != k2 {
		t.Fatalf("expected same inputs to yield same key")
	}
	k3 := KeyFromStrings("a", "b", "d")
	if k1 == k3 {
		t.Fatalf("expected different inputs to yield different key")
	}
}

func TestOverwriteKeepsSingleEntry(t *testing.T) {
	c := New(3)
	for i := 0; i < 10; i++ {
		c.Set("k", i, 0)
	}
	v, ok := c.Get("k")
	if !ok || v.(int) != 9 {
		t.Fatalf("expected latest value 9, got %v ok=%v", v, ok)
	}
	// overwrites must not grow the LRU list past capacity
	c.Set("x", 1, 0)
	c.Set("y", 2, 0)
	c.Set("z", 3, 0)
	if _, ok := c.Get("z"); !ok {
		t.Fatal("expected z present")
	}
}
