package xpcache

import (
	"sync/atomic"
	"testing"

	"github.com/omeyang/xpromise/pkg/util/xfuture"
)

func FuzzCacheOps(f *testing.F) {
	f.Add("key1", uint8(3))
	f.Add("", uint8(1))
	f.Add("key/with/slashes", uint8(7))
	f.Add("中文key", uint8(2))
	f.Add("very-long-key-name-that-might-cause-issues", uint8(5))

	f.Fuzz(func(t *testing.T, key string, rounds uint8) {
		c, err := New(WithMaxSize[int](4))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		defer c.Close()

		var calls atomic.Int64
		for range rounds%8 + 1 {
			th, err := c.Get(key, func() xfuture.Thenable[int] {
				calls.Add(1)
				return xfuture.Resolved(1)
			})
			if err != nil {
				t.Fatalf("Get failed for key %q: %v", key, err)
			}
			if th == nil {
				t.Fatalf("Get returned nil value for key %q", key)
			}
			if !c.Has(key) {
				t.Fatalf("Has = false right after Get for key %q", key)
			}
		}

		// 无 maxAge 时条目不会过期，重复 Get 只回源一次
		if calls.Load() != 1 {
			t.Fatalf("setter calls = %d, expected 1 for key %q", calls.Load(), key)
		}
		if got := c.Len(); got != 1 {
			t.Fatalf("Len = %d, expected 1", got)
		}

		c.Remove(key)
		if c.Has(key) {
			t.Fatalf("Has = true after Remove for key %q", key)
		}
		if got := c.Len(); got != 0 {
			t.Fatalf("Len = %d after Remove, expected 0", got)
		}
	})
}
