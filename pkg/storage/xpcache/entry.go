package xpcache

import (
	"time"

	"github.com/omeyang/xpromise/pkg/util/xfuture"
)

// cacheEntry 是缓存的存储单元：key、其在途异步值和插入时间。
//
// insertedAt 在构造时设置且永不变更；刷新一个 key 意味着用
// 新的 cacheEntry 整体替换旧的，而不是修改旧条目。
type cacheEntry[V any] struct {
	key        string
	value      xfuture.Thenable[V]
	insertedAt time.Time

	// prev/next 仅由 lruList 读写，缓存本体不得触碰。
	prev, next *cacheEntry[V]
}

func newCacheEntry[V any](key string, value xfuture.Thenable[V], now time.Time) *cacheEntry[V] {
	return &cacheEntry[V]{
		key:        key,
		value:      value,
		insertedAt: now,
	}
}

// expired 判断条目在给定时刻是否已过期。
// maxAge <= 0 表示永不过期。
func (e *cacheEntry[V]) expired(maxAge time.Duration, now time.Time) bool {
	return maxAge > 0 && now.After(e.insertedAt.Add(maxAge))
}
