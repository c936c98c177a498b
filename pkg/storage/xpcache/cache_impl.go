package xpcache

import (
	"log/slog"
	"sync"
	"time"

	"github.com/omeyang/xpromise/pkg/util/xfuture"
)

// 确保 *promiseCache 实现 Cache 接口
var _ Cache[any] = (*promiseCache[any])(nil)

// promiseCache 实现 Cache 接口。
//
// 并发模型：一把互斥锁串行化所有缓存操作。异步值的结算回调和
// 后台清理 tick 都通过同一把锁重新进入，因此从不与进行中的
// 操作交错——对应原语义下的单线程协作式调度。
type promiseCache[V any] struct {
	mu   sync.Mutex
	opts options[V]
	obs  *observer

	// entries/lru 首次写入时惰性创建，缓存归零时整体复位。
	entries map[string]*cacheEntry[V]
	lru     *lruList[V]
	size    int

	// pruneStop 非 nil 表示后台清理循环正在运行。
	pruneStop chan struct{}
	pruneWG   sync.WaitGroup

	closed bool
}

// =============================================================================
// 公开操作
// =============================================================================

func (c *promiseCache[V]) Get(key string, setter Setter[V]) (xfuture.Thenable[V], error) {
	if setter == nil {
		return nil, ErrNilSetter
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}

	now := c.opts.now()

	// 命中：未过期条目直接返回，并提升为 MRU
	if e, ok := c.entries[key]; ok && !e.expired(c.opts.maxAge, now) {
		if c.lru != nil {
			c.lru.touch(e)
		}
		value := e.value
		c.mu.Unlock()
		c.obs.hit()
		return value, nil
	}

	// 未命中或条目已过期：恰好调用一次 setter。
	// setter 在锁内执行，保证同一 key 在决定回源与写入条目之间
	// 不会有第二次回源交错（single-flight）。
	value := setter()
	if value == nil {
		c.mu.Unlock()
		return nil, ErrNilSetterResult
	}

	// 被覆盖的过期旧条目走统一移除路径，保持链表与 map 的一致性
	if old, ok := c.entries[key]; ok {
		c.removeEntryLocked(old, ReasonExpired)
	}

	e := newCacheEntry(key, value, now)
	c.ensureInitLocked()
	c.entries[key] = e
	if c.lru != nil {
		c.lru.pushFront(e)
	}
	c.size++
	c.obs.sizeDelta(1)
	c.startPruneLocked()

	// 插入后超限则淘汰 LRU 端；新条目刚置于 MRU，maxSize >= 1 时
	// 被淘汰的不可能是它自己
	if c.opts.maxSize > 0 && c.size > c.opts.maxSize {
		victim := c.lru.peekBack()
		c.removeEntryLocked(victim, ReasonEvicted)
		c.opts.logger.Debug("xpcache: lru eviction",
			slog.String("key", victim.key))
	}
	c.mu.Unlock()
	c.obs.miss()

	// 失败结算时自动失效。订阅放在锁外：外部 Thenable 实现可能
	// 同步触发回调，在锁内订阅会死锁。
	value.Subscribe(nil, func(err error) {
		c.invalidate(key, e, err)
	})

	return value, nil
}

func (c *promiseCache[V]) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	return ok && !e.expired(c.opts.maxAge, c.opts.now())
}

func (c *promiseCache[V]) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.removeEntryLocked(e, ReasonRemoved)
	}
}

func (c *promiseCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pruneLocked()
	return c.size
}

func (c *promiseCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.obs.sizeDelta(int64(-c.size))
	c.teardownLocked()
}

func (c *promiseCache[V]) Prune() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pruneLocked()
}

func (c *promiseCache[V]) Close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		c.obs.sizeDelta(int64(-c.size))
		c.teardownLocked()
	}
	c.mu.Unlock()

	// 等待清理 goroutine 退出，避免泄漏
	c.pruneWG.Wait()
}

// =============================================================================
// 内部：条目生命周期
// =============================================================================

// ensureInitLocked 惰性创建映射与 LRU 链表。
func (c *promiseCache[V]) ensureInitLocked() {
	if c.entries == nil {
		c.entries = make(map[string]*cacheEntry[V])
	}
	if c.opts.maxSize > 0 && c.lru == nil {
		c.lru = newLRUList[V]()
	}
}

// removeEntryLocked 是唯一的条目移除路径：map、LRU 链表、计数、
// 指标和回调在此一并维护。移除使缓存归零时整体复位内部状态。
func (c *promiseCache[V]) removeEntryLocked(e *cacheEntry[V], reason RemovalReason) {
	delete(c.entries, e.key)
	if c.lru != nil {
		c.lru.remove(e)
	}
	c.size--
	c.obs.removed(reason)
	c.obs.sizeDelta(-1)

	if c.opts.onEvicted != nil {
		c.opts.onEvicted(e.key, e.value, reason)
	}

	if c.size == 0 {
		c.teardownLocked()
	}
}

// teardownLocked 将缓存复位到"空/未初始化"状态：
// 丢弃映射与链表，停止后台清理。
func (c *promiseCache[V]) teardownLocked() {
	c.entries = nil
	c.lru = nil
	c.size = 0
	c.stopPruneLocked()
}

// invalidate 是失败结算的管家回调。
// 代际守卫：仅当 key 下仍是当初为本次计算创建的条目时才移除，
// 防止旧计算的迟到失败误伤后来覆盖写入的新条目。
func (c *promiseCache[V]) invalidate(key string, e *cacheEntry[V], cause error) {
	c.mu.Lock()
	cur, ok := c.entries[key]
	if !ok || cur != e {
		c.mu.Unlock()
		return
	}
	c.removeEntryLocked(e, ReasonRejected)
	c.mu.Unlock()

	c.opts.logger.Debug("xpcache: rejected value invalidated",
		slog.String("key", key),
		slog.Any("cause", cause))
}

// pruneLocked 移除所有已过期条目。
// 先收集再移除：removeEntryLocked 在归零时会置空映射，不能边迭代边删。
func (c *promiseCache[V]) pruneLocked() {
	if c.entries == nil || c.opts.maxAge <= 0 {
		return
	}

	now := c.opts.now()
	var stale []*cacheEntry[V]
	for _, e := range c.entries {
		if e.expired(c.opts.maxAge, now) {
			stale = append(stale, e)
		}
	}
	for _, e := range stale {
		c.removeEntryLocked(e, ReasonExpired)
	}
}

// =============================================================================
// 内部：后台清理循环
// =============================================================================

// startPruneLocked 启动后台清理循环。
// 幂等：已在运行时为无操作。仅当 pruneInterval 和 maxAge 均已配置时启动。
func (c *promiseCache[V]) startPruneLocked() {
	if c.pruneStop != nil {
		return
	}
	if c.opts.pruneInterval <= 0 || c.opts.maxAge <= 0 {
		return
	}

	stop := make(chan struct{})
	c.pruneStop = stop
	c.pruneWG.Add(1)
	go c.pruneLoop(stop)
}

// stopPruneLocked 停止后台清理循环。幂等。
func (c *promiseCache[V]) stopPruneLocked() {
	if c.pruneStop != nil {
		close(c.pruneStop)
		c.pruneStop = nil
	}
}

func (c *promiseCache[V]) pruneLoop(stop <-chan struct{}) {
	defer c.pruneWG.Done()

	ticker := time.NewTicker(c.opts.pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.Prune()
		}
	}
}
