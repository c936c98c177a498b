package xpcache

import (
	"github.com/omeyang/xpromise/pkg/util/xfuture"
)

// Setter 在缓存未命中时被调用，必须立即返回一个非 nil 的异步值。
//
// Setter 在缓存的内部锁内执行：它应当只负责启动计算并返回其
// Thenable（例如发起一次网络请求并返回对应的 Promise），
// 不得阻塞等待计算完成，也不得回调缓存自身的方法。
type Setter[V any] func() xfuture.Thenable[V]

// Cache 是以字符串为键、以在途异步计算为值的进程内缓存。
//
// 同一 key 的并发请求共享同一个在途计算（single-flight）：
// 计算成功后结果保持缓存（受 maxAge/maxSize 约束），
// 计算失败则条目被自动失效，下次请求重新回源。
//
// 必须通过 [New] 创建。所有方法都是并发安全的。
type Cache[V any] interface {
	// Get 返回 key 对应的异步值。
	//
	// 命中未过期条目时直接返回其值并提升为最近使用；
	// 未命中（或条目已过期）时恰好调用一次 setter，把返回的异步值
	// 存入缓存后原样返回。该值之后若失败结算，对应条目会被自动失效
	// （带代际守卫：仅当 key 下仍是本次写入的条目时才移除）。
	//
	// setter 为 nil 返回 ErrNilSetter，setter 返回 nil 值返回
	// ErrNilSetterResult（均不修改缓存状态）。缓存已关闭返回 ErrClosed。
	Get(key string, setter Setter[V]) (xfuture.Thenable[V], error)

	// Has 报告 key 下是否存在未过期条目。无副作用，不提升 LRU 顺序。
	Has(key string) bool

	// Remove 删除 key 下的条目，key 不存在时为无操作。
	// 删除使缓存归零时，内部状态整体复位（等价于 Clear）。
	Remove(key string)

	// Len 先清理过期条目，再返回存活条目数。
	// 这是唯一保证与过期语义一致的计数读取。
	Len() int

	// Clear 无条件丢弃所有条目并停止后台清理。不触发 OnEvicted 回调。
	Clear()

	// Prune 立即移除所有已过期条目。
	// maxAge 未配置或缓存为空时为无操作；清空缓存的 Prune 同时停止后台清理。
	Prune()

	// Close 停止后台清理并丢弃所有条目，等待内部 goroutine 退出。
	// 幂等。Close 后 Get 返回 ErrClosed，其余读操作返回零值/false，
	// 写操作静默忽略。
	Close()
}

// New 创建 promise 缓存。
// 配置无效时返回错误（如负的 maxAge、非正的显式 maxSize）。
func New[V any](opts ...Option[V]) (Cache[V], error) {
	o := defaultOptions[V]()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	obs, err := newObserver(o.meterProvider)
	if err != nil {
		return nil, err
	}

	return &promiseCache[V]{
		opts: o,
		obs:  obs,
	}, nil
}
