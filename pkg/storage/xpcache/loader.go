package xpcache

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v5"
	"github.com/sony/gobreaker/v2"
)

// =============================================================================
// Loader 接口定义
// =============================================================================

// LoadFunc 定义从后端加载数据的函数类型。
type LoadFunc[V any] func(ctx context.Context) (V, error)

// Loader 是面向 context 代码的 Cache-Aside 门面。
//
// Load 把回源函数桥接为缓存中的异步值：同一 key 的并发请求共享
// 同一次回源（由底层 Cache 保证），每个调用方各自等待结算。
// 回源失败会使对应条目自动失效，下次请求重新回源。
type Loader[V any] interface {
	// Load 返回 key 对应的值，未命中时调用 loadFn 回源。
	//
	// 回源在独立 goroutine 中执行，其 context 脱离调用方的取消链：
	// 首个调用者取消只影响它自己的等待，不会波及共享该在途计算的
	// 其他调用方。loadFn 中的 panic 被转为 ErrLoadPanic。
	Load(ctx context.Context, key string, loadFn LoadFunc[V]) (V, error)
}

// NewLoader 创建 Cache-Aside 加载器。
// cache 必须是已初始化的 Cache 实例，其生命周期由调用方管理，
// Loader 不会关闭传入的 cache。
func NewLoader[V any](cache Cache[V], opts ...LoaderOption[V]) (Loader[V], error) {
	if cache == nil {
		return nil, ErrNilCache
	}

	o := defaultLoaderOptions[V]()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return &loader[V]{cache: cache, opts: o}, nil
}

// =============================================================================
// Loader 配置选项
// =============================================================================

// RecommendedLoadTimeout 是推荐的回源超时时间。
// 回源 goroutine 脱离调用方取消链，建议保留超时以避免后端挂起时
// goroutine 永久滞留。
const RecommendedLoadTimeout = 30 * time.Second

// LoaderOption 定义 Loader 可选配置函数类型。
type LoaderOption[V any] func(*loaderOptions[V])

type loaderOptions[V any] struct {
	loadTimeout time.Duration
	retryOpts   []retry.Option
	breaker     *gobreaker.CircuitBreaker[V]
}

func defaultLoaderOptions[V any]() loaderOptions[V] {
	return loaderOptions[V]{
		loadTimeout: RecommendedLoadTimeout,
	}
}

// WithLoadTimeout 设置回源超时。
//   - d == 0: 禁用超时（需自行确保 loadFn 不会无限阻塞）
//   - d < 0: 使用 RecommendedLoadTimeout (30s)
//   - d > 0: 使用指定超时时间
func WithLoadTimeout[V any](d time.Duration) LoaderOption[V] {
	if d < 0 {
		d = RecommendedLoadTimeout
	}
	return func(o *loaderOptions[V]) {
		o.loadTimeout = d
	}
}

// WithRetry 为回源函数附加 avast/retry-go 重试。
// 传入的选项原样透传，retry.Context 由 Loader 统一注入。
// 不设置时不重试（回源只执行一次）。
func WithRetry[V any](opts ...retry.Option) LoaderOption[V] {
	return func(o *loaderOptions[V]) {
		o.retryOpts = opts
	}
}

// WithBreaker 为回源函数附加熔断保护。
// 熔断打开时 Load 直接返回 gobreaker.ErrOpenState，不触发回源；
// 该失败同样会使在途条目失效，下次请求重新探测。
func WithBreaker[V any](cb *gobreaker.CircuitBreaker[V]) LoaderOption[V] {
	return func(o *loaderOptions[V]) {
		o.breaker = cb
	}
}
