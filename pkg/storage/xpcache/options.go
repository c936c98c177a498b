package xpcache

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/omeyang/xpromise/pkg/util/xfuture"
)

// DefaultPruneInterval 是后台清理的默认周期。
const DefaultPruneInterval = 60 * time.Second

// RemovalReason 表示条目被移除的原因，用于淘汰回调和指标归因。
type RemovalReason string

const (
	// ReasonExpired 表示条目因超过 maxAge 被清理。
	ReasonExpired RemovalReason = "expired"
	// ReasonEvicted 表示条目因容量超限被 LRU 淘汰。
	ReasonEvicted RemovalReason = "evicted"
	// ReasonRejected 表示条目因其异步值失败结算被自动失效。
	ReasonRejected RemovalReason = "rejected"
	// ReasonRemoved 表示条目被显式 Remove。
	ReasonRemoved RemovalReason = "removed"
)

// Option 定义缓存可选配置函数类型。
type Option[V any] func(*options[V])

// options 内部配置。
type options[V any] struct {
	maxAge        time.Duration
	maxSize       int
	maxSizeSet    bool
	pruneInterval time.Duration

	logger        *slog.Logger
	meterProvider metric.MeterProvider
	onEvicted     func(key string, value xfuture.Thenable[V], reason RemovalReason)

	// now 可注入时钟，仅测试使用。
	now func() time.Time
}

func defaultOptions[V any]() options[V] {
	return options[V]{
		pruneInterval: DefaultPruneInterval,
		logger:        slog.New(slog.DiscardHandler),
		meterProvider: otel.GetMeterProvider(),
		now:           time.Now,
	}
}

func (o *options[V]) validate() error {
	if o.maxAge < 0 {
		return ErrInvalidMaxAge
	}
	if o.maxSizeSet && o.maxSize <= 0 {
		return ErrInvalidMaxSize
	}
	return nil
}

// WithMaxAge 设置条目最大存活时间。
// 0 表示永不过期（默认），负值在 New 时返回 ErrInvalidMaxAge。
func WithMaxAge[V any](d time.Duration) Option[V] {
	return func(o *options[V]) {
		o.maxAge = d
	}
}

// WithMaxSize 设置最大条目数，超限时淘汰最久未使用的条目。
// 不设置表示容量无上限；显式设置 n <= 0 在 New 时返回 ErrInvalidMaxSize。
func WithMaxSize[V any](n int) Option[V] {
	return func(o *options[V]) {
		o.maxSize = n
		o.maxSizeSet = true
	}
}

// WithPruneInterval 设置后台清理周期，默认 [DefaultPruneInterval]。
// d <= 0 表示禁用后台清理（过期条目仍会在 Get/Has/Len 路径上被识别）。
// 后台清理只在 maxAge > 0 且缓存非空时运行。
func WithPruneInterval[V any](d time.Duration) Option[V] {
	return func(o *options[V]) {
		o.pruneInterval = d
	}
}

// WithLogger 设置结构化日志。默认丢弃所有日志。
func WithLogger[V any](l *slog.Logger) Option[V] {
	return func(o *options[V]) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMeterProvider 设置 OTel MeterProvider。
// 默认使用全局 Provider（宿主未配置时即为 noop）。
func WithMeterProvider[V any](mp metric.MeterProvider) Option[V] {
	return func(o *options[V]) {
		if mp != nil {
			o.meterProvider = mp
		}
	}
}

// WithOnEvicted 设置条目被移除时的回调函数。
// Clear 和 Close 整体丢弃条目，不触发回调。
//
// 设计决策: 回调在缓存锁内同步执行。调用方必须遵守以下约束：
//   - 严禁在回调中调用缓存自身的任何方法，否则会死锁
//   - 应避免耗时操作，以免阻塞其他并发操作
//   - 如需复杂处理，应将事件发送到外部 channel 异步消费
func WithOnEvicted[V any](fn func(key string, value xfuture.Thenable[V], reason RemovalReason)) Option[V] {
	return func(o *options[V]) {
		o.onEvicted = fn
	}
}
