package xpcache

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/omeyang/xpromise/xpcache"

const (
	metricHits     = "xpcache.hits"
	metricMisses   = "xpcache.misses"
	metricRemovals = "xpcache.removals"
	metricSize     = "xpcache.size"
)

// observer 封装缓存的 OTel 指标。
// 默认走全局 MeterProvider（宿主未配置时为 noop），开销可忽略。
type observer struct {
	hits     metric.Int64Counter
	misses   metric.Int64Counter
	removals metric.Int64Counter
	size     metric.Int64UpDownCounter
}

func newObserver(mp metric.MeterProvider) (*observer, error) {
	meter := mp.Meter(instrumentationName)

	hits, err := meter.Int64Counter(metricHits,
		metric.WithDescription("Number of cache hits"),
		metric.WithUnit("{hit}"))
	if err != nil {
		return nil, fmt.Errorf("xpcache: create hits counter: %w", err)
	}

	misses, err := meter.Int64Counter(metricMisses,
		metric.WithDescription("Number of cache misses"),
		metric.WithUnit("{miss}"))
	if err != nil {
		return nil, fmt.Errorf("xpcache: create misses counter: %w", err)
	}

	removals, err := meter.Int64Counter(metricRemovals,
		metric.WithDescription("Number of entries removed, attributed by reason"),
		metric.WithUnit("{entry}"))
	if err != nil {
		return nil, fmt.Errorf("xpcache: create removals counter: %w", err)
	}

	size, err := meter.Int64UpDownCounter(metricSize,
		metric.WithDescription("Number of live entries"),
		metric.WithUnit("{entry}"))
	if err != nil {
		return nil, fmt.Errorf("xpcache: create size counter: %w", err)
	}

	return &observer{
		hits:     hits,
		misses:   misses,
		removals: removals,
		size:     size,
	}, nil
}

// 指标记录不携带调用方 ctx：缓存操作与任何单个请求的生命周期无关。

func (o *observer) hit() {
	if o == nil {
		return
	}
	o.hits.Add(context.Background(), 1)
}

func (o *observer) miss() {
	if o == nil {
		return
	}
	o.misses.Add(context.Background(), 1)
}

func (o *observer) removed(reason RemovalReason) {
	if o == nil {
		return
	}
	o.removals.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("reason", string(reason))))
}

func (o *observer) sizeDelta(n int64) {
	if o == nil {
		return
	}
	o.size.Add(context.Background(), n)
}
