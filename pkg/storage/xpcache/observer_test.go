package xpcache

import (
	"context"
	"sync/atomic"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// collectSums 收集一次指标并按名称返回 int64 Sum 的数据点合计。
// removals 按 reason 属性分别累加到 "xpcache.removals/<reason>"。
func collectSums(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	sums := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				name := m.Name
				if reason, ok := dp.Attributes.Value("reason"); ok {
					name += "/" + reason.AsString()
				}
				sums[name] += dp.Value
			}
		}
	}
	return sums
}

func TestObserver_Counters(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown failed: %v", err)
		}
	})

	c := newTestCache(t, WithMaxSize[int](1), WithMeterProvider[int](mp))

	var calls atomic.Int64
	if _, err := c.Get("a", resolvedSetter(&calls, 1)); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get("a", resolvedSetter(&calls, 1)); err != nil {
		t.Fatal(err)
	}
	// 容量 1：插入 b 淘汰 a
	if _, err := c.Get("b", resolvedSetter(&calls, 1)); err != nil {
		t.Fatal(err)
	}
	c.Remove("b")

	sums := collectSums(t, reader)
	if got := sums[metricHits]; got != 1 {
		t.Errorf("%s = %d, expected 1", metricHits, got)
	}
	if got := sums[metricMisses]; got != 2 {
		t.Errorf("%s = %d, expected 2", metricMisses, got)
	}
	if got := sums[metricRemovals+"/evicted"]; got != 1 {
		t.Errorf("%s/evicted = %d, expected 1", metricRemovals, got)
	}
	if got := sums[metricRemovals+"/removed"]; got != 1 {
		t.Errorf("%s/removed = %d, expected 1", metricRemovals, got)
	}
	if got := sums[metricSize]; got != 0 {
		t.Errorf("%s = %d, expected 0 after drain", metricSize, got)
	}
}
