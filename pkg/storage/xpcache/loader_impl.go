package xpcache

import (
	"context"
	"fmt"
	"time"

	retry "github.com/avast/retry-go/v5"

	"github.com/omeyang/xpromise/pkg/util/xfuture"
)

// detachedCtx 是一个脱离原始 context 取消链的 context。
// 它保留原始 context 的 Value，但不继承其 Done/Err/Deadline。
// 用于共享回源场景：首个调用者取消不得影响其他等待者。
type detachedCtx struct {
	context.Context
}

func (detachedCtx) Deadline() (time.Time, bool) { return time.Time{}, false }
func (detachedCtx) Done() <-chan struct{}       { return nil }
func (detachedCtx) Err() error                  { return nil }

// independentContext 创建脱离原始取消链、带独立超时的 context。
// timeout <= 0 表示不加超时（仍脱离原始取消链）。
func independentContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	detached := detachedCtx{Context: ctx}
	if timeout <= 0 {
		return context.WithCancel(detached)
	}
	return context.WithTimeout(detached, timeout)
}

// loader 实现 Loader 接口。
type loader[V any] struct {
	cache Cache[V]
	opts  loaderOptions[V]
}

func (l *loader[V]) Load(ctx context.Context, key string, loadFn LoadFunc[V]) (V, error) {
	var zero V
	if key == "" {
		return zero, ErrEmptyKey
	}
	if loadFn == nil {
		return zero, ErrNilLoadFunc
	}
	if ctx == nil {
		ctx = context.Background()
	}

	th, err := l.cache.Get(key, func() xfuture.Thenable[V] {
		runCtx, cancel := independentContext(ctx, l.opts.loadTimeout)
		p := xfuture.New[V]()
		go func() {
			defer cancel()
			v, err := l.run(runCtx, loadFn)
			if err != nil {
				p.Reject(err)
				return
			}
			p.Resolve(v)
		}()
		return p
	})
	if err != nil {
		return zero, err
	}

	return xfuture.Await(ctx, th)
}

// run 执行一次回源，按配置叠加熔断与重试，并把 panic 转为 ErrLoadPanic。
func (l *loader[V]) run(ctx context.Context, loadFn LoadFunc[V]) (v V, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero V
			v, err = zero, fmt.Errorf("%w: %v", ErrLoadPanic, r)
		}
	}()

	do := func() (V, error) {
		return loadFn(ctx)
	}
	if l.opts.breaker != nil {
		inner := do
		do = func() (V, error) {
			return l.opts.breaker.Execute(inner)
		}
	}

	if len(l.opts.retryOpts) == 0 {
		return do()
	}

	opts := make([]retry.Option, 0, len(l.opts.retryOpts)+1)
	opts = append(opts, retry.Context(ctx))
	opts = append(opts, l.opts.retryOpts...)
	return retry.NewWithData[V](opts...).Do(do)
}
