package xfuture

import "context"

// Thenable 表示一个可订阅结算的异步值。
//
// 实现方保证：每个 Subscribe 调用注册的回调恰好触发一次，
// onResolve 与 onReject 互斥，且相对 Subscribe 调用异步执行。
// 任一回调可为 nil，表示不关心对应分支。
type Thenable[V any] interface {
	// Subscribe 注册结算回调。
	// 已结算的值上订阅同样有效，回调会被异步补投。
	Subscribe(onResolve func(value V), onReject func(err error))
}

// Await 阻塞等待任意 Thenable 结算，或 ctx 取消。
//
// 对 *Promise 走快路径；其他实现通过一次性订阅桥接。
// ctx 取消只表示调用方放弃等待，底层计算不受影响。
func Await[V any](ctx context.Context, t Thenable[V]) (V, error) {
	if p, ok := t.(*Promise[V]); ok {
		return p.Await(ctx)
	}

	type outcome struct {
		value V
		err   error
	}
	// 缓冲为 1：即使调用方已放弃等待，回调也不会阻塞
	ch := make(chan outcome, 1)
	t.Subscribe(
		func(v V) { ch <- outcome{value: v} },
		func(err error) { ch <- outcome{err: err} },
	)

	select {
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	case out := <-ch:
		return out.value, out.err
	}
}
