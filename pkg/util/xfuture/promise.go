package xfuture

import (
	"context"
	"sync"
)

// 确保 *Promise 实现 Thenable 接口
var _ Thenable[any] = (*Promise[any])(nil)

// subscriber 保存一对结算回调。
type subscriber[V any] struct {
	onResolve func(V)
	onReject  func(error)
}

// dispatch 按结算结果触发其中一个回调。nil 回调被跳过。
func (s subscriber[V]) dispatch(value V, err error) {
	if err != nil {
		if s.onReject != nil {
			s.onReject(err)
		}
		return
	}
	if s.onResolve != nil {
		s.onResolve(value)
	}
}

// Promise 是 Thenable 的可结算实现。
// 必须通过 [New]、[Resolved]、[Rejected] 或 [Go] 创建，零值不可用。
// 所有方法都是并发安全的。
type Promise[V any] struct {
	mu      sync.Mutex
	settled bool
	value   V
	err     error
	done    chan struct{}
	subs    []subscriber[V]
}

// New 创建一个未结算的 Promise。
func New[V any]() *Promise[V] {
	return &Promise[V]{done: make(chan struct{})}
}

// Resolved 创建一个已成功结算的 Promise。
func Resolved[V any](value V) *Promise[V] {
	p := New[V]()
	p.Resolve(value)
	return p
}

// Rejected 创建一个已失败结算的 Promise。
// err 为 nil 时使用 ErrNilReason。
func Rejected[V any](err error) *Promise[V] {
	p := New[V]()
	p.Reject(err)
	return p
}

// Go 在新 goroutine 中执行 fn，并以其结果结算返回的 Promise。
// ctx 原样传给 fn，由 fn 自行决定是否响应取消。
func Go[V any](ctx context.Context, fn func(ctx context.Context) (V, error)) *Promise[V] {
	p := New[V]()
	go func() {
		v, err := fn(ctx)
		if err != nil {
			p.Reject(err)
			return
		}
		p.Resolve(v)
	}()
	return p
}

// Resolve 以成功结果结算。
// 返回 true 表示本次调用完成了结算；已结算的 Promise 返回 false。
func (p *Promise[V]) Resolve(value V) bool {
	return p.settle(value, nil)
}

// Reject 以失败结果结算。
// err 为 nil 时归一化为 ErrNilReason。
// 返回 true 表示本次调用完成了结算；已结算的 Promise 返回 false。
func (p *Promise[V]) Reject(err error) bool {
	if err == nil {
		err = ErrNilReason
	}
	var zero V
	return p.settle(zero, err)
}

// settle 完成一次性结算并异步投递所有已注册回调。
func (p *Promise[V]) settle(value V, err error) bool {
	p.mu.Lock()
	if p.settled {
		p.mu.Unlock()
		return false
	}
	p.settled = true
	p.value = value
	p.err = err
	subs := p.subs
	p.subs = nil
	close(p.done)
	p.mu.Unlock()

	for _, s := range subs {
		go s.dispatch(value, err)
	}
	return true
}

// Subscribe 注册结算回调。
// 未结算时回调排队等待结算；已结算时回调被异步补投。
// 任一回调可为 nil。
func (p *Promise[V]) Subscribe(onResolve func(value V), onReject func(err error)) {
	s := subscriber[V]{onResolve: onResolve, onReject: onReject}

	p.mu.Lock()
	if !p.settled {
		p.subs = append(p.subs, s)
		p.mu.Unlock()
		return
	}
	value, err := p.value, p.err
	p.mu.Unlock()

	go s.dispatch(value, err)
}

// Done 返回结算时关闭的通道，用于 select 组合。
func (p *Promise[V]) Done() <-chan struct{} {
	return p.done
}

// Await 阻塞等待结算或 ctx 取消。
// 结算为成功时返回 (value, nil)，失败时返回 (零值, 结算错误)，
// ctx 先取消时返回 (零值, ctx.Err())。
func (p *Promise[V]) Await(ctx context.Context) (V, error) {
	select {
	case <-p.done:
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		var zero V
		return zero, p.err
	}
	return p.value, nil
}
