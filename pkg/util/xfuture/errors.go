package xfuture

import "errors"

var (
	// ErrNilReason 表示 Reject 被以 nil 错误调用。
	// 失败分支必须携带非 nil 错误，nil 会被归一化为此错误。
	ErrNilReason = errors.New("xfuture: rejected with nil reason")
)
