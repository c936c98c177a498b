package xpcache

import "errors"

// =============================================================================
// 构造配置错误
// =============================================================================

var (
	// ErrInvalidMaxAge 表示 maxAge 配置无效。
	ErrInvalidMaxAge = errors.New("xpcache: max age must not be negative")

	// ErrInvalidMaxSize 表示 maxSize 配置无效。
	// 显式设置的 maxSize 必须大于 0；不设置表示容量无上限。
	ErrInvalidMaxSize = errors.New("xpcache: max size must be positive")
)

// =============================================================================
// 调用错误
// =============================================================================

var (
	// ErrNilSetter 表示 Get 的 setter 为 nil。
	// 这是编程错误，缓存状态不受影响。
	ErrNilSetter = errors.New("xpcache: nil setter")

	// ErrNilSetterResult 表示 setter 返回了 nil 异步值。
	// 这是编程错误，不会有条目被写入。
	ErrNilSetterResult = errors.New("xpcache: setter returned nil value")

	// ErrClosed 表示缓存已关闭。
	// Close 后调用 Get 返回此错误。
	ErrClosed = errors.New("xpcache: closed")
)

// =============================================================================
// Loader 相关错误
// =============================================================================

var (
	// ErrNilCache 表示传入的缓存实例为 nil。
	ErrNilCache = errors.New("xpcache: nil cache")

	// ErrNilLoadFunc 表示加载函数为 nil。
	ErrNilLoadFunc = errors.New("xpcache: nil load function")

	// ErrEmptyKey 表示传入的 key 为空字符串。
	// 空 key 在缓存中合法但几乎总是使用错误，应在入口处 fail-fast。
	ErrEmptyKey = errors.New("xpcache: empty key")

	// ErrLoadPanic 表示加载函数（用户提供的回源函数）发生了 panic。
	// 设计决策: 加载在共享的在途 goroutine 中执行，panic 若任其传播
	// 会导致进程级崩溃。通过 recover 转为此错误，保护进程不被用户代码拖垮。
	ErrLoadPanic = errors.New("xpcache: load function panicked")
)
