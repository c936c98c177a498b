// Package xfuture 提供可订阅结算的异步值原语。
//
// xfuture 定义了 Thenable 能力接口和 Promise 参考实现，
// 是 xpcache 存储的异步值的协作方契约。
//
// # 核心特性
//
//   - 泛型支持：异步值类型任意
//   - 一次性结算：Resolve/Reject 首次生效，后续调用被忽略
//   - 订阅回调：结算前后均可订阅，回调异步投递且恰好触发一次
//   - 同步等待：Await 支持 context 取消/超时
//
// # Thenable 契约
//
// Subscribe 注册的两个回调互斥：成功时只触发 onResolve，
// 失败时只触发 onReject，且相对注册调用异步执行。
// 任一回调可为 nil，表示不关心对应分支。
//
// # 使用场景
//
//   - 作为 xpcache 的缓存值：多个调用方共享同一个在途计算
//   - 将回调式异步 API 桥接为可等待的值
//
// # 设计决策
//
// 回调投递使用独立 goroutine，保证 Subscribe 调用方持有的锁
// 不会与回调产生重入死锁。代价是结算到回调执行之间存在调度延迟，
// 对缓存失效类的管家逻辑而言可以接受。
//
// # 注意事项
//
//   - Promise 必须通过 New/Resolved/Rejected/Go 创建，零值不可用
//   - Reject(nil) 会被归一化为 ErrNilReason，保证失败分支总有非 nil 错误
//   - Await 返回 ctx.Err() 只表示调用方放弃等待，计算本身仍在进行
package xfuture
