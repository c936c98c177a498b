// Package xpcache 提供以在途异步计算为值的进程内缓存（promise cache）。
//
// 与缓存"已解析结果"的常规缓存不同，xpcache 缓存的是计算本身：
// 同一 key 的并发请求共享同一个在途计算（single-flight），
// 避免重复回源。计算成功后结果保持缓存，失败则条目自动失效，
// 下次请求重新回源。
//
// # 核心特性
//
//   - Single-flight：并发同 key 请求只触发一次 setter，共享同一个异步值
//   - TTL 过期：maxAge 控制条目存活时间，过期即视为未命中
//   - LRU 淘汰：maxSize 控制容量，穿透式双向链表保证 O(1) 淘汰
//   - 后台清理：按 pruneInterval 周期移除过期条目，缓存归零时自动停止
//   - 失败失效：异步值失败结算时自动移除条目，带代际守卫防止误伤新条目
//
// # 三种策略的协同
//
// 过期、后台清理与 LRU 淘汰共用同一条移除路径，map、链表、计数、
// 指标与回调的维护保持一致：任何一种移除都不会遗留簿记状态，
// 也不会二次移除或移除同 key 的新一代条目。
//
// # 生命周期
//
// 映射、链表与清理循环在首次写入时惰性创建；条目数归零
// （显式 Remove、Prune 清空或 Clear）时整体复位到未初始化状态。
// Close 是一次性终结：停止清理循环、丢弃映射并等待内部 goroutine 退出。
//
// # Loader
//
// Loader 把 (ctx, key, loadFn) 形态的回源代码桥接到 promise 缓存上，
// 并按配置叠加 retry-go 重试与 gobreaker 熔断。回源 goroutine 脱离
// 首个调用者的取消链，带独立超时。
//
// # 并发模型
//
// 一把互斥锁串行化所有操作；结算回调与清理 tick 通过同一把锁重新进入。
// setter 在锁内执行，必须只启动计算并立即返回，不得阻塞或回调缓存自身。
//
// # 已知限制
//
//   - 不缓存脱离其计算的独立结果值，也不提供跨进程一致性
//   - 无法取消在途计算：缓存只能对结算做出反应
//   - Clear/Close 整体丢弃条目，不逐条触发 OnEvicted 回调
//   - 指标不携带调用方 ctx，计数归属于缓存实例而非单个请求
//
// # 注意事项
//
//   - maxAge 从条目插入时刻起算，命中不续期；覆盖写入产生新条目、新起点
//   - Len 先清理过期条目再计数，是唯一与过期语义一致的计数读取
//   - 使用完毕后应调用 Close() 释放清理 goroutine，避免泄漏
package xpcache
