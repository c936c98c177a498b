// Package storage 提供数据存储相关的子包。
//
// 子包列表：
//   - xpcache: 以在途异步计算为值的进程内缓存（single-flight、TTL、LRU）
//
// 设计原则：
//   - 并发请求共享在途计算，避免重复回源
//   - 内置可观测性（OTel 指标、结构化日志）
//   - 移除路径统一，三种淘汰策略的簿记保持一致
package storage
