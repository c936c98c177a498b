// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xfuture: 可订阅结算的异步值原语，Thenable 能力接口与 Promise 实现
//
// 设计原则：
//   - 一次性结算，回调恰好触发一次且互斥
//   - 支持 context 取消的同步等待
package util
