package xpcache

import "time"

// setClock 注入测试时钟，必须在缓存投入使用前调用。
func setClock[V any](c Cache[V], now func() time.Time) {
	c.(*promiseCache[V]).opts.now = now
}

// pruneLoopRunning 报告后台清理循环当前是否在运行。
func pruneLoopRunning[V any](c Cache[V]) bool {
	pc := c.(*promiseCache[V])
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.pruneStop != nil
}
