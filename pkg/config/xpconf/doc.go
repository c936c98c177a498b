// Package xpconf 提供 xpcache 缓存配置的加载与转换。
//
// xpconf 基于 koanf 封装，支持 YAML/JSON 两种格式，
// 可从文件或字节数据（如 K8s ConfigMap）加载。
//
// # 配置键
//
//	max_age: 5m          # 条目最大存活时间，0 表示永不过期
//	max_size: 1024       # 最大条目数，0 表示无上限
//	prune_interval: 60s  # 后台清理周期，0 表示禁用
//	load_timeout: 30s    # Loader 回源超时，0 表示禁用
//
// 缺省键采用 [Default] 的默认值；文件中显式写 0 表示禁用对应能力。
//
// # 用法
//
//	cfg, err := xpconf.Load("cache.yaml")
//	if err != nil { ... }
//	cache, err := xpcache.New(xpconf.CacheOptions[string](cfg)...)
//
// # 注意事项
//
//   - 时长字段接受 Go duration 字符串（"5m"、"30s"）或纳秒整数
//   - 未识别的键被忽略，便于与宿主应用共用一份配置文件
package xpconf
