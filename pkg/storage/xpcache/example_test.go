package xpcache_test

import (
	"context"
	"fmt"
	"time"

	"github.com/omeyang/xpromise/pkg/storage/xpcache"
	"github.com/omeyang/xpromise/pkg/util/xfuture"
)

func Example() {
	// 创建一个条目 5 分钟过期、最多 1000 条的 promise 缓存
	cache, err := xpcache.New(
		xpcache.WithMaxAge[string](5*time.Minute),
		xpcache.WithMaxSize[string](1000),
	)
	if err != nil {
		panic(err)
	}
	defer cache.Close()

	// setter 只负责启动计算并立即返回其异步值；
	// 同一 key 的并发请求共享这一次计算
	fetch := func() xfuture.Thenable[string] {
		return xfuture.Go(context.Background(), func(context.Context) (string, error) {
			return "v1.2.3", nil
		})
	}

	first, _ := cache.Get("release:latest", fetch)
	second, _ := cache.Get("release:latest", fetch)
	fmt.Println("shared flight:", first == second)

	v, err := xfuture.Await(context.Background(), first)
	if err != nil {
		panic(err)
	}
	fmt.Println("value:", v)

	// Output:
	// shared flight: true
	// value: v1.2.3
}

func ExampleLoader() {
	cache, err := xpcache.New[int]()
	if err != nil {
		panic(err)
	}
	defer cache.Close()

	loader, err := xpcache.NewLoader(cache)
	if err != nil {
		panic(err)
	}

	// Loader 把 (ctx, key, loadFn) 形态的回源桥接到 promise 缓存上
	hits := 0
	v, err := loader.Load(context.Background(), "answer", func(context.Context) (int, error) {
		hits++
		return 42, nil
	})
	if err != nil {
		panic(err)
	}

	// 第二次命中缓存，不再回源
	_, _ = loader.Load(context.Background(), "answer", func(context.Context) (int, error) {
		hits++
		return 0, nil
	})

	fmt.Println("value:", v)
	fmt.Println("loads:", hits)

	// Output:
	// value: 42
	// loads: 1
}
