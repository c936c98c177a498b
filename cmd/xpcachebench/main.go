// xpcachebench 是 xpcache 的工作负载驱动器，用于在真实并发下
// 观察命中率、回源次数与淘汰行为。
//
// 用法:
//
//	xpcachebench [选项]
//
// 选项:
//
//	--config, -c         配置文件路径 (.yaml/.json)，与下列单项选项叠加，单项优先
//	--keys, -k           键空间大小 (默认: 1024)
//	--workers, -w        并发 worker 数 (默认: 8)
//	--duration, -d       压测时长 (默认: 5s)
//	--max-age            条目最大存活时间 (默认: 1m)
//	--max-size           最大条目数，0 表示无上限 (默认: 512)
//	--load-latency       模拟回源耗时 (默认: 1ms)
//	--log-file           日志输出文件（lumberjack 滚动），缺省输出到 stderr
//	--verbose, -v        输出 debug 级别日志
//
// 示例:
//
//	xpcachebench -k 4096 -w 32 -d 30s --max-size 1024
//	xpcachebench -c cache.yaml --log-file /tmp/xpcachebench.log
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"sync/atomic"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/omeyang/xpromise/pkg/config/xpconf"
	"github.com/omeyang/xpromise/pkg/storage/xpcache"
	"github.com/omeyang/xpromise/pkg/util/xfuture"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	if err := createApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func createApp() *cli.Command {
	return &cli.Command{
		Name:    "xpcachebench",
		Usage:   "xpcache 工作负载驱动器",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "配置文件路径 (.yaml/.json)"},
			&cli.IntFlag{Name: "keys", Aliases: []string{"k"}, Usage: "键空间大小", Value: 1024},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "并发 worker 数", Value: 8},
			&cli.DurationFlag{Name: "duration", Aliases: []string{"d"}, Usage: "压测时长", Value: 5 * time.Second},
			&cli.DurationFlag{Name: "max-age", Usage: "条目最大存活时间", Value: time.Minute},
			&cli.IntFlag{Name: "max-size", Usage: "最大条目数，0 表示无上限", Value: 512},
			&cli.DurationFlag{Name: "load-latency", Usage: "模拟回源耗时", Value: time.Millisecond},
			&cli.StringFlag{Name: "log-file", Usage: "日志输出文件（lumberjack 滚动）"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "输出 debug 级别日志"},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger, cleanup := buildLogger(cmd)
	defer cleanup()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	var evictions atomic.Int64
	opts := xpconf.CacheOptions[string](cfg)
	opts = append(opts,
		xpcache.WithLogger[string](logger),
		xpcache.WithOnEvicted[string](func(string, xfuture.Thenable[string], xpcache.RemovalReason) {
			evictions.Add(1)
		}),
	)
	cache, err := xpcache.New(opts...)
	if err != nil {
		return err
	}
	defer cache.Close()

	loader, err := xpcache.NewLoader(cache, xpconf.LoaderOptions[string](cfg)...)
	if err != nil {
		return err
	}

	keys := cmd.Int("keys")
	workers := cmd.Int("workers")
	latency := cmd.Duration("load-latency")

	runCtx, cancel := context.WithTimeout(ctx, cmd.Duration("duration"))
	defer cancel()

	logger.Info("starting workload",
		slog.Int("keys", keys),
		slog.Int("workers", workers),
		slog.Duration("max_age", cfg.MaxAge),
		slog.Int("max_size", cfg.MaxSize))

	var ops, loads atomic.Int64
	loadFn := func(loadCtx context.Context) (string, error) {
		loads.Add(1)
		select {
		case <-loadCtx.Done():
			return "", loadCtx.Err()
		case <-time.After(latency):
			return "value", nil
		}
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(runCtx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				default:
				}
				key := fmt.Sprintf("key-%d", rand.IntN(keys))
				if _, err := loader.Load(gctx, key, loadFn); err != nil {
					if gctx.Err() != nil {
						return nil
					}
					return err
				}
				ops.Add(1)
			}
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	total := ops.Load()
	missed := loads.Load()
	var hitRatio float64
	if total > 0 {
		hitRatio = float64(total-missed) / float64(total)
	}

	fmt.Printf("ops:        %d (%.0f ops/s)\n", total, float64(total)/elapsed.Seconds())
	fmt.Printf("loads:      %d\n", missed)
	fmt.Printf("hit ratio:  %.2f%%\n", hitRatio*100)
	fmt.Printf("evictions:  %d\n", evictions.Load())
	fmt.Printf("live size:  %d\n", cache.Len())
	return nil
}

// resolveConfig 合并配置文件与命令行单项选项，单项优先。
func resolveConfig(cmd *cli.Command) (xpconf.Config, error) {
	cfg := xpconf.Default()
	if path := cmd.String("config"); path != "" {
		loaded, err := xpconf.Load(path)
		if err != nil {
			return xpconf.Config{}, err
		}
		cfg = loaded
	}
	if cmd.IsSet("max-age") || cmd.String("config") == "" {
		cfg.MaxAge = cmd.Duration("max-age")
	}
	if cmd.IsSet("max-size") || cmd.String("config") == "" {
		cfg.MaxSize = cmd.Int("max-size")
	}
	return cfg, cfg.Validate()
}

// buildLogger 构建 slog 日志器。--log-file 时输出到 lumberjack 滚动文件。
func buildLogger(cmd *cli.Command) (*slog.Logger, func()) {
	var w io.Writer = os.Stderr
	cleanup := func() {}

	if path := cmd.String("log-file"); path != "" {
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    64, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
			Compress:   true,
		}
		w = lj
		cleanup = func() { _ = lj.Close() }
	}

	level := slog.LevelInfo
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), cleanup
}
