package xpconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/omeyang/xpromise/pkg/storage/xpcache"
)

// Format 表示配置格式。
type Format string

const (
	// FormatYAML 表示 YAML 格式。
	FormatYAML Format = "yaml"
	// FormatJSON 表示 JSON 格式。
	FormatJSON Format = "json"
)

// Config 是 xpcache 缓存与 Loader 的文件化配置。
type Config struct {
	// MaxAge 条目最大存活时间。0 表示永不过期。
	MaxAge time.Duration `koanf:"max_age"`

	// MaxSize 最大条目数。0 表示无上限，不允许负值。
	MaxSize int `koanf:"max_size"`

	// PruneInterval 后台清理周期。0 表示禁用后台清理。
	PruneInterval time.Duration `koanf:"prune_interval"`

	// LoadTimeout Loader 回源超时。0 表示禁用超时。
	LoadTimeout time.Duration `koanf:"load_timeout"`
}

// Default 返回默认配置。
// 与 xpcache/Loader 的内置默认一致：不过期、无容量上限、
// 60s 清理周期、30s 回源超时。
func Default() Config {
	return Config{
		PruneInterval: xpcache.DefaultPruneInterval,
		LoadTimeout:   xpcache.RecommendedLoadTimeout,
	}
}

// Load 从文件加载配置，根据扩展名自动检测格式。
// 文件中缺省的键保持 [Default] 的默认值。
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, ErrEmptyPath
	}

	format, err := detectFormat(path)
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return LoadBytes(data, format)
}

// LoadBytes 从字节数据加载配置，需显式指定格式。
// 适用于 K8s ConfigMap 等场景；空数据返回 [Default]。
func LoadBytes(data []byte, format Format) (Config, error) {
	parser, err := parserFor(format)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if len(data) == 0 {
		return cfg, nil
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate 校验配置值。
func (c Config) Validate() error {
	if c.MaxAge < 0 {
		return fmt.Errorf("%w: max_age must not be negative, got %s", ErrInvalidConfig, c.MaxAge)
	}
	if c.MaxSize < 0 {
		return fmt.Errorf("%w: max_size must not be negative, got %d", ErrInvalidConfig, c.MaxSize)
	}
	if c.PruneInterval < 0 {
		return fmt.Errorf("%w: prune_interval must not be negative, got %s", ErrInvalidConfig, c.PruneInterval)
	}
	if c.LoadTimeout < 0 {
		return fmt.Errorf("%w: load_timeout must not be negative, got %s", ErrInvalidConfig, c.LoadTimeout)
	}
	return nil
}

// CacheOptions 将配置转换为 xpcache.New 的选项。
func CacheOptions[V any](c Config) []xpcache.Option[V] {
	opts := []xpcache.Option[V]{
		xpcache.WithMaxAge[V](c.MaxAge),
		xpcache.WithPruneInterval[V](c.PruneInterval),
	}
	if c.MaxSize > 0 {
		opts = append(opts, xpcache.WithMaxSize[V](c.MaxSize))
	}
	return opts
}

// LoaderOptions 将配置转换为 xpcache.NewLoader 的选项。
func LoaderOptions[V any](c Config) []xpcache.LoaderOption[V] {
	return []xpcache.LoaderOption[V]{
		xpcache.WithLoadTimeout[V](c.LoadTimeout),
	}
}

// detectFormat 根据文件扩展名检测格式。
func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func parserFor(format Format) (koanf.Parser, error) {
	switch format {
	case FormatYAML:
		return yaml.Parser(), nil
	case FormatJSON:
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
