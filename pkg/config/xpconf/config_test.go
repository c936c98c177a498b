package xpconf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xpromise/pkg/storage/xpcache"
)

func TestLoadBytes(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  Format
		want    Config
		wantErr error
	}{
		{
			name:   "full yaml",
			data:   "max_age: 5m\nmax_size: 1024\nprune_interval: 30s\nload_timeout: 10s\n",
			format: FormatYAML,
			want: Config{
				MaxAge:        5 * time.Minute,
				MaxSize:       1024,
				PruneInterval: 30 * time.Second,
				LoadTimeout:   10 * time.Second,
			},
		},
		{
			name:   "partial yaml keeps defaults",
			data:   "max_age: 1h\n",
			format: FormatYAML,
			want: Config{
				MaxAge:        time.Hour,
				PruneInterval: xpcache.DefaultPruneInterval,
				LoadTimeout:   xpcache.RecommendedLoadTimeout,
			},
		},
		{
			name:   "explicit zero disables pruning",
			data:   "prune_interval: 0\n",
			format: FormatYAML,
			want: Config{
				PruneInterval: 0,
				LoadTimeout:   xpcache.RecommendedLoadTimeout,
			},
		},
		{
			name:   "json",
			data:   `{"max_age": "90s", "max_size": 2}`,
			format: FormatJSON,
			want: Config{
				MaxAge:        90 * time.Second,
				MaxSize:       2,
				PruneInterval: xpcache.DefaultPruneInterval,
				LoadTimeout:   xpcache.RecommendedLoadTimeout,
			},
		},
		{
			name:   "unknown keys ignored",
			data:   "max_size: 8\nredis:\n  addr: localhost:6379\n",
			format: FormatYAML,
			want: Config{
				MaxSize:       8,
				PruneInterval: xpcache.DefaultPruneInterval,
				LoadTimeout:   xpcache.RecommendedLoadTimeout,
			},
		},
		{
			name:   "empty data returns defaults",
			data:   "",
			format: FormatYAML,
			want:   Default(),
		},
		{
			name:    "negative max_age",
			data:    "max_age: -5s\n",
			format:  FormatYAML,
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "negative max_size",
			data:    "max_size: -1\n",
			format:  FormatYAML,
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "malformed yaml",
			data:    "max_age: [unclosed\n",
			format:  FormatYAML,
			wantErr: ErrLoadFailed,
		},
		{
			name:    "unsupported format",
			data:    "max_age = 5m",
			format:  Format("toml"),
			wantErr: ErrUnsupportedFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadBytes([]byte(tt.data), tt.format)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cache.yaml")
		require.NoError(t, os.WriteFile(path, []byte("max_size: 16\n"), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 16, cfg.MaxSize)
		assert.Equal(t, xpcache.DefaultPruneInterval, cfg.PruneInterval)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := Load("")
		require.ErrorIs(t, err, ErrEmptyPath)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := Load("cache.toml")
		require.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorIs(t, err, ErrLoadFailed)
	})
}

func TestCacheOptions(t *testing.T) {
	t.Run("valid config builds cache", func(t *testing.T) {
		cfg := Config{
			MaxAge:        time.Minute,
			MaxSize:       4,
			PruneInterval: time.Second,
		}
		c, err := xpcache.New(CacheOptions[string](cfg)...)
		require.NoError(t, err)
		c.Close()
	})

	t.Run("zero max_size means unbounded", func(t *testing.T) {
		// MaxSize 0 不得转换为 WithMaxSize(0)（那是配置错误）
		c, err := xpcache.New(CacheOptions[string](Default())...)
		require.NoError(t, err)
		c.Close()
	})
}

func TestLoaderOptions(t *testing.T) {
	c, err := xpcache.New[string]()
	require.NoError(t, err)
	defer c.Close()

	cfg := Config{LoadTimeout: time.Second}
	_, err = xpcache.NewLoader(c, LoaderOptions[string](cfg)...)
	require.NoError(t, err)
}
