package xpconf

import "errors"

var (
	// ErrEmptyPath 表示传入的配置文件路径为空。
	ErrEmptyPath = errors.New("xpconf: empty path")

	// ErrUnsupportedFormat 表示不支持的配置格式。
	// 仅支持 YAML (.yaml/.yml) 和 JSON (.json)。
	ErrUnsupportedFormat = errors.New("xpconf: unsupported format")

	// ErrLoadFailed 表示配置读取或解析失败。
	ErrLoadFailed = errors.New("xpconf: load failed")

	// ErrUnmarshalFailed 表示配置反序列化失败。
	ErrUnmarshalFailed = errors.New("xpconf: unmarshal failed")

	// ErrInvalidConfig 表示配置值无效。
	// 这是配置错误，应在部署阶段修复，不应被静默忽略。
	ErrInvalidConfig = errors.New("xpconf: invalid configuration")
)
