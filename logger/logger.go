// Package logger 封装 charmbracelet/log，供命令行输出进度与诊断信息。
package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
)

type (
	LogLevel string

	// Logger 是结构化日志接口，keyvals 为交替的键值对。
	Logger interface {
		Debug(msg string, keyvals ...any)
		Info(msg string, keyvals ...any)
		Warn(msg string, keyvals ...any)
		Error(msg string, keyvals ...any)
		With(keyvals ...any) Logger
	}

	loggerImpl struct {
		charm *charmlog.Logger
	}

	ctxKey struct{}
)

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// ToCharmlogLevel 转换为 charmbracelet/log 的级别，未知值按 info 处理。
func (l LogLevel) ToCharmlogLevel() charmlog.Level {
	switch LogLevel(strings.ToLower(string(l))) {
	case DebugLevel:
		return charmlog.DebugLevel
	case WarnLevel:
		return charmlog.WarnLevel
	case ErrorLevel:
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

type Config struct {
	Level      LogLevel
	Output     io.Writer
	JSON       bool
	AddSource  bool
	TimeFormat string
}

func DefaultConfig() *Config {
	return &Config{
		Level:      InfoLevel,
		Output:     os.Stderr,
		TimeFormat: "15:04:05",
	}
}

// NewLogger 按 cfg 创建日志器，cfg 为 nil 时使用 DefaultConfig。
func NewLogger(cfg *Config) Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	charm := charmlog.NewWithOptions(out, charmlog.Options{
		ReportCaller:    cfg.AddSource,
		ReportTimestamp: cfg.TimeFormat != "",
		TimeFormat:      cfg.TimeFormat,
		Level:           cfg.Level.ToCharmlogLevel(),
	})
	if cfg.JSON {
		charm.SetFormatter(charmlog.JSONFormatter)
	} else {
		charm.SetFormatter(charmlog.TextFormatter)
		charm.SetStyles(defaultStyles())
	}
	return &loggerImpl{charm: charm}
}

func defaultStyles() *charmlog.Styles {
	styles := charmlog.DefaultStyles()
	styles.Levels[charmlog.InfoLevel] = lipgloss.NewStyle().SetString("信息").Foreground(lipgloss.Color("86"))
	styles.Levels[charmlog.WarnLevel] = lipgloss.NewStyle().SetString("警告").Bold(true).Foreground(lipgloss.Color("214"))
	styles.Levels[charmlog.ErrorLevel] = lipgloss.NewStyle().SetString("错误").Bold(true).Foreground(lipgloss.Color("204"))
	styles.Levels[charmlog.DebugLevel] = lipgloss.NewStyle().SetString("调试").Faint(true)
	return styles
}

func (l *loggerImpl) Debug(msg string, keyvals ...any) { l.charm.Debug(msg, keyvals...) }
func (l *loggerImpl) Info(msg string, keyvals ...any)  { l.charm.Info(msg, keyvals...) }
func (l *loggerImpl) Warn(msg string, keyvals ...any)  { l.charm.Warn(msg, keyvals...) }
func (l *loggerImpl) Error(msg string, keyvals ...any) { l.charm.Error(msg, keyvals...) }

func (l *loggerImpl) With(keyvals ...any) Logger {
	return &loggerImpl{charm: l.charm.With(keyvals...)}
}

// ContextWithLogger 把日志器放入 ctx。
func ContextWithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext 取出 ctx 中的日志器，没有时返回默认配置的日志器。
func FromContext(ctx context.Context) Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(Logger); ok && l != nil {
			return l
		}
	}
	return NewLogger(nil)
}
