package logging

import (
	"io"
	"log/slog"
	"os"
)

// New 创建文本格式 logger；verbose 时输出 debug 级别
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Setup 将 stderr logger 设为全局默认并返回
func Setup(verbose bool) *slog.Logger {
	logger := New(os.Stderr, verbose)
	slog.SetDefault(logger)
	return logger
}
