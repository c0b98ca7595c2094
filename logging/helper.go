package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// NewLogger 创建一个默认的 JSON Logger（便于测试使用）
func NewLogger() Logger {
	logger, _ := New(NewDefaultOptions(), nil)
	return logger
}

// NewWriterLogger 创建写入指定 writer 的 Logger
func NewWriterLogger(w io.Writer, level LogLevel) Logger {
	return &zeroLogger{zl: zerolog.New(w).Level(level.zerolog())}
}

// Nop 返回丢弃所有输出的 Logger
func Nop() Logger {
	return &zeroLogger{zl: zerolog.Nop()}
}
