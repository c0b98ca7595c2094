package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

// Options 日志配置选项
type Options struct {
	Level   string `yaml:"level" json:"level" env:"LEVEL" validate:"omitempty,oneof=trace debug info warn warning error fatal"`
	Format  string `yaml:"format" json:"format" env:"FORMAT" validate:"omitempty,oneof=json text"`
	NoColor bool   `yaml:"no_color" json:"no_color" env:"NO_COLOR"`
}

// NewDefaultOptions 创建默认配置
func NewDefaultOptions() Options {
	return Options{
		Level:  "info",
		Format: FormatJSON,
	}
}

// New 根据配置创建 Logger，output 为空时写入 stdout
func New(opts Options, output io.Writer) (Logger, error) {
	if output == nil {
		output = os.Stdout
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	switch opts.Format {
	case "", FormatJSON:
	case FormatText:
		output = zerolog.ConsoleWriter{
			Out:        output,
			NoColor:    opts.NoColor,
			TimeFormat: time.DateTime,
		}
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	zl := zerolog.New(output).Level(level.zerolog()).With().Timestamp().Logger()
	return &zeroLogger{zl: zl}, nil
}
