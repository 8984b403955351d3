package zapappender

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/xjournal"
)

// Config is an explicit, code-first configuration. No envs, no hidden init,
// one call to Use.
type Config struct {
	Writer  io.Writer // default: os.Stdout
	Console bool      // console encoder instead of JSON
}

// Use builds a zap-backed appender from cfg against scope (nil means the
// default scope). Zap's own time key is disabled; the journal injects "ts".
func Use(cfg Config, scope *xjournal.Scope) (xjournal.Appender, error) {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	encCfg := zapcore.EncoderConfig{
		TimeKey:        "",
		LevelKey:       "level",
		NameKey:        "",
		CallerKey:      "",
		MessageKey:     "message",
		StacktraceKey:  "",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	var enc zapcore.Encoder
	if cfg.Console {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(zapcore.DebugLevel))
	return xjournal.NewAppender(New(zap.New(core)), scope)
}
