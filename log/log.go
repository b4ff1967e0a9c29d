// Package log writes script log lines to the engine console.
//
// The engine accepts four levels. Logger is a *zap.Logger whose core forwards every entry
// to the engine; zap levels map onto the engine's as Debug, Info, Warn and Error, with
// DPanic and above reported as Error.
//
//	log.Logger().Info("doors closed", zap.Int("cockpit", 1))
//	log.Infof("speed %.1f", v)
package log

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lotus-sim/lotus-script-go/ffi"
	"github.com/lotus-sim/lotus-script-go/sys"
)

// Level is the engine's log level.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// LevelOf maps a zap level onto the engine's levels.
func LevelOf(l zapcore.Level) Level {
	switch {
	case l <= zapcore.DebugLevel:
		return LevelDebug
	case l == zapcore.InfoLevel:
		return LevelInfo
	case l == zapcore.WarnLevel:
		return LevelWarn
	default:
		return LevelError
	}
}

// Write sends one line to the engine.
func Write(level Level, msg string) {
	obj := ffi.Encode(sys.Memory(), msg)
	defer obj.Release()
	sys.Imports().Write(int32(level), obj.Handle())
}

type hostCore struct {
	zapcore.LevelEnabler
	enc zapcore.Encoder
}

// NewCore returns a zap core that writes to the engine console. The engine stamps time
// and level itself, so entries carry only the logger name, message and fields.
func NewCore(enab zapcore.LevelEnabler) zapcore.Core {
	cfg := zapcore.EncoderConfig{
		MessageKey:       "msg",
		NameKey:          "logger",
		EncodeName:       zapcore.FullNameEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
	return &hostCore{LevelEnabler: enab, enc: zapcore.NewConsoleEncoder(cfg)}
}

func (c *hostCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &hostCore{LevelEnabler: c.LevelEnabler, enc: c.enc.Clone()}
	for _, f := range fields {
		f.AddTo(clone.enc)
	}
	return clone
}

func (c *hostCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *hostCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	defer buf.Free()
	Write(LevelOf(ent.Level), strings.TrimSuffix(buf.String(), "\n"))
	return nil
}

func (c *hostCore) Sync() error {
	return nil
}

var logger = zap.New(NewCore(zapcore.DebugLevel))

// Logger returns the script logger.
func Logger() *zap.Logger {
	return logger
}

// SetLogger replaces the script logger.
func SetLogger(l *zap.Logger) {
	logger = l
}

func Debugf(format string, args ...any) { logger.Sugar().Debugf(format, args...) }
func Infof(format string, args ...any)  { logger.Sugar().Infof(format, args...) }
func Warnf(format string, args ...any)  { logger.Sugar().Warnf(format, args...) }
func Errorf(format string, args ...any) { logger.Sugar().Errorf(format, args...) }
