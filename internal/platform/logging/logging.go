package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New は本番向け設定の zap ロガーを生成します。
// debug が true の場合は Debug レベルまで出力します。
func New(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
