// Package logging はロギング機能を提供します
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ログレベル
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// LogEntry は出力されるJSONログ1行を表す構造体です
type LogEntry struct {
	// Timestamp はログが記録された時刻をRFC3339形式で表します
	Timestamp string `json:"timestamp"`
	// Level はログレベル（debug, info, warning, error）を表します
	Level string `json:"level"`
	// Message はログメッセージの内容を表します
	Message string `json:"message"`
	// Error はエラーが発生した場合のエラーメッセージを表します
	Error string `json:"error,omitempty"`
}

// Logger は構造化ログを出力するためのインターフェースです
type Logger interface {
	Log(level, message string, err error)
}

// JSONLogger はlogrusを使ってJSONフォーマットでログを出力するロガーです
type JSONLogger struct {
	logger *logrus.Logger
}

// NewJSONLogger は新しいJSONLoggerインスタンスを作成します。初期レベルはINFOです
func NewJSONLogger(writer io.Writer) *JSONLogger {
	if writer == nil {
		writer = os.Stderr
	}

	l := logrus.New()
	l.SetOutput(writer)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "timestamp",
			logrus.FieldKeyMsg:  "message",
		},
	})

	return &JSONLogger{logger: l}
}

// SetLevel は出力する最低レベルを設定します
func (l *JSONLogger) SetLevel(level string) {
	l.logger.SetLevel(parseLevel(level))
}

// Log はメッセージをJSONフォーマットでログ出力します
func (l *JSONLogger) Log(level, message string, err error) {
	entry := logrus.NewEntry(l.logger)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Log(parseLevel(level), message)
}

// parseLevel は未知のレベルをINFOとして扱います
func parseLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}

// Discard はすべてのログを捨てるロガーです
type Discard struct{}

// Log は何もしません
func (Discard) Log(string, string, error) {}
