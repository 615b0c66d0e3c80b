// Package logging provides structured logging for go-volley.
// It wraps Go's standard slog package to provide consistent logging patterns with
// match correlation IDs, error context preservation, and security-conscious log formatting.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelEnvVar names the environment variable that sets the default log level.
const LevelEnvVar = "VOLLEY_LOG_LEVEL"

// Logger wraps slog.Logger to provide application-specific logging functionality
// with match ID support and security-conscious formatting.
type Logger struct {
	*slog.Logger
}

// Options configures New.
type Options struct {
	// Level is one of DEBUG, INFO, WARN, ERROR. Empty falls back to
	// VOLLEY_LOG_LEVEL, then INFO.
	Level string
	// File, when set, sends logs to a size-rotated file instead of Output.
	File       string
	MaxSizeMB  int
	MaxBackups int
	// Output defaults to stdout.
	Output io.Writer
}

// NewLogger creates a new Logger instance with JSON output to stdout.
// The log level can be controlled via the VOLLEY_LOG_LEVEL environment variable.
// Valid levels: DEBUG, INFO, WARN, ERROR. Defaults to INFO.
func NewLogger() *Logger {
	return New(Options{})
}

// New creates a Logger from opts.
func New(opts Options) *Logger {
	level, ok := ParseLevel(opts.Level)
	if !ok {
		level = getLogLevelFromEnv()
	}

	var out io.Writer = os.Stdout
	if opts.Output != nil {
		out = opts.Output
	}
	if opts.File != "" {
		out = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
		}
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: sanitizeAttributes,
	})
	return &Logger{slog.New(handler)}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return &Logger{slog.New(slog.NewJSONHandler(io.Discard, nil))}
}

// With returns a Logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{l.Logger.With(args...)}
}

// LogWithContext logs a message with automatic match ID extraction from context.
// If a match ID exists in the context, it will be included in the log entry.
func (l *Logger) LogWithContext(ctx context.Context, level slog.Level, msg string, args ...any) {
	if matchID := GetMatchID(ctx); matchID != "" {
		args = append(args, "match_id", matchID)
	}
	l.Log(ctx, level, msg, args...)
}

// Info logs an informational message with context.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelInfo, msg, args...)
}

// Warn logs a warning message with context.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelWarn, msg, args...)
}

// Error logs an error message with context and proper error formatting.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.LogWithContext(ctx, slog.LevelError, msg, args...)
}

// Debug logs a debug message with context.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelDebug, msg, args...)
}

type matchIDKey struct{}

// WithMatchID adds a match ID to the context.
// If no match ID is provided, a new one will be generated.
func WithMatchID(ctx context.Context, matchID string) context.Context {
	if matchID == "" {
		matchID = GenerateMatchID()
	}
	return context.WithValue(ctx, matchIDKey{}, matchID)
}

// GetMatchID extracts the match ID from the context.
// Returns empty string if no match ID is present.
func GetMatchID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(matchIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateMatchID creates a new random match ID.
func GenerateMatchID() string {
	return uuid.NewString()
}

// ParseLevel maps a level name to a slog.Level. The second result is false
// for empty or unknown names.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// getLogLevelFromEnv determines the log level from environment variables.
func getLogLevelFromEnv() slog.Level {
	level, _ := ParseLevel(os.Getenv(LevelEnvVar))
	return level
}

// sanitizeAttributes removes or masks sensitive data from log attributes.
// This prevents accidental logging of passwords, tokens, or other sensitive information.
func sanitizeAttributes(groups []string, a slog.Attr) slog.Attr {
	key := strings.ToLower(a.Key)

	sensitiveKeys := []string{
		"password", "passwd", "pwd",
		"token", "auth", "authorization",
		"secret", "private",
		"cookie", "session",
	}

	for _, sensitive := range sensitiveKeys {
		if strings.Contains(key, sensitive) {
			return slog.Attr{
				Key:   a.Key,
				Value: slog.StringValue("[REDACTED]"),
			}
		}
	}

	return a
}

// WrapError wraps an error with additional context information.
// This preserves the original error while adding descriptive context.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}
