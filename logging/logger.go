package logging

import (
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

// SkipRateLimiter suppresses repeated skipped-line diagnostics so a
// badly corrupted input file cannot flood the log. Distinct reasons
// are limited independently.
type SkipRateLimiter struct {
	mu          sync.Mutex
	entryCounts map[string]*limiterEntry
}

type limiterEntry struct {
	count      int
	firstSeen  time.Time
	suppressed int
}

var (
	rateLimiter     *SkipRateLimiter
	rateLimitWindow = 1 * time.Minute
	maxLogsPerMin   = 5
)

func NewSkipRateLimiter() *SkipRateLimiter {
	return &SkipRateLimiter{
		entryCounts: make(map[string]*limiterEntry),
	}
}

func (rl *SkipRateLimiter) ShouldLog(key string) (shouldLog bool, suppressedCount int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	entry, exists := rl.entryCounts[key]

	if !exists {
		rl.entryCounts[key] = &limiterEntry{count: 1, firstSeen: now}
		return true, 0
	}

	if now.Sub(entry.firstSeen) > rateLimitWindow {
		suppressedCount = entry.suppressed
		rl.entryCounts[key] = &limiterEntry{count: 1, firstSeen: now}
		return true, suppressedCount
	}

	entry.count++

	if entry.count <= maxLogsPerMin {
		return true, 0
	}

	entry.suppressed++
	return false, 0
}

// InitLogger initializes the structured logger with JSON format
func InitLogger() *logrus.Logger {
	log = logrus.New()

	// Set JSON formatter for structured logging
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "ts",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	// Trades go to stdout; diagnostics stay on stderr
	log.SetOutput(os.Stderr)

	// Set log level from environment or default to Info
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	rateLimiter = NewSkipRateLimiter()

	return log
}

// GetLogger returns the global logger instance
func GetLogger() *logrus.Logger {
	if log == nil {
		return InitLogger()
	}
	return log
}

// Event types as constants
const (
	EventOrderAccepted   = "order_accepted"
	EventOrderRejected   = "order_rejected"
	EventTradeExecuted   = "trade_executed"
	EventLineSkipped     = "line_skipped"
	EventReplayStarted   = "replay_started"
	EventReplayCompleted = "replay_completed"
)

// LogOrderAccepted logs when an order enters a book
func LogOrderAccepted(orderID, symbol, side string, price string, quantity int64, arrivalSeq uint64) {
	GetLogger().WithFields(logrus.Fields{
		"event":       EventOrderAccepted,
		"order_id":    orderID,
		"symbol":      symbol,
		"side":        side,
		"price":       price,
		"quantity":    quantity,
		"arrival_seq": arrivalSeq,
	}).Debug("Order accepted")
}

// LogOrderRejected logs when an order is rejected at submit time
func LogOrderRejected(orderID, symbol, reason string) {
	GetLogger().WithFields(logrus.Fields{
		"event":    EventOrderRejected,
		"order_id": orderID,
		"symbol":   symbol,
		"reason":   reason,
	}).Warn("Order rejected")
}

// LogTradeExecuted logs when a trade is executed
func LogTradeExecuted(sequence uint64, tradeID, symbol, buyOrderID, sellOrderID, price string, quantity int64) {
	GetLogger().WithFields(logrus.Fields{
		"event":         EventTradeExecuted,
		"sequence":      sequence,
		"trade_id":      tradeID,
		"symbol":        symbol,
		"buy_order_id":  buyOrderID,
		"sell_order_id": sellOrderID,
		"price":         price,
		"quantity":      quantity,
	}).Info("Trade executed")
}

// LogLineSkipped logs a malformed input record, rate limited per reason
func LogLineSkipped(lineNumber int, reason string, err error) {
	if rateLimiter == nil {
		rateLimiter = NewSkipRateLimiter()
	}

	shouldLog, suppressedCount := rateLimiter.ShouldLog(reason)
	if !shouldLog {
		return
	}

	fields := logrus.Fields{
		"event":  EventLineSkipped,
		"line":   lineNumber,
		"reason": reason,
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	if suppressedCount > 0 {
		fields["suppressed_count"] = suppressedCount
	}

	GetLogger().WithFields(fields).Warn("Input record skipped")
}

// LogReplayStarted logs the start of an input replay
func LogReplayStarted(source string) {
	GetLogger().WithFields(logrus.Fields{
		"event":  EventReplayStarted,
		"source": source,
	}).Info("Replay started")
}

// LogReplayCompleted logs replay completion with summary counters
func LogReplayCompleted(source string, submitted, rejected, skipped, trades uint64, duration time.Duration) {
	GetLogger().WithFields(logrus.Fields{
		"event":       EventReplayCompleted,
		"source":      source,
		"submitted":   submitted,
		"rejected":    rejected,
		"skipped":     skipped,
		"trades":      trades,
		"duration_ms": duration.Milliseconds(),
	}).Info("Replay completed")
}

// LogWithFields provides a flexible logging method
func LogWithFields(level logrus.Level, message string, fields logrus.Fields) {
	GetLogger().WithFields(fields).Log(level, message)
}
