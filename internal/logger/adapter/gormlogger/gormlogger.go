// Package gormlogger adapts the global zerolog logger to gorm's logger
// interface so database activity shares the application's log pipeline.
package gormlogger

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlog "gorm.io/gorm/logger"
)

// Adapter implements gorm's logger.Interface on top of zerolog.
type Adapter struct {
	// SlowThreshold marks queries logged as slow.
	SlowThreshold time.Duration
	// LogSQL enables per-query trace logging. Off by default because the
	// SQL text may embed secrets such as token values.
	LogSQL bool
}

// New creates a gorm logger adapter with a 200ms slow-query threshold.
func New() *Adapter {
	return &Adapter{
		SlowThreshold: 200 * time.Millisecond, //nolint:mnd
	}
}

// LogMode implements gorm's logger.Interface. The zerolog global level is
// authoritative, so the requested mode is ignored.
func (a *Adapter) LogMode(_ gormlog.LogLevel) gormlog.Interface {
	return a
}

// Info implements gorm's logger.Interface.
func (a *Adapter) Info(_ context.Context, msg string, args ...interface{}) {
	log.Info().Msgf(msg, args...)
}

// Warn implements gorm's logger.Interface.
func (a *Adapter) Warn(_ context.Context, msg string, args ...interface{}) {
	log.Warn().Msgf(msg, args...)
}

// Error implements gorm's logger.Interface.
func (a *Adapter) Error(_ context.Context, msg string, args ...interface{}) {
	log.Error().Msgf(msg, args...)
}

// Trace implements gorm's logger.Interface. Record-not-found is an
// expected lookup outcome and is never logged as an error.
func (a *Adapter) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		log.Error().Err(err).Dur("elapsed", elapsed).Msg("query failed")
	case a.SlowThreshold > 0 && elapsed > a.SlowThreshold:
		sql, rows := fc()
		log.Warn().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("slow query")
	case a.LogSQL:
		sql, rows := fc()
		log.Trace().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query")
	}
}
