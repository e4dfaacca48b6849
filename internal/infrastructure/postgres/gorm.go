package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewGorm abre GORM sobre el mismo pool de pgx (tablas de referencia de Parámetros).
func NewGorm(pool *pgxpool.Pool, log zerolog.Logger) (*gorm.DB, error) {
	sqlDB := stdlib.OpenDBFromPool(pool)
	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         &gormZerolog{log: log, slow: 200 * time.Millisecond},
	})
	if err != nil {
		return nil, fmt.Errorf("abrir gorm: %w", err)
	}
	return db, nil
}

// gormZerolog envía los logs de GORM a zerolog.
type gormZerolog struct {
	log  zerolog.Logger
	slow time.Duration
}

func (l *gormZerolog) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	c := *l
	switch level {
	case gormlogger.Silent:
		c.log = l.log.Level(zerolog.Disabled)
	case gormlogger.Error:
		c.log = l.log.Level(zerolog.ErrorLevel)
	case gormlogger.Warn:
		c.log = l.log.Level(zerolog.WarnLevel)
	}
	return &c
}

func (l *gormZerolog) Info(_ context.Context, msg string, args ...any) {
	l.log.Info().Msgf(msg, args...)
}

func (l *gormZerolog) Warn(_ context.Context, msg string, args ...any) {
	l.log.Warn().Msgf(msg, args...)
}

func (l *gormZerolog) Error(_ context.Context, msg string, args ...any) {
	l.log.Error().Msgf(msg, args...)
}

func (l *gormZerolog) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.log.Error().Err(err).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("gorm")
	case elapsed > l.slow:
		sql, rows := fc()
		l.log.Warn().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("gorm: consulta lenta")
	default:
		if e := l.log.Trace(); e.Enabled() {
			sql, rows := fc()
			e.Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("gorm")
		}
	}
}
