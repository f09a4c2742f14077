package pgrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	connectMaxAttempts  = 30
	connectRetryTimeout = 3 * time.Second
)

// Connect устанавливает соединение с postgres (с ретраями, база может подниматься дольше
// приложения) и накатывает миграции из migrationsDir.
func Connect(ctx context.Context, migrationsDir, dsn string, l *logrus.Logger) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool

	for attempt := 1; ; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err() //nolint:wrapcheck
		}
		var connErr error
		pool, connErr = newPostgresConnection(ctx, dsn)
		if connErr == nil {
			break
		}
		if attempt >= connectMaxAttempts {
			return nil, fmt.Errorf("init postgres connection after %d attempts: %w", attempt, connErr)
		}
		l.WithError(connErr).
			WithField("CurrentAttempt", fmt.Sprintf("#%d / %d", attempt, connectMaxAttempts)).
			Warnf("init postgres connection error, retrying in %.f seconds", connectRetryTimeout.Seconds())
		time.Sleep(connectRetryTimeout)
	}

	if err := postgresMigrate(migrationsDir, dsn); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func newPostgresConnection(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, confErr := pgxpool.ParseConfig(dsn)
	if confErr != nil {
		return nil, fmt.Errorf("parse postgres config: %s", confErr.Error())
	}
	pool, poolErr := pgxpool.NewWithConfig(ctx, poolConfig)
	if poolErr != nil {
		return nil, fmt.Errorf("failed to create pool: %s", poolErr.Error())
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %s", pingErr.Error())
	}

	return pool, nil
}

func postgresMigrate(dir string, dsn string) error {
	m, mErr := migrate.New("file://"+dir, dsn)
	if mErr != nil {
		return pkgerrors.Wrap(mErr, "failed to create migrate instance")
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return pkgerrors.Wrap(err, "failed to migrate schema")
	}
	return nil
}
