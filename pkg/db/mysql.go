// pkg/db/mysql.go
// MySQL connection helper (database/sql). The backend uses the connection only
// for readiness checks.

package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func DefaultOptions() Options {
	return Options{
		MaxOpenConns:    20,
		MaxIdleConns:    10,
		ConnMaxLifetime: 30 * time.Minute,
	}
}

// NewMySQL validates dsn and returns a pooled handle. No connection is made yet.
func NewMySQL(dsn string, opt Options) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "parse mysql dsn")
	}
	cfg.ParseTime = true

	conn, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "mysql connector")
	}
	db := sql.OpenDB(conn)
	db.SetMaxOpenConns(opt.MaxOpenConns)
	db.SetMaxIdleConns(opt.MaxIdleConns)
	db.SetConnMaxLifetime(opt.ConnMaxLifetime)
	return db, nil
}

type pinger interface {
	PingContext(ctx context.Context) error
}

// WaitReady pings until success, attempts run out or ctx is done, so a
// database container that starts after us does not leave the probe red.
func WaitReady(ctx context.Context, db pinger, attempts int, interval time.Duration, log logrus.FieldLogger) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		log.WithError(err).WithField("attempt", i+1).Warn("ping mysql failed")

		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "wait for mysql")
		case <-time.After(interval):
		}
	}
	return errors.Wrapf(err, "mysql not ready after %d attempts", attempts)
}
