package db

import (
	"context"
	"fmt"
	"time"

	"bus-track/internal/config"
	"bus-track/internal/mylogger"

	"github.com/jackc/pgx/v5"
)

type DB struct {
	ctx   context.Context
	conn  *pgx.Conn
	mylog mylogger.Logger
}

func New(ctx context.Context, cfg *config.DBconfig, mylog mylogger.Logger) (*DB, error) {
	connStr := fmt.Sprintf(
		"postgres://%v:%v@%v:%v/%v?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)

	var conn *pgx.Conn
	var lastErr error
	for i := 0; i < cfg.MaxRetries; i++ {
		c, err := pgx.Connect(ctx, connStr)
		if err == nil {
			conn = c
			break
		}
		lastErr = err
		mylog.Error(fmt.Sprintf("DB connection attempt %d failed", i+1), err)
		time.Sleep(time.Second * time.Duration(i+1))
	}
	if conn == nil {
		return nil, fmt.Errorf("failed to connect to the database after %d attempts: %w", cfg.MaxRetries, lastErr)
	}

	mylog.Info("Successfully connected to the database")
	return &DB{ctx: ctx, conn: conn, mylog: mylog}, nil
}

func (d *DB) GetConn() *pgx.Conn {
	return d.conn
}

func (d *DB) Close() error {
	if err := d.conn.Close(d.ctx); err != nil {
		return fmt.Errorf("close database connection: %v", err)
	}
	return nil
}
