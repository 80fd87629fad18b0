package main

import (
	"context"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventory-manager/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-manager/pkg/config"
	"github.com/jhoicas/inventory-manager/pkg/logger"
)

// env recursos compartidos por los subcomandos. El pool se abre solo si un comando lo pide.
type env struct {
	out  io.Writer
	log  *logger.Logger
	cfg  *config.Config
	pool *pgxpool.Pool
	open func(ctx context.Context) (*pgxpool.Pool, error)
}

func newEnv(out io.Writer) *env {
	e := &env{out: out}
	e.open = e.openPool
	return e
}

func (e *env) openPool(ctx context.Context) (*pgxpool.Pool, error) {
	if e.pool != nil {
		return e.pool, nil
	}
	cfg, err := config.LoadWithoutSecret()
	if err != nil {
		return nil, err
	}
	e.cfg = cfg
	e.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: stderr})
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	e.pool = pool
	return pool, nil
}

func (e *env) logOrNop() *logger.Logger {
	if e.log == nil {
		return logger.Nop()
	}
	return e.log
}

func (e *env) close() {
	if e.pool != nil {
		e.pool.Close()
	}
}
