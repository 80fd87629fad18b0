package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"testing"

	"github.com/google/subcommands"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv env cuyo pool nunca se abre; opened cuenta los intentos.
func testEnv(t *testing.T) (*env, *int) {
	t.Helper()
	opened := 0
	e := newEnv(&bytes.Buffer{})
	e.open = func(context.Context) (*pgxpool.Pool, error) {
		opened++
		return nil, errors.New("sin base de datos en tests")
	}
	return e, &opened
}

func run(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return cmd.Execute(context.Background(), fs)
}

func TestCreateAdmin_SinFlags_UsageError(t *testing.T) {
	e, opened := testEnv(t)
	assert.Equal(t, subcommands.ExitUsageError, run(t, &createAdminCmd{env: e}))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &createAdminCmd{env: e}, "-username", "root"))
	assert.Zero(t, *opened, "no debe abrir la DB si faltan flags")
}

func TestCreateAdmin_SinDB_Failure(t *testing.T) {
	e, opened := testEnv(t)
	status := run(t, &createAdminCmd{env: e}, "-username", "root", "-password", "clave")
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Equal(t, 1, *opened)
}

func TestExport_WhatDesconocido_UsageError(t *testing.T) {
	e, opened := testEnv(t)
	assert.Equal(t, subcommands.ExitUsageError, run(t, &exportCmd{env: e}, "-what", "users"))
	assert.Zero(t, *opened)
}

func TestExport_PorDefectoProductos(t *testing.T) {
	e, _ := testEnv(t)
	cmd := &exportCmd{env: e}
	run(t, cmd)
	assert.Equal(t, "products", cmd.what)
}

func TestMigrate_SinDB_Failure(t *testing.T) {
	e, _ := testEnv(t)
	assert.Equal(t, subcommands.ExitFailure, run(t, &migrateCmd{env: e}))
}
