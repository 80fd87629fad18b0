package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/jhoicas/inventory-manager/internal/application/analytics"
	"github.com/jhoicas/inventory-manager/internal/application/auth"
	"github.com/jhoicas/inventory-manager/internal/infrastructure/postgres"
)

var stderr = os.Stderr

// ── migrate ───────────────────────────────────────────────────────────────────

type migrateCmd struct{ env *env }

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "aplica las migraciones pendientes" }
func (*migrateCmd) Usage() string {
	return "migrate\n\tAplica las migraciones SQL embebidas que aún no figuran en schema_migrations.\n"
}
func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (c *migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	pool, err := c.env.open(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "conexión:", err)
		return subcommands.ExitFailure
	}
	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		c.env.logOrNop().Error().Err(err).Msg("migraciones")
		return subcommands.ExitFailure
	}
	if len(applied) == 0 {
		fmt.Fprintln(c.env.out, "sin migraciones pendientes")
	}
	for _, v := range applied {
		fmt.Fprintln(c.env.out, "aplicada", v)
	}
	return subcommands.ExitSuccess
}

// ── create-admin ──────────────────────────────────────────────────────────────

type createAdminCmd struct {
	env      *env
	username string
	password string
}

func (*createAdminCmd) Name() string     { return "create-admin" }
func (*createAdminCmd) Synopsis() string { return "crea el usuario admin o promueve uno existente" }
func (*createAdminCmd) Usage() string {
	return "create-admin -username <u> -password <p>\n\tSi el usuario existe solo se cambia su rol a admin.\n"
}

func (c *createAdminCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "username", "", "nombre de usuario")
	f.StringVar(&c.password, "password", "", "password (solo se usa si el usuario no existe)")
}

func (c *createAdminCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if auth.NormalizeUsername(c.username) == "" || c.password == "" {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	pool, err := c.env.open(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "conexión:", err)
		return subcommands.ExitFailure
	}
	// create-admin no emite tokens; el secret no hace falta.
	uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), nil, auth.JWTConfig{})
	user, created, err := uc.EnsureAdmin(ctx, c.username, c.password)
	if err != nil {
		c.env.logOrNop().Error().Err(err).Str("username", c.username).Msg("create-admin")
		return subcommands.ExitFailure
	}
	if created {
		fmt.Fprintf(c.env.out, "admin %s creado (%s)\n", user.Username, user.ID)
	} else {
		fmt.Fprintf(c.env.out, "usuario %s promovido a admin\n", user.Username)
	}
	return subcommands.ExitSuccess
}

// ── export ────────────────────────────────────────────────────────────────────

type exportCmd struct {
	env  *env
	what string
	out  string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "exporta productos, ventas o compras en CSV" }
func (*exportCmd) Usage() string {
	return "export -what products|sales|purchases [-out archivo.csv]\n\tSin -out escribe en stdout.\n"
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.what, "what", analytics.ExportProducts, "products | sales | purchases")
	f.StringVar(&c.out, "out", "", "archivo de salida (vacío = stdout)")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	switch c.what {
	case analytics.ExportProducts, analytics.ExportSales, analytics.ExportPurchases:
	default:
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	pool, err := c.env.open(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "conexión:", err)
		return subcommands.ExitFailure
	}
	uc := analytics.NewReportUseCase(
		postgres.NewReportRepository(pool),
		postgres.NewProductRepository(pool),
		postgres.NewSaleRepository(pool),
		postgres.NewPurchaseRepository(pool),
		nil,
	)

	w := c.env.out
	if c.out != "" {
		f, err := os.Create(c.out)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return subcommands.ExitFailure
		}
		defer f.Close()
		w = f
	}
	n, err := uc.WriteCSV(ctx, c.what, w)
	if err != nil {
		c.env.logOrNop().Error().Err(err).Str("what", c.what).Msg("export")
		return subcommands.ExitFailure
	}
	c.env.logOrNop().Info().Str("what", c.what).Int("rows", n).Msg("export completo")
	return subcommands.ExitSuccess
}
