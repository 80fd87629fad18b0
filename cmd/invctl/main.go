// Command invctl agrupa tareas de operación: migraciones, alta del primer admin y exportación CSV.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	env := newEnv(os.Stdout)

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&migrateCmd{env: env}, "database")
	subcommands.Register(&createAdminCmd{env: env}, "users")
	subcommands.Register(&exportCmd{env: env}, "reports")

	flag.Parse()
	ctx := context.Background()
	status := subcommands.Execute(ctx)
	env.close()
	os.Exit(int(status))
}
