package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/clno/core"
	"github.com/trezcool/clno/storage/boltdb"
	"github.com/trezcool/clno/storage/database"
	"github.com/trezcool/clno/storage/jsonfile"
)

var gooseRunFunc = runMigrations // mockable

func runMigrations(ctx context.Context, conf *core.Config, command string, args ...string) error {
	db, err := database.Open(ctx, conf)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return database.Migrate(db.DB, command, args...)
}

var errNotPostgres = errors.New("migrations need the postgres storage engine")

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate COMMAND [ARGS]",
		Short: "Run database migrations (up, up-by-one, up-to, down, down-to, redo, reset, status, version, fix)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errHelp
			}
			if cli.conf.Storage.Engine != core.EnginePostgres {
				return errNotPostgres
			}
			return gooseRunFunc(cmd.Context(), cli.conf, args[0], args[1:]...)
		},
	}
}

func (cli *commandLine) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the storage of the configured engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			switch cli.conf.Storage.Engine {
			case core.EngineBolt:
				db, err := boltdb.Open(cli.conf.Storage.BoltPath)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "bolt database ready at %s\n", cli.conf.Storage.BoltPath)
				return db.Close()

			case core.EnginePostgres:
				if err := database.CreateIfNotExist(cmd.Context(), cli.conf); err != nil {
					return err
				}
				if err := gooseRunFunc(cmd.Context(), cli.conf, "up"); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "database %s ready\n", cli.conf.Database.Name)
				return nil

			default:
				created, err := jsonfile.Init(cli.conf.Storage.DataDir)
				if err != nil {
					return err
				}
				if len(created) == 0 {
					_, _ = fmt.Fprintf(out, "nothing to create in %s\n", cli.conf.Storage.DataDir)
					return nil
				}
				_, _ = fmt.Fprintf(out, "created in %s: %s\n", cli.conf.Storage.DataDir, strings.Join(created, ", "))
				return nil
			}
		},
	}
}
