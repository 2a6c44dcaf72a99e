package main

import (
	"github.com/ogurasousui/hrms-lite/assets"
	"github.com/ogurasousui/hrms-lite/internal/platform/config"
	pg "github.com/ogurasousui/hrms-lite/internal/platform/db/postgres"
	"github.com/spf13/cobra"
)

type configLoader func() (*config.Config, error)

func migrateCmd(load configLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	withMigrator := func(fn func(cmd *cobra.Command, m *pg.Migrator) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			m, err := pg.NewMigrator(assets.Migrations, "migrations", cfg.Database.DSN())
			if err != nil {
				return err
			}
			defer m.Close()
			return fn(cmd, m)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(cmd *cobra.Command, m *pg.Migrator) error {
			if err := m.Up(); err != nil {
				return err
			}
			cmd.Println("migration up completed")
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(cmd *cobra.Command, m *pg.Migrator) error {
			if err := m.Down(); err != nil {
				return err
			}
			cmd.Println("migration down completed")
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "drop",
		Short: "Drop every object in the schema",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(cmd *cobra.Command, m *pg.Migrator) error {
			if err := m.Drop(); err != nil {
				return err
			}
			cmd.Println("schema dropped")
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied migration version",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(cmd *cobra.Command, m *pg.Migrator) error {
			version, dirty, applied, err := m.Version()
			if err != nil {
				return err
			}
			if !applied {
				cmd.Println("no migration applied")
				return nil
			}
			cmd.Printf("version=%d dirty=%t\n", version, dirty)
			return nil
		}),
	})

	return cmd
}
