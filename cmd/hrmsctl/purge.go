package main

import (
	"errors"

	"github.com/ogurasousui/hrms-lite/internal/adapters/repository/postgres"
	"github.com/ogurasousui/hrms-lite/internal/core/maintenance"
	pg "github.com/ogurasousui/hrms-lite/internal/platform/db/postgres"
	"github.com/ogurasousui/hrms-lite/internal/platform/logging"
	"github.com/spf13/cobra"
)

var errPurgeNotConfirmed = errors.New("purge deletes every employee, attendance and salary record; rerun with --yes to confirm")

func purgeCmd(load configLoader) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete all HR data in a single transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return errPurgeNotConfirmed
			}

			cfg, err := load()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			logger := logging.New(cfg.Log, cmd.ErrOrStderr())

			pool, err := pg.NewPool(ctx, cfg.Database, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			isolation, err := pg.ParseIsolationLevel(cfg.Database.IsolationLevel)
			if err != nil {
				return err
			}

			svc := maintenance.NewService(
				postgres.NewAttendanceRepository(pool),
				postgres.NewSalaryRepository(pool),
				postgres.NewEmployeeRepository(pool),
				pg.NewTransactionManager(pool, isolation, nil),
			)

			result, err := svc.Purge(ctx)
			if err != nil {
				return err
			}

			cmd.Printf("deleted attendance=%d salaries=%d employees=%d total=%d\n",
				result.Attendance, result.Salaries, result.Employees, result.Total())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&confirmed, "yes", "y", false, "confirm deletion of all data")

	return cmd
}
