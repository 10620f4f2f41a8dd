package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/services"
)

// BackupCmd creates the backup command group
func BackupCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage event snapshots for a month",
	}

	cmd.AddCommand(backupCreateCmd(app))
	cmd.AddCommand(backupListCmd(app))
	cmd.AddCommand(backupRestoreCmd(app))
	cmd.AddCommand(backupRenameCmd(app))
	cmd.AddCommand(backupDeleteCmd(app))

	return cmd
}

func backupCreateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <month>",
		Short: "Snapshot the month's current event set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label, _ := cmd.Flags().GetString("label")

			backup, err := services.CreateBackup(app.Ctx, app.Store, app.Logger, app.Cfg.GroupID, args[0], label)
			if err != nil {
				return err
			}
			fmt.Printf("\n✓ Backup %s created (%q, %d events)\n\n", backup.ID, backup.Label, len(backup.Events))
			return nil
		},
	}

	cmd.Flags().String("label", "", "Label for the snapshot (defaults to a timestamp)")

	return cmd
}

func backupListCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list <month>",
		Short: "List the month's snapshots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backups, err := services.ListBackups(app.Ctx, app.Store, app.Cfg.GroupID, args[0])
			if err != nil {
				return err
			}

			if len(backups) == 0 {
				fmt.Printf("\nNo backups for %s\n\n", args[0])
				return nil
			}

			fmt.Printf("\nBackups for %s:\n\n", args[0])
			for _, b := range backups {
				fmt.Printf("  %s  %s  %-30s (%d events)\n",
					b.ID, b.CreatedAt.Format("2006-01-02 15:04"), b.Label, len(b.Events))
			}
			fmt.Println()
			return nil
		},
	}
}

func backupRestoreCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <backup_id>",
		Short: "Replace the month's events with a snapshot's contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := services.RestoreBackup(app.Ctx, app.Store, app.Logger, app.Cfg.GroupID, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("\n✓ Month %s restored from %q (%d events)\n\n", backup.Month, backup.Label, len(backup.Events))
			return nil
		},
	}
}

func backupRenameCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <backup_id> <label...>",
		Short: "Change a snapshot's label",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := strings.Join(args[1:], " ")
			if err := services.RenameBackup(app.Ctx, app.Store, app.Logger, app.Cfg.GroupID, args[0], label); err != nil {
				return err
			}
			fmt.Printf("\n✓ Backup %s renamed to %q\n\n", args[0], label)
			return nil
		},
	}
}

func backupDeleteCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <backup_id>",
		Short: "Delete a snapshot (live events are untouched)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.DeleteBackup(app.Ctx, app.Store, app.Logger, app.Cfg.GroupID, args[0]); err != nil {
				return err
			}
			fmt.Printf("\n✓ Backup %s deleted\n\n", args[0])
			return nil
		},
	}
}
