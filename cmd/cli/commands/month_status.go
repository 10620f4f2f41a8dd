package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/lifecycle"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/services"
)

// StatusCmd creates the status command, showing a month's lifecycle record
func StatusCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <month>",
		Short: "Show a month's confirmation status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := services.GetMonthStatus(app.Ctx, app.Store, app.Cfg.GroupID, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nMonth:       %s\n", ms.Month)
			fmt.Printf("Status:      %s\n", ms.Status)
			fmt.Printf("Survey open: %v\n", ms.SurveyOpen)
			fmt.Printf("Locked:      %v\n", ms.Locked)
			if ms.Note != "" {
				fmt.Printf("Note:        %s\n", ms.Note)
			}
			if ms.UpdatedBy != "" {
				fmt.Printf("Updated by:  %s at %s\n", ms.UpdatedBy, ms.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			fmt.Println()
			return nil
		},
	}
}

// ConfirmMassesCmd creates the confirmMasses command
func ConfirmMassesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "confirmMasses <month>",
		Short: "Freeze the month's mass events so the survey can open",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := services.ConfirmMasses(app.Ctx, app.Store, app.Logger, app.Cfg.GroupID, args[0], app.Cfg.Operator)
			if err != nil {
				return err
			}
			fmt.Printf("\n✓ Month %s is now %s\n\n", ms.Month, ms.Status)
			return nil
		},
	}
}

// OpenSurveyCmd creates the openSurvey command
func OpenSurveyCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "openSurvey <month>",
		Short: "Open the availability survey for a confirmed month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := services.OpenSurvey(app.Ctx, app.Store, app.Logger, app.Cfg.GroupID, args[0], app.Cfg.Operator)
			if err != nil {
				return err
			}
			fmt.Printf("\n✓ Survey for %s is open\n\n", ms.Month)
			return nil
		},
	}
}

// CloseSurveyCmd creates the closeSurvey command
func CloseSurveyCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "closeSurvey <month>",
		Short: "Close the availability survey, allowing assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := services.CloseSurvey(app.Ctx, app.Store, app.Logger, app.Cfg.GroupID, args[0], app.Cfg.Operator)
			if err != nil {
				return err
			}
			fmt.Printf("\n✓ Survey closed; month %s is now %s\n\n", ms.Month, ms.Status)
			return nil
		},
	}
}

// SetStatusCmd creates the setStatus override command
func SetStatusCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setStatus <month> <status>",
		Short: "Force a month into a specific status (requires --note)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, _ := cmd.Flags().GetString("note")

			ms, err := services.SetMonthStatus(app.Ctx, app.Store, app.Logger,
				app.Cfg.GroupID, args[0], lifecycle.Status(args[1]), note, app.Cfg.Operator)
			if err != nil {
				return err
			}
			fmt.Printf("\n✓ Month %s force-set to %s (locked: %v)\n\n", ms.Month, ms.Status, ms.Locked)
			return nil
		},
	}

	cmd.Flags().String("note", "", "Reason for the override (required)")
	cmd.MarkFlagRequired("note")

	return cmd
}

// FinalizeMonthCmd creates the finalizeMonth command
func FinalizeMonthCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "finalizeMonth <month>",
		Short: "Lock the month's roster and trigger the finalized notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := services.FinalizeMonth(app.Ctx, app.Store, app.Notifier, app.Logger,
				app.Cfg.GroupID, args[0], app.Cfg.Operator)
			if err != nil {
				return err
			}
			fmt.Printf("\n✓ Month %s finalized and locked\n\n", ms.Month)
			return nil
		},
	}
}
