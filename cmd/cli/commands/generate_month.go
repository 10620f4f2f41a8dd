package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/services"
)

// GenerateMonthCmd creates the generateMonth command
func GenerateMonthCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateMonth <month>",
		Short: "Populate a month's mass events from the weekly preset or the prior month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			monthKey := args[0]
			copyPrior, _ := cmd.Flags().GetBool("copy-prior")

			if copyPrior {
				generated, err := services.CopyPriorMonth(app.Ctx, app.Store, app.Logger, app.Cfg.GroupID, monthKey)
				if err != nil {
					return err
				}
				fmt.Printf("\n✓ Month %s populated from the prior month's pattern (%d events)\n\n", monthKey, len(generated))
				printEventList(generated)
				return nil
			}

			preset := make([]services.PresetSlot, len(app.Cfg.WeeklyPreset))
			for i, mass := range app.Cfg.WeeklyPreset {
				preset[i] = services.PresetSlot{
					RRule:       mass.RRule,
					Title:       mass.Title,
					ServerCount: mass.ServerCount,
				}
			}

			generated, err := services.GenerateFromPreset(app.Ctx, app.Store, app.Logger, app.Cfg.GroupID, monthKey, preset)
			if err != nil {
				return err
			}
			fmt.Printf("\n✓ Month %s populated from the weekly preset (%d events)\n\n", monthKey, len(generated))
			printEventList(generated)
			return nil
		},
	}

	cmd.Flags().Bool("copy-prior", false, "Copy the prior month's weekly pattern instead of the preset")

	return cmd
}
