package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/services"
)

// SubmitAvailabilityCmd creates the submitAvailability command
func SubmitAvailabilityCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "submitAvailability <month> <member_id> [event_id...]",
		Short: "Record a member's unavailable events (none means fully available)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			monthKey := args[0]
			memberID := args[1]
			eventIDs := args[2:]

			err := services.SubmitAvailability(app.Ctx, app.Store, app.Logger,
				app.Cfg.GroupID, monthKey, memberID, eventIDs)
			if err != nil {
				return err
			}

			if len(eventIDs) == 0 {
				fmt.Printf("\n✓ %s recorded as fully available for %s\n\n", memberID, monthKey)
			} else {
				fmt.Printf("\n✓ %s recorded as unavailable for %d event(s) in %s\n\n", memberID, len(eventIDs), monthKey)
			}
			return nil
		},
	}
}

// ViewResponsesCmd creates the viewResponses command
func ViewResponsesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewResponses <month>",
		Short: "Summarize the month's availability survey",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.ViewResponses(app.Ctx, app.Store, app.Logger, app.Cfg.GroupID, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nSurvey responses for %s (%d of %d members responded)\n\n",
				result.Month, result.RespondedCount, len(result.Members))

			for _, row := range result.Members {
				mark := "-"
				if row.Responded {
					mark = "✓"
				}
				fmt.Printf("  %s %-20s unavailable for %d event(s)\n", mark, row.Name, row.UnavailableCount)
			}

			fmt.Println()
			for _, ev := range result.Events {
				if len(ev.UnavailableMembers) == 0 {
					continue
				}
				fmt.Printf("  %s %-20s out: %v\n", formatDate(ev.Date), ev.Title, ev.UnavailableMembers)
			}

			if result.StaleReferences > 0 {
				fmt.Printf("\n⚠️  %d response entries reference deleted events\n", result.StaleReferences)
			}
			fmt.Println()
			return nil
		},
	}
}
