package commands

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/roster"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/services"
)

// AssignServersCmd creates the assignServers command
func AssignServersCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignServers <month>",
		Short: "Run the duty assignment solver for a survey-confirmed month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _ := cmd.Flags().GetString("seed")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			restDays, _ := cmd.Flags().GetInt("min-rest-days")

			if restDays < 0 {
				restDays = app.Cfg.MinRestDays
			}

			params := services.AssignServersParams{
				GroupID:     app.Cfg.GroupID,
				Month:       args[0],
				Operator:    app.Cfg.Operator,
				MinRestDays: restDays,
				DryRun:      dryRun,
			}
			if seed != "" {
				n, err := strconv.ParseInt(seed, 10, 64)
				if err != nil {
					return fmt.Errorf("seed must be a number: %w", err)
				}
				params.Rand = rand.New(rand.NewSource(n))
			}

			result, err := services.AssignServers(app.Ctx, app.Store, app.Logger, params)
			if err != nil {
				return err
			}

			if result.DryRun {
				fmt.Printf("\n✓ Roster computed for %s (DRY RUN - nothing saved)\n\n", result.Month)
			} else {
				fmt.Printf("\n✓ Roster saved for %s (backup %s)\n\n", result.Month, result.BackupID)
			}

			for _, slot := range result.Slots {
				line := fmt.Sprintf("  %s  %-20s", formatDate(slot.Date), slot.Title)
				if slot.Fixed {
					line += " [fixed]"
				}
				line += "  " + strings.Join(slot.Assigned, ", ")
				if slot.HeadServerID != "" {
					line += fmt.Sprintf("  (head: %s)", slot.HeadServerID)
				}
				if slot.ShortBy > 0 {
					line += fmt.Sprintf("  SHORT BY %d", slot.ShortBy)
				}
				fmt.Println(line)
			}

			printCounts(result.Counts, result.PriorCounts)
			printFindings(result.Findings)

			if !result.Complete {
				fmt.Println("⚠️  Some events could not be fully staffed")
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().String("seed", "", "Seed for tie-break randomness (reproducible runs)")
	cmd.Flags().Bool("dry-run", false, "Compute the roster without saving")
	cmd.Flags().Int("min-rest-days", -1, "Minimum days between one member's duties (default from config)")

	return cmd
}

func printCounts(counts, prior map[string]int) {
	if len(counts) == 0 {
		return
	}
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("\nDuty counts:\n")
	for _, id := range ids {
		fmt.Printf("  %-12s this month: %d (last month: %d)\n", id, counts[id], prior[id])
	}
}

func printFindings(findings []roster.Finding) {
	if len(findings) == 0 {
		return
	}
	fmt.Printf("\nFindings:\n")
	for _, f := range findings {
		fmt.Printf("  [%s] %s %s: %s\n", f.Kind, formatDate(f.Date), f.EventID, f.Description)
	}
}
