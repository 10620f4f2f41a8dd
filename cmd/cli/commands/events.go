package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/month"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/services"
)

// ListEventsCmd creates the listEvents command
func ListEventsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listEvents <month>",
		Short: "List the month's mass events with their assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, toDate, err := month.Bounds(args[0])
			if err != nil {
				return err
			}
			events, err := app.Store.ListEventsInRange(app.Ctx, app.Cfg.GroupID, fromDate, toDate)
			if err != nil {
				return err
			}

			fmt.Printf("\n%d events in %s:\n\n", len(events), args[0])
			printEventList(events)
			return nil
		},
	}
}

// AddEventCmd creates the addEvent command
func AddEventCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "addEvent <date> <title> <server_count>",
		Short: "Add a single mass event (date is YYYYMMDD)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			required, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("server_count must be a number: %w", err)
			}

			event, err := services.AddEvent(app.Ctx, app.Store, app.Logger, app.Cfg.GroupID, args[0], args[1], required)
			if err != nil {
				return err
			}
			fmt.Printf("\n✓ Event %s added on %s\n\n", event.ID, formatDate(event.Date))
			return nil
		},
	}
}

// RemoveEventCmd creates the removeEvent command
func RemoveEventCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "removeEvent <event_id>",
		Short: "Remove a single mass event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.RemoveEvent(app.Ctx, app.Store, app.Logger, app.Cfg.GroupID, args[0]); err != nil {
				return err
			}
			fmt.Printf("\n✓ Event %s removed\n\n", args[0])
			return nil
		},
	}
}

// FixEventCmd creates the fixEvent command
func FixEventCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixEvent <event_id>",
		Short: "Exclude an event from auto-assignment, keeping its member list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unfix, _ := cmd.Flags().GetBool("unfix")

			if err := services.SetEventFixed(app.Ctx, app.Store, app.Logger, app.Cfg.GroupID, args[0], !unfix); err != nil {
				return err
			}
			if unfix {
				fmt.Printf("\n✓ Event %s returned to auto-assignment\n\n", args[0])
			} else {
				fmt.Printf("\n✓ Event %s fixed; the solver will leave it untouched\n\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().Bool("unfix", false, "Clear the fixed flag instead of setting it")

	return cmd
}

// ListServersCmd creates the listServers command
func ListServersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listServers <month>",
		Short: "List registered servers with prior and current duty counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := services.ListServers(app.Ctx, app.Store, app.Logger, app.Cfg.GroupID, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n%d servers:\n\n", len(rows))
			for _, row := range rows {
				status := "active"
				if !row.Active {
					status = "inactive"
				}
				name := row.Name
				if row.BaptismalName != "" {
					name += " (" + row.BaptismalName + ")"
				}
				since := "unknown"
				if row.ServingSince > 0 {
					since = strconv.Itoa(row.ServingSince)
				}
				fmt.Printf("  %-12s %-28s since %-7s %-8s  duties: %d this month, %d last month\n",
					row.MemberID, name, since, status, row.CurrentCount, row.PriorCount)
			}
			fmt.Println()
			return nil
		},
	}
}
