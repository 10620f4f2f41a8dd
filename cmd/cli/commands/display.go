package commands

import (
	"fmt"
	"strings"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/db"
)

// formatDate renders a YYYYMMDD date as YYYY-MM-DD for display.
func formatDate(date string) string {
	if len(date) != 8 {
		return date
	}
	return date[:4] + "-" + date[4:6] + "-" + date[6:]
}

func printEventList(events []db.Event) {
	for i, e := range events {
		line := fmt.Sprintf("  %2d. %s  %-20s (%d servers)", i+1, formatDate(e.Date), e.Title, e.RequiredCount)
		if e.Fixed {
			line += " [fixed]"
		}
		if len(e.MemberIDs) > 0 {
			line += "  " + strings.Join(e.MemberIDs, ", ")
		}
		fmt.Println(line)
	}
	fmt.Println()
}
