package console

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/riskibarqy/fpl-weekly/internal/domain/teamform"
	"github.com/riskibarqy/fpl-weekly/internal/usecase"
)

// PrintRunSummary renders the top of the team form table plus shortlist
// counts after a run.
func PrintRunSummary(out io.Writer, result *usecase.RunResult, topTeams int) {
	if result == nil {
		return
	}

	rows := result.TeamTable
	if topTeams > 0 && len(rows) > topTeams {
		rows = rows[:topTeams]
	}

	fmt.Fprintf(out, "\nTop %d teams by blended form\n", len(rows))
	printTeamTable(out, rows)

	fmt.Fprintf(out, "\nShortlists: %d per-team picks, %d top-K players (took %s)\n",
		len(result.PerTeam), len(result.TopK), result.Took.Round(time.Millisecond).String())
}

func printTeamTable(out io.Writer, rows []teamform.Row) {
	table := tablewriter.NewWriter(out)
	table.Header("#", "Team", "Blend Z", "Pts L3", "Next 3", "H/A", "Avg Diff")

	for i, r := range rows {
		avgDiff := ""
		if r.Next3AvgDifficulty != nil {
			avgDiff = strconv.FormatFloat(*r.Next3AvgDifficulty, 'f', 2, 64)
		}
		table.Append(
			strconv.Itoa(i+1),
			r.Team,
			strconv.FormatFloat(r.BlendScoreZ, 'f', 2, 64),
			strconv.Itoa(r.Last3Points),
			r.Next3Opponents,
			r.Next3HomeAway,
			avgDiff,
		)
	}
	table.Render()
}
