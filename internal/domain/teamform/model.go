package teamform

import (
	"math"
	"sort"
)

// Row is the derived last-3 / next-3 form summary for one team.
// Next3AvgDifficulty stays nil when no upcoming fixture carries a
// difficulty rating.
type Row struct {
	TeamID               int64
	Team                 string
	PlayedLast3          int
	Last3Points          int
	Last3GoalsFor        int
	Last3GoalsAgainst    int
	Last3GoalDiff        int
	Last3AvgGoalsFor     float64
	Last3AvgGoalsAgainst float64
	Last3CleanSheets     int
	Last3CleanSheetPct   float64
	UpcomingNext3        int
	Next3AvgDifficulty   *float64
	Next3Opponents       string
	Next3HomeAway        string
	DataTimestamp        string
	FormScore            float64
	FixtureScore         float64
	BlendScore           float64
	FormScoreZ           float64
	FixtureScoreZ        float64
	BlendScoreZ          float64
}

// Sort orders rows by (blend_score_z, blend_score) descending, raw blend
// breaking z-score ties.
func Sort(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].BlendScoreZ != rows[j].BlendScoreZ {
			return rows[i].BlendScoreZ > rows[j].BlendScoreZ
		}
		return rows[i].BlendScore > rows[j].BlendScore
	})
}

// ZScores standardizes values against their population mean and standard
// deviation, each score rounded to 2 decimals. A zero spread degrades to
// all-zero scores instead of dividing by zero.
func ZScores(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	std := math.Sqrt(variance / float64(len(values)))
	if std == 0 {
		return out
	}

	for i, v := range values {
		out[i] = Round2((v - mean) / std)
	}
	return out
}

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
