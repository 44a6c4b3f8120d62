package fixture

import (
	"sort"
	"time"
)

// Fixture is one Premier League match as published by the FPL API.
// Scores and difficulty ratings are nullable until the source provides
// them; a fixture is immutable once loaded.
type Fixture struct {
	HomeTeam       int64
	AwayTeam       int64
	HomeScore      *int
	AwayScore      *int
	Finished       bool
	KickoffAt      time.Time
	HomeDifficulty *int
	AwayDifficulty *int
}

// Involves reports whether the team plays in this fixture.
func (f Fixture) Involves(teamID int64) bool {
	return f.HomeTeam == teamID || f.AwayTeam == teamID
}

// IsHome reports whether the team is the home side.
func (f Fixture) IsHome(teamID int64) bool {
	return f.HomeTeam == teamID
}

// Opponent returns the other side's team id.
func (f Fixture) Opponent(teamID int64) int64 {
	if f.IsHome(teamID) {
		return f.AwayTeam
	}
	return f.HomeTeam
}

// Goals returns goals for and against from the team's perspective.
// Missing scores count as 0.
func (f Fixture) Goals(teamID int64) (scored int, conceded int) {
	home := intOrZero(f.HomeScore)
	away := intOrZero(f.AwayScore)
	if f.IsHome(teamID) {
		return home, away
	}
	return away, home
}

// Difficulty returns the team's own-side difficulty rating, nil when the
// source carries none.
func (f Fixture) Difficulty(teamID int64) *int {
	if f.IsHome(teamID) {
		return f.HomeDifficulty
	}
	return f.AwayDifficulty
}

// Partition splits fixtures into played (finished) and upcoming sets.
func Partition(fixtures []Fixture) (played []Fixture, upcoming []Fixture) {
	played = make([]Fixture, 0, len(fixtures))
	upcoming = make([]Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		if f.Finished {
			played = append(played, f)
			continue
		}
		upcoming = append(upcoming, f)
	}
	return played, upcoming
}

// ForTeam filters to fixtures involving the team, ordered by kickoff
// ascending.
func ForTeam(fixtures []Fixture, teamID int64) []Fixture {
	out := make([]Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		if f.Involves(teamID) {
			out = append(out, f)
		}
	}
	SortByKickoff(out)
	return out
}

// SortByKickoff orders fixtures by kickoff time ascending, stable for
// equal kickoffs. Missing kickoffs (the zero time, e.g. postponed
// fixtures published without one) sort after every scheduled fixture.
func SortByKickoff(fixtures []Fixture) {
	sort.SliceStable(fixtures, func(i, j int) bool {
		a, b := fixtures[i].KickoffAt, fixtures[j].KickoffAt
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.Before(b)
	})
}

// Tail returns up to the last n fixtures of the slice.
func Tail(fixtures []Fixture, n int) []Fixture {
	if n <= 0 || len(fixtures) == 0 {
		return nil
	}
	if len(fixtures) <= n {
		return fixtures
	}
	return fixtures[len(fixtures)-n:]
}

// Head returns up to the first n fixtures of the slice.
func Head(fixtures []Fixture, n int) []Fixture {
	if n <= 0 || len(fixtures) == 0 {
		return nil
	}
	if len(fixtures) <= n {
		return fixtures
	}
	return fixtures[:n]
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
