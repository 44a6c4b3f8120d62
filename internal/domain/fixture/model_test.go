package fixture

import (
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestGoalsTreatsNilAsZero(t *testing.T) {
	f := Fixture{HomeTeam: 1, AwayTeam: 2, HomeScore: intPtr(3), AwayScore: nil}

	scored, conceded := f.Goals(1)
	if scored != 3 || conceded != 0 {
		t.Errorf("home Goals = (%d, %d), want (3, 0)", scored, conceded)
	}
	scored, conceded = f.Goals(2)
	if scored != 0 || conceded != 3 {
		t.Errorf("away Goals = (%d, %d), want (0, 3)", scored, conceded)
	}
}

func TestOpponentAndDifficulty(t *testing.T) {
	f := Fixture{HomeTeam: 1, AwayTeam: 2, HomeDifficulty: intPtr(2), AwayDifficulty: nil}

	if got := f.Opponent(1); got != 2 {
		t.Errorf("Opponent(1) = %d, want 2", got)
	}
	if got := f.Difficulty(1); got == nil || *got != 2 {
		t.Errorf("Difficulty(1) = %v, want 2", got)
	}
	if got := f.Difficulty(2); got != nil {
		t.Errorf("Difficulty(2) = %v, want nil", got)
	}
}

func TestPartition(t *testing.T) {
	fixtures := []Fixture{
		{HomeTeam: 1, Finished: true},
		{HomeTeam: 2, Finished: false},
		{HomeTeam: 3, Finished: true},
	}

	played, upcoming := Partition(fixtures)
	if len(played) != 2 || len(upcoming) != 1 {
		t.Fatalf("Partition = (%d, %d), want (2, 1)", len(played), len(upcoming))
	}
}

func TestForTeamOrdersByKickoff(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 8, d, 15, 0, 0, 0, time.UTC)
	}
	fixtures := []Fixture{
		{HomeTeam: 1, AwayTeam: 2, KickoffAt: day(20)},
		{HomeTeam: 3, AwayTeam: 4, KickoffAt: day(10)},
		{HomeTeam: 2, AwayTeam: 1, KickoffAt: day(5)},
		{HomeTeam: 1, AwayTeam: 4, KickoffAt: day(12)},
	}

	got := ForTeam(fixtures, 1)
	if len(got) != 3 {
		t.Fatalf("ForTeam returned %d fixtures, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].KickoffAt.Before(got[i-1].KickoffAt) {
			t.Errorf("fixtures not ordered by kickoff at index %d", i)
		}
	}
}

func TestSortByKickoffMissingLast(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 8, d, 15, 0, 0, 0, time.UTC)
	}
	fixtures := []Fixture{
		{HomeTeam: 1, AwayTeam: 2}, // postponed, no kickoff
		{HomeTeam: 1, AwayTeam: 3, KickoffAt: day(20)},
		{HomeTeam: 4, AwayTeam: 1, KickoffAt: day(10)},
		{HomeTeam: 1, AwayTeam: 5, KickoffAt: day(12)},
	}

	SortByKickoff(fixtures)
	if !fixtures[len(fixtures)-1].KickoffAt.IsZero() {
		t.Fatalf("missing kickoff not last: %v", fixtures)
	}
	for i := 2; i < len(fixtures)-1; i++ {
		if fixtures[i].KickoffAt.Before(fixtures[i-1].KickoffAt) {
			t.Errorf("scheduled fixtures not ordered at index %d", i)
		}
	}

	// the next-3 window keeps the scheduled fixtures only
	if got := Head(fixtures, 3); got[0].AwayTeam != 1 || got[2].AwayTeam != 3 {
		t.Errorf("Head(3) = %v, want the three scheduled fixtures", got)
	}
}

func TestTailAndHead(t *testing.T) {
	fixtures := []Fixture{{HomeTeam: 1}, {HomeTeam: 2}, {HomeTeam: 3}}

	if got := Tail(fixtures, 2); len(got) != 2 || got[0].HomeTeam != 2 {
		t.Errorf("Tail(2) = %v", got)
	}
	if got := Head(fixtures, 2); len(got) != 2 || got[1].HomeTeam != 2 {
		t.Errorf("Head(2) = %v", got)
	}
	if got := Tail(fixtures, 5); len(got) != 3 {
		t.Errorf("Tail(5) len = %d, want 3", len(got))
	}
	if got := Head(fixtures, 0); got != nil {
		t.Errorf("Head(0) = %v, want nil", got)
	}
}
