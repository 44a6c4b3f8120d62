package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fpl-weekly/internal/domain/player"
	"github.com/riskibarqy/fpl-weekly/internal/domain/shortlist"
	"github.com/riskibarqy/fpl-weekly/internal/domain/teamform"
	"github.com/riskibarqy/fpl-weekly/internal/platform/logging"
)

// Candidates per position pooled before the per-team cut.
const perPositionPool = 5

// Composite score weights for the global top-K ranking.
const (
	compWeightPPG   = 1.2
	compWeightForm  = 0.8
	compWeightBlend = 0.3
)

// ShortlistService builds the two player shortlists from the enriched
// base set and the team form table. Both strategies emit the same fixed
// column schema.
type ShortlistService struct {
	logger *logging.Logger
}

func NewShortlistService(logger *logging.Logger) *ShortlistService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ShortlistService{logger: logger}
}

// teamScores indexes the standardized team scores by team name for the
// merge onto player rows.
type teamScores struct {
	blendZ   map[string]float64
	formZ    map[string]float64
	fixtureZ map[string]float64
	blend    map[string]float64
}

func indexTeamScores(rows []teamform.Row) teamScores {
	s := teamScores{
		blendZ:   make(map[string]float64, len(rows)),
		formZ:    make(map[string]float64, len(rows)),
		fixtureZ: make(map[string]float64, len(rows)),
		blend:    make(map[string]float64, len(rows)),
	}
	for _, r := range rows {
		if _, ok := s.blendZ[r.Team]; ok {
			continue
		}
		s.blendZ[r.Team] = r.BlendScoreZ
		s.formZ[r.Team] = r.FormScoreZ
		s.fixtureZ[r.Team] = r.FixtureScoreZ
		s.blend[r.Team] = r.BlendScore
	}
	return s
}

// PerTeam shortlists up to PerTeam players for each of the TopTeams
// best-form teams. Candidates need positive form and more than one
// point per game; per team the pool is capped per outfield position,
// re-ranked by points per game and cut to the per-team count.
func (s *ShortlistService) PerTeam(ctx context.Context, base []EnrichedPlayer, teamTable []teamform.Row, opts AnalysisOptions) ([]shortlist.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "ShortlistService.PerTeam")
	defer span.End()

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(teamTable) == 0 {
		return nil, fmt.Errorf("%w: team table", ErrEmptyDataset)
	}

	topTeams := opts.TopTeams
	if topTeams > len(teamTable) {
		topTeams = len(teamTable)
	}
	keepTeams := make([]string, 0, topTeams)
	keepSet := make(map[string]bool, topTeams)
	for _, r := range teamTable[:topTeams] {
		keepTeams = append(keepTeams, r.Team)
		keepSet[r.Team] = true
	}

	cand := make([]EnrichedPlayer, 0, len(base))
	for _, p := range base {
		if !keepSet[p.TeamName] {
			continue
		}
		if p.Form <= 0 || p.PointsPerGame <= 1 {
			continue
		}
		cand = append(cand, p)
	}
	sort.SliceStable(cand, func(i, j int) bool {
		a, b := cand[i], cand[j]
		if a.TeamName != b.TeamName {
			return a.TeamName < b.TeamName
		}
		if a.PositionLabel != b.PositionLabel {
			return a.PositionLabel < b.PositionLabel
		}
		if a.PointsPerGame != b.PointsPerGame {
			return a.PointsPerGame > b.PointsPerGame
		}
		if a.Form != b.Form {
			return a.Form > b.Form
		}
		return a.NowCostMillions < b.NowCostMillions
	})

	scores := indexTeamScores(teamTable)
	out := make([]shortlist.Row, 0, topTeams*opts.PerTeam)
	for _, teamName := range keepTeams {
		sub := make([]EnrichedPlayer, 0, len(cand))
		for _, p := range cand {
			if p.TeamName == teamName {
				sub = append(sub, p)
			}
		}

		pick := poolPositions(sub)
		sort.SliceStable(pick, func(i, j int) bool {
			return pick[i].PointsPerGame > pick[j].PointsPerGame
		})
		if len(pick) > opts.PerTeam {
			pick = pick[:opts.PerTeam]
		}
		if len(pick) == 0 && len(sub) > 0 {
			pick = sub
			if len(pick) > opts.PerTeam {
				pick = pick[:opts.PerTeam]
			}
		}

		for i, p := range pick {
			row := s.toRow(p, scores, opts.DataTimestamp)
			row.ShortlistRank = i + 1
			row.IsBestPick = true
			out = append(out, row)
		}
	}

	s.logger.DebugContext(ctx, "per-team shortlist built",
		"teams", len(keepTeams), "candidates", len(cand), "rows", len(out))
	return out, nil
}

// poolPositions caps each outfield position before the per-team cut.
// Goalkeepers never make the per-team list.
func poolPositions(sub []EnrichedPlayer) []EnrichedPlayer {
	counts := map[string]int{}
	out := make([]EnrichedPlayer, 0, 3*perPositionPool)
	for _, position := range []string{player.PositionDefender, player.PositionMidfielder, player.PositionForward} {
		for _, p := range sub {
			if p.PositionLabel != position || counts[position] >= perPositionPool {
				continue
			}
			counts[position]++
			out = append(out, p)
		}
	}
	return out
}

// TopK ranks every eligible player by a composite of points per game,
// form and team blend score, keeps the best K and orders them for
// reading: goalkeepers first, then defenders, midfielders, forwards,
// each group by rank. Ranks are assigned per position before the cut,
// so a group's ranks may be non-contiguous after truncation.
func (s *ShortlistService) TopK(ctx context.Context, base []EnrichedPlayer, teamTable []teamform.Row, opts AnalysisOptions) ([]shortlist.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "ShortlistService.TopK")
	defer span.End()

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(teamTable) == 0 {
		return nil, fmt.Errorf("%w: team table", ErrEmptyDataset)
	}
	scores := indexTeamScores(teamTable)

	type scored struct {
		p    EnrichedPlayer
		comp float64
	}
	ranked := make([]scored, 0, len(base))
	for _, p := range base {
		if p.Minutes < 0 {
			continue
		}
		switch p.Status {
		case player.StatusAvailable, player.StatusDoubtful, player.StatusNotAvailable:
		default:
			continue
		}
		comp := p.PointsPerGame*compWeightPPG + p.Form*compWeightForm + scores.blend[p.TeamName]*compWeightBlend
		if p.Status == player.StatusInjured || p.Status == player.StatusSuspended {
			comp *= 0.5
		}
		ranked = append(ranked, scored{p: p, comp: comp})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].comp > ranked[j].comp
	})

	positionCounts := map[string]int{}
	out := make([]shortlist.Row, 0, len(ranked))
	for _, item := range ranked {
		positionCounts[item.p.PositionLabel]++
		row := s.toRow(item.p, scores, opts.DataTimestamp)
		row.ShortlistRank = positionCounts[item.p.PositionLabel]
		out = append(out, row)
	}
	if len(out) > opts.TopPlayers {
		out = out[:opts.TopPlayers]
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if pa, pb := shortlist.PositionPriority(a.Position), shortlist.PositionPriority(b.Position); pa != pb {
			return pa < pb
		}
		return a.ShortlistRank < b.ShortlistRank
	})

	s.logger.DebugContext(ctx, "top-k shortlist built", "eligible", len(ranked), "rows", len(out))
	return out, nil
}

func (s *ShortlistService) toRow(p EnrichedPlayer, scores teamScores, dataTimestamp string) shortlist.Row {
	row := shortlist.Row{
		PlayerID:          p.ID,
		WebName:           p.WebName,
		Team:              p.TeamName,
		TeamShort:         p.TeamShort,
		Position:          p.PositionLabel,
		NowCostM:          p.NowCostMillions,
		SelectedByPercent: p.SelectedByPercent,
		Form:              p.Form,
		PointsPerGame:     p.PointsPerGame,
		LastGWPoints:      p.LastGWPoints,
		PriceChangeGW:     p.PriceChangeGW,
		PriceChangeSeason: p.PriceChangeSeason,
		OwnershipLabel:    p.OwnershipLabel,
		Availability:      p.Availability,
		DataTimestamp:     dataTimestamp,
	}
	if v, ok := scores.blendZ[p.TeamName]; ok {
		blendZ, formZ, fixtureZ := v, scores.formZ[p.TeamName], scores.fixtureZ[p.TeamName]
		row.BlendScoreZ = &blendZ
		row.FormScoreZ = &formZ
		row.FixtureScoreZ = &fixtureZ
	}
	return row
}
