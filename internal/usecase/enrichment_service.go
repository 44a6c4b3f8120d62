package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fpl-weekly/internal/domain/player"
	"github.com/riskibarqy/fpl-weekly/internal/domain/team"
	"github.com/riskibarqy/fpl-weekly/internal/platform/logging"
)

// Ownership labels derived from selected_by_percent.
const (
	OwnershipUnknown      = "unknown"
	OwnershipDifferential = "differential"
	OwnershipTemplate     = "template"
	OwnershipMidOwned     = "mid-owned"
)

// EnrichedPlayer is a player row joined with team names and the derived
// display fields the shortlists need.
type EnrichedPlayer struct {
	player.Player

	TeamName          string
	TeamShort         string
	PositionLabel     string
	NowCostMillions   float64
	LastGWPoints      *int
	PriceChangeGW     *float64
	PriceChangeSeason *float64
	OwnershipLabel    string
	Availability      string
}

// EnrichmentService joins players with team reference data and labels
// ownership and availability. Enrich returns the shortlist base set:
// players with non-negative minutes whose status is available or
// doubtful.
type EnrichmentService struct {
	logger *logging.Logger
}

func NewEnrichmentService(logger *logging.Logger) *EnrichmentService {
	if logger == nil {
		logger = logging.Default()
	}
	return &EnrichmentService{logger: logger}
}

func (s *EnrichmentService) Enrich(ctx context.Context, players []player.Player, teams []team.Team, opts AnalysisOptions) ([]EnrichedPlayer, error) {
	ctx, span := startUsecaseSpan(ctx, "EnrichmentService.Enrich")
	defer span.End()

	if len(players) == 0 {
		return nil, fmt.Errorf("%w: players", ErrEmptyDataset)
	}

	names := team.NameByID(teams)
	shorts := make(map[int64]string, len(teams))
	for _, t := range teams {
		shorts[t.ID] = t.ShortName
	}

	out := make([]EnrichedPlayer, 0, len(players))
	for _, p := range players {
		if p.Minutes < 0 {
			continue
		}
		if p.Status != player.StatusAvailable && p.Status != player.StatusDoubtful {
			continue
		}
		out = append(out, EnrichedPlayer{
			Player:            p,
			TeamName:          team.ResolveName(names, p.TeamID),
			TeamShort:         shorts[p.TeamID],
			PositionLabel:     p.Position(),
			NowCostMillions:   p.NowCostM(),
			LastGWPoints:      p.EventPoints,
			PriceChangeGW:     tenthsToMillions(p.CostChangeEvent),
			PriceChangeSeason: tenthsToMillions(p.CostChangeStart),
			OwnershipLabel:    ownershipLabel(p.SelectedByPercent, opts.DiffThreshold, opts.TempThreshold),
			Availability:      availabilityLabel(p),
		})
	}

	s.logger.DebugContext(ctx, "players enriched", "in", len(players), "base", len(out))
	return out, nil
}

func tenthsToMillions(v *int) *float64 {
	if v == nil {
		return nil
	}
	out := float64(*v) / 10.0
	return &out
}

func ownershipLabel(pct *float64, diffThreshold, tempThreshold float64) string {
	switch {
	case pct == nil:
		return OwnershipUnknown
	case *pct < diffThreshold:
		return OwnershipDifferential
	case *pct > tempThreshold:
		return OwnershipTemplate
	default:
		return OwnershipMidOwned
	}
}

// availabilityLabel renders the FPL status code for humans. Doubtful
// players carry the chance-of-playing percentage, next round preferred
// over this round; a missing or zero chance renders empty.
func availabilityLabel(p player.Player) string {
	switch p.Status {
	case player.StatusAvailable:
		return "available"
	case player.StatusDoubtful:
		return fmt.Sprintf("doubtful (%s%%)", playingChance(p.ChanceNextRound, p.ChanceThisRound))
	case player.StatusSuspended:
		return "suspended"
	case player.StatusInjured:
		return "injured"
	case player.StatusUnavailable, player.StatusNotAvailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

func playingChance(next, this *int) string {
	if next != nil && *next != 0 {
		return fmt.Sprintf("%d", *next)
	}
	if this != nil && *this != 0 {
		return fmt.Sprintf("%d", *this)
	}
	return ""
}
