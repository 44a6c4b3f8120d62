package player

// Status is the single-letter availability code published by the FPL API.
type Status string

const (
	StatusAvailable    Status = "a"
	StatusDoubtful     Status = "d"
	StatusInjured      Status = "i"
	StatusSuspended    Status = "s"
	StatusUnavailable  Status = "u"
	StatusNotAvailable Status = "n" // no data, collapses to unavailable
)

// Position labels derived from element_type.
const (
	PositionGoalkeeper = "GK"
	PositionDefender   = "DEF"
	PositionMidfielder = "MID"
	PositionForward    = "FWD"
)

var positionByElementType = map[int]string{
	1: PositionGoalkeeper,
	2: PositionDefender,
	3: PositionMidfielder,
	4: PositionForward,
}

// PositionLabel maps the 4-way element_type code to a position label,
// empty for unknown codes.
func PositionLabel(elementType int) string {
	return positionByElementType[elementType]
}

// Player is one raw player row from the transformed players dataset.
// Cost fields are in tenths of a million, as stored by the FPL API.
type Player struct {
	ID                int64
	WebName           string
	TeamID            int64
	ElementType       int
	NowCost           int
	SelectedByPercent *float64
	Status            Status
	Form              float64
	PointsPerGame     float64
	Minutes           int
	EventPoints       *int
	CostChangeEvent   *int
	CostChangeStart   *int
	ChanceThisRound   *int
	ChanceNextRound   *int
}

// Position returns the player's position label.
func (p Player) Position() string {
	return PositionLabel(p.ElementType)
}

// NowCostM converts the tenths cost to millions.
func (p Player) NowCostM() float64 {
	return float64(p.NowCost) / 10.0
}
