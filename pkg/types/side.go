package types

// Side represents the direction of a proposed trade
type Side int

const (
	SideHold Side = iota
	SideBuy
	SideSell
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "BUY"
	case SideSell:
		return "SELL"
	case SideHold:
		return "HOLD"
	default:
		return "UNKNOWN"
	}
}
