package risk

// ReasonCode identifies which gate check rejected a trade, or OK when none did
type ReasonCode int

const (
	ReasonOK ReasonCode = iota
	ReasonForcedHalt
	ReasonDailyLoss
	ReasonCooldown
	ReasonTradesPerDay
	ReasonNotionalCap
	ReasonMaxDrawdown
	ReasonException
)

func (r ReasonCode) String() string {
	switch r {
	case ReasonOK:
		return "OK"
	case ReasonForcedHalt:
		return "FORCED_HALT"
	case ReasonDailyLoss:
		return "DAILY_LOSS"
	case ReasonCooldown:
		return "COOLDOWN"
	case ReasonTradesPerDay:
		return "TRADES_PER_DAY"
	case ReasonNotionalCap:
		return "NOTIONAL_CAP"
	case ReasonMaxDrawdown:
		return "MAX_DRAWDOWN"
	case ReasonException:
		return "EXCEPTION"
	default:
		return "UNKNOWN"
	}
}

// Decision is the result of a single AllowTrade evaluation
type Decision struct {
	Allowed bool
	Reason  ReasonCode
}

func allow() Decision {
	return Decision{Allowed: true, Reason: ReasonOK}
}

func reject(reason ReasonCode) Decision {
	return Decision{Allowed: false, Reason: reason}
}
