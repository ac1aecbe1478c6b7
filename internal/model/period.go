package model

// Period is the wire token for a listening-history window, e.g. "1month".
type Period string

const (
	PeriodWeek     Period = "7day"
	PeriodMonth    Period = "1month"
	PeriodQuarter  Period = "3month"
	PeriodHalfYear Period = "6month"
	PeriodYear     Period = "12month"
	PeriodOverall  Period = "overall"
)

// PeriodOptions returns the accepted period shorthands.
func PeriodOptions(allowOverall bool) []string {
	opts := []string{"7d", "1m", "3m", "6m", "12m"}
	if allowOverall {
		opts = append(opts, "all")
	}
	return opts
}

// ParsePeriod validates a period shorthand and converts it to its wire token.
//
// The last character picks the unit ('d' becomes "day", 'm' becomes "month")
// and the digits in front of it are kept as the magnitude:
//
//	ParsePeriod("7d", true)  // "7day"
//	ParsePeriod("12m", true) // "12month"
//	ParsePeriod("all", true) // "overall"
//
// "all" is only accepted when allowOverall is set.
func ParsePeriod(raw string, allowOverall bool) (Period, error) {
	for _, opt := range PeriodOptions(allowOverall) {
		if raw == opt {
			return periodToken(raw), nil
		}
	}
	return "", &ValidationError{Field: "period", Value: raw, Options: PeriodOptions(allowOverall)}
}

// periodToken applies the digit+suffix transform to an already validated shorthand.
func periodToken(raw string) Period {
	if raw == "all" {
		return PeriodOverall
	}

	magnitude, unit := raw[:len(raw)-1], raw[len(raw)-1]
	switch unit {
	case 'd':
		return Period(magnitude + "day")
	case 'm':
		return Period(magnitude + "month")
	}
	return PeriodOverall
}

// Shorthand returns the user-facing spelling of the period, e.g. "1m".
func (p Period) Shorthand() string {
	switch p {
	case PeriodWeek:
		return "7d"
	case PeriodMonth:
		return "1m"
	case PeriodQuarter:
		return "3m"
	case PeriodHalfYear:
		return "6m"
	case PeriodYear:
		return "12m"
	case PeriodOverall:
		return "all"
	}
	return string(p)
}
