package attendance

// OrderMode selects whether punch kinds must follow the daily progression.
type OrderMode string

const (
	OrderLenient OrderMode = "lenient"
	OrderStrict  OrderMode = "strict"
)

// NextKinds lists the kinds accepted after the day's punches so far.
// Lunch may be skipped, so an entry can be followed directly by an exit.
func NextKinds(today []TimeRecord) []PunchKind {
	last := PunchKind("")
	for _, r := range today {
		if last == "" || rank(r.Kind) > rank(last) {
			last = r.Kind
		}
	}

	switch last {
	case "":
		return []PunchKind{PunchEntry}
	case PunchEntry:
		return []PunchKind{PunchLunchStart, PunchExit}
	case PunchLunchStart:
		return []PunchKind{PunchLunchEnd}
	case PunchLunchEnd:
		return []PunchKind{PunchExit}
	default:
		return nil
	}
}

// CheckSequence validates kind against the day's punches under mode.
func CheckSequence(mode OrderMode, today []TimeRecord, kind PunchKind) error {
	if mode != OrderStrict {
		return nil
	}
	for _, k := range NextKinds(today) {
		if k == kind {
			return nil
		}
	}
	return ErrPunchOutOfOrder
}

func rank(k PunchKind) int {
	switch k {
	case PunchEntry:
		return 1
	case PunchLunchStart:
		return 2
	case PunchLunchEnd:
		return 3
	case PunchExit:
		return 4
	default:
		return 0
	}
}
