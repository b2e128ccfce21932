package schedule

import (
	"encoding/json"
	"strconv"
	"time"
)

// DayRules holds one optional override per weekday, indexed by time.Weekday.
type DayRules [7]*DayRule

// For returns the override for day, if any.
func (r DayRules) For(day time.Weekday) (DayRule, bool) {
	if day < time.Sunday || day > time.Saturday || r[day] == nil {
		return DayRule{}, false
	}
	return *r[day], true
}

// Set installs rule for day. A nil rule removes the override.
func (r *DayRules) Set(day time.Weekday, rule *DayRule) {
	if day < time.Sunday || day > time.Saturday {
		return
	}
	r[day] = rule
}

// Empty reports whether no weekday carries an override.
func (r DayRules) Empty() bool {
	for _, rule := range r {
		if rule != nil {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the rules as an object keyed "0".."6", which is how
// they are stored.
func (r DayRules) MarshalJSON() ([]byte, error) {
	out := make(map[string]*DayRule)
	for day, rule := range r {
		if rule != nil {
			out[strconv.Itoa(day)] = rule
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts an object keyed by weekday number. Keys outside
// 0..6 are ignored.
func (r *DayRules) UnmarshalJSON(data []byte) error {
	var raw map[string]*DayRule
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = DayRules{}
	for key, rule := range raw {
		day, err := strconv.Atoi(key)
		if err != nil || day < 0 || day > 6 || rule == nil {
			continue
		}
		r[day] = rule
	}
	return nil
}
