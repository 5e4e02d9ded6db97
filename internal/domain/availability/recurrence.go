package availability

import "time"

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

const maxOccurrences = 366

// RecurrenceRule repeats each submitted date. Count is the total number of
// occurrences including the first; Until is inclusive. At least one of them
// must be set.
type RecurrenceRule struct {
	Frequency Frequency `json:"frequency"`
	Until     string    `json:"until,omitempty"`
	Count     int       `json:"count,omitempty"`
}

func (r RecurrenceRule) step() (int, bool) {
	switch r.Frequency {
	case FrequencyDaily:
		return 1, true
	case FrequencyWeekly:
		return 7, true
	}
	return 0, false
}

func (r RecurrenceRule) Validate() error {
	if _, ok := r.step(); !ok {
		return ErrInvalidRule
	}
	if r.Count < 0 || (r.Count == 0 && r.Until == "") {
		return ErrInvalidRule
	}
	if r.Until != "" {
		if _, err := parseDate(r.Until); err != nil {
			return ErrInvalidRule
		}
	}
	return nil
}

// Expand returns date followed by its repetitions.
func (r RecurrenceRule) Expand(date string) ([]string, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	first, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	step, _ := r.step()
	limit := maxOccurrences
	if r.Count > 0 {
		limit = min(r.Count, maxOccurrences)
	}

	var until time.Time
	if r.Until != "" {
		until, _ = parseDate(r.Until)
	}

	out := []string{date}
	for d := first.AddDate(0, 0, step); len(out) < limit; d = d.AddDate(0, 0, step) {
		if !until.IsZero() && d.After(until) {
			break
		}
		out = append(out, d.Format(DateLayout))
	}
	return out, nil
}
