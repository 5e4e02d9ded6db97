package availability

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"mentorship/internal/domain/account"
	"mentorship/internal/pkg/apperr"
	"mentorship/internal/pkg/hhmm"
	"mentorship/internal/pkg/validator"

	"gorm.io/gorm"
)

// SessionLookup resolves the sessions referenced by slots.
type SessionLookup interface {
	LookupSessions(ctx context.Context, ids []int64) (map[int64]SessionRef, error)
}

type Service struct {
	db       *gorm.DB
	repo     *Repository
	accounts *account.Repository
	sessions SessionLookup
}

func NewService(db *gorm.DB, repo *Repository, accounts *account.Repository, sessions SessionLookup) *Service {
	return &Service{db: db, repo: repo, accounts: accounts, sessions: sessions}
}

// GetAvailability returns the mentor's dated slots, optionally limited to an
// inclusive [from, to] date range. No dates is an empty list.
func (s *Service) GetAvailability(ctx context.Context, mentorID int64, from, to string) ([]Date, error) {
	if err := s.ensureMentor(ctx, mentorID); err != nil {
		return nil, err
	}
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := parseDate(d); err != nil {
			return nil, err
		}
	}

	dates, err := s.repo.ListDates(ctx, mentorID, from, to)
	if err != nil {
		return nil, err
	}
	if err := s.project(ctx, dates); err != nil {
		return nil, err
	}
	return dates, nil
}

// SetAvailability overwrites the mentor's dated slots. With a rule, every
// submitted date is repeated; entries landing on the same date are merged.
func (s *Service) SetAvailability(ctx context.Context, mentorID int64, dates []DateInput, rule *RecurrenceRule) ([]Date, error) {
	if err := s.ensureMentor(ctx, mentorID); err != nil {
		return nil, err
	}

	byDate, err := expandDates(dates, rule)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(byDate))
	for k := range byDate {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteAllDates(ctx, mentorID); err != nil {
			return err
		}
		for _, k := range keys {
			d := &Date{MentorID: mentorID, Date: k, Slots: byDate[k]}
			if err := repo.CreateDate(ctx, d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("availability_set mentor_id=%d dates=%d", mentorID, len(keys))
	return s.GetAvailability(ctx, mentorID, "", "")
}

// AddDate appends slots to the mentor's entry for date, creating it if needed.
func (s *Service) AddDate(ctx context.Context, mentorID int64, date string, slots []SlotInput) (*Date, error) {
	if err := s.ensureMentor(ctx, mentorID); err != nil {
		return nil, err
	}
	if _, err := parseDate(date); err != nil {
		return nil, err
	}
	newSlots, err := toSlots(slots)
	if err != nil {
		return nil, err
	}

	var dateID int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		existing, err := repo.FindDate(ctx, mentorID, date)
		switch {
		case errors.Is(err, ErrDateNotFound):
			d := &Date{MentorID: mentorID, Date: date, Slots: newSlots}
			if err := repo.CreateDate(ctx, d); err != nil {
				return err
			}
			dateID = d.ID
			return nil
		case err != nil:
			return err
		}
		dateID = existing.ID
		return repo.AddSlots(ctx, existing.ID, newSlots)
	})
	if err != nil {
		return nil, err
	}

	d, err := s.repo.GetDate(ctx, mentorID, dateID)
	if err != nil {
		return nil, err
	}
	dates := []Date{*d}
	if err := s.project(ctx, dates); err != nil {
		return nil, err
	}
	return &dates[0], nil
}

// RemoveDate deletes a date entry. A missing date is a no-op.
func (s *Service) RemoveDate(ctx context.Context, mentorID, dateID int64) error {
	if err := s.ensureMentor(ctx, mentorID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).DeleteDate(ctx, mentorID, dateID)
	})
}

// UpdateSlotStatus flips one slot's booked flag. Booking with a session id
// requires that session to be live, owned by the mentor, and to cover
// exactly the slot's interval.
func (s *Service) UpdateSlotStatus(ctx context.Context, mentorID, dateID, slotID int64, isBooked bool, sessionID *int64) (*Slot, error) {
	if err := s.ensureMentor(ctx, mentorID); err != nil {
		return nil, err
	}
	d, err := s.repo.GetDate(ctx, mentorID, dateID)
	if err != nil {
		return nil, err
	}
	slot, err := s.repo.GetSlot(ctx, dateID, slotID)
	if err != nil {
		return nil, err
	}

	if !isBooked {
		sessionID = nil
	}
	if sessionID != nil {
		refs, err := s.sessions.LookupSessions(ctx, []int64{*sessionID})
		if err != nil {
			return nil, err
		}
		ref, ok := refs[*sessionID]
		if !ok {
			return nil, ErrSessionNotFound
		}
		if ref.MentorID != mentorID || !ref.Live || !matchesSlot(d.Date, *slot, ref) {
			return nil, ErrSlotMismatch
		}
	}

	slot.IsBooked = isBooked
	slot.SessionID = sessionID
	if err := s.repo.SaveSlotStatus(ctx, slot); err != nil {
		return nil, err
	}
	log.Printf("slot_status_updated mentor_id=%d date_id=%d slot_id=%d booked=%t", mentorID, dateID, slotID, isBooked)
	return slot, nil
}

// FindAvailableMentors returns bookable mentors with an unbooked slot on
// q.Date that spans the optional [StartTime, EndTime] window and who list at
// least one of q.Skills.
func (s *Service) FindAvailableMentors(ctx context.Context, q SearchQuery) ([]MentorMatch, error) {
	if _, err := parseDate(q.Date); err != nil {
		return nil, err
	}
	from, to, err := searchBounds(q.StartTime, q.EndTime)
	if err != nil {
		return nil, err
	}

	dates, err := s.repo.DatesOn(ctx, q.Date)
	if err != nil {
		return nil, err
	}
	if err := s.project(ctx, dates); err != nil {
		return nil, err
	}

	hits := make(map[int64]Date)
	ids := make([]int64, 0, len(dates))
	for _, d := range dates {
		var open []Slot
		for _, slot := range d.Slots {
			if !slot.IsBooked && slotSpans(slot, from, to) {
				open = append(open, slot)
			}
		}
		if len(open) == 0 {
			continue
		}
		d.Slots = open
		hits[d.MentorID] = d
		ids = append(ids, d.MentorID)
	}

	mentors, err := s.accounts.FindBookable(ctx, ids, q.Skills)
	if err != nil {
		return nil, err
	}

	out := make([]MentorMatch, 0, len(mentors))
	for _, m := range mentors {
		d := hits[m.ID]
		out = append(out, MentorMatch{
			MentorID:   m.ID,
			Name:       m.Name,
			Headline:   m.Mentor.Headline,
			Skills:     m.Mentor.Skills,
			HourlyRate: m.Mentor.HourlyRate,
			Rating:     m.Mentor.AverageRating,
			TimeZone:   m.TimeZone,
			Date:       d.Date,
			DateID:     d.ID,
			Slots:      d.Slots,
		})
	}
	return out, nil
}

func (s *Service) ListWindows(ctx context.Context, mentorID int64) ([]Window, error) {
	if err := s.ensureMentor(ctx, mentorID); err != nil {
		return nil, err
	}
	return s.repo.ListWindows(ctx, mentorID)
}

// ManageAvailability replaces the mentor's weekly windows.
func (s *Service) ManageAvailability(ctx context.Context, mentorID int64, windows []WindowInput) ([]Window, error) {
	if err := s.ensureMentor(ctx, mentorID); err != nil {
		return nil, err
	}

	rows := make([]Window, 0, len(windows))
	for _, w := range windows {
		if err := validateWindow(w); err != nil {
			return nil, err
		}
		recurring := true
		if w.Recurring != nil {
			recurring = *w.Recurring
		}
		rows = append(rows, Window{
			MentorID:  mentorID,
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
			Recurring: recurring,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).ReplaceWindows(ctx, mentorID, rows)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("availability_windows_replaced mentor_id=%d windows=%d", mentorID, len(rows))
	return s.repo.ListWindows(ctx, mentorID)
}

func (s *Service) ensureMentor(ctx context.Context, mentorID int64) error {
	if _, err := s.accounts.GetMentor(ctx, mentorID); err != nil {
		if errors.Is(err, account.ErrMentorNotFound) {
			return ErrMentorNotFound
		}
		return err
	}
	return nil
}

// project replaces each stored booked flag with whether the referenced
// session is still pending or confirmed. Slots booked without a session
// keep their flag.
func (s *Service) project(ctx context.Context, dates []Date) error {
	var ids []int64
	for _, d := range dates {
		for _, slot := range d.Slots {
			if slot.IsBooked && slot.SessionID != nil {
				ids = append(ids, *slot.SessionID)
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}

	refs, err := s.sessions.LookupSessions(ctx, ids)
	if err != nil {
		return err
	}

	for i := range dates {
		for j := range dates[i].Slots {
			slot := &dates[i].Slots[j]
			if !slot.IsBooked || slot.SessionID == nil {
				continue
			}
			ref, ok := refs[*slot.SessionID]
			slot.IsBooked = ok && ref.Live
		}
	}
	return nil
}

func expandDates(dates []DateInput, rule *RecurrenceRule) (map[string][]Slot, error) {
	if rule != nil {
		if err := rule.Validate(); err != nil {
			return nil, err
		}
	}

	out := make(map[string][]Slot)
	for _, in := range dates {
		if errs := validator.Validate(in); errs != nil {
			return nil, apperr.WithDetails(ErrInvalidInput, errs)
		}
		if _, err := parseDate(in.Date); err != nil {
			return nil, err
		}
		slots, err := toSlots(in.TimeSlots)
		if err != nil {
			return nil, err
		}

		occurrences := []string{in.Date}
		if rule != nil {
			if occurrences, err = rule.Expand(in.Date); err != nil {
				return nil, err
			}
		}
		for _, day := range occurrences {
			out[day] = append(out[day], slots...)
		}
	}
	return out, nil
}

func toSlots(in []SlotInput) ([]Slot, error) {
	out := make([]Slot, 0, len(in))
	for _, s := range in {
		if err := validateSlot(s); err != nil {
			return nil, err
		}
		out = append(out, Slot{StartTime: s.StartTime, EndTime: s.EndTime})
	}
	return out, nil
}

func searchBounds(start, end string) (int, int, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	switch {
	case start != "" && end != "":
		from, to, err := hhmm.Range(start, end)
		if err != nil {
			return 0, 0, ErrInvalidSlot
		}
		return from, to, nil
	case start != "":
		from, err := hhmm.Parse(start)
		if err != nil {
			return 0, 0, ErrInvalidSlot
		}
		return from, -1, nil
	case end != "":
		to, err := hhmm.Parse(end)
		if err != nil {
			return 0, 0, ErrInvalidSlot
		}
		return -1, to, nil
	}
	return -1, -1, nil
}

func matchesSlot(date string, slot Slot, ref SessionRef) bool {
	start := ref.StartTime.UTC()
	if start.Format(DateLayout) != date || hhmm.Format(hhmm.Of(start)) != slot.StartTime {
		return false
	}
	return wallClockEnd(start, ref.EndTime.UTC()) == slot.EndTime
}

func wallClockEnd(start, end time.Time) string {
	if !sameDate(start, end) && hhmm.Of(end) == 0 {
		return hhmm.EndOfDay
	}
	return hhmm.Format(hhmm.Of(end))
}
