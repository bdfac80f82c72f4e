package reservation

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/kirinyoku/tablebook/internal/clock"
	"github.com/kirinyoku/tablebook/internal/domain"
	"github.com/kirinyoku/tablebook/internal/overlap"
)

// Form field keys used in FieldErrors.
const (
	FieldName      = "name"
	FieldPhone     = "phone"
	FieldDate      = "date"
	FieldTimeStart = "timeStart"
	FieldTimeEnd   = "timeEnd"
	FieldPeople    = "people"
	FieldEvent     = "event"
	FieldTables    = "tables"
)

// Policy holds the booking rules that vary by deployment.
type Policy struct {
	PhoneDigits  int
	MaxPeople    int
	AllowSameDay bool
	// Location decides what "today" means for the date rule.
	Location *time.Location
}

func DefaultPolicy() Policy {
	return Policy{
		PhoneDigits: 8,
		MaxPeople:   200,
		Location:    time.UTC,
	}
}

// Form is a reservation as submitted by the UI, before any parsing.
type Form struct {
	ID            uuid.UUID
	ClientName    string
	ClientPhone   string
	Date          string
	TimeStart     string
	StartMeridiem string
	TimeEnd       string
	EndMeridiem   string
	People        string
	Event         string
	Comment       string
	Tables        []int64
	Dishes        []domain.Dish
}

type Validator struct {
	policy Policy
	now    func() time.Time
}

func NewValidator(p Policy) *Validator {
	def := DefaultPolicy()
	if p.PhoneDigits <= 0 {
		p.PhoneDigits = def.PhoneDigits
	}
	if p.MaxPeople <= 0 {
		p.MaxPeople = def.MaxPeople
	}
	if p.Location == nil {
		p.Location = def.Location
	}

	return &Validator{policy: p, now: time.Now}
}

// Validate checks every field of f and, only when they all pass, checks the
// result against existing for table conflicts.
func (v *Validator) Validate(f Form, existing []domain.Reservation) (*domain.Reservation, error) {
	r, err := v.Fields(f)
	if err != nil {
		return nil, err
	}

	if err := v.CheckConflict(r, existing); err != nil {
		return nil, err
	}

	return r, nil
}

// Fields runs the field-level rules and returns the normalized record.
// Status fields are left zero.
func (v *Validator) Fields(f Form) (*domain.Reservation, error) {
	errs := FieldErrors{}

	r := &domain.Reservation{
		ID:          f.ID,
		ClientName:  strings.TrimSpace(f.ClientName),
		ClientPhone: digitsOf(f.ClientPhone),
		Event:       strings.TrimSpace(f.Event),
		Comment:     strings.TrimSpace(f.Comment),
		Dishes:      domain.GroupDishes(f.Dishes),
	}

	if r.ClientName == "" {
		errs[FieldName] = "name is required"
	}

	switch {
	case strings.TrimSpace(f.ClientPhone) == "":
		errs[FieldPhone] = "phone is required"
	case !phoneChars(f.ClientPhone) || len(r.ClientPhone) != v.policy.PhoneDigits:
		errs[FieldPhone] = fmt.Sprintf("phone must have %d digits", v.policy.PhoneDigits)
	}

	if date, msg := v.date(f.Date); msg != "" {
		errs[FieldDate] = msg
	} else {
		r.Date = date
	}

	start, startOK := parseTime(f.TimeStart, f.StartMeridiem)
	if !startOK {
		errs[FieldTimeStart] = "start time must look like H:MM with AM or PM"
	}
	end, endOK := parseTime(f.TimeEnd, f.EndMeridiem)
	if !endOK {
		errs[FieldTimeEnd] = "end time must look like H:MM with AM or PM"
	}
	if startOK && endOK && end.MinutesOfDay() <= start.MinutesOfDay() {
		errs[FieldTimeEnd] = "end time must be after start time"
	}
	r.Start, r.End = start, end

	people, err := strconv.Atoi(strings.TrimSpace(f.People))
	switch {
	case err != nil:
		errs[FieldPeople] = "people must be a whole number"
	case people < 1 || people > v.policy.MaxPeople:
		errs[FieldPeople] = fmt.Sprintf("people must be between 1 and %d", v.policy.MaxPeople)
	default:
		r.People = people
	}

	if r.Event == "" {
		errs[FieldEvent] = "event is required"
	}

	tables, ok := normalizeTables(f.Tables)
	switch {
	case len(tables) == 0:
		errs[FieldTables] = "select at least one table"
	case !ok:
		errs[FieldTables] = "table numbers must be positive"
	default:
		r.Tables = tables
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return r, nil
}

// CheckConflict reports a tables error when r overlaps another reservation
// on a shared table.
func (v *Validator) CheckConflict(r *domain.Reservation, existing []domain.Reservation) error {
	clash := overlap.Conflicts(existing, overlap.CandidateOf(r))
	if len(clash) == 0 {
		return nil
	}

	var taken []int64
	for _, c := range clash {
		for _, t := range c.Tables {
			if r.HasTable(t) && !slices.Contains(taken, t) {
				taken = append(taken, t)
			}
		}
	}
	slices.Sort(taken)

	return FieldErrors{
		FieldTables: fmt.Sprintf("tables %s are already reserved at that time", joinInts(taken)),
	}
}

func (v *Validator) date(s string) (time.Time, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, "date is required"
	}

	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, "date must be YYYY-MM-DD"
	}

	today := domain.DateOf(v.now().In(v.policy.Location))

	switch {
	case d.Equal(today) && !v.policy.AllowSameDay:
		return time.Time{}, "same-day reservations are not allowed"
	case d.Before(today):
		return time.Time{}, "date must not be in the past"
	}

	return d, ""
}

func parseTime(text, meridiem string) (domain.TimeOfDay, bool) {
	c, ok := clock.Parse(text)
	if !ok {
		return domain.TimeOfDay{}, false
	}

	m, ok := clock.ParseMeridiem(meridiem)
	if !ok {
		return domain.TimeOfDay{}, false
	}

	return domain.NewTimeOfDay(c, m), true
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// phoneChars allows digits plus the usual formatting characters.
func phoneChars(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case unicode.IsSpace(r), strings.ContainsRune("-+().", r):
		default:
			return false
		}
	}
	return true
}

func normalizeTables(in []int64) ([]int64, bool) {
	out := slices.Clone(in)
	slices.Sort(out)
	out = slices.Compact(out)

	for _, t := range out {
		if t <= 0 {
			return out, false
		}
	}

	return out, true
}

func joinInts(xs []int64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.FormatInt(x, 10)
	}
	return strings.Join(parts, ", ")
}
