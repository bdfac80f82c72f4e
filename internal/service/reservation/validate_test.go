package reservation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/tablebook/internal/clock"
	"github.com/kirinyoku/tablebook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)

func newTestValidator(p Policy) *Validator {
	v := NewValidator(p)
	v.now = func() time.Time { return now }
	return v
}

func tomorrow() string { return now.AddDate(0, 0, 1).Format(domain.DateLayout) }

func validForm() Form {
	return Form{
		ClientName:    "  Ana Torres ",
		ClientPhone:   "8888-1234",
		Date:          tomorrow(),
		TimeStart:     "12:00",
		StartMeridiem: "PM",
		TimeEnd:       "1:30",
		EndMeridiem:   "PM",
		People:        "4",
		Event:         "Birthday",
		Tables:        []int64{3},
	}
}

func fieldErrors(t *testing.T, err error) FieldErrors {
	t.Helper()

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	return fe
}

func TestValidate_BirthdayScenario(t *testing.T) {
	v := newTestValidator(DefaultPolicy())

	r, err := v.Validate(validForm(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Ana Torres", r.ClientName)
	assert.Equal(t, "88881234", r.ClientPhone)
	assert.Equal(t, "12:00", r.Start.String())
	assert.Equal(t, clock.PM, r.Start.Meridiem)
	assert.Equal(t, "1:30", r.End.String())
	assert.Equal(t, 720, r.Start.MinutesOfDay())
	assert.Equal(t, 810, r.End.MinutesOfDay())
	assert.Equal(t, 4, r.People)
	assert.Equal(t, []int64{3}, r.Tables)
	assert.Equal(t, "2026-10-15", r.Date.Format(domain.DateLayout))
}

func TestValidate_SameDayRejected(t *testing.T) {
	v := newTestValidator(DefaultPolicy())

	f := validForm()
	f.Date = now.Format(domain.DateLayout)

	_, err := v.Validate(f, nil)
	fe := fieldErrors(t, err)

	require.Len(t, fe, 1)
	assert.Equal(t, "same-day reservations are not allowed", fe[FieldDate])
}

func TestValidate_SameDayAllowedByPolicy(t *testing.T) {
	p := DefaultPolicy()
	p.AllowSameDay = true
	v := newTestValidator(p)

	f := validForm()
	f.Date = now.Format(domain.DateLayout)

	_, err := v.Validate(f, nil)
	assert.NoError(t, err)
}

func TestValidate_TodayFollowsPolicyTimezone(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	p := DefaultPolicy()
	p.Location = loc
	v := newTestValidator(p)

	// 15:30 UTC is already the 15th in Tokyo.
	f := validForm()
	f.Date = tomorrow()

	_, err = v.Validate(f, nil)
	fe := fieldErrors(t, err)
	assert.Contains(t, fe, FieldDate)
}

func TestFields_Rules(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Form)
		field string
	}{
		{"blank name", func(f *Form) { f.ClientName = "   " }, FieldName},
		{"short phone", func(f *Form) { f.ClientPhone = "888-123" }, FieldPhone},
		{"letters in phone", func(f *Form) { f.ClientPhone = "8888-12ab" }, FieldPhone},
		{"missing date", func(f *Form) { f.Date = "" }, FieldDate},
		{"bad date", func(f *Form) { f.Date = "15/10/2026" }, FieldDate},
		{"past date", func(f *Form) { f.Date = "2026-10-01" }, FieldDate},
		{"bad start", func(f *Form) { f.TimeStart = "noon" }, FieldTimeStart},
		{"missing start meridiem", func(f *Form) { f.StartMeridiem = "" }, FieldTimeStart},
		{"bad end", func(f *Form) { f.TimeEnd = "" }, FieldTimeEnd},
		{"end before start", func(f *Form) { f.TimeEnd = "11:00"; f.EndMeridiem = "AM" }, FieldTimeEnd},
		{"end equals start", func(f *Form) { f.TimeEnd = "12:00" }, FieldTimeEnd},
		{"people not a number", func(f *Form) { f.People = "four" }, FieldPeople},
		{"zero people", func(f *Form) { f.People = "0" }, FieldPeople},
		{"too many people", func(f *Form) { f.People = "201" }, FieldPeople},
		{"no event", func(f *Form) { f.Event = " " }, FieldEvent},
		{"no tables", func(f *Form) { f.Tables = nil }, FieldTables},
		{"bad table", func(f *Form) { f.Tables = []int64{0, 2} }, FieldTables},
	}

	v := newTestValidator(DefaultPolicy())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.edit(&f)

			_, err := v.Fields(f)
			fe := fieldErrors(t, err)

			assert.Len(t, fe, 1, fe.Error())
			assert.Contains(t, fe, tt.field)
		})
	}
}

func TestFields_ReportsEveryFailingField(t *testing.T) {
	v := newTestValidator(DefaultPolicy())

	_, err := v.Fields(Form{})
	fe := fieldErrors(t, err)

	for _, k := range []string{FieldName, FieldPhone, FieldDate, FieldTimeStart, FieldTimeEnd, FieldPeople, FieldEvent, FieldTables} {
		assert.Contains(t, fe, k)
	}
}

func TestFields_Normalizes(t *testing.T) {
	p := DefaultPolicy()
	p.PhoneDigits = 10
	v := newTestValidator(p)

	f := validForm()
	f.ClientPhone = "(505) 8888-123"
	f.TimeStart = "730"
	f.StartMeridiem = "p.m."
	f.TimeEnd = "9"
	f.EndMeridiem = "pm"
	f.Tables = []int64{7, 2, 7, 4}
	f.Comment = "  window seat "
	f.Dishes = []domain.Dish{
		{Name: "Tres leches", Quantity: 1, PriceCents: 450},
		{Name: "tres leches ", Quantity: 2, PriceCents: 999},
	}

	r, err := v.Fields(f)
	require.NoError(t, err)

	assert.Equal(t, "5058888123", r.ClientPhone)
	assert.Equal(t, "7:30", r.Start.String())
	assert.Equal(t, "9:00", r.End.String())
	assert.Equal(t, []int64{2, 4, 7}, r.Tables)
	assert.Equal(t, "window seat", r.Comment)
	require.Len(t, r.Dishes, 1)
	assert.Equal(t, 3, r.Dishes[0].Quantity)
	assert.EqualValues(t, 450, r.Dishes[0].PriceCents)
}

func TestValidate_ConflictOnlyAfterFields(t *testing.T) {
	v := newTestValidator(DefaultPolicy())

	day, err := time.Parse(domain.DateLayout, tomorrow())
	require.NoError(t, err)

	existing := []domain.Reservation{{
		ID:     uuid.New(),
		Date:   day,
		Start:  domain.TimeOfDay{Hour: 1, Minute: 0, Meridiem: clock.PM},
		End:    domain.TimeOfDay{Hour: 2, Minute: 0, Meridiem: clock.PM},
		Tables: []int64{3, 9},
	}}

	f := validForm()
	f.Tables = []int64{3, 4}

	_, err = v.Validate(f, existing)
	fe := fieldErrors(t, err)
	require.Len(t, fe, 1)
	assert.Equal(t, "tables 3 are already reserved at that time", fe[FieldTables])

	// a field error hides the conflict
	f.People = "0"
	_, err = v.Validate(f, existing)
	fe = fieldErrors(t, err)
	assert.Contains(t, fe, FieldPeople)
	assert.NotContains(t, fe, FieldTables)

	// touching the existing booking is fine
	f = validForm()
	f.TimeStart, f.TimeEnd = "2:00", "3:00"
	_, err = v.Validate(f, existing)
	assert.NoError(t, err)
}

func TestFieldErrors_Error(t *testing.T) {
	fe := FieldErrors{FieldTables: "taken", FieldDate: "past"}
	assert.Equal(t, "invalid reservation: date: past; tables: taken", fe.Error())
}
