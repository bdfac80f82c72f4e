package httpgin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kirinyoku/tablebook/internal/clock"
	"github.com/kirinyoku/tablebook/internal/domain"
	"github.com/kirinyoku/tablebook/internal/service/reservation"
)

// reservationAliases lists, per canonical field, every name older clients
// send it under. The first present key wins.
var reservationAliases = map[string][]string{
	"client_name":    {"client_name", "clientName", "name", "customer"},
	"client_phone":   {"client_phone", "clientPhone", "phone", "telephone"},
	"date":           {"date", "reservation_date", "reservationDate", "day"},
	"time_start":     {"time_start", "timeStart", "start", "start_time"},
	"start_meridiem": {"start_meridiem", "startMeridiem", "time_start_meridiem", "start_period"},
	"time_end":       {"time_end", "timeEnd", "end", "end_time"},
	"end_meridiem":   {"end_meridiem", "endMeridiem", "time_end_meridiem", "end_period"},
	"people":         {"people", "guests", "party_size", "persons"},
	"event":          {"event", "event_type", "eventType", "occasion"},
	"comment":        {"comment", "comments", "notes"},
	"tables":         {"tables", "table_ids", "tableIds", "table"},
	"dishes":         {"dishes", "items", "order"},
}

// ReservationRequest is the body of POST/PUT /reservations and
// POST /reservations/check. Values are kept as text until the validator
// parses them.
type ReservationRequest struct {
	ClientName    string        `json:"client_name"`
	ClientPhone   string        `json:"client_phone"`
	Date          string        `json:"date" example:"2026-10-20"`
	TimeStart     string        `json:"time_start" example:"7:30"`
	StartMeridiem string        `json:"start_meridiem" example:"PM"`
	TimeEnd       string        `json:"time_end" example:"9:00"`
	EndMeridiem   string        `json:"end_meridiem" example:"PM"`
	People        string        `json:"people" example:"4"`
	Event         string        `json:"event" example:"Birthday"`
	Comment       string        `json:"comment"`
	Tables        []int64       `json:"tables"`
	Dishes        []DishPayload `json:"dishes"`
}

type DishPayload struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
}

func (r *ReservationRequest) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	pick := func(field string) json.RawMessage {
		for _, k := range reservationAliases[field] {
			if v, ok := raw[k]; ok && !isNull(v) {
				return v
			}
		}
		return nil
	}

	var err error
	text := func(field string, dst *string) {
		if err != nil {
			return
		}
		if v := pick(field); v != nil {
			*dst, err = flexString(v)
			if err != nil {
				err = fmt.Errorf("%s: %w", field, err)
			}
		}
	}

	var out ReservationRequest
	text("client_name", &out.ClientName)
	text("client_phone", &out.ClientPhone)
	text("date", &out.Date)
	text("time_start", &out.TimeStart)
	text("start_meridiem", &out.StartMeridiem)
	text("time_end", &out.TimeEnd)
	text("end_meridiem", &out.EndMeridiem)
	text("people", &out.People)
	text("event", &out.Event)
	text("comment", &out.Comment)
	if err != nil {
		return err
	}

	if v := pick("tables"); v != nil {
		if out.Tables, err = flexInts(v); err != nil {
			return fmt.Errorf("tables: %w", err)
		}
	}

	if v := pick("dishes"); v != nil {
		if out.Dishes, err = decodeDishes(v); err != nil {
			return fmt.Errorf("dishes: %w", err)
		}
	}

	// "7:30 PM" in the time field and no separate meridiem
	out.TimeStart, out.StartMeridiem = splitMeridiem(out.TimeStart, out.StartMeridiem)
	out.TimeEnd, out.EndMeridiem = splitMeridiem(out.TimeEnd, out.EndMeridiem)

	*r = out
	return nil
}

func (r ReservationRequest) Form() reservation.Form {
	dishes := make([]domain.Dish, 0, len(r.Dishes))
	for _, d := range r.Dishes {
		dishes = append(dishes, domain.Dish{Name: d.Name, Quantity: d.Quantity, PriceCents: d.PriceCents})
	}

	return reservation.Form{
		ClientName:    r.ClientName,
		ClientPhone:   r.ClientPhone,
		Date:          r.Date,
		TimeStart:     r.TimeStart,
		StartMeridiem: r.StartMeridiem,
		TimeEnd:       r.TimeEnd,
		EndMeridiem:   r.EndMeridiem,
		People:        r.People,
		Event:         r.Event,
		Comment:       r.Comment,
		Tables:        r.Tables,
		Dishes:        dishes,
	}
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// flexString accepts a JSON string or number.
func flexString(v json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String(), nil
	}

	return "", fmt.Errorf("expected string or number")
}

// flexInts accepts a number, a numeric string, a comma separated string or
// an array of any of those.
func flexInts(v json.RawMessage) ([]int64, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(v, &items); err != nil {
		items = []json.RawMessage{v}
	}

	var out []int64
	for _, it := range items {
		s, err := flexString(it)
		if err != nil {
			return nil, err
		}
		for _, part := range strings.Split(s, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid table %q", part)
			}
			out = append(out, n)
		}
	}

	return out, nil
}

func decodeDishes(v json.RawMessage) ([]DishPayload, error) {
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(v, &items); err != nil {
		return nil, err
	}

	out := make([]DishPayload, 0, len(items))
	for _, it := range items {
		var d DishPayload

		for _, k := range []string{"name", "dish", "title"} {
			if raw, ok := it[k]; ok {
				if err := json.Unmarshal(raw, &d.Name); err != nil {
					return nil, err
				}
				break
			}
		}

		for _, k := range []string{"quantity", "qty", "amount"} {
			if raw, ok := it[k]; ok {
				s, err := flexString(raw)
				if err != nil {
					return nil, err
				}
				if d.Quantity, err = strconv.Atoi(s); err != nil {
					return nil, fmt.Errorf("invalid quantity %q", s)
				}
				break
			}
		}

		if raw, ok := it["price_cents"]; ok {
			if err := json.Unmarshal(raw, &d.PriceCents); err != nil {
				return nil, err
			}
		} else if raw, ok := it["price"]; ok {
			var p float64
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, err
			}
			d.PriceCents = int64(math.Round(p * 100))
		}

		out = append(out, d)
	}

	return out, nil
}

func splitMeridiem(text, meridiem string) (string, string) {
	if strings.TrimSpace(meridiem) != "" {
		return text, meridiem
	}

	fields := strings.Fields(text)
	if len(fields) < 2 {
		return text, meridiem
	}

	last := fields[len(fields)-1]
	if _, ok := clock.ParseMeridiem(last); !ok {
		return text, meridiem
	}

	return strings.Join(fields[:len(fields)-1], " "), last
}

type ReservationResponse struct {
	ID               string        `json:"id"`
	ClientName       string        `json:"client_name"`
	ClientPhone      string        `json:"client_phone"`
	Date             string        `json:"date"`
	TimeStart        string        `json:"time_start"`
	StartMeridiem    string        `json:"start_meridiem"`
	TimeEnd          string        `json:"time_end"`
	EndMeridiem      string        `json:"end_meridiem"`
	Tables           []int64       `json:"tables"`
	People           int           `json:"people"`
	Event            string        `json:"event"`
	Comment          string        `json:"comment"`
	Dishes           []DishPayload `json:"dishes"`
	DishesTotalCents int64         `json:"dishes_total_cents"`
	Status           string        `json:"status"`
	StatusConfirmed  bool          `json:"status_confirmed"`
	Locked           bool          `json:"locked"`
	CreatedAt        *time.Time    `json:"created_at,omitempty"`
	UpdatedAt        *time.Time    `json:"updated_at,omitempty"`
}

func toReservationResponse(r *domain.Reservation) ReservationResponse {
	dishes := make([]DishPayload, 0, len(r.Dishes))
	for _, d := range r.Dishes {
		dishes = append(dishes, DishPayload{Name: d.Name, Quantity: d.Quantity, PriceCents: d.PriceCents})
	}

	tables := r.Tables
	if tables == nil {
		tables = []int64{}
	}

	resp := ReservationResponse{
		ID:               r.ID.String(),
		ClientName:       r.ClientName,
		ClientPhone:      r.ClientPhone,
		Date:             r.Date.Format(domain.DateLayout),
		TimeStart:        r.Start.String(),
		StartMeridiem:    string(r.Start.Meridiem),
		TimeEnd:          r.End.String(),
		EndMeridiem:      string(r.End.Meridiem),
		Tables:           tables,
		People:           r.People,
		Event:            r.Event,
		Comment:          r.Comment,
		Dishes:           dishes,
		DishesTotalCents: r.DishesTotal(),
		Status:           string(r.Status),
		StatusConfirmed:  r.StatusConfirmed,
		Locked:           r.Locked(),
	}

	if !r.CreatedAt.IsZero() {
		t := r.CreatedAt
		resp.CreatedAt = &t
	}
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		resp.UpdatedAt = &t
	}

	return resp
}

func toReservationResponses(in []domain.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(in))
	for i := range in {
		out = append(out, toReservationResponse(&in[i]))
	}
	return out
}

type CreateTableRequest struct {
	Number int64  `json:"number" binding:"required,gt=0"`
	Seats  int    `json:"seats" binding:"required,gt=0"`
	Area   string `json:"area"`
}

// TimeResponse backs the live-typing time inputs. Display is what the
// field should show now; Normalized is set once the text is a full time.
type TimeResponse struct {
	Input      string `json:"input"`
	Display    string `json:"display"`
	Normalized string `json:"normalized,omitempty"`
	Valid      bool   `json:"valid"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}
