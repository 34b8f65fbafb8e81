package member

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxWeeklyHours is the reservable-hour quota per member per calendar week.
const MaxWeeklyHours = 6

var ErrInactive = errors.New("member is not active")

type Member struct {
	id       uuid.UUID
	rut      string
	fullName string
	email    string
	active   bool
}

func New(id uuid.UUID, rut, fullName, email string, active bool) *Member {
	return &Member{
		id:       id,
		rut:      NormalizeRUT(rut),
		fullName: fullName,
		email:    email,
		active:   active,
	}
}

func (m *Member) ID() uuid.UUID    { return m.id }
func (m *Member) RUT() string      { return m.rut }
func (m *Member) FullName() string { return m.fullName }
func (m *Member) Email() string    { return m.email }
func (m *Member) Active() bool     { return m.active }

func (m *Member) EnsureActive() error {
	if !m.active {
		return ErrInactive
	}
	return nil
}

// NormalizeRUT strips dots and dashes and lowercases the verifier digit so
// "12.345.678-K" and "12345678k" compare equal.
func NormalizeRUT(rut string) string {
	r := strings.NewReplacer(".", "", "-", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(rut)))
}

// WeekBounds returns the Monday 00:00 and the following Monday 00:00 of the
// calendar week containing d, in d's location. Quota accounting treats weeks
// as Monday through Sunday.
func WeekBounds(d time.Time) (time.Time, time.Time) {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 7)
}
