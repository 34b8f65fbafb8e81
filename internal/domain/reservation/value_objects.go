package reservation

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEndBeforeStart   = errors.New("end date cannot be before start date")
	ErrMixedDateModes   = errors.New("discrete dates cannot be combined with an end date")
	ErrNoDates          = errors.New("no dates specified")
	ErrNoBillableDays   = errors.New("range contains no billable weekdays")
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// TimeRange is the daily [start, end) window of a booking, in wall-clock
// hours. Billing works in whole hours: duration is the hour-of-day
// difference.
type TimeRange struct {
	start time.Time
	end   time.Time
}

func NewTimeRange(startStr, endStr string) (TimeRange, error) {
	start, err := time.Parse(timeLayout, startStr)
	if err != nil {
		return TimeRange{}, fmt.Errorf("invalid start time %q: %w", startStr, err)
	}
	end, err := time.Parse(timeLayout, endStr)
	if err != nil {
		return TimeRange{}, fmt.Errorf("invalid end time %q: %w", endStr, err)
	}
	if end.Hour()-start.Hour() <= 0 {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{start: start, end: end}, nil
}

func (t TimeRange) Start() string { return t.start.Format(timeLayout) }
func (t TimeRange) End() string   { return t.end.Format(timeLayout) }

// DurationHours is the billable duration in whole hours.
func (t TimeRange) DurationHours() int {
	return t.end.Hour() - t.start.Hour()
}

// Overlaps implements the half-open interval test: two windows collide when
// newStart < existingEnd && newEnd > existingStart.
func (t TimeRange) Overlaps(other TimeRange) bool {
	return t.start.Before(other.end) && t.end.After(other.start)
}

// DatesMode distinguishes the three booking shapes.
type DatesMode int

const (
	ModeSingle DatesMode = iota
	ModeRange
	ModeDiscrete
)

// Dates captures the calendar extent of a booking request in one of the
// three mutually exclusive modes.
type Dates struct {
	mode     DatesMode
	start    time.Time
	end      time.Time   // equals start except in range mode
	discrete []time.Time // sorted, deduplicated
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

func FormatDate(d time.Time) string {
	return d.Format(dateLayout)
}

// NewDates validates the raw date inputs of a booking request and resolves
// the mode. An end date equal to the start date collapses to single-day
// mode, matching how legacy clients send it.
func NewDates(startStr string, endStr *string, discreteStrs []string) (Dates, error) {
	if startStr == "" && len(discreteStrs) == 0 {
		return Dates{}, ErrNoDates
	}

	if len(discreteStrs) > 0 {
		if endStr != nil && *endStr != "" {
			return Dates{}, ErrMixedDateModes
		}
		seen := make(map[string]struct{}, len(discreteStrs))
		discrete := make([]time.Time, 0, len(discreteStrs))
		for _, s := range discreteStrs {
			d, err := ParseDate(s)
			if err != nil {
				return Dates{}, err
			}
			key := FormatDate(d)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			discrete = append(discrete, d)
		}
		sort.Slice(discrete, func(i, j int) bool { return discrete[i].Before(discrete[j]) })
		return Dates{
			mode:     ModeDiscrete,
			start:    discrete[0],
			end:      discrete[0],
			discrete: discrete,
		}, nil
	}

	start, err := ParseDate(startStr)
	if err != nil {
		return Dates{}, err
	}

	if endStr != nil && *endStr != "" {
		end, err := ParseDate(*endStr)
		if err != nil {
			return Dates{}, err
		}
		if end.Before(start) {
			return Dates{}, ErrEndBeforeStart
		}
		if !end.Equal(start) {
			return Dates{mode: ModeRange, start: start, end: end}, nil
		}
	}

	return Dates{mode: ModeSingle, start: start, end: start}, nil
}

func (d Dates) Mode() DatesMode  { return d.mode }
func (d Dates) Start() time.Time { return d.start }
func (d Dates) End() time.Time   { return d.end }

// Candidates is every calendar date the booking touches; all of them must be
// free and unblocked.
func (d Dates) Candidates() []time.Time {
	switch d.mode {
	case ModeDiscrete:
		out := make([]time.Time, len(d.discrete))
		copy(out, d.discrete)
		return out
	case ModeRange:
		var out []time.Time
		for day := d.start; !day.After(d.end); day = day.AddDate(0, 0, 1) {
			out = append(out, day)
		}
		return out
	default:
		return []time.Time{d.start}
	}
}

// BillableDates is the subset of candidates that are charged. Range mode
// bills weekdays only; single-day and discrete bookings bill every selected
// date.
func (d Dates) BillableDates() ([]time.Time, error) {
	if d.mode != ModeRange {
		return d.Candidates(), nil
	}

	var billable []time.Time
	for _, day := range d.Candidates() {
		wd := day.Weekday()
		if wd >= time.Monday && wd <= time.Friday {
			billable = append(billable, day)
		}
	}
	if len(billable) == 0 {
		return nil, ErrNoBillableDays
	}
	return billable, nil
}
