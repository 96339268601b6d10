// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the calendar date format stored in the log.
	DateLayout = "2006-01-02"
	// TimeLayout is the 12-hour clock format written to the log.
	TimeLayout = "03:04 PM"
)

// Tier defines a difficulty level.
type Tier struct {
	Name  string
	Score int
	Glyph string
	Plays int
	Color string
}

// Label returns the tier name with its first letter capitalized.
func (t Tier) Label() string {
	return Capitalize(t.Name)
}

// TierTable is an ordered, read-only set of tiers.
type TierTable struct {
	order  []Tier
	byName map[string]int
}

// NewTierTable validates tiers and builds a lookup table preserving order.
func NewTierTable(tiers []Tier) (TierTable, error) {
	if len(tiers) == 0 {
		return TierTable{}, fmt.Errorf("at least one tier is required")
	}
	table := TierTable{
		order:  make([]Tier, 0, len(tiers)),
		byName: make(map[string]int, len(tiers)),
	}
	for _, t := range tiers {
		t.Name = strings.ToLower(strings.TrimSpace(t.Name))
		if t.Name == "" {
			return TierTable{}, fmt.Errorf("tier name must not be empty")
		}
		if strings.ContainsAny(t.Name, ",\r\n") {
			return TierTable{}, fmt.Errorf("tier name %q must not contain commas or newlines", t.Name)
		}
		if _, dup := table.byName[t.Name]; dup {
			return TierTable{}, fmt.Errorf("duplicate tier %q", t.Name)
		}
		if t.Score < 0 {
			return TierTable{}, fmt.Errorf("tier %q: score must be >= 0", t.Name)
		}
		if t.Plays < 0 {
			return TierTable{}, fmt.Errorf("tier %q: plays must be >= 0", t.Name)
		}
		table.byName[t.Name] = len(table.order)
		table.order = append(table.order, t)
	}
	return table, nil
}

// Lookup returns the tier with the given name.
func (tt TierTable) Lookup(name string) (Tier, bool) {
	idx, ok := tt.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Tier{}, false
	}
	return tt.order[idx], true
}

// All returns a copy of the tiers in configured order.
func (tt TierTable) All() []Tier {
	out := make([]Tier, len(tt.order))
	copy(out, tt.order)
	return out
}

// Names returns tier names in configured order.
func (tt TierTable) Names() []string {
	names := make([]string, len(tt.order))
	for i, t := range tt.order {
		names[i] = t.Name
	}
	return names
}

// Len returns the number of tiers.
func (tt TierTable) Len() int {
	return len(tt.order)
}

// Schema tags which log line layout an entry was parsed from.
type Schema int

const (
	// SchemaCurrent is date,time,tier,score.
	SchemaCurrent Schema = iota
	// SchemaLegacy is date,time,tier,score,glyph.
	SchemaLegacy
)

func (s Schema) String() string {
	switch s {
	case SchemaLegacy:
		return "legacy"
	default:
		return "current"
	}
}

// Entry is one recorded task completion.
type Entry struct {
	Date   string
	Time   string
	Tier   string
	Score  int
	Glyph  string
	Schema Schema
}

// Minutes returns minutes since midnight for the entry's time of day.
func (e Entry) Minutes() int {
	m, err := ClockMinutes(e.Time)
	if err != nil {
		return 0
	}
	return m
}

// Hour returns the fractional hour of day.
func (e Entry) Hour() float64 {
	return float64(e.Minutes()) / 60.0
}

// DailyTotal is the summed score for one date.
type DailyTotal struct {
	Date  string
	Total int
}

// ParseClock parses a 12-hour time with meridiem marker.
// One- or two-digit hours are accepted and the marker is case-insensitive.
func ParseClock(value string) (time.Time, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	t, err := time.Parse("3:04 PM", value)
	if err != nil {
		return time.Time{}, err
	}
	// time.Parse accepts hour 0 on a 12-hour clock.
	if hour, _, _ := strings.Cut(value, ":"); strings.TrimLeft(hour, "0") == "" {
		return time.Time{}, fmt.Errorf("parsing time %q: hour out of range", value)
	}
	return t, nil
}

// ClockMinutes converts a 12-hour time to minutes since midnight.
func ClockMinutes(value string) (int, error) {
	t, err := ParseClock(value)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}
