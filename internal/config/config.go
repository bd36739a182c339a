// Package config loads the YAML schedule file the schedcal command feeds
// the core packages with.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/plannerkit/schedcore/availability"
)

// Event is one stored commitment in the schedule file.
type Event struct {
	Title        string    `yaml:"title"`
	Participants []string  `yaml:"participants"`
	Start        time.Time `yaml:"start"`
	End          time.Time `yaml:"end"`
}

// WorkingHours is the configured daily window, clock times as "HH:MM".
type WorkingHours struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	// Days lists working weekdays, 0=Sunday..6=Saturday.
	Days []int `yaml:"days"`
}

// Config is the top-level schedule file.
type Config struct {
	// Timezone is the IANA zone used to interpret dates given on the command
	// line, e.g. "Europe/Berlin". Empty means the system zone.
	Timezone     string       `yaml:"timezone"`
	WorkingHours WorkingHours `yaml:"working_hours"`
	Events       []Event      `yaml:"events"`
}

// Default returns the configuration used when no file is given: 9-to-5,
// Monday through Friday, empty calendar.
func Default() Config {
	return Config{
		WorkingHours: WorkingHours{
			Start: "09:00",
			End:   "17:00",
			Days:  []int{1, 2, 3, 4, 5},
		},
	}
}

// Load reads and parses a schedule file, filling unset working-hours fields
// with defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaults := Default().WorkingHours
	if cfg.WorkingHours.Start == "" {
		cfg.WorkingHours.Start = defaults.Start
	}
	if cfg.WorkingHours.End == "" {
		cfg.WorkingHours.End = defaults.End
	}
	if len(cfg.WorkingHours.Days) == 0 {
		cfg.WorkingHours.Days = defaults.Days
	}

	return cfg, nil
}

// Hours converts the configured window into the availability type.
func (c Config) Hours() (availability.WorkingHours, error) {
	start, err := availability.ParseTimeOfDay(c.WorkingHours.Start)
	if err != nil {
		return availability.WorkingHours{}, err
	}
	end, err := availability.ParseTimeOfDay(c.WorkingHours.End)
	if err != nil {
		return availability.WorkingHours{}, err
	}

	hours := availability.WorkingHours{
		Start:          start,
		End:            end,
		ActiveWeekdays: c.WorkingHours.Days,
	}
	if err := hours.Validate(); err != nil {
		return availability.WorkingHours{}, err
	}
	return hours, nil
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// BusyIntervals returns every configured event's interval.
func (c Config) BusyIntervals() []availability.Interval {
	intervals := make([]availability.Interval, 0, len(c.Events))
	for _, ev := range c.Events {
		intervals = append(intervals, availability.Interval{Start: ev.Start, End: ev.End})
	}
	return intervals
}
