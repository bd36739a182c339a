// Command schedcal exercises the scheduling core from the command line: it
// expands recurrence rules, lists open slots and ranks meeting suggestions
// against a YAML schedule file.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/mo"
	"github.com/urfave/cli/v2"

	"github.com/plannerkit/schedcore/availability"
	"github.com/plannerkit/schedcore/internal/config"
	"github.com/plannerkit/schedcore/recurrence"
	"github.com/plannerkit/schedcore/suggest"
	"github.com/plannerkit/schedcore/suggest/memory"
	"github.com/plannerkit/schedcore/timefmt"
	"github.com/plannerkit/schedcore/xcal"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "schedcal",
		Usage: "Expand recurring events, find open slots and suggest meeting times.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to the YAML schedule file.",
				EnvVars: []string{"SCHEDCAL_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			expandCommand(),
			slotsCommand(),
			suggestCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func expandCommand() *cli.Command {
	return &cli.Command{
		Name:  "expand",
		Usage: "Materialize the occurrence dates of a recurrence rule.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "start", Usage: "Anchor date (2006-01-02 or RFC3339).", Required: true},
			&cli.StringFlag{Name: "freq", Usage: "daily, weekly, monthly, yearly or custom.", Value: "weekly"},
			&cli.IntFlag{Name: "interval", Usage: "Repeat every N units.", Value: 1},
			&cli.IntFlag{Name: "count", Usage: "Stop after N occurrences."},
			&cli.StringFlag{Name: "until", Usage: "Stop after this date (2006-01-02)."},
			&cli.IntSliceFlag{Name: "weekdays", Usage: "Weekly filter, 0=Sunday..6=Saturday."},
			&cli.IntSliceFlag{Name: "monthdays", Usage: "Monthly filter, days of month."},
			&cli.IntSliceFlag{Name: "months", Usage: "Yearly filter, months 1..12."},
			&cli.IntFlag{Name: "max", Usage: "Iteration cap.", Value: recurrence.DefaultMaxOccurrences},
			&cli.StringFlag{Name: "format", Usage: "Output format: text, ics or xcal.", Value: "text"},
			&cli.StringFlag{Name: "summary", Usage: "Event title used by ics/xcal output.", Value: "Recurring event"},
			&cli.IntFlag{Name: "duration", Usage: "Event length in minutes used by ics/xcal output.", Value: 60},
		},
		Action: func(c *cli.Context) error {
			logger := setupLogger()
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			anchor, err := parseDate(c.String("start"), loc)
			if err != nil {
				return err
			}

			rule, err := buildRule(c, loc)
			if err != nil {
				return err
			}

			dates, err := recurrence.Expand(anchor, rule, c.Int("max"))
			if err != nil {
				return fmt.Errorf("failed to expand rule: %w", err)
			}
			logger.Info("expanded recurrence rule",
				"frequency", rule.Frequency.String(),
				"interval", rule.Interval,
				"occurrences", len(dates))

			duration := time.Duration(c.Int("duration")) * time.Minute
			switch c.String("format") {
			case "text":
				for _, d := range dates {
					fmt.Println(d.Format("Mon Jan 2 2006 15:04"))
				}
			case "ics":
				ics, err := recurrence.EventICS(c.String("summary"), anchor, duration, rule)
				if err != nil {
					return err
				}
				fmt.Print(ics)
			case "xcal":
				doc := xcal.Occurrences(c.String("summary"), dates, duration)
				doc.Indent(2)
				if _, err := doc.WriteTo(os.Stdout); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q", c.String("format"))
			}
			return nil
		},
	}
}

func slotsCommand() *cli.Command {
	return &cli.Command{
		Name:  "slots",
		Usage: "List open slots on a day, given the configured schedule.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Usage: "Day to search (2006-01-02).", Required: true},
			&cli.IntFlag{Name: "duration", Usage: "Slot length in minutes.", Value: 30},
			&cli.IntFlag{Name: "granularity", Usage: "Candidate step in minutes.", Value: 15},
		},
		Action: func(c *cli.Context) error {
			logger := setupLogger()
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			day, err := parseDate(c.String("date"), loc)
			if err != nil {
				return err
			}
			hours, err := cfg.Hours()
			if err != nil {
				return err
			}

			slots, err := availability.FindOpenSlots(day,
				time.Duration(c.Int("duration"))*time.Minute,
				cfg.BusyIntervals(), hours,
				availability.WithGranularity(time.Duration(c.Int("granularity"))*time.Minute))
			if err != nil {
				return fmt.Errorf("failed to search slots: %w", err)
			}
			logger.Info("searched open slots",
				"day", day.Format("2006-01-02"),
				"busy", len(cfg.BusyIntervals()),
				"open", len(slots))

			if len(slots) == 0 {
				fmt.Println("no open slots")
				return nil
			}
			for _, slot := range slots {
				fmt.Println(timefmt.EventTime(slot.Start, slot.End, false))
			}
			return nil
		},
	}
}

func suggestCommand() *cli.Command {
	return &cli.Command{
		Name:  "suggest",
		Usage: "Rank meeting times for a participant set on a preferred day.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Usage: "Preferred day (2006-01-02).", Required: true},
			&cli.IntFlag{Name: "duration", Usage: "Meeting length in minutes.", Value: 30},
			&cli.StringSliceFlag{Name: "participants", Usage: "Participant identifiers."},
			&cli.StringFlag{Name: "from", Usage: "Window start, HH:MM."},
			&cli.StringFlag{Name: "to", Usage: "Window end, HH:MM."},
			&cli.StringFlag{Name: "format", Usage: "Output format: text or xcal.", Value: "text"},
		},
		Action: func(c *cli.Context) error {
			logger := setupLogger()
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			day, err := parseDate(c.String("date"), loc)
			if err != nil {
				return err
			}

			window := mo.None[suggest.HourWindow]()
			if c.String("from") != "" || c.String("to") != "" {
				w, err := suggest.ParseHourWindow(c.String("from"), c.String("to"))
				if err != nil {
					return err
				}
				window = mo.Some(w)
			}

			store := memory.New()
			for _, ev := range cfg.Events {
				store.Add(ev.Title, ev.Participants, ev.Start, ev.End)
			}

			scheduler, err := suggest.NewScheduler(store)
			if err != nil {
				return err
			}

			duration := time.Duration(c.Int("duration")) * time.Minute
			suggestions, err := scheduler.Suggest(c.Context, c.StringSlice("participants"), duration, day, window)
			if err != nil {
				return fmt.Errorf("failed to build suggestions: %w", err)
			}
			logger.Info("ranked meeting times",
				"day", day.Format("2006-01-02"),
				"participants", len(c.StringSlice("participants")),
				"suggestions", len(suggestions))

			switch c.String("format") {
			case "text":
				if len(suggestions) == 0 {
					fmt.Println("no suggestions above threshold")
					return nil
				}
				for _, s := range suggestions {
					fmt.Printf("%s  %.2f  %s\n", s.Time.Format("15:04"), s.Confidence, s.Reason)
					for _, alt := range s.Alternatives {
						fmt.Printf("    alternative: %s\n", alt.Format("15:04"))
					}
				}
			case "xcal":
				doc := xcal.Suggestions("Suggested meeting", duration, suggestions)
				doc.Indent(2)
				if _, err := doc.WriteTo(os.Stdout); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q", c.String("format"))
			}
			return nil
		},
	}
}

func setupLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func loadConfig(c *cli.Context) (config.Config, error) {
	path := c.String("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func buildRule(c *cli.Context, loc *time.Location) (recurrence.Rule, error) {
	rule := recurrence.Rule{
		Interval:   c.Int("interval"),
		End:        recurrence.Never(),
		ByWeekday:  c.IntSlice("weekdays"),
		ByMonthDay: c.IntSlice("monthdays"),
		ByMonth:    c.IntSlice("months"),
	}

	switch c.String("freq") {
	case "daily":
		rule.Frequency = recurrence.Daily
	case "weekly":
		rule.Frequency = recurrence.Weekly
	case "monthly":
		rule.Frequency = recurrence.Monthly
	case "yearly":
		rule.Frequency = recurrence.Yearly
	case "custom":
		rule.Frequency = recurrence.Custom
	default:
		return recurrence.Rule{}, fmt.Errorf("unknown frequency %q", c.String("freq"))
	}

	if c.Int("count") > 0 && c.String("until") != "" {
		return recurrence.Rule{}, fmt.Errorf("count and until are mutually exclusive")
	}
	if c.Int("count") > 0 {
		rule.End = recurrence.AfterCount(c.Int("count"))
	}
	if c.String("until") != "" {
		until, err := parseDate(c.String("until"), loc)
		if err != nil {
			return recurrence.Rule{}, err
		}
		rule.End = recurrence.OnDate(until)
	}

	return rule, nil
}

func parseDate(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", value, err)
	}
	return t, nil
}
