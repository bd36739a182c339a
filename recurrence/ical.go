package recurrence

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
)

// ErrUnsupportedRRule is returned when an RRULE uses parts that have no Rule
// equivalent (sub-daily frequencies, BYSETPOS, positional weekdays and so on).
var ErrUnsupportedRRule = errors.New("unsupported RRULE")

// rruleWeekdays maps weekday numbers (0=Sunday..6=Saturday) to rrule weekdays.
var rruleWeekdays = [7]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// RRuleString renders the rule as an RRULE property value, e.g.
// "FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,WE,FR". Custom rules step by days and are
// rendered as daily rules, which preserves their expansion semantics.
// Exceptions are not part of the RRULE; they map to EXDATE properties.
func RRuleString(rule Rule) (string, error) {
	if err := rule.Validate(); err != nil {
		return "", err
	}

	opt := rrule.ROption{
		Interval: rule.Interval,
	}

	switch rule.Frequency {
	case Daily, Custom:
		opt.Freq = rrule.DAILY
	case Weekly:
		opt.Freq = rrule.WEEKLY
	case Monthly:
		opt.Freq = rrule.MONTHLY
	case Yearly:
		opt.Freq = rrule.YEARLY
	}

	switch rule.End.Type {
	case EndOnDate:
		opt.Until = rule.End.Date
	case EndAfterCount:
		opt.Count = rule.End.Count
	}

	if rule.Frequency == Weekly {
		for _, wd := range rule.ByWeekday {
			opt.Byweekday = append(opt.Byweekday, rruleWeekdays[wd])
		}
	}
	if rule.Frequency == Monthly {
		opt.Bymonthday = append(opt.Bymonthday, rule.ByMonthDay...)
	}
	if rule.Frequency == Yearly {
		opt.Bymonth = append(opt.Bymonth, rule.ByMonth...)
	}

	r, err := rrule.NewRRule(opt)
	if err != nil {
		return "", fmt.Errorf("failed to build RRULE: %w", err)
	}

	return r.String(), nil
}

// ParseRRule converts an RRULE property value (without the "RRULE:" prefix)
// into a Rule. Parts with no Rule equivalent are rejected rather than
// silently dropped.
func ParseRRule(value string) (Rule, error) {
	opt, err := rrule.StrToROption(value)
	if err != nil {
		return Rule{}, fmt.Errorf("failed to parse RRULE %q: %w", value, err)
	}

	var rule Rule

	switch opt.Freq {
	case rrule.DAILY:
		rule.Frequency = Daily
	case rrule.WEEKLY:
		rule.Frequency = Weekly
	case rrule.MONTHLY:
		rule.Frequency = Monthly
	case rrule.YEARLY:
		rule.Frequency = Yearly
	default:
		return Rule{}, fmt.Errorf("%w: frequency %v", ErrUnsupportedRRule, opt.Freq)
	}

	rule.Interval = opt.Interval
	if rule.Interval == 0 {
		rule.Interval = 1
	}

	switch {
	case opt.Count > 0 && !opt.Until.IsZero():
		return Rule{}, fmt.Errorf("%w: both COUNT and UNTIL present", ErrUnsupportedRRule)
	case opt.Count > 0:
		rule.End = AfterCount(opt.Count)
	case !opt.Until.IsZero():
		rule.End = OnDate(opt.Until)
	default:
		rule.End = Never()
	}

	if len(opt.Bysetpos) > 0 || len(opt.Byyearday) > 0 || len(opt.Byweekno) > 0 ||
		len(opt.Byhour) > 0 || len(opt.Byminute) > 0 || len(opt.Bysecond) > 0 {
		return Rule{}, fmt.Errorf("%w: sub-daily or positional parts", ErrUnsupportedRRule)
	}

	for _, wd := range opt.Byweekday {
		if wd.N() != 0 {
			return Rule{}, fmt.Errorf("%w: positional weekday %v", ErrUnsupportedRRule, wd)
		}
		// rrule counts weekdays from Monday; Rule counts from Sunday.
		rule.ByWeekday = append(rule.ByWeekday, (wd.Day()+1)%7)
	}
	rule.ByMonthDay = append(rule.ByMonthDay, opt.Bymonthday...)
	rule.ByMonth = append(rule.ByMonth, opt.Bymonth...)

	if err := rule.Validate(); err != nil {
		return Rule{}, err
	}

	return rule, nil
}

// EventICS renders a recurring event as a single-VEVENT VCALENDAR document.
// The caller gets back the encoded iCalendar text ready for export.
func EventICS(summary string, anchor time.Time, duration time.Duration, rule Rule) (string, error) {
	rruleValue, err := RRuleString(rule)
	if err != nil {
		return "", err
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//Plannerkit//Schedcore//EN")

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uuid.NewString())
	event.Props.SetDateTime(ical.PropDateTimeStamp, time.Now())
	event.Props.SetDateTime(ical.PropDateTimeStart, anchor)
	event.Props.SetDateTime(ical.PropDateTimeEnd, anchor.Add(duration))
	event.Props.SetText(ical.PropSummary, summary)

	// SetText would escape the semicolons inside the rule, so the RRULE
	// property is added with its raw value.
	rruleProp := ical.NewProp(ical.PropRecurrenceRule)
	rruleProp.Value = rruleValue
	event.Props.Add(rruleProp)

	if len(rule.Exceptions) > 0 {
		parts := make([]string, 0, len(rule.Exceptions))
		for _, ex := range rule.Exceptions {
			parts = append(parts, ex.Format("20060102"))
		}

		prop := ical.NewProp(ical.PropExceptionDates)
		prop.Value = strings.Join(parts, ",")
		prop.Params["VALUE"] = []string{"DATE"}
		event.Props.Add(prop)
	}

	cal.Children = append(cal.Children, event.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.String(), nil
}
