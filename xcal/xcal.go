// Package xcal renders scheduling results as xCal (RFC 6321) documents for
// callers that surface XML rather than iCalendar text.
package xcal

import (
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/plannerkit/schedcore/suggest"
)

// Namespace is the xCal XML namespace.
const Namespace = "urn:ietf:params:xml:ns:icalendar-2.0"

const dateTimeLayout = "2006-01-02T15:04:05"

// Occurrences renders a materialized recurring series as an xCal document
// with one vevent per occurrence.
func Occurrences(summary string, occurrences []time.Time, duration time.Duration) *etree.Document {
	doc, components := newCalendarDocument()

	for _, start := range occurrences {
		props := newComponent(components, "vevent")
		addTextProperty(props, "summary", summary)
		addDateTimeProperty(props, "dtstart", start)
		addDateTimeProperty(props, "dtend", start.Add(duration))
	}

	return doc
}

// Suggestions renders ranked meeting suggestions as an xCal document. Each
// suggestion becomes a vevent carrying its confidence and alternatives as
// x-properties and its conflicts as freebusy periods.
func Suggestions(title string, duration time.Duration, suggestions []suggest.Suggestion) *etree.Document {
	doc, components := newCalendarDocument()

	for _, s := range suggestions {
		props := newComponent(components, "vevent")
		addTextProperty(props, "summary", title)
		addDateTimeProperty(props, "dtstart", s.Time)
		addDateTimeProperty(props, "dtend", s.Time.Add(duration))
		addTextProperty(props, "description", s.Reason)

		confidence := props.CreateElement("x-schedcore-confidence")
		confidence.CreateElement("float").SetText(fmt.Sprintf("%.2f", s.Confidence))

		for _, alt := range s.Alternatives {
			addDateTimeProperty(props, "x-schedcore-alternative", alt)
		}
		for _, conflict := range s.Conflicts {
			freebusy := props.CreateElement("freebusy")
			period := freebusy.CreateElement("period")
			period.SetText(fmt.Sprintf("%s/%s",
				conflict.Start.Format(dateTimeLayout), conflict.End.Format(dateTimeLayout)))
		}
	}

	return doc
}

// newCalendarDocument builds the icalendar/vcalendar skeleton and returns the
// document along with the components element new vevents hang off.
func newCalendarDocument() (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	icalendar := doc.CreateElement("icalendar")
	icalendar.CreateAttr("xmlns", Namespace)

	vcalendar := icalendar.CreateElement("vcalendar")

	props := vcalendar.CreateElement("properties")
	addTextProperty(props, "version", "2.0")
	addTextProperty(props, "prodid", "-//Plannerkit//Schedcore//EN")

	return doc, vcalendar.CreateElement("components")
}

func newComponent(components *etree.Element, name string) *etree.Element {
	return components.CreateElement(name).CreateElement("properties")
}

func addTextProperty(props *etree.Element, name, value string) {
	props.CreateElement(name).CreateElement("text").SetText(value)
}

func addDateTimeProperty(props *etree.Element, name string, t time.Time) {
	props.CreateElement(name).CreateElement("date-time").SetText(t.Format(dateTimeLayout))
}
