// Package calendar holds the Magh Mela 2026 snan (holy bathing) dates. The
// list is fixed for the season and is served as-is.
package calendar

import (
	"time"

	"github.com/prayag-camps/magh-mela-api/internal/i18n"
)

type Importance string

const (
	High    Importance = "high"
	Highest Importance = "highest"
)

type BathingDate struct {
	Date       string     `json:"date"`
	NameEn     string     `json:"nameEn"`
	NameHi     string     `json:"nameHi"`
	Name       string     `json:"name,omitempty"`
	Importance Importance `json:"importance"`
}

var bathingDates = []BathingDate{
	{Date: "2026-01-03", NameEn: "Paush Purnima (Start)", NameHi: "पौष पूर्णिमा (आरंभ)", Importance: High},
	{Date: "2026-01-14", NameEn: "Makar Sankranti", NameHi: "मकर संक्रांति", Importance: High},
	{Date: "2026-01-18", NameEn: "Mauni Amavasya", NameHi: "मौनी अमावस्या", Importance: Highest},
	{Date: "2026-01-23", NameEn: "Basant Panchami", NameHi: "बसंत पंचमी", Importance: High},
	{Date: "2026-02-01", NameEn: "Maghi Purnima", NameHi: "माघी पूर्णिमा", Importance: High},
	{Date: "2026-02-15", NameEn: "Maha Shivaratri", NameHi: "महा शिवरात्रि", Importance: Highest},
}

// BathingDates returns a copy of the calendar with Name set for locale.
func BathingDates(locale i18n.Locale) []BathingDate {
	out := make([]BathingDate, len(bathingDates))
	for i, d := range bathingDates {
		d.Name = i18n.Localize(d.NameEn, d.NameHi, locale)
		out[i] = d
	}
	return out
}

// Upcoming returns the dates on or after day, in calendar order.
func Upcoming(day time.Time, locale i18n.Locale) []BathingDate {
	cutoff := day.Format("2006-01-02")
	var out []BathingDate
	for _, d := range BathingDates(locale) {
		if d.Date >= cutoff {
			out = append(out, d)
		}
	}
	return out
}
