package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prayag-camps/magh-mela-api/internal/i18n"
)

func TestBathingDates_Localized(t *testing.T) {
	dates := BathingDates(i18n.Hindi)
	require.Len(t, dates, 6)
	assert.Equal(t, "मौनी अमावस्या", dates[2].Name)
	assert.Equal(t, Highest, dates[2].Importance)

	dates[0].NameEn = "changed"
	assert.Equal(t, "Paush Purnima (Start)", BathingDates(i18n.English)[0].NameEn)
}

func TestUpcoming(t *testing.T) {
	got := Upcoming(time.Date(2026, 1, 18, 9, 0, 0, 0, time.UTC), i18n.English)
	require.Len(t, got, 4)
	assert.Equal(t, "Mauni Amavasya", got[0].Name)

	assert.Empty(t, Upcoming(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), i18n.English))
}
