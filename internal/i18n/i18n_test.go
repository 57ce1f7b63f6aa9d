package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert.Equal(t, Hindi, Parse("hi"))
	assert.Equal(t, Hindi, Parse("hi-IN,hi;q=0.9"))
	assert.Equal(t, English, Parse(""))
	assert.Equal(t, English, Parse("fr"))
}

func TestTranslate(t *testing.T) {
	assert.Equal(t, "Inquiry received", Translate("contact.received", English))
	assert.Equal(t, "पूछताछ प्राप्त हो गई", Translate("contact.received", Hindi))
	assert.Equal(t, "no.such.key", Translate("no.such.key", Hindi))
}

func TestLocalize_FallsBackToEnglish(t *testing.T) {
	assert.Equal(t, "Cottage", Localize("Cottage", "", Hindi))
	assert.Equal(t, "कुटिया", Localize("Cottage", "कुटिया", Hindi))
	assert.Equal(t, "Cottage", Localize("Cottage", "कुटिया", English))
}
