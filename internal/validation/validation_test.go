package validation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prayag-camps/magh-mela-api/internal/domain"
	"github.com/prayag-camps/magh-mela-api/internal/models"
)

func validForm() BookingForm {
	return BookingForm{
		CampID:      1,
		GuestName:   "  Asha Devi ",
		CountryCode: "+91",
		Mobile:      "98765-43210",
		CheckIn:     "2026-01-14",
		CheckOut:    "2026-01-16",
		GuestCount:  2,
	}
}

func TestFlexInt_AcceptsNumberAndString(t *testing.T) {
	var body struct {
		GuestCount FlexInt `json:"guestCount"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"guestCount":"3"}`), &body))
	assert.Equal(t, FlexInt(3), body.GuestCount)

	require.NoError(t, json.Unmarshal([]byte(`{"guestCount":4}`), &body))
	assert.Equal(t, FlexInt(4), body.GuestCount)

	assert.Error(t, json.Unmarshal([]byte(`{"guestCount":"three"}`), &body))
}

func TestNormalizeMobile(t *testing.T) {
	assert.Equal(t, "919876543210", NormalizeMobile("+91", "98765 43210"))
	assert.Equal(t, "919876543210", NormalizeMobile("+91", "+91 (98765) 43210"))
	assert.Equal(t, "9876543210", NormalizeMobile("", "98765.43210"))

	// Local numbers that happen to start with the dial code still get it.
	assert.Equal(t, "919198765432", NormalizeMobile("+91", "9198765432"))
	assert.Equal(t, "919198765432", NormalizeMobile("91", "91987-65432"))
	// A number typed with its own + keeps its own code.
	assert.Equal(t, "14155550123", NormalizeMobile("+91", "+1 415 555 0123"))
}

func TestBookingForm_Request(t *testing.T) {
	f := validForm()
	req, err := f.Request()
	require.NoError(t, err)

	assert.Equal(t, uint(1), req.CampID)
	assert.Equal(t, "Asha Devi", req.GuestName)
	assert.Equal(t, "919876543210", req.Mobile)
	assert.Equal(t, 2, req.GuestCount)
	assert.Equal(t, models.TypeInquiryCall, req.BookingType)
	assert.Equal(t, time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC), req.CheckIn)
}

func TestBookingForm_StringGuestCount(t *testing.T) {
	var f BookingForm
	raw := `{"campId":"1","guestName":"Ravi","mobile":"9876543210","checkIn":"2026-01-14","checkOut":"2026-01-15","guestCount":"3","bookingType":"online_token"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &f))

	req, err := f.Request()
	require.NoError(t, err)
	assert.Equal(t, 3, req.GuestCount)
	assert.Equal(t, models.TypeOnlineToken, req.BookingType)
}

func TestBookingForm_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*BookingForm)
		field string
	}{
		{"short name", func(f *BookingForm) { f.GuestName = " A " }, "guestName"},
		{"short mobile", func(f *BookingForm) { f.CountryCode = ""; f.Mobile = "12345" }, "mobile"},
		{"long mobile", func(f *BookingForm) { f.Mobile = "1234567890123456" }, "mobile"},
		{"zero guests", func(f *BookingForm) { f.GuestCount = 0 }, "guestCount"},
		{"too many guests", func(f *BookingForm) { f.GuestCount = 4611686018427387904 }, "guestCount"},
		{"missing camp", func(f *BookingForm) { f.CampID = 0 }, "campId"},
		{"missing check-in", func(f *BookingForm) { f.CheckIn = "" }, "checkIn"},
		{"bad type", func(f *BookingForm) { f.BookingType = "walk_in" }, "bookingType"},
		{"bad date", func(f *BookingForm) { f.CheckOut = "14/01/2026" }, "checkOut"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.edit(&f)
			_, err := f.Request()
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))

			var ve domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestBookingForm_InvertedDatesPassSchema(t *testing.T) {
	f := validForm()
	f.CheckIn, f.CheckOut = "2026-01-16", "2026-01-14"
	_, err := f.Request()
	assert.NoError(t, err)
}

func TestParseDate_RFC3339(t *testing.T) {
	d, err := ParseDate("checkIn", "2026-01-14T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC), d)
}

func TestContactForm(t *testing.T) {
	f := ContactForm{Name: "Gopal", CountryCode: "+91", Mobile: "9876543210", Message: "Need a family tent"}
	require.NoError(t, f.Normalize())
	assert.Equal(t, "919876543210", f.Mobile)

	bad := ContactForm{Name: "G", Mobile: "9876543210"}
	err := bad.Normalize()
	require.Error(t, err)

	var rve *RequestValidationError
	require.ErrorAs(t, err, &rve)
	assert.Equal(t, "name", rve.Fields[0].Field)
}

func TestCampForm_CreateRequiresCoreFields(t *testing.T) {
	name := "Deluxe Cottage"
	f := CampForm{NameEn: &name}
	var c models.Camp
	err := f.Apply(&c, false)
	require.Error(t, err)

	var rve *RequestValidationError
	require.ErrorAs(t, err, &rve)
	assert.Len(t, rve.Fields, 3)

	price := 7000
	patch := CampForm{Price: &price}
	require.NoError(t, patch.Apply(&c, true))
	assert.Equal(t, 7000, c.Price)

	huge := 1 << 62
	tooExpensive := CampForm{Price: &huge}
	err = tooExpensive.Apply(&c, true)
	require.ErrorAs(t, err, &rve)
	assert.Equal(t, "price", rve.Fields[0].Field)
	assert.Equal(t, 7000, c.Price)
}

func TestProfileForm_Apply(t *testing.T) {
	city := " Prayagraj "
	u := models.User{Name: "Old", City: "Delhi"}
	f := ProfileForm{City: &city}
	require.NoError(t, f.Apply(&u))
	assert.Equal(t, "Prayagraj", u.City)
	assert.Equal(t, "Old", u.Name)
}
