package validation

import (
	"strings"

	"github.com/prayag-camps/magh-mela-api/internal/booking"
	"github.com/prayag-camps/magh-mela-api/internal/models"
)

// BookingForm is the body of a booking submission. Fields are omitempty so
// that missing values reach ValidateStruct and come back as 400s with field
// details.
type BookingForm struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	CampID       FlexInt `json:"campId,omitempty" validate:"required,gt=0" doc:"Camp to book"`
	GuestName    string  `json:"guestName,omitempty" validate:"required,min=2,max=200" doc:"Name of the lead guest"`
	CountryCode  string  `json:"countryCode,omitempty" doc:"Dial code picked in the form, e.g. +91"`
	Mobile       string  `json:"mobile,omitempty" validate:"required,numeric,min=10,max=15" doc:"Contact number"`
	CheckIn      string  `json:"checkIn,omitempty" validate:"required" doc:"Arrival date (YYYY-MM-DD)"`
	CheckOut     string  `json:"checkOut,omitempty" validate:"required" doc:"Departure date (YYYY-MM-DD)"`
	GuestCount   FlexInt `json:"guestCount,omitempty" validate:"min=1,max=500" doc:"Number of guests"`
	BookingType  string  `json:"bookingType,omitempty" validate:"omitempty,oneof=online_token inquiry_call admin_manual" doc:"Defaults to inquiry_call"`
	SpecialNeeds string  `json:"specialNeeds,omitempty" validate:"max=4000" doc:"Free-text requests"`
}

// Request normalizes the form and converts it into a booking request. Date
// order is not checked here; the pricing rules clamp odd ranges.
func (f *BookingForm) Request() (booking.Request, error) {
	f.GuestName = strings.TrimSpace(f.GuestName)
	f.Mobile = NormalizeMobile(f.CountryCode, f.Mobile)
	f.BookingType = strings.TrimSpace(f.BookingType)
	f.SpecialNeeds = strings.TrimSpace(f.SpecialNeeds)

	if err := ValidateStruct(f); err != nil {
		return booking.Request{}, err
	}

	checkIn, err := ParseDate("checkIn", f.CheckIn)
	if err != nil {
		return booking.Request{}, err
	}
	checkOut, err := ParseDate("checkOut", f.CheckOut)
	if err != nil {
		return booking.Request{}, err
	}

	bt := models.BookingType(f.BookingType)
	if bt == "" {
		bt = models.TypeInquiryCall
	}

	return booking.Request{
		CampID:       uint(f.CampID),
		GuestName:    f.GuestName,
		Mobile:       f.Mobile,
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		GuestCount:   int(f.GuestCount),
		BookingType:  bt,
		SpecialNeeds: f.SpecialNeeds,
	}, nil
}

// ContactForm is a general inquiry. It never becomes a booking.
type ContactForm struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Name        string `json:"name,omitempty" validate:"required,min=2,max=200"`
	CountryCode string `json:"countryCode,omitempty"`
	Mobile      string `json:"mobile,omitempty" validate:"required,numeric,min=10,max=15"`
	Message     string `json:"message,omitempty" validate:"max=4000"`
}

func (f *ContactForm) Normalize() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Mobile = NormalizeMobile(f.CountryCode, f.Mobile)
	f.Message = strings.TrimSpace(f.Message)
	return ValidateStruct(f)
}

type RegisterForm struct {
	Username string `json:"username,omitempty" validate:"required,min=3,max=254"`
	Password string `json:"password,omitempty" validate:"required,min=6,max=72"`
	Name     string `json:"name,omitempty" validate:"required,min=2,max=200"`
	Mobile   string `json:"mobile,omitempty" validate:"omitempty,numeric,min=10,max=15"`
}

func (f *RegisterForm) Normalize() error {
	f.Username = strings.ToLower(strings.TrimSpace(f.Username))
	f.Name = strings.TrimSpace(f.Name)
	if f.Mobile != "" {
		f.Mobile = NormalizeMobile("", f.Mobile)
	}
	return ValidateStruct(f)
}

type LoginForm struct {
	Username string `json:"username,omitempty" validate:"required"`
	Password string `json:"password,omitempty" validate:"required"`
}

func (f *LoginForm) Normalize() error {
	f.Username = strings.ToLower(strings.TrimSpace(f.Username))
	return ValidateStruct(f)
}

// ProfileForm is a partial profile update; nil fields are left alone.
type ProfileForm struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Mobile   *string `json:"mobile,omitempty" validate:"omitempty,max=20"`
	ImageURL *string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=500"`
	City     *string `json:"city,omitempty" validate:"omitempty,max=100"`
	State    *string `json:"state,omitempty" validate:"omitempty,max=100"`
	Zip      *string `json:"zip,omitempty" validate:"omitempty,max=20"`
	Country  *string `json:"country,omitempty" validate:"omitempty,max=100"`
}

// Apply validates the form and copies the set fields onto u.
func (f *ProfileForm) Apply(u *models.User) error {
	if err := ValidateStruct(f); err != nil {
		return err
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&u.Name, f.Name)
	set(&u.Mobile, f.Mobile)
	set(&u.ImageURL, f.ImageURL)
	set(&u.Address, f.Address)
	set(&u.City, f.City)
	set(&u.State, f.State)
	set(&u.Zip, f.Zip)
	set(&u.Country, f.Country)
	return nil
}

// CampForm creates a camp or, with Partial, patches one.
type CampForm struct {
	NameEn         *string  `json:"nameEn,omitempty" validate:"omitempty,min=2,max=200"`
	NameHi         *string  `json:"nameHi,omitempty" validate:"omitempty,max=200"`
	DescriptionEn  *string  `json:"descriptionEn,omitempty" validate:"omitempty,min=2"`
	DescriptionHi  *string  `json:"descriptionHi,omitempty"`
	Price          *int     `json:"price,omitempty" validate:"omitempty,gt=0,max=10000000"`
	Capacity       *string  `json:"capacity,omitempty" validate:"omitempty,min=1,max=100"`
	Features       []string `json:"features,omitempty" validate:"omitempty,dive,min=1,max=100"`
	ImageURL       *string  `json:"imageUrl,omitempty"`
	TotalInventory *int     `json:"totalInventory,omitempty" validate:"omitempty,gte=0,max=100000"`
}

// Apply copies set fields onto c. When partial is false the fields a new
// camp cannot do without must be present.
func (f *CampForm) Apply(c *models.Camp, partial bool) error {
	if err := ValidateStruct(f); err != nil {
		return err
	}
	if !partial {
		var missing []FieldError
		if f.NameEn == nil {
			missing = append(missing, FieldError{Field: "nameEn", Tag: "required", Message: "is required"})
		}
		if f.DescriptionEn == nil {
			missing = append(missing, FieldError{Field: "descriptionEn", Tag: "required", Message: "is required"})
		}
		if f.Price == nil {
			missing = append(missing, FieldError{Field: "price", Tag: "required", Message: "is required"})
		}
		if f.Capacity == nil {
			missing = append(missing, FieldError{Field: "capacity", Tag: "required", Message: "is required"})
		}
		if len(missing) > 0 {
			return &RequestValidationError{Fields: missing}
		}
	}

	if f.NameEn != nil {
		c.NameEn = strings.TrimSpace(*f.NameEn)
	}
	if f.NameHi != nil {
		c.NameHi = strings.TrimSpace(*f.NameHi)
	}
	if f.DescriptionEn != nil {
		c.DescriptionEn = strings.TrimSpace(*f.DescriptionEn)
	}
	if f.DescriptionHi != nil {
		c.DescriptionHi = strings.TrimSpace(*f.DescriptionHi)
	}
	if f.Price != nil {
		c.Price = *f.Price
	}
	if f.Capacity != nil {
		c.Capacity = strings.TrimSpace(*f.Capacity)
	}
	if f.Features != nil {
		c.Features = models.StringSlice(f.Features)
	}
	if f.ImageURL != nil {
		c.ImageURL = strings.TrimSpace(*f.ImageURL)
	}
	if f.TotalInventory != nil {
		c.TotalInventory = *f.TotalInventory
	}
	return nil
}

type PujaForm struct {
	NameEn        *string `json:"nameEn,omitempty" validate:"omitempty,min=2,max=200"`
	NameHi        *string `json:"nameHi,omitempty" validate:"omitempty,max=200"`
	DescriptionEn *string `json:"descriptionEn,omitempty" validate:"omitempty,min=2"`
	DescriptionHi *string `json:"descriptionHi,omitempty"`
	Price         *int    `json:"price,omitempty" validate:"omitempty,gte=0,max=10000000"`
	ImageURL      *string `json:"imageUrl,omitempty"`
}

func (f *PujaForm) Apply(p *models.PujaService, partial bool) error {
	if err := ValidateStruct(f); err != nil {
		return err
	}
	if !partial {
		var missing []FieldError
		if f.NameEn == nil {
			missing = append(missing, FieldError{Field: "nameEn", Tag: "required", Message: "is required"})
		}
		if f.DescriptionEn == nil {
			missing = append(missing, FieldError{Field: "descriptionEn", Tag: "required", Message: "is required"})
		}
		if len(missing) > 0 {
			return &RequestValidationError{Fields: missing}
		}
	}

	if f.NameEn != nil {
		p.NameEn = strings.TrimSpace(*f.NameEn)
	}
	if f.NameHi != nil {
		p.NameHi = strings.TrimSpace(*f.NameHi)
	}
	if f.DescriptionEn != nil {
		p.DescriptionEn = strings.TrimSpace(*f.DescriptionEn)
	}
	if f.DescriptionHi != nil {
		p.DescriptionHi = strings.TrimSpace(*f.DescriptionHi)
	}
	if f.Price != nil {
		price := *f.Price
		p.Price = &price
	}
	if f.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*f.ImageURL)
	}
	return nil
}
