package models

import (
	"time"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

type BookingType string

const (
	TypeOnlineToken BookingType = "online_token"
	TypeInquiryCall BookingType = "inquiry_call"
	TypeAdminManual BookingType = "admin_manual"
)

func (t BookingType) Valid() bool {
	switch t {
	case TypeOnlineToken, TypeInquiryCall, TypeAdminManual:
		return true
	}
	return false
}

type Booking struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID *uint `gorm:"index" json:"userId"` // nil for admin-entered walk-ins and legacy guest inquiries
	CampID uint  `gorm:"not null;index" json:"campId"` // plain reference; deleting a camp leaves its bookings alone

	GuestName string `gorm:"not null" json:"guestName"`
	Mobile    string `gorm:"not null" json:"mobile"`

	CheckIn    time.Time `gorm:"type:date;not null" json:"checkIn"`
	CheckOut   time.Time `gorm:"type:date;not null" json:"checkOut"`
	GuestCount int       `gorm:"not null;default:1" json:"guestCount"`

	TotalAmount   int `gorm:"not null" json:"totalAmount"`
	AdvanceAmount int `gorm:"not null;default:0" json:"advanceAmount"`

	Status        BookingStatus `gorm:"type:text;not null;default:pending;index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:text;not null;default:unpaid" json:"paymentStatus"`
	BookingType   BookingType   `gorm:"type:text" json:"bookingType"` // empty on rows that predate the column

	SpecialNeeds string    `gorm:"type:text" json:"specialNeeds"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
}

// OwnedBy reports whether userID is the booking's owner.
func (b Booking) OwnedBy(userID uint) bool {
	return b.UserID != nil && *b.UserID == userID
}
