package booking

import (
	"gorm.io/gorm"

	"github.com/prayag-camps/magh-mela-api/internal/models"
)

// View selects one of the admin partitions of the booking table.
type View string

const (
	ViewAll     View = "all"
	ViewOnline  View = "online"
	ViewInquiry View = "inquiry"
)

// IsOnline reports whether b belongs to the paid-token partition.
func IsOnline(b models.Booking) bool {
	return b.BookingType == models.TypeOnlineToken
}

// IsInquiry reports whether b belongs to the callback partition. Rows created
// before the type column existed have no type and count as inquiries.
func IsInquiry(b models.Booking) bool {
	return b.BookingType == models.TypeInquiryCall || b.BookingType == ""
}

// Partition splits bookings into the two admin lists, preserving order.
func Partition(bookings []models.Booking) (online, inquiry []models.Booking) {
	for _, b := range bookings {
		switch {
		case IsOnline(b):
			online = append(online, b)
		case IsInquiry(b):
			inquiry = append(inquiry, b)
		}
	}
	return online, inquiry
}

func ownedBy(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

func inView(v View) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch v {
		case ViewOnline:
			return db.Where("booking_type = ?", models.TypeOnlineToken)
		case ViewInquiry:
			return db.Where("booking_type = ? OR booking_type = '' OR booking_type IS NULL", models.TypeInquiryCall)
		default:
			return db
		}
	}
}

func newestFirst(desc bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if desc {
			return db.Order("created_at DESC").Order("id DESC")
		}
		return db.Order("created_at ASC").Order("id ASC")
	}
}
