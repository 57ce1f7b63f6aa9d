// Package seed loads the default catalog and the admin account.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/prayag-camps/magh-mela-api/internal/auth"
	"github.com/prayag-camps/magh-mela-api/internal/models"
)

func price(v int) *int { return &v }

var DefaultCamps = []models.Camp{
	{
		NameEn:         "Swiss Cottage",
		NameHi:         "स्विस कॉटेज",
		DescriptionEn:  "Premium luxury tents with attached modern bathroom, geyser, and carpeted flooring. Best for families and elderly.",
		DescriptionHi:  "आधुनिक बाथरूम, गीजर और कालीन फर्श के साथ प्रीमियम लक्जरी टेंट। परिवारों और बुजुर्गों के लिए सर्वोत्तम।",
		Price:          5000,
		Capacity:       "2-3 Persons",
		Features:       models.StringSlice{"1 Double Bed", "Attached Toilet", "Geyser", "Carpeted Floor", "24/7 Security"},
		ImageURL:       "https://images.unsplash.com/photo-1523987355523-c7b5b0dd90a7",
		TotalInventory: 5,
	},
	{
		NameEn:         "Deluxe Tent",
		NameHi:         "डीलक्स टेंट",
		DescriptionEn:  "Comfortable tents with twin beds, shared bathroom facilities nearby. Ideal for budget travelers.",
		DescriptionHi:  "ट्विन बेड के साथ आरामदायक टेंट, पास में साझा बाथरूम सुविधाएं। बजट यात्रियों के लिए आदर्श।",
		Price:          3000,
		Capacity:       "2 Persons",
		Features:       models.StringSlice{"2 Single Beds", "Shared Bathroom", "Heater", "Mattress", "Clean Linens"},
		ImageURL:       "https://images.unsplash.com/photo-1478131143081-80f7f84ca84d",
		TotalInventory: 10,
	},
	{
		NameEn:         "Dormitory",
		NameHi:         "शयनगृह",
		DescriptionEn:  "Budget-friendly shared accommodation for large groups or solo travelers.",
		DescriptionHi:  "बड़े समूहों या एकल यात्रियों के लिए बजट-अनुकूल साझा आवास।",
		Price:          999,
		Capacity:       "10 Persons",
		Features:       models.StringSlice{"Single Cot", "Common Locker", "Charging Point", "Shared Washroom"},
		ImageURL:       "https://images.unsplash.com/photo-1504280390367-361c6d9f38f4",
		TotalInventory: 50,
	},
}

var DefaultPujas = []models.PujaService{
	{
		NameEn:        "Rudrabhishek",
		NameHi:        "रुद्राभिषेक",
		DescriptionEn: "Sacred worship of Lord Shiva involving bathing the lingam with offerings like milk and honey.",
		DescriptionHi: "भगवान शिव की पवित्र पूजा जिसमें लिंगम को दूध और शहद जैसे प्रसाद से स्नान कराया जाता है।",
		Price:         price(2100),
		ImageURL:      "https://images.unsplash.com/photo-1605809772656-3c0542363264",
	},
	{
		NameEn:        "Pitra Dosh Nivaran",
		NameHi:        "पितृ दोष निवारण",
		DescriptionEn: "Rituals performed to pacify ancestors and remove obstacles caused by Pitra Dosh.",
		DescriptionHi: "पूर्वजों को शांत करने और पितृ दोष के कारण आने वाली बाधाओं को दूर करने के लिए किए जाने वाले अनुष्ठान।",
		Price:         price(5100),
		ImageURL:      "https://images.unsplash.com/photo-1621833130239-16a7dc732049",
	},
	{
		NameEn:        "Mahamrityunjaya Jaap",
		NameHi:        "महामृत्युंजय जाप",
		DescriptionEn: "Powerful mantra chanting for health, longevity, and conquering the fear of death.",
		DescriptionHi: "स्वास्थ्य, दीर्घायु और मृत्यु के भय पर विजय प्राप्त करने के लिए शक्तिशाली मंत्र जाप।",
		Price:         price(11000),
		ImageURL:      "https://images.unsplash.com/photo-1599557297397-69c76839396e",
	},
	{
		NameEn:        "Satyanarayan Katha",
		NameHi:        "सत्यनारायण कथा",
		DescriptionEn: "Worship of Lord Vishnu to bring prosperity, harmony, and truth to the household.",
		DescriptionHi: "घर में समृद्धि, सद्भाव और सत्य लाने के लिए भगवान विष्णु की पूजा।",
		Price:         price(1500),
		ImageURL:      "https://images.unsplash.com/photo-1608636437943-4dc979261313",
	},
	{
		NameEn:        "Vishesh Ganga Pujan",
		NameHi:        "विशेष गंगा पूजन",
		DescriptionEn: "Special worship and aarti of the holy river Ganga at the Triveni Sangam.",
		DescriptionHi: "त्रिवेणी संगम पर पवित्र नदी गंगा की विशेष पूजा और आरती।",
		Price:         price(1100),
		ImageURL:      "https://images.unsplash.com/photo-1564998708766-3226db224177",
	},
}

// Catalog inserts the default camps and pujas into empty tables. Existing
// rows are never touched, so bookings keep pointing at valid camps.
func Catalog(ctx context.Context, db *gorm.DB) (camps, pujas int, err error) {
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Camp{}).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			rows := make([]models.Camp, len(DefaultCamps))
			copy(rows, DefaultCamps)
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("seed camps: %w", err)
			}
			camps = len(rows)
		}

		if err := tx.Model(&models.PujaService{}).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			rows := make([]models.PujaService, len(DefaultPujas))
			copy(rows, DefaultPujas)
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("seed pujas: %w", err)
			}
			pujas = len(rows)
		}
		return nil
	})
	return camps, pujas, err
}

type AdminAccount struct {
	Username string
	Password string
	Name     string
	Mobile   string
}

// Admin creates the admin account or resets its role and password.
func Admin(ctx context.Context, db *gorm.DB, acct AdminAccount) (*models.User, error) {
	username := strings.ToLower(strings.TrimSpace(acct.Username))
	if username == "" || acct.Password == "" {
		return nil, errors.New("admin username and password are required")
	}
	hash, err := auth.HashPassword(acct.Password)
	if err != nil {
		return nil, err
	}
	name := acct.Name
	if name == "" {
		name = "Administrator"
	}

	var user models.User
	err = db.WithContext(ctx).
		Where(models.User{Username: username}).
		Assign(models.User{Password: &hash, Role: models.RoleAdmin}).
		Attrs(models.User{Name: name, Mobile: acct.Mobile}).
		FirstOrCreate(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
