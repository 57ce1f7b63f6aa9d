package models

import (
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/goccy/go-json"
)

type Camp struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	NameEn         string      `gorm:"not null" json:"nameEn"`
	NameHi         string      `json:"nameHi"`
	DescriptionEn  string      `gorm:"not null" json:"descriptionEn"`
	DescriptionHi  string      `json:"descriptionHi"`
	Price          int         `gorm:"not null" json:"price"` // whole rupees per guest per night
	Capacity       string      `gorm:"not null" json:"capacity"`
	Features       StringSlice `gorm:"type:text" json:"features"`
	ImageURL       string      `json:"imageUrl"`
	TotalInventory int         `gorm:"not null;default:10" json:"totalInventory"` // informational only
}

type PujaService struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	NameEn        string `gorm:"not null" json:"nameEn"`
	NameHi        string `json:"nameHi"`
	DescriptionEn string `gorm:"not null" json:"descriptionEn"`
	DescriptionHi string `json:"descriptionHi"`
	Price         *int   `gorm:"default:0" json:"price"`
	ImageURL      string `json:"imageUrl"`
}

// StringSlice stores a list of strings as a JSON array so the same column
// works on sqlite and postgres.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringSlice) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return errors.New("unsupported type for StringSlice")
	}
	if strings.TrimSpace(string(raw)) == "" {
		*s = nil
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(s))
}
