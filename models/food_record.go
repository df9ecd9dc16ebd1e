package models

import (
	"time"

	"gorm.io/gorm"
)

// A nutrition-database detail record kept so repeat lookups skip the network
type FoodRecord struct {
	gorm.Model
	FdcID       int64  `gorm:"uniqueIndex;not null"`
	Description string `gorm:"not null"`
	DataType    string
	// Raw detail JSON as returned by the nutrition collaborator
	Payload   string `gorm:"type:text;not null"`
	FetchedAt time.Time
}
