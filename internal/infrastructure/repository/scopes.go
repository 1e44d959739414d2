package repository

import (
	"time"

	"gorm.io/gorm"
)

// CreatedBetween limits a query to rows created inside [from, to]. A nil
// bound is open.
func CreatedBetween(column string, from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where(column+" >= ?", *from)
		}
		if to != nil {
			db = db.Where(column+" <= ?", *to)
		}
		return db
	}
}
