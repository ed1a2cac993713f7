package db

import (
	"gorm.io/gorm"
)

// Paginate is a GORM scope selecting one 1-based page. Non-positive
// values fall back to the first page of defaultSize rows.
//
// Example usage:
//
//	db.Model(&UserModel{}).Scopes(db.Paginate(page, pageSize, 20)).Find(&rows)
func Paginate(page, pageSize, defaultSize int) func(db *gorm.DB) *gorm.DB {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultSize
	}
	return Window(pageSize, (page-1)*pageSize)
}

// Window is a GORM scope for limit/offset listings. A negative offset is
// treated as zero.
func Window(limit, offset int) func(db *gorm.DB) *gorm.DB {
	if offset < 0 {
		offset = 0
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(offset).Limit(limit)
	}
}
