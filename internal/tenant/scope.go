package tenant

import "gorm.io/gorm"

// Scope restricts a query to one tenant. Every table in the schema
// carries a company_id column.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// ActiveScope narrows a tenant scope to rows whose status is active.
// Soft-deleted employees stay in the table with status inactive.
func ActiveScope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID).Where("status = ?", "active")
	}
}
