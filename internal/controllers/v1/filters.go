package v1

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// stringFilters applies the name and search filters that every
// listable resource with a name column supports.
func stringFilters(db, query *gorm.DB, setFields []string, name, search string) *gorm.DB {
	if name != "" {
		query = query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", name))
	} else if slices.Contains(setFields, "Name") {
		query = query.Where("name = ''")
	}

	if search != "" {
		query = query.Where(
			db.Where("name LIKE ?", fmt.Sprintf("%%%s%%", search)),
		)
	}

	return query
}

// likeFilter applies a LIKE filter on a single column when the value
// is not empty.
func likeFilter(query *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return query
	}

	return query.Where(fmt.Sprintf("%s LIKE ?", column), fmt.Sprintf("%%%s%%", value))
}
