package dao

import (
	"strings"

	"gorm.io/gorm"
)

func Eq(column, value string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db
		}

		return db.Where(column+" = ?", value)
	}
}

func EqPtr[T any](column string, value *T) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if value == nil {
			return db
		}

		return db.Where(column+" = ?", *value)
	}
}

func In(column string, values []string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if len(values) == 0 {
			return db
		}

		return db.Where(column+" IN ?", values)
	}
}

// Contains matches rows where column holds value as a case-insensitive substring.
func Contains(column, value string) Scope {
	return Search(value, column)
}

// Search matches rows where any of the columns contains term.
func Search(term string, columns ...string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}

		pattern := "%" + escapeLike(term) + "%"
		clauses := make([]string, len(columns))
		args := make([]any, len(columns))
		for i, c := range columns {
			clauses[i] = c + " ILIKE ?"
			args[i] = pattern
		}

		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

func OrderBy(orders ...string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		for _, o := range orders {
			db = db.Order(o)
		}

		return db
	}
}

func Preload(association string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload(association)
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
