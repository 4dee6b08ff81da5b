package student

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "student-manager-api/internal/domain/student"
)

func TestBuildListQuery(t *testing.T) {
	tests := []struct {
		name      string
		filter    domain.Filter
		page      domain.Page
		count     string
		list      string
		countArgs []any
		listArgs  []any
	}{
		{
			name:      "no filters, default order",
			page:      domain.Page{Page: 1, Limit: 10},
			count:     "SELECT count(*) FROM active_students",
			list:      "SELECT " + studentColumns + " FROM active_students ORDER BY created_at DESC, id ASC LIMIT $1 OFFSET $2",
			countArgs: nil,
			listArgs:  []any{10, 0},
		},
		{
			name:   "fields AND together, search is an OR group",
			filter: domain.Filter{Name: "maria", RA: "RA12", Search: "test"},
			page:   domain.Page{Page: 3, Limit: 20, SortBy: "name", SortOrder: "desc"},
			count: "SELECT count(*) FROM active_students WHERE name ILIKE $1 AND ra ILIKE $2 AND " +
				"(name ILIKE $3 OR email ILIKE $3)",
			list: "SELECT " + studentColumns + " FROM active_students WHERE name ILIKE $1 AND ra ILIKE $2 AND " +
				"(name ILIKE $3 OR email ILIKE $3) ORDER BY name DESC, id ASC LIMIT $4 OFFSET $5",
			countArgs: []any{"%maria%", "%RA12%", "%test%"},
			listArgs:  []any{"%maria%", "%RA12%", "%test%", 20, 40},
		},
		{
			name:      "cpf filter matches digits only, wildcards escaped",
			filter:    domain.Filter{CPF: "111.444", Email: "a_b%"},
			page:      domain.Page{Page: 1, Limit: 5, SortBy: "createdAt"},
			count:     "SELECT count(*) FROM active_students WHERE email ILIKE $1 AND cpf ILIKE $2",
			list:      "SELECT " + studentColumns + " FROM active_students WHERE email ILIKE $1 AND cpf ILIKE $2 ORDER BY created_at ASC, id ASC LIMIT $3 OFFSET $4",
			countArgs: []any{`%a\_b\%%`, "%111444%"},
			listArgs:  []any{`%a\_b\%%`, "%111444%", 5, 0},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			q := buildListQuery(tt.filter, tt.page)
			assert.Equal(t, tt.count, q.count)
			assert.Equal(t, tt.list, q.list)
			assert.Equal(t, tt.countArgs, q.countArgs)
			assert.Equal(t, tt.listArgs, q.listArgs)
		})
	}
}
