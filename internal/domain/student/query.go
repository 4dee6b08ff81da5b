package student

import (
	"fmt"
	"math"
	"strings"

	"student-manager-api/internal/domain/apperror"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (Page-1)*Limit within int for every valid Limit.
	MaxPage = math.MaxInt32 / MaxLimit

	SortAsc  = "asc"
	SortDesc = "desc"
)

// sortColumns is the allowlist of sortable fields and the columns they order by.
var sortColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"ra":        "ra",
	"cpf":       "cpf",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

var msgPageTooLarge = fmt.Sprintf("Page must not exceed %d", MaxPage)

var SortFields = []string{"name", "email", "ra", "cpf", "createdAt", "updatedAt"}

type (
	// Filter fields are case-insensitive substring matches ANDed together;
	// Search ORs across name and email.
	Filter struct {
		Name   string
		Email  string
		RA     string
		CPF    string
		Search string
	}

	Page struct {
		Page      int
		Limit     int
		SortBy    string
		SortOrder string
	}
)

func (p Page) Validate() error {
	var details []apperror.FieldError
	if p.Page < 1 {
		details = append(details, apperror.FieldError{Field: "page", Message: "Page must be greater than 0"})
	} else if p.Page > MaxPage {
		details = append(details, apperror.FieldError{Field: "page", Message: msgPageTooLarge})
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		details = append(details, apperror.FieldError{Field: "limit", Message: "Limit must be between 1 and 100"})
	}
	if p.SortBy != "" {
		if _, ok := sortColumns[p.SortBy]; !ok {
			details = append(details, apperror.FieldError{
				Field:   "sortBy",
				Message: "Invalid sort field. Valid fields: " + strings.Join(SortFields, ", "),
			})
		}
	}
	if p.SortOrder != "" && p.SortOrder != SortAsc && p.SortOrder != SortDesc {
		details = append(details, apperror.FieldError{Field: "sortOrder", Message: "Sort order must be asc or desc"})
	}

	if len(details) > 0 {
		return apperror.Validation(details[0].Message, details...)
	}
	return nil
}

func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

// Order returns the column and direction to sort by. It assumes Validate passed.
func (p Page) Order() (column, direction string) {
	if p.SortBy == "" {
		return "created_at", "DESC"
	}
	if p.SortOrder == SortDesc {
		return sortColumns[p.SortBy], "DESC"
	}
	return sortColumns[p.SortBy], "ASC"
}

func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
