package student

import (
	"strconv"
	"strings"

	domain "student-manager-api/internal/domain/student"
	"student-manager-api/internal/infrastructure/db/postgres"
	"student-manager-api/pkg/cpf"
)

type listQuery struct {
	count     string
	list      string
	countArgs []any
	listArgs  []any
}

// buildListQuery assumes p already passed Validate, so the ORDER BY column
// always comes from the allowlist.
func buildListQuery(f domain.Filter, p domain.Page) listQuery {
	var (
		conds []string
		args  []any
	)
	contains := func(v string) string {
		args = append(args, "%"+postgres.EscapeLike(v)+"%")
		return "$" + strconv.Itoa(len(args))
	}

	if v := strings.TrimSpace(f.Name); v != "" {
		conds = append(conds, "name ILIKE "+contains(v))
	}
	if v := strings.TrimSpace(f.Email); v != "" {
		conds = append(conds, "email ILIKE "+contains(v))
	}
	if v := strings.TrimSpace(f.RA); v != "" {
		conds = append(conds, "ra ILIKE "+contains(v))
	}
	if v := strings.TrimSpace(f.CPF); v != "" {
		if digits := cpf.Clean(v); digits != "" {
			v = digits
		}
		conds = append(conds, "cpf ILIKE "+contains(v))
	}
	if v := strings.TrimSpace(f.Search); v != "" {
		ph := contains(v)
		conds = append(conds, "(name ILIKE "+ph+" OR email ILIKE "+ph+")")
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	col, dir := p.Order()
	n := len(args)
	listArgs := append(append(make([]any, 0, n+2), args...), p.Limit, p.Offset())

	return listQuery{
		count:     "SELECT count(*) FROM active_students" + where,
		countArgs: args,
		list: "SELECT " + studentColumns + " FROM active_students" + where +
			" ORDER BY " + col + " " + dir + ", id ASC" +
			" LIMIT $" + strconv.Itoa(n+1) + " OFFSET $" + strconv.Itoa(n+2),
		listArgs: listArgs,
	}
}
