package student

const studentColumns = `id, name, email, ra, cpf, created_at, updated_at, deleted_at`

// Reads go through active_students; writes against students carry their own
// deleted_at guard. student_user_actions only ever receives INSERTs.
const (
	SelectStudentByID = `
		SELECT ` + studentColumns + `
		FROM active_students
		WHERE id = $1
	`
	InsertStudent = `
		INSERT INTO students (name, email, ra, cpf)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + studentColumns

	UpdateStudent = `
		UPDATE students
		SET name = COALESCE($1, name),
		    email = COALESCE($2, email),
		    updated_at = now()
		WHERE id = $3 AND deleted_at IS NULL
		RETURNING ` + studentColumns

	SoftDeleteStudent = `
		UPDATE students
		SET deleted_at = now(),
		    updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`
	InsertUserAction = `
		INSERT INTO student_user_actions (user_id, student_id, action)
		VALUES ($1, $2, $3)
	`
	SelectUserActions = `
		SELECT id, user_id, student_id, action, created_at
		FROM student_user_actions
		WHERE student_id = $1
		ORDER BY created_at DESC, id DESC
	`
	SelectStudentKnown = `SELECT EXISTS (SELECT 1 FROM students WHERE id = $1)`

	SelectRAExists    = `SELECT EXISTS (SELECT 1 FROM active_students WHERE ra = $1 AND id <> $2)`
	SelectCPFExists   = `SELECT EXISTS (SELECT 1 FROM active_students WHERE cpf = $1 AND id <> $2)`
	SelectEmailExists = `SELECT EXISTS (SELECT 1 FROM active_students WHERE lower(email) = lower($1) AND id <> $2)`
)
