package user

// Reads go through active_users so soft-deleted rows never surface; writes
// against users carry their own deleted_at guard.
const (
	SelectUsers = `
		SELECT id, name, email, password_hash, role, created_at, updated_at, deleted_at
		FROM active_users
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`
	CountUsers = `SELECT count(*) FROM active_users`

	SelectUserByID = `
		SELECT id, name, email, password_hash, role, created_at, updated_at, deleted_at
		FROM active_users
		WHERE id = $1
	`
	SelectUserByEmail = `
		SELECT id, name, email, password_hash, role, created_at, updated_at, deleted_at
		FROM active_users
		WHERE lower(email) = lower($1)
	`
	SelectEmailExists = `
		SELECT EXISTS (
			SELECT 1 FROM active_users WHERE lower(email) = lower($1) AND id <> $2
		)
	`
	InsertUser = `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, password_hash, role, created_at, updated_at, deleted_at
	`
	UpdateUserProfile = `
		UPDATE users
		SET name = COALESCE($1, name),
		    email = COALESCE($2, email),
		    updated_at = now()
		WHERE id = $3 AND deleted_at IS NULL
		RETURNING id, name, email, password_hash, role, created_at, updated_at, deleted_at
	`
	UpdateUserPassword = `
		UPDATE users
		SET password_hash = $1,
		    updated_at = now()
		WHERE id = $2 AND deleted_at IS NULL
	`
	UpdateUserRole = `
		UPDATE users
		SET role = $1,
		    updated_at = now()
		WHERE id = $2 AND deleted_at IS NULL
		RETURNING id, name, email, password_hash, role, created_at, updated_at, deleted_at
	`
	SoftDeleteUser = `
		UPDATE users
		SET deleted_at = now(),
		    updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`
)
