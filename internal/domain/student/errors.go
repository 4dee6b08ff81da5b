package student

import "student-manager-api/internal/domain/apperror"

// ConflictError builds the conflict reported for a duplicate value of field.
func ConflictError(field UniqueField, value string) error {
	label := string(field)
	switch field {
	case FieldRA:
		label = "RA"
	case FieldCPF:
		label = "CPF"
	}
	return apperror.Conflict("Student", label, value)
}
