package student

import (
	domain "student-manager-api/internal/domain/student"
)

func fromDBModel(model *Student) *domain.Student {
	return &domain.Student{
		UUID:  model.ID,
		Name:  model.Name,
		Email: model.Email,
		RA:    model.RA,
		CPF:   model.CPF,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		DeletedAt: model.DeletedAt,
	}
}

func fromDBModels(models Students) domain.Students {
	ss := make(domain.Students, len(models))
	for idx, s := range models {
		ss[idx] = fromDBModel(s)
	}

	return ss
}

func fromDBActions(models UserActions) domain.UserActions {
	as := make(domain.UserActions, len(models))
	for idx, a := range models {
		as[idx] = &domain.UserAction{
			ID:        a.ID,
			UserID:    a.UserID,
			StudentID: a.StudentID,
			Action:    domain.Action(a.Action),
			CreatedAt: a.CreatedAt,
		}
	}

	return as
}
