package user

type (
	UpdateProfileRequest struct {
		Name  *string `json:"name" validate:"omitempty,min=2,max=100,personname"`
		Email *string `json:"email" validate:"omitempty,email,max=255"`
	}
	ChangePasswordRequest struct {
		CurrentPassword string `json:"currentPassword" validate:"required"`
		NewPassword     string `json:"newPassword" validate:"required"`
		ConfirmPassword string `json:"confirmPassword" validate:"required"`
	}
	ChangeRoleRequest struct {
		Role string `json:"role" validate:"required"`
	}
)
