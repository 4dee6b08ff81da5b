package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"student-manager-api/internal/application/ports"
	domain "student-manager-api/internal/domain/user"
	"student-manager-api/internal/interface/api/rest/dto/user"
	"student-manager-api/internal/interface/api/rest/response"
	"student-manager-api/internal/interface/api/rest/validator"
)

type UserController struct {
	logger      *zap.Logger
	userService ports.UserService
	validator   *validator.Validator
}

func NewUserController(
	r gin.IRouter,
	logger *zap.Logger,
	userService ports.UserService,
	v *validator.Validator,
	authMW gin.HandlerFunc,
) *UserController {
	uc := &UserController{
		logger:      logger,
		userService: userService,
		validator:   v,
	}

	g := r.Group(RouteUsers, authMW)
	g.GET("", uc.GetUsersHandler)
	g.GET("/:id", uc.GetUserHandler)
	g.PUT("/:id", uc.UpdateUserHandler)
	g.DELETE("/:id", uc.DeleteUserHandler)
	g.PUT("/:id/password", uc.ChangePasswordHandler)
	g.PUT("/:id/role", uc.ChangeRoleHandler)

	return uc
}

func (uc *UserController) GetUsersHandler(c *gin.Context) {
	pr, err := principal(c)
	if err != nil {
		response.Error(c, uc.logger, err)
		return
	}
	page, err := listPage(c)
	if err != nil {
		response.Error(c, uc.logger, err)
		return
	}

	res, err := uc.userService.FindAll(c.Request.Context(), pr, page.Page, page.Limit)
	if err != nil {
		response.Error(c, uc.logger, err)
		return
	}

	response.OK(c, http.StatusOK, user.ToListResponse(res))
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	pr, id, ok := uc.target(c)
	if !ok {
		return
	}

	u, err := uc.userService.Profile(c.Request.Context(), pr, id)
	if err != nil {
		response.Error(c, uc.logger, err)
		return
	}

	response.OK(c, http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) UpdateUserHandler(c *gin.Context) {
	pr, id, ok := uc.target(c)
	if !ok {
		return
	}

	var req user.UpdateProfileRequest
	if err := bind(c, uc.validator, &req, "Invalid profile data"); err != nil {
		response.Error(c, uc.logger, err)
		return
	}

	u, err := uc.userService.UpdateProfile(c.Request.Context(), pr, id, req.ToDomain())
	if err != nil {
		response.Error(c, uc.logger, err)
		return
	}

	response.OK(c, http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) ChangePasswordHandler(c *gin.Context) {
	pr, id, ok := uc.target(c)
	if !ok {
		return
	}

	var req user.ChangePasswordRequest
	if err := bind(c, uc.validator, &req, "Invalid password change data"); err != nil {
		response.Error(c, uc.logger, err)
		return
	}

	if err := uc.userService.ChangePassword(c.Request.Context(), pr, id, req.ToPorts()); err != nil {
		response.Error(c, uc.logger, err)
		return
	}

	response.NoContent(c)
}

func (uc *UserController) ChangeRoleHandler(c *gin.Context) {
	pr, id, ok := uc.target(c)
	if !ok {
		return
	}

	var req user.ChangeRoleRequest
	if err := bind(c, uc.validator, &req, "Invalid role specified"); err != nil {
		response.Error(c, uc.logger, err)
		return
	}

	u, err := uc.userService.ChangeRole(c.Request.Context(), pr, id, domain.Role(req.Role))
	if err != nil {
		response.Error(c, uc.logger, err)
		return
	}

	response.OK(c, http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) DeleteUserHandler(c *gin.Context) {
	pr, id, ok := uc.target(c)
	if !ok {
		return
	}

	if err := uc.userService.Delete(c.Request.Context(), pr, id); err != nil {
		response.Error(c, uc.logger, err)
		return
	}

	response.NoContent(c)
}

// target resolves the caller and the :id parameter, writing the error
// response itself when either is missing.
func (uc *UserController) target(c *gin.Context) (domain.Principal, domain.UUID, bool) {
	pr, err := principal(c)
	if err != nil {
		response.Error(c, uc.logger, err)
		return domain.Principal{}, domain.UUID{}, false
	}
	id, err := pathID(c, "user")
	if err != nil {
		response.Error(c, uc.logger, err)
		return domain.Principal{}, domain.UUID{}, false
	}
	return pr, id, true
}
