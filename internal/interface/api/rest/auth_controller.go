package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"student-manager-api/internal/application/ports"
	"student-manager-api/internal/interface/api/rest/dto/auth"
	"student-manager-api/internal/interface/api/rest/response"
	"student-manager-api/internal/interface/api/rest/validator"
)

type AuthController struct {
	logger      *zap.Logger
	authService ports.AuthService
	validator   *validator.Validator
}

func NewAuthController(
	r gin.IRouter,
	logger *zap.Logger,
	authService ports.AuthService,
	v *validator.Validator,
	authMW gin.HandlerFunc,
	rateLimitMW gin.HandlerFunc,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		authService: authService,
		validator:   v,
	}

	r.POST(RouteRegister, rateLimitMW, ac.RegisterHandler)
	r.POST(RouteLogin, rateLimitMW, ac.LoginHandler)
	r.GET(RouteMe, authMW, ac.MeHandler)

	return ac
}

func (ac *AuthController) RegisterHandler(c *gin.Context) {
	var req auth.RegisterRequest
	if err := bind(c, ac.validator, &req, "Invalid registration data"); err != nil {
		response.Error(c, ac.logger, err)
		return
	}

	res, err := ac.authService.Register(c.Request.Context(), req.ToPorts())
	if err != nil {
		response.Error(c, ac.logger, err)
		return
	}

	response.OK(c, http.StatusCreated, auth.ToResponse(res))
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := bind(c, ac.validator, &req, "Invalid login data"); err != nil {
		response.Error(c, ac.logger, err)
		return
	}

	res, err := ac.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, ac.logger, err)
		return
	}

	response.OK(c, http.StatusOK, auth.ToResponse(res))
}

func (ac *AuthController) MeHandler(c *gin.Context) {
	pr, err := principal(c)
	if err != nil {
		response.Error(c, ac.logger, err)
		return
	}

	me, err := ac.authService.Me(c.Request.Context(), pr)
	if err != nil {
		response.Error(c, ac.logger, err)
		return
	}

	response.OK(c, http.StatusOK, auth.ToMeResponse(me))
}
