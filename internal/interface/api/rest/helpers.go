package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"student-manager-api/internal/domain/apperror"
	"student-manager-api/internal/domain/user"
	"student-manager-api/internal/interface/api/rest/middleware"
	"student-manager-api/internal/interface/api/rest/response"
	"student-manager-api/internal/interface/api/rest/validator"
)

type normalizer interface {
	Normalize()
}

// bind decodes the JSON body into req, normalizes it and validates it.
func bind(c *gin.Context, v *validator.Validator, req normalizer, message string) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperror.Validation("Invalid JSON body", apperror.FieldError{Field: "body", Message: err.Error()})
	}
	req.Normalize()

	return v.Struct(req, message)
}

func principal(c *gin.Context) (user.Principal, error) {
	pr, ok := middleware.Principal(c)
	if !ok {
		return user.Principal{}, apperror.Authentication("User not authenticated")
	}
	return pr, nil
}

func pathID(c *gin.Context, resource string) (uuid.UUID, error) {
	ok, id := validator.IsUUID(c.Param("id"))
	if !ok {
		msg := fmt.Sprintf("Invalid %s ID format", resource)
		return uuid.Nil, apperror.Validation(msg, apperror.FieldError{Field: "id", Message: msg})
	}
	return id, nil
}

// NoRoute answers unknown routes in the error envelope.
func NoRoute(c *gin.Context) {
	response.Fail(
		c,
		http.StatusNotFound,
		response.CodeNotFound,
		fmt.Sprintf("Route %s %s not found", c.Request.Method, c.Request.URL.Path),
	)
}
