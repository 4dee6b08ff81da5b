package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"student-manager-api/internal/application/ports"
	"student-manager-api/internal/domain/user"
	"student-manager-api/internal/infrastructure/jwt"
	"student-manager-api/internal/interface/api/rest/response"
)

const CtxPrincipal = "principal"

func AuthMiddleware(tokens ports.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := jwt.ExtractFromHeader(c.GetHeader("Authorization"))
		if !ok {
			response.Fail(c, http.StatusUnauthorized, response.CodeAuthentication, "No token provided")
			return
		}

		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, response.CodeAuthentication, err.Error())
			return
		}
		id, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, response.CodeAuthentication, jwt.ErrTokenInvalid.Error())
			return
		}

		c.Set(CtxPrincipal, user.Principal{
			ID:    id,
			Email: claims.Email,
			Role:  user.Role(claims.Role),
		})

		c.Next()
	}
}

// Principal returns the caller stored by AuthMiddleware.
func Principal(c *gin.Context) (user.Principal, bool) {
	v, ok := c.Get(CtxPrincipal)
	if !ok {
		return user.Principal{}, false
	}
	pr, ok := v.(user.Principal)
	return pr, ok
}
