package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/vocabtest/internal/dto"
	"github.com/lshigami/vocabtest/internal/i18n"
	"github.com/rs/zerolog/log"
)

const (
	teacherIDKey = "auth.teacher_id"
	claimsKey    = "auth.claims"
)

// RequireTeacher rejects requests without a valid teacher bearer token.
func (a *Authenticator) RequireTeacher() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abort(ctx, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
			return
		}
		claims, err := a.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Rejected bearer token")
			abort(ctx, http.StatusUnauthorized, "Unauthorized", "invalid token")
			return
		}
		if claims.Role != RoleTeacher {
			abort(ctx, http.StatusForbidden, "Forbidden", "role "+claims.Role+" is not allowed")
			return
		}
		teacherID, err := claims.TeacherID()
		if err != nil {
			abort(ctx, http.StatusUnauthorized, "Unauthorized", err.Error())
			return
		}

		ctx.Set(teacherIDKey, teacherID)
		ctx.Set(claimsKey, claims)
		ctx.Next()
	}
}

func abort(ctx *gin.Context, status int, msgID, detail string) {
	ctx.AbortWithStatusJSON(status, dto.ErrorResponse{
		Message: i18n.T(ctx.Request.Context(), msgID),
		Details: []string{detail},
	})
}

// TeacherID returns the authenticated teacher; zero when RequireTeacher did not run.
func TeacherID(ctx *gin.Context) uint {
	id, _ := ctx.Get(teacherIDKey)
	teacherID, _ := id.(uint)
	return teacherID
}

func ClaimsFrom(ctx *gin.Context) *Claims {
	c, _ := ctx.Get(claimsKey)
	claims, _ := c.(*Claims)
	return claims
}
