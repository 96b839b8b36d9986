package i18n

import "github.com/gin-gonic/gin"

// Middleware attaches a localizer negotiated from Accept-Language to each request context.
func Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		loc := NewLocalizer(ctx.GetHeader("Accept-Language"))
		ctx.Request = ctx.Request.WithContext(WithLocalizer(ctx.Request.Context(), loc))
		ctx.Next()
	}
}
