package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/waste3d/honeyhive/services/api-gateway/internal/i18n"
)

const langKey = "lang"

// Language picks the response language from the "lang" query parameter or the
// Accept-Language header.
func Language(tr *i18n.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		accept := c.Query("lang")
		if accept == "" {
			accept = c.GetHeader("Accept-Language")
		}
		c.Set(langKey, tr.Match(accept))
		c.Next()
	}
}

func LangFrom(c *gin.Context) string {
	return c.GetString(langKey)
}

// Fail aborts the request with a localized {"error", "code"} body.
func Fail(c *gin.Context, tr *i18n.Translator, status int, key string, args ...any) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": tr.T(LangFrom(c), "errors."+key, args...),
		"code":  key,
	})
}
