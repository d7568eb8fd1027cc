package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORS returns a middleware that handles Cross-Origin Resource Sharing (CORS).
// An entry ending in "*" allows every origin with that prefix, e.g.
// "chrome-extension://*".
func CORS(allowedOrigins []string) gin.HandlerFunc {
	exact := make(map[string]bool, len(allowedOrigins))
	var prefixes []string
	for _, o := range allowedOrigins {
		if p, ok := strings.CutSuffix(o, "*"); ok {
			prefixes = append(prefixes, p)
			continue
		}
		exact[o] = true
	}

	allowed := func(origin string) bool {
		if origin == "" {
			return false
		}
		if exact[origin] {
			return true
		}
		for _, p := range prefixes {
			if strings.HasPrefix(origin, p) {
				return true
			}
		}
		return false
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept, Origin, X-Requested-With, X-Page-URL")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		// Handle preflight request
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
