package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	resp "github.com/SharkyKing/EduSpace/internal/transport/http/response"
)

// ValidateNumber rejects non-integer path params before the handler runs.
func ValidateNumber(params ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, p := range params {
			if _, err := strconv.ParseUint(c.Param(p), 10, 64); err != nil {
				resp.Abort(c, resp.BadRequest(p+" must be a valid integer"))
				return
			}
		}
		c.Next()
	}
}

// ParamUint parses a numeric path param; ValidateNumber upstream guarantees
// it succeeds on validated routes.
func ParamUint(c *gin.Context, name string) uint {
	v, _ := strconv.ParseUint(c.Param(name), 10, 64)
	return uint(v)
}
