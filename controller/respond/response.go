package respond

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Response unified API response envelope
type Response struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message" example:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// Success respond with 200 and data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// InvalidParam respond with 400
func InvalidParam(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound respond with 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict respond with 409
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// ServerError respond with 500
func ServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// BadGateway respond with 502, used when an upstream dependency rejected us
func BadGateway(c *gin.Context, message string) {
	Error(c, http.StatusBadGateway, message)
}

// GatewayTimeout respond with 504, used when an upstream dependency timed out
func GatewayTimeout(c *gin.Context, message string) {
	Error(c, http.StatusGatewayTimeout, message)
}

// Error respond with an arbitrary HTTP status
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Code:    status,
		Message: message,
	})
}

// TimingMiddleware logs slow requests
func TimingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		elapsed := time.Since(start)
		if elapsed > time.Second {
			log.Printf("Slow request: %s %s took %v", c.Request.Method, c.Request.URL.Path, elapsed)
		}
	}
}
