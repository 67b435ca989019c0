package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	allowMethods = "GET, OPTIONS"
	allowHeaders = "Content-Type"
)

// CORS allows any origin to call the read-only API.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:              []string{allowHeaders},
		OptionsResponseStatusCode: http.StatusOK,
	})
}

// Preflight answers OPTIONS on API routes, including requests without an Origin
// header that the CORS middleware passes through.
func Preflight(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", allowMethods)
	c.Header("Access-Control-Allow-Headers", allowHeaders)
	c.Status(http.StatusOK)
}

func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
}
