package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	CacheNoCache = 0
	CacheOneDay  = 86400
)

// CacheControl sets the cache-control header of every response going through it.
// API responses are never cached, uploaded files can be.
func CacheControl(seconds int) gin.HandlerFunc {
	value := "no-cache"
	if seconds > CacheNoCache {
		value = "public, max-age=" + strconv.Itoa(seconds)
	}
	return func(c *gin.Context) {
		c.Header("cache-control", value)
		c.Next()
	}
}
