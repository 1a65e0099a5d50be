package helper_util

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const maxPageSize = 500

// GetPaginationParams reads limit/offset query parameters. The limit is
// capped so one query cannot page the whole audit index.
func GetPaginationParams(c *gin.Context) (limit int, offset int, err error) {
	limit, err = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 0 {
		return 0, 0, fmt.Errorf("invalid limit: %q", c.Query("limit"))
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset: %q", c.Query("offset"))
	}
	return limit, offset, nil
}
