package handler

import (
	"net/http"
	"strconv"

	"github.com/disgoorg/snowflake/v2"
	"github.com/gin-gonic/gin"
)

func snowflakeParam(c *gin.Context, name string) (snowflake.ID, bool) {
	id, err := snowflake.Parse(c.Param(name))
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func caseParam(c *gin.Context) (int64, bool) {
	caseID, err := strconv.ParseInt(c.Param("case_id"), 10, 64)
	if err != nil || caseID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid case_id"})
		return 0, false
	}
	return caseID, true
}
