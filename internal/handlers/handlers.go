package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/schedule-api/internal/dto"
	"github.com/yukikurage/schedule-api/internal/utils"
)

// fail records err for the error middleware and stops the chain
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// pathID reads a validated identifier parameter. Identifiers that are well
// formed but not numeric cannot match any row, so they resolve to notFound.
func pathID(c *gin.Context, param string, notFound error) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		fail(c, notFound)
		return 0, false
	}
	return id, true
}

// respondList writes items bare, or wrapped with pagination metadata when
// the client asked for a page
func respondList(c *gin.Context, items interface{}, page *utils.PaginationParams, total int64) {
	if page == nil {
		c.JSON(http.StatusOK, items)
		return
	}
	c.JSON(http.StatusOK, dto.PagedResponse{
		Data:       items,
		Pagination: utils.NewPaginationResponse(*page, total),
	})
}

func pagination(c *gin.Context) *utils.PaginationParams {
	params, enabled := utils.GetPaginationParams(c)
	if !enabled {
		return nil
	}
	return &params
}

func deleted(c *gin.Context, message string, id uint64) {
	c.JSON(http.StatusOK, dto.DeleteResponse{
		Message: message,
		Deleted: true,
		ID:      id,
	})
}
