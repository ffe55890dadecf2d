package http

import "github.com/gin-gonic/gin"

// processSyncReq binds the sync query parameters.
func (h *handler) processSyncReq(c *gin.Context) (syncReq, error) {
	var req syncReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, nil
}
