package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/example/inventory/pkg/apperr"
)

// getAuditLogs returns the most recent audit entries for one entity,
// newest first. Only available when MongoDB is connected.
func (s *Server) getAuditLogs(c *gin.Context) {
	if s.auditLog == nil {
		respondError(c, s.logger, apperr.New(http.StatusServiceUnavailable, "Audit log is not available"))
		return
	}

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil || limit <= 0 {
		respondError(c, s.logger, apperr.BadRequest("Invalid limit"))
		return
	}

	logs, err := s.auditLog.GetAuditLogs(c.Request.Context(), c.Param("entityId"), limit)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "Get Audit Logs Success", logs)
}
