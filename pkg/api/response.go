package api

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/example/inventory/pkg/apperr"
	"github.com/example/inventory/pkg/repository"
	"github.com/example/inventory/pkg/service"
)

// Success responses share the {status, message, data} envelope.
func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func respondError(c *gin.Context, logger *zap.Logger, err error) {
	apiErr := apperr.From(err)
	if apiErr.Code >= 500 {
		logger.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.AbortWithStatusJSON(apiErr.Code, gin.H{
		"code":    apiErr.Code,
		"message": apiErr.Message,
	})
}

// pageParams reads skip/take query values; defaults apply downstream.
func pageParams(c *gin.Context) (int, int) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	take, _ := strconv.Atoi(c.DefaultQuery("take", "10"))
	return service.NormalizePage(skip, take)
}

// recordAudit writes the audit entry off the request path, fire and forget.
func (s *Server) recordAudit(c *gin.Context, action, entity, entityID string, data bson.M) {
	if s.auditLog == nil {
		return
	}
	actorID, _ := c.Get(ctxUserID)
	actor, _ := actorID.(string)
	go func() {
		log := &repository.AuditLog{
			Action:   action,
			Entity:   entity,
			EntityID: entityID,
			ActorID:  actor,
			Data:     data,
		}
		if err := s.auditLog.CreateAuditLog(context.Background(), log); err != nil {
			s.logger.Warn("Failed to write audit log", zap.String("action", action), zap.Error(err))
		}
	}()
}
