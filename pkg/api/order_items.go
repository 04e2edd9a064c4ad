package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/inventory/pkg/apperr"
	"github.com/example/inventory/pkg/service"
)

func (s *Server) createOrderItem(c *gin.Context) {
	var req service.OrderItemInput
	if err := c.BindJSON(&req); err != nil {
		respondError(c, s.logger, apperr.BadRequest(err.Error()))
		return
	}

	item, err := s.orderItems.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	if s.cache != nil {
		s.cache.InvalidateProduct(c.Request.Context(), item.ProductID)
	}
	s.recordAudit(c, "create_order_item", "order_item", item.ID, bson.M{
		"order_id":   item.OrderID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})
	respond(c, http.StatusCreated, "Create OrderItem Success", item)
}

func (s *Server) listOrderItems(c *gin.Context) {
	skip, take := pageParams(c)
	items, err := s.orderItems.List(c.Request.Context(), skip, take)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "Get OrderItems Success", items)
}

func (s *Server) countOrderItems(c *gin.Context) {
	total, err := s.orderItems.Count(c.Request.Context())
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "Get OrderItem Count Success", gin.H{"count": total})
}

func (s *Server) getOrderItem(c *gin.Context) {
	item, err := s.orderItems.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "Get OrderItem Success", item)
}

func (s *Server) updateOrderItem(c *gin.Context) {
	var req service.OrderItemInput
	if err := c.BindJSON(&req); err != nil {
		respondError(c, s.logger, apperr.BadRequest(err.Error()))
		return
	}

	id := c.Param("id")
	item, err := s.orderItems.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	if s.cache != nil {
		s.cache.InvalidateProduct(c.Request.Context(), item.ProductID)
	}
	s.recordAudit(c, "update_order_item", "order_item", id, bson.M{
		"order_id":   item.OrderID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})
	respond(c, http.StatusOK, "Update OrderItem Success", item)
}

func (s *Server) deleteOrderItem(c *gin.Context) {
	id := c.Param("id")
	if err := s.orderItems.Delete(c.Request.Context(), id); err != nil {
		respondError(c, s.logger, err)
		return
	}

	s.recordAudit(c, "delete_order_item", "order_item", id, nil)
	respond(c, http.StatusOK, "Delete OrderItem Success", nil)
}
