package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/inventory/pkg/apperr"
	"github.com/example/inventory/pkg/service"
)

func (s *Server) createOrder(c *gin.Context) {
	var req service.OrderInput
	if err := c.BindJSON(&req); err != nil {
		respondError(c, s.logger, apperr.BadRequest(err.Error()))
		return
	}
	if req.UserID == "" {
		req.UserID = c.GetString(ctxUserID)
	}

	order, err := s.orders.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	s.recordAudit(c, "create_order", "order", order.ID, bson.M{"customer_name": order.CustomerName, "total_price": order.TotalPrice})
	respond(c, http.StatusCreated, "Create Order Success", order)
}

func (s *Server) listOrders(c *gin.Context) {
	skip, take := pageParams(c)
	orders, err := s.orders.List(c.Request.Context(), skip, take)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "Get Orders Success", orders)
}

func (s *Server) countOrders(c *gin.Context) {
	total, err := s.orders.Count(c.Request.Context())
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "Get Order Count Success", gin.H{"count": total})
}

func (s *Server) searchOrders(c *gin.Context) {
	orders, err := s.orders.SearchByCustomerName(c.Request.Context(), c.Query("customerName"))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "Search Order Success", orders)
}

func (s *Server) getOrder(c *gin.Context) {
	order, err := s.orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "Get Order Success", order)
}

func (s *Server) updateOrder(c *gin.Context) {
	var req service.OrderInput
	if err := c.BindJSON(&req); err != nil {
		respondError(c, s.logger, apperr.BadRequest(err.Error()))
		return
	}

	id := c.Param("id")
	order, err := s.orders.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	s.recordAudit(c, "update_order", "order", id, bson.M{"total_price": order.TotalPrice})
	respond(c, http.StatusOK, "Update Order Success", order)
}

func (s *Server) deleteOrder(c *gin.Context) {
	id := c.Param("id")
	if err := s.orders.Delete(c.Request.Context(), id); err != nil {
		respondError(c, s.logger, err)
		return
	}

	s.recordAudit(c, "delete_order", "order", id, nil)
	respond(c, http.StatusOK, "Delete Order Success", nil)
}
