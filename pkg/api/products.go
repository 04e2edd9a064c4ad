package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/example/inventory/pkg/apperr"
	"github.com/example/inventory/pkg/service"
)

func (s *Server) createProduct(c *gin.Context) {
	var req service.ProductInput
	if err := c.BindJSON(&req); err != nil {
		respondError(c, s.logger, apperr.BadRequest(err.Error()))
		return
	}
	if req.UserID == "" {
		req.UserID = c.GetString(ctxUserID)
	}

	product, err := s.products.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	s.recordAudit(c, "create_product", "product", product.ID, bson.M{"name": product.Name, "price": product.Price})
	respond(c, http.StatusCreated, "Create Product Success", product)
}

func (s *Server) listProducts(c *gin.Context) {
	skip, take := pageParams(c)
	ctx := c.Request.Context()

	if category := c.Query("category"); category != "" {
		products, err := s.products.ListByCategory(ctx, category, skip, take)
		if err != nil {
			respondError(c, s.logger, err)
			return
		}
		respond(c, http.StatusOK, "Get Products Success", products)
		return
	}

	products, err := s.products.List(ctx, skip, take)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "Get Products Success", products)
}

func (s *Server) countProducts(c *gin.Context) {
	total, err := s.products.Count(c.Request.Context())
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "Get Product Count Success", gin.H{"count": total})
}

func (s *Server) searchProducts(c *gin.Context) {
	products, err := s.products.SearchByName(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "Search Product Success", products)
}

// getProduct is served cache-aside: a hit skips the store, a miss fills
// the cache. Mutations invalidate the entry.
func (s *Server) getProduct(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if s.cache != nil {
		if product, err := s.cache.GetProductCache(ctx, id); err == nil {
			respond(c, http.StatusOK, "Get Product Success", product)
			return
		}
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	if s.cache != nil {
		if err := s.cache.CacheProduct(ctx, product); err != nil {
			s.logger.Warn("Failed to cache product", zap.String("product_id", id), zap.Error(err))
		}
	}
	respond(c, http.StatusOK, "Get Product Success", product)
}

func (s *Server) updateProduct(c *gin.Context) {
	var req service.ProductInput
	if err := c.BindJSON(&req); err != nil {
		respondError(c, s.logger, apperr.BadRequest(err.Error()))
		return
	}

	id := c.Param("id")
	product, err := s.products.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	if s.cache != nil {
		s.cache.InvalidateProduct(c.Request.Context(), id)
	}
	s.recordAudit(c, "update_product", "product", id, bson.M{"name": product.Name, "price": product.Price})
	respond(c, http.StatusOK, "Update Product Success", product)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := s.products.Delete(c.Request.Context(), id); err != nil {
		respondError(c, s.logger, err)
		return
	}

	if s.cache != nil {
		s.cache.InvalidateProduct(c.Request.Context(), id)
	}
	s.recordAudit(c, "delete_product", "product", id, nil)
	respond(c, http.StatusOK, "Delete Product Success", nil)
}
