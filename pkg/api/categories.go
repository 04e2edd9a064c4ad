package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/inventory/pkg/apperr"
)

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *Server) createCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.BindJSON(&req); err != nil {
		respondError(c, s.logger, apperr.BadRequest(err.Error()))
		return
	}

	category, err := s.categories.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	s.recordAudit(c, "create_category", "category", category.ID, bson.M{"name": category.Name})
	respond(c, http.StatusCreated, "Create Category Success", category)
}

func (s *Server) listCategories(c *gin.Context) {
	skip, take := pageParams(c)
	categories, err := s.categories.List(c.Request.Context(), skip, take)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "Get Categories Success", categories)
}

func (s *Server) countCategories(c *gin.Context) {
	total, err := s.categories.Count(c.Request.Context())
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "Get Category Count Success", gin.H{"count": total})
}

func (s *Server) searchCategories(c *gin.Context) {
	categories, err := s.categories.SearchByName(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "Search Category Success", categories)
}

func (s *Server) getCategory(c *gin.Context) {
	category, err := s.categories.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "Get Category Success", category)
}

func (s *Server) updateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.BindJSON(&req); err != nil {
		respondError(c, s.logger, apperr.BadRequest(err.Error()))
		return
	}

	category, err := s.categories.Update(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	s.recordAudit(c, "update_category", "category", category.ID, bson.M{"name": category.Name})
	respond(c, http.StatusOK, "Update Category Success", category)
}

func (s *Server) deleteCategory(c *gin.Context) {
	id := c.Param("id")
	if err := s.categories.Delete(c.Request.Context(), id); err != nil {
		respondError(c, s.logger, err)
		return
	}

	s.recordAudit(c, "delete_category", "category", id, nil)
	respond(c, http.StatusOK, "Delete Category Success", nil)
}
