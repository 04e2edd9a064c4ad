package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/inventory/pkg/apperr"
	"github.com/example/inventory/pkg/service"
)

func (s *Server) createUser(c *gin.Context) {
	var req service.UserInput
	if err := c.BindJSON(&req); err != nil {
		respondError(c, s.logger, apperr.BadRequest(err.Error()))
		return
	}

	user, err := s.users.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	s.recordAudit(c, "create_user", "user", user.ID, bson.M{"email": user.Email, "role": user.Role})
	respond(c, http.StatusCreated, "Create User Success", user)
}

func (s *Server) listUsers(c *gin.Context) {
	skip, take := pageParams(c)
	users, err := s.users.List(c.Request.Context(), skip, take)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "Get Users Success", users)
}

func (s *Server) countUsers(c *gin.Context) {
	total, err := s.users.Count(c.Request.Context())
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "Get User Count Success", gin.H{"count": total})
}

func (s *Server) searchUsers(c *gin.Context) {
	users, err := s.users.SearchByName(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "Search User Success", users)
}

func (s *Server) getUser(c *gin.Context) {
	user, err := s.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respond(c, http.StatusOK, "Get User Success", user)
}

func (s *Server) updateUser(c *gin.Context) {
	var req service.UserInput
	if err := c.BindJSON(&req); err != nil {
		respondError(c, s.logger, apperr.BadRequest(err.Error()))
		return
	}

	id := c.Param("id")
	user, err := s.users.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	s.recordAudit(c, "update_user", "user", id, bson.M{"email": user.Email, "role": user.Role})
	respond(c, http.StatusOK, "Update User Success", user)
}

func (s *Server) deleteUser(c *gin.Context) {
	id := c.Param("id")
	if err := s.users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, s.logger, err)
		return
	}

	s.recordAudit(c, "delete_user", "user", id, nil)
	respond(c, http.StatusOK, "Delete User Success", nil)
}
