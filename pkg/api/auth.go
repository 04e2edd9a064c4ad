package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/inventory/pkg/apperr"
	"github.com/example/inventory/pkg/service"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

func (s *Server) register(c *gin.Context) {
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

	token, expires, err := s.issueToken(user)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	s.recordAudit(c, "register", "user", user.ID, bson.M{"email": user.Email})
	respond(c, http.StatusCreated, "Register Success", gin.H{
		"user":   user,
		"tokens": gin.H{"access": tokenResponse{Token: token, Expires: expires}},
	})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.BindJSON(&req); err != nil {
		respondError(c, s.logger, apperr.BadRequest(err.Error()))
		return
	}

	user, err := s.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	token, expires, err := s.issueToken(user)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	respond(c, http.StatusOK, "Login Success", gin.H{
		"user":   user,
		"tokens": gin.H{"access": tokenResponse{Token: token, Expires: expires}},
	})
}
