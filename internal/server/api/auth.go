package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shubham-musmade/interview-tracker/internal/server/services"
)

type loginRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) register(c *gin.Context) {
	var in services.RegisterInput
	if !bindJSON(c, &in) {
		return
	}
	u, err := s.svc.Users.Register(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.logger.Info(c.Request.Context(), "Registered", "username", u.UserName)
	c.JSON(http.StatusCreated, u)
}

func (s *Server) login(c *gin.Context) {
	var in loginRequest
	if !bindJSON(c, &in) {
		return
	}
	tokens, err := s.svc.Users.Login(c.Request.Context(), in.UserName, in.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

func (s *Server) refresh(c *gin.Context) {
	var in refreshRequest
	if !bindJSON(c, &in) {
		return
	}
	tokens, err := s.svc.Users.RefreshToken(c.Request.Context(), in.RefreshToken)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}
