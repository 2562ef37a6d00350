package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shubham-musmade/interview-tracker/internal/server/services"
)

func (s *Server) listEmails(c *gin.Context) {
	list, err := s.svc.Emails.List(c.Request.Context(), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) createEmail(c *gin.Context) {
	var in services.EmailInput
	if !bindJSON(c, &in) {
		return
	}
	e, err := s.svc.Emails.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (s *Server) updateEmail(c *gin.Context) {
	var in services.EmailInput
	if !bindJSON(c, &in) {
		return
	}
	e, err := s.svc.Emails.Update(c.Request.Context(), currentUser(c), c.Param("id"), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (s *Server) setPrimaryEmail(c *gin.Context) {
	e, err := s.svc.Emails.SetPrimary(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (s *Server) deleteEmail(c *gin.Context) {
	if err := s.svc.Emails.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
