package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
	"github.com/Shubham-musmade/interview-tracker/internal/server/services"
)

func (s *Server) listApplications(c *gin.Context) {
	f := models.ApplicationFilter{
		Search:   c.Query("search"),
		Status:   models.Status(c.Query("status")),
		Priority: models.Priority(c.Query("priority")),
	}
	list, err := s.svc.Applications.List(c.Request.Context(), currentUser(c), f)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) createApplication(c *gin.Context) {
	var in services.ApplicationInput
	if !bindJSON(c, &in) {
		return
	}
	a, err := s.svc.Applications.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (s *Server) createApplicationWithCompany(c *gin.Context) {
	var in services.QuickApplicationInput
	if !bindJSON(c, &in) {
		return
	}
	a, err := s.svc.Applications.CreateWithCompany(c.Request.Context(), currentUser(c), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (s *Server) getApplication(c *gin.Context) {
	d, err := s.svc.Applications.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) updateApplication(c *gin.Context) {
	var in services.ApplicationInput
	if !bindJSON(c, &in) {
		return
	}
	a, err := s.svc.Applications.Update(c.Request.Context(), currentUser(c), c.Param("id"), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) deleteApplication(c *gin.Context) {
	if err := s.svc.Applications.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) emailDefaults(c *gin.Context) {
	d, err := s.svc.Applications.EmailDefaults(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) sendEmail(c *gin.Context) {
	var in services.SendEmailInput
	if !bindJSON(c, &in) {
		return
	}
	a, err := s.svc.Applications.SendEmail(c.Request.Context(), currentUser(c), c.Param("id"), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) sendHREmail(c *gin.Context) {
	var in services.SendHREmailInput
	if !bindJSON(c, &in) {
		return
	}
	a, err := s.svc.Applications.SendHREmail(c.Request.Context(), currentUser(c), c.Param("id"), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
