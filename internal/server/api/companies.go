package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shubham-musmade/interview-tracker/internal/server/services"
)

func (s *Server) listCompanies(c *gin.Context) {
	list, err := s.svc.Companies.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) getCompany(c *gin.Context) {
	co, err := s.svc.Companies.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, co)
}

func (s *Server) createCompany(c *gin.Context) {
	var in services.CompanyInput
	if !bindJSON(c, &in) {
		return
	}
	co, err := s.svc.Companies.Create(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, co)
}

func (s *Server) updateCompany(c *gin.Context) {
	var in services.CompanyInput
	if !bindJSON(c, &in) {
		return
	}
	co, err := s.svc.Companies.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, co)
}

func (s *Server) deleteCompany(c *gin.Context) {
	if err := s.svc.Companies.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listCompanyPositions(c *gin.Context) {
	list, err := s.svc.Positions.ListByCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) createPosition(c *gin.Context) {
	var in services.PositionInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := s.svc.Positions.Create(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) getPosition(c *gin.Context) {
	p, err := s.svc.Positions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) updatePosition(c *gin.Context) {
	var in services.PositionInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := s.svc.Positions.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
