package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shubham-musmade/interview-tracker/internal/server/services"
)

func (s *Server) listInterviews(c *gin.Context) {
	list, err := s.svc.Interviews.List(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) addInterview(c *gin.Context) {
	var in services.InterviewInput
	if !bindJSON(c, &in) {
		return
	}
	r, err := s.svc.Interviews.Add(c.Request.Context(), currentUser(c), c.Param("id"), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (s *Server) updateInterview(c *gin.Context) {
	round, err := roundParam(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	var in services.InterviewInput
	if !bindJSON(c, &in) {
		return
	}
	r, err := s.svc.Interviews.Update(c.Request.Context(), currentUser(c), c.Param("id"), round, in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) deleteInterview(c *gin.Context) {
	round, err := roundParam(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if err := s.svc.Interviews.Delete(c.Request.Context(), currentUser(c), c.Param("id"), round); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) remindInterview(c *gin.Context) {
	round, err := roundParam(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if err := s.svc.Interviews.Remind(c.Request.Context(), currentUser(c), c.Param("id"), round); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

func (s *Server) listNotes(c *gin.Context) {
	list, err := s.svc.Notes.List(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) addNote(c *gin.Context) {
	var in services.NoteInput
	if !bindJSON(c, &in) {
		return
	}
	n, err := s.svc.Notes.Add(c.Request.Context(), currentUser(c), c.Param("id"), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (s *Server) updateNote(c *gin.Context) {
	var in services.NoteInput
	if !bindJSON(c, &in) {
		return
	}
	n, err := s.svc.Notes.Update(c.Request.Context(), currentUser(c), c.Param("id"), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (s *Server) deleteNote(c *gin.Context) {
	if err := s.svc.Notes.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) dashboard(c *gin.Context) {
	d, err := s.svc.Statistics.Dashboard(c.Request.Context(), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) statistics(c *gin.Context) {
	st, err := s.svc.Statistics.Statistics(c.Request.Context(), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
