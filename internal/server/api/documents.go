package api

import (
	"fmt"
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Shubham-musmade/interview-tracker/internal/common"
	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
	"github.com/Shubham-musmade/interview-tracker/internal/server/services"
)

func (s *Server) listDocuments(c *gin.Context) {
	list, err := s.svc.Documents.List(c.Request.Context(), currentUser(c), models.DocumentType(c.Query("type")))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// uploadDocument accepts multipart/form-data with the metadata fields and
// the content in "file".
func (s *Server) uploadDocument(c *gin.Context) {
	isDefault, _ := strconv.ParseBool(c.PostForm("is_default"))
	in := services.DocumentInput{
		Name:        c.PostForm("name"),
		Type:        models.DocumentType(c.PostForm("document_type")),
		Description: c.PostForm("description"),
		IsDefault:   isDefault,
	}

	fh, err := c.FormFile("file")
	if err != nil {
		s.writeError(c, common.NewValidationError("file", "is required"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		s.writeError(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer f.Close()

	d, err := s.svc.Documents.Upload(c.Request.Context(), currentUser(c), in,
		services.UploadFile{Filename: fh.Filename, Body: f, Size: fh.Size})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (s *Server) updateDocument(c *gin.Context) {
	var in services.DocumentInput
	if !bindJSON(c, &in) {
		return
	}
	d, err := s.svc.Documents.Update(c.Request.Context(), currentUser(c), c.Param("id"), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) deleteDocument(c *gin.Context) {
	if err := s.svc.Documents.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// downloadDocument redirects to a presigned URL when the store issues one
// and streams the file otherwise.
func (s *Server) downloadDocument(c *gin.Context) {
	dl, err := s.svc.Documents.Download(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	if dl.URL != "" {
		c.Redirect(http.StatusFound, dl.URL)
		return
	}
	defer dl.Body.Close()

	contentType := mime.TypeByExtension(path.Ext(dl.FileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, dl.Body, map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": dl.FileName}),
	})
}
