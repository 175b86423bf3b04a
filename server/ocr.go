package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/sonderworks/beacon/renderer"
)

const extractTimeout = time.Minute

type ocrResult struct {
	Filename string
	MIME     string
	Fields   map[string]string
	Error    string
}

func (s *Server) ocrGet(w http.ResponseWriter, r *http.Request) {
	s.serveHTML(w, r, http.StatusOK, renderer.TemplateOCR, &renderer.Data{
		Title:        "Document Extraction",
		DraftPreview: s.isDraftPreview(r),
	})
}

func (s *Server) ocrPost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.extractor.MaxFileSize())

	file, header, err := r.FormFile("document")
	if err != nil {
		s.serveErrorHTML(w, r, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.serveErrorHTML(w, r, http.StatusBadRequest, err)
		return
	}

	result := &ocrResult{Filename: header.Filename}

	mime, err := s.extractor.CheckDocument(data)
	if err != nil {
		result.Error = err.Error()
		s.serveHTML(w, r, http.StatusUnprocessableEntity, renderer.TemplateOCR, &renderer.Data{
			Title: "Document Extraction",
			Data:  result,
		})
		return
	}
	result.MIME = mime

	ctx, cancel := context.WithTimeout(r.Context(), extractTimeout)
	defer cancel()

	fields, err := s.extractor.Extract(ctx, data)
	if err != nil {
		s.log.Errorw("extraction failed", "filename", header.Filename, "err", err)
		s.serveErrorHTML(w, r, http.StatusBadGateway, err)
		return
	}
	result.Fields = fields

	s.serveHTML(w, r, http.StatusOK, renderer.TemplateOCR, &renderer.Data{
		Title: "Document Extraction",
		Data:  result,
	})
}
