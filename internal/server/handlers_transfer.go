package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/resume-builder/internal/transfer"
)

// handleSave writes the document immediately
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if s.service == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "storage is not configured")
		return
	}
	if !s.service.Save(r.Context()) {
		s.errorResponse(w, http.StatusInternalServerError, "failed to save document")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"saved": true})
}

// handleExportJSON downloads the document as a JSON file
func (s *Server) handleExportJSON(w http.ResponseWriter, _ *http.Request) {
	doc := s.store.State()
	data, err := transfer.Export(doc)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", attachment(transfer.Filename(doc, s.now())))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("failed to write export", "error", err)
	}
}

// handleExportPDF prints the preview page to PDF
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	if s.printer == nil {
		s.errorFrom(w, ErrPDFUnavailable)
		return
	}

	doc := s.store.State()
	page, err := s.renderer.RenderPage(doc)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	data, err := s.printer.Print(r.Context(), page, doc.Meta.PageSize)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	name := strings.TrimSuffix(transfer.Filename(doc, s.now()), ".json") + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", attachment(name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("failed to write pdf", "error", err)
	}
}

// handleImport replaces the document with the uploaded JSON body
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, transfer.MaxImportSize+1)
	doc, err := s.importer.Import(r.Context(), body)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
