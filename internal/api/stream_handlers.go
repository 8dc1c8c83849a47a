// Package api provides streaming and document handlers for MarketForge
// endpoints.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ForgeLabs/MarketForge/internal/export"
	"github.com/ForgeLabs/MarketForge/internal/flow"
	"github.com/ForgeLabs/MarketForge/internal/models"
	"github.com/ForgeLabs/MarketForge/internal/pdftext"
)

// MaxDocumentUploadBytes caps the size of uploaded documents.
const MaxDocumentUploadBytes = 20 << 20

// streamMessageHandler handles POST /projects/{id}/stream: the user's
// message is answered over an event stream of framed content fragments.
func (s *Server) streamMessageHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.streamMessageHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("Server.streamMessageHandler: validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	s.relayStream(w, r, id, req, flow.KindMessage)
}

// generateReportHandler handles POST /projects/{id}/report: the flow's
// summary report is generated over an event stream. The request kind is
// carried by the route itself, not inferred from message content.
func (s *Server) generateReportHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.relayStream(w, r, id, models.SendMessageRequest{}, flow.KindReport)
}

// imagePromptHandler handles POST /projects/{id}/image-prompt: an
// image-generation prompt is derived from the project's stored report and
// streamed back. The request kind is explicit in the route.
func (s *Server) imagePromptHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.relayStream(w, r, id, models.SendMessageRequest{}, flow.KindImagePrompt)
}

// generateImageHandler handles POST /images/generate: renders one
// marketing image from the supplied prompt and returns its URL.
func (s *Server) generateImageHandler(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.generateImageHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("Server.generateImageHandler: validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	url, err := s.orch.GenerateImage(r.Context(), req.Prompt)
	if err != nil {
		slog.Error("Server.generateImageHandler: generation failed", "error", err)
		writeJSONResponse(w, statusForError(err), models.Error("Failed to generate image"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]string{"image_url": url}))
}

// relayStream runs a streamed orchestrator request and relays each
// fragment to the client as a framed event-stream line.
func (s *Server) relayStream(w http.ResponseWriter, r *http.Request, projectID string, req models.SendMessageRequest, kind flow.RequestKind) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		slog.Error("Server.relayStream: response writer does not support flushing")
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Streaming unsupported"))
		return
	}

	// Headers are committed on the first fragment, so validation errors
	// from the orchestrator can still produce a JSON error response.
	started := false
	emit := func(delta string) error {
		if !started {
			w.Header().Set("Content-Type", "text/event-stream")
			w.Header().Set("Cache-Control", "no-cache")
			w.Header().Set("Connection", "keep-alive")
			w.WriteHeader(http.StatusOK)
			started = true
		}
		if _, err := w.Write(flow.EncodeFragment(delta)); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	_, err := s.orch.StreamMessage(r.Context(), projectID, req, kind, emit)
	if err != nil {
		slog.Error("Server.relayStream: stream failed", "error", err, "projectID", projectID, "kind", kind)
		if !started {
			writeJSONResponse(w, statusForError(err), models.Error(err.Error()))
		}
		return
	}
	if !started {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
	}
	if _, err := io.WriteString(w, "data: [DONE]\n\n"); err == nil {
		flusher.Flush()
	}
}

// exportHandler handles GET /projects/{id}/export?format=txt|pdf.
func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "txt"
	}

	p, err := s.orch.GetProject(id)
	if err != nil {
		writeJSONResponse(w, statusForError(err), models.Error(err.Error()))
		return
	}

	switch format {
	case "txt":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", p.Name+".txt"))
		if _, err := w.Write(export.ToTxt(p.Turns, p.Name)); err != nil {
			slog.Error("Server.exportHandler: failed to write txt export", "error", err, "projectID", id)
		}
	case "pdf":
		data, err := export.ToPdf(p.Turns, p.Name)
		if err != nil {
			slog.Error("Server.exportHandler: PDF rendering failed", "error", err, "projectID", id)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to render PDF"))
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", p.Name+".pdf"))
		if _, err := w.Write(data); err != nil {
			slog.Error("Server.exportHandler: failed to write pdf export", "error", err, "projectID", id)
		}
	default:
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Unsupported export format"))
	}
}

// extractDocumentHandler handles POST /documents/extract: the request
// body is a PDF document, the response carries its extracted text. An
// unreadable document is not an error; the client proceeds without
// document context.
func (s *Server) extractDocumentHandler(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, MaxDocumentUploadBytes))
	if err != nil {
		slog.Warn("Server.extractDocumentHandler: failed to read body", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Failed to read document"))
		return
	}

	text, err := pdftext.Extract(data)
	if err != nil {
		slog.Info("Server.extractDocumentHandler: extraction degraded to empty", "error", err, "size", len(data))
		writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage(
			"Could not read the document. You can paste its content manually.",
			map[string]string{"text": ""}))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]string{"text": text}))
}
