// Package api provides HTTP handlers for MarketForge project endpoints.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ForgeLabs/MarketForge/internal/catalog"
	"github.com/ForgeLabs/MarketForge/internal/models"
)

func (s *Server) createProjectHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.createProjectHandler: processing request", "method", r.Method, "path", r.URL.Path)

	var req models.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.createProjectHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("Server.createProjectHandler: validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	p, err := s.orch.CreateProject(req.Name, req.Flow)
	if err != nil {
		slog.Error("Server.createProjectHandler: failed to create project", "error", err)
		writeJSONResponse(w, statusForError(err), models.Error(err.Error()))
		return
	}
	writeJSONResponse(w, http.StatusCreated, models.SuccessWithMessage("Project created", p))
}

func (s *Server) listProjectsHandler(w http.ResponseWriter, r *http.Request) {
	projects, err := s.orch.ListProjects()
	if err != nil {
		slog.Error("Server.listProjectsHandler: failed to list projects", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to list projects"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(projects))
}

func (s *Server) getProjectHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p, err := s.orch.GetProject(id)
	if err != nil {
		slog.Warn("Server.getProjectHandler: lookup failed", "error", err, "projectID", id)
		writeJSONResponse(w, statusForError(err), models.Error(err.Error()))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(p))
}

func (s *Server) deleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.orch.DeleteProject(id); err != nil {
		slog.Warn("Server.deleteProjectHandler: delete failed", "error", err, "projectID", id)
		writeJSONResponse(w, statusForError(err), models.Error(err.Error()))
		return
	}
	slog.Info("Server.deleteProjectHandler: project deleted", "projectID", id)
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Project deleted", nil))
}

func (s *Server) availablePromptsHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	prompts, err := s.orch.AvailablePrompts(id)
	if err != nil {
		writeJSONResponse(w, statusForError(err), models.Error(err.Error()))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(prompts))
}

func (s *Server) advanceStepHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p, err := s.orch.AdvanceProjectStep(id)
	if err != nil {
		slog.Warn("Server.advanceStepHandler: advancement failed", "error", err, "projectID", id)
		writeJSONResponse(w, statusForError(err), models.Error(err.Error()))
		return
	}
	slog.Info("Server.advanceStepHandler: step advanced", "projectID", id, "currentStep", p.CurrentStep)
	writeJSONResponse(w, http.StatusOK, models.Success(p))
}

func (s *Server) sendMessageHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	slog.Debug("Server.sendMessageHandler: processing request", "projectID", id)

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.sendMessageHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("Server.sendMessageHandler: validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	_, resp, err := s.orch.SendMessage(r.Context(), id, req)
	if err != nil {
		slog.Error("Server.sendMessageHandler: send failed", "error", err, "projectID", id)
		writeJSONResponse(w, statusForError(err), models.Error(err.Error()))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(resp))
}

func (s *Server) refineHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.RefineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.refineHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	req.ProjectID = id
	if err := req.Validate(); err != nil {
		slog.Warn("Server.refineHandler: validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	_, doc, err := s.orch.Refine(r.Context(), req)
	if err != nil {
		slog.Error("Server.refineHandler: refinement failed", "error", err, "projectID", id)
		writeJSONResponse(w, statusForError(err), models.Error(err.Error()))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]string{"updated_content": doc}))
}

func (s *Server) expertChatHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ExpertChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.expertChatHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("Server.expertChatHandler: validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	message, err := s.orch.ExpertChat(r.Context(), req)
	if err != nil {
		slog.Error("Server.expertChatHandler: chat failed", "error", err, "expertRole", req.ExpertRole)
		writeJSONResponse(w, statusForError(err), models.Error("Failed to process request"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]string{"message": message}))
}

func (s *Server) expertRolesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, models.Success(catalog.ExpertRoles))
}
