package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	artifactcatalog "arcana/contexts/catalog/artifact-catalog"
	catalogerrors "arcana/contexts/catalog/artifact-catalog/domain/errors"
	cataloghttp "arcana/contexts/catalog/artifact-catalog/transport/http"
	_ "arcana/internal/platform/httpserver/docs"
	"arcana/internal/platform/tracing"

	"github.com/google/uuid"
	httpSwagger "github.com/swaggo/http-swagger"
)

const requestIDHeader = "X-Request-Id"

type Server struct {
	mux     *http.ServeMux
	handler http.Handler
	logger  *slog.Logger
	addr    string
	catalog artifactcatalog.Module
}

func New(catalog artifactcatalog.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		catalog: catalog,
	}
	s.registerRoutes()
	s.handler = tracing.Middleware(s.withRequestID(s.mux))
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.handler)
}

// Handler returns the fully wrapped handler, for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /api/v1/artifacts", s.handleListArtifacts)
	s.mux.HandleFunc("POST /api/v1/artifacts", s.handleCreateArtifact)
	s.mux.HandleFunc("GET /api/v1/artifacts/{artifact_id}", s.handleGetArtifact)
	s.mux.HandleFunc("PUT /api/v1/artifacts/{artifact_id}", s.handleUpdateArtifact)
	s.mux.HandleFunc("DELETE /api/v1/artifacts/{artifact_id}", s.handleDeleteArtifact)

	s.mux.HandleFunc("GET /api/v1/wizards", s.handleListWizards)
	s.mux.HandleFunc("POST /api/v1/wizards", s.handleCreateWizard)
	s.mux.HandleFunc("GET /api/v1/wizards/{wizard_id}", s.handleGetWizard)
	s.mux.HandleFunc("PUT /api/v1/wizards/{wizard_id}", s.handleRenameWizard)
	s.mux.HandleFunc("DELETE /api/v1/wizards/{wizard_id}", s.handleDeleteWizard)

	s.mux.HandleFunc("PUT /api/v1/wizards/{wizard_id}/artifacts/{artifact_id}", s.handleAssignArtifact)
	s.mux.HandleFunc("DELETE /api/v1/wizards/{wizard_id}/artifacts/{artifact_id}", s.handleReleaseArtifact)
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
			r.Header.Set(requestIDHeader, requestID)
		}
		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleListArtifacts(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.ListArtifactsHandler(r.Context())
	if err != nil {
		s.writeCatalogDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.GetArtifactHandler(r.Context(), r.PathValue("artifact_id"))
	if err != nil {
		s.writeCatalogDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateArtifact(w http.ResponseWriter, r *http.Request) {
	var req cataloghttp.ArtifactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.CreateArtifactHandler(r.Context(), req)
	if err != nil {
		s.writeCatalogDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateArtifact(w http.ResponseWriter, r *http.Request) {
	var req cataloghttp.ArtifactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.UpdateArtifactHandler(r.Context(), r.PathValue("artifact_id"), req)
	if err != nil {
		s.writeCatalogDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteArtifact(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Handler.DeleteArtifactHandler(r.Context(), r.PathValue("artifact_id")); err != nil {
		s.writeCatalogDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListWizards(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.ListWizardsHandler(r.Context())
	if err != nil {
		s.writeCatalogDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetWizard(w http.ResponseWriter, r *http.Request) {
	wizardID, ok := parseWizardID(w, r)
	if !ok {
		return
	}
	resp, err := s.catalog.Handler.GetWizardHandler(r.Context(), wizardID)
	if err != nil {
		s.writeCatalogDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateWizard(w http.ResponseWriter, r *http.Request) {
	var req cataloghttp.WizardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.CreateWizardHandler(r.Context(), req)
	if err != nil {
		s.writeCatalogDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRenameWizard(w http.ResponseWriter, r *http.Request) {
	wizardID, ok := parseWizardID(w, r)
	if !ok {
		return
	}
	var req cataloghttp.WizardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.RenameWizardHandler(r.Context(), wizardID, req)
	if err != nil {
		s.writeCatalogDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteWizard(w http.ResponseWriter, r *http.Request) {
	wizardID, ok := parseWizardID(w, r)
	if !ok {
		return
	}
	if err := s.catalog.Handler.DeleteWizardHandler(r.Context(), wizardID); err != nil {
		s.writeCatalogDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAssignArtifact(w http.ResponseWriter, r *http.Request) {
	wizardID, ok := parseWizardID(w, r)
	if !ok {
		return
	}
	resp, err := s.catalog.Handler.AssignArtifactHandler(r.Context(), wizardID, r.PathValue("artifact_id"))
	if err != nil {
		s.writeCatalogDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReleaseArtifact(w http.ResponseWriter, r *http.Request) {
	wizardID, ok := parseWizardID(w, r)
	if !ok {
		return
	}
	if err := s.catalog.Handler.ReleaseArtifactHandler(r.Context(), wizardID, r.PathValue("artifact_id")); err != nil {
		s.writeCatalogDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseWizardID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := strings.TrimSpace(r.PathValue("wizard_id"))
	wizardID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || wizardID <= 0 {
		writeCatalogError(w, http.StatusBadRequest, "invalid_wizard_id", "wizard id must be a positive integer")
		return 0, false
	}
	return wizardID, true
}

func (s *Server) writeCatalogDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalogerrors.ErrArtifactNotFound):
		writeCatalogError(w, http.StatusNotFound, "not_found",
			fmt.Sprintf("could not find artifact with id %s", r.PathValue("artifact_id")))
	case errors.Is(err, catalogerrors.ErrWizardNotFound):
		writeCatalogError(w, http.StatusNotFound, "not_found",
			fmt.Sprintf("could not find wizard with id %s", r.PathValue("wizard_id")))
	case errors.Is(err, catalogerrors.ErrInvalidArtifact),
		errors.Is(err, catalogerrors.ErrInvalidWizard):
		writeCatalogError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, catalogerrors.ErrArtifactNotOwned):
		writeCatalogError(w, http.StatusConflict, "not_owned",
			fmt.Sprintf("wizard %s does not own artifact %s", r.PathValue("wizard_id"), r.PathValue("artifact_id")))
	case errors.Is(err, catalogerrors.ErrIDGenerationUnavailable):
		w.Header().Set("Retry-After", "1")
		writeCatalogError(w, http.StatusServiceUnavailable, "id_generation_unavailable", "artifact ids cannot be issued right now")
	default:
		s.logger.Error("catalog request failed",
			"event", "http_catalog_request_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", r.Header.Get(requestIDHeader),
			"error", err.Error(),
		)
		writeCatalogError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeCatalogError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, cataloghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
