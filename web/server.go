// Package web serves a localhost-only single-user upload API; it
// intentionally has no auth/CSRF protection in this mode.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"bulkunit/config"
	"bulkunit/importer"
	"bulkunit/output"
	"bulkunit/storage"
	"bulkunit/unit"
)

// maxUploadBytes bounds one multipart upload (the whole file is
// buffered before parsing).
const maxUploadBytes = 32 << 20

type Server struct {
	store *storage.SQLiteStore
	cfg   config.Config
	mux   *http.ServeMux
}

type importResponse struct {
	Projects     []projectSummary       `json:"projects"`
	Errors       []unit.ValidationError `json:"errors"`
	Report       string                 `json:"report"`
	TotalUnits   int                    `json:"totalUnits"`
	Processed    int                    `json:"processed"`
	Skipped      int                    `json:"skipped"`
	DroppedRows  int                    `json:"droppedRows"`
	ProjectCount int                    `json:"projectCount"`
	Persisted    *persistSummary        `json:"persisted,omitempty"`
	UploadLogID  string                 `json:"uploadLogId,omitempty"`
}

type projectSummary struct {
	Name           string `json:"name"`
	PossessionDate string `json:"possessionDate,omitempty"`
	UnitCount      int    `json:"unitCount"`
}

type persistSummary struct {
	ProjectsCreated int `json:"projectsCreated"`
	UnitsInserted   int `json:"unitsInserted"`
	UnitsFailed     int `json:"unitsFailed"`
}

type unitListItem struct {
	ID              int64    `json:"id"`
	ProjectID       int64    `json:"projectId"`
	Name            string   `json:"name"`
	Floor           int      `json:"floor"`
	Type            string   `json:"type"`
	Size            string   `json:"size"`
	Price           float64  `json:"price"`
	DiscountPrice   *float64 `json:"discountPrice,omitempty"`
	RegistrationFee *float64 `json:"registrationFee,omitempty"`
	ROIPercentage   *float64 `json:"roiPercentage,omitempty"`
	PaymentPlan     string   `json:"paymentPlan,omitempty"`
	Status          string   `json:"status"`
}

type projectListItem struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Location       string `json:"location,omitempty"`
	Type           string `json:"type,omitempty"`
	Status         string `json:"status,omitempty"`
	Developer      string `json:"developer,omitempty"`
	PossessionDate string `json:"possessionDate,omitempty"`
	UnitCount      int    `json:"unitCount"`
}

func NewServer(store *storage.SQLiteStore, cfg config.Config) *Server {
	s := &Server{store: store, cfg: cfg, mux: http.NewServeMux()}

	s.mux.HandleFunc("/api/import", s.handleImport)
	s.mux.HandleFunc("/api/projects", s.handleProjects)
	s.mux.HandleFunc("/api/units", s.handleUnits)
	s.mux.HandleFunc("/api/template", s.handleTemplate)
	s.mux.HandleFunc("/healthz", s.handleHealth)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpError(w, http.StatusBadRequest, fmt.Sprintf("parse upload: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpError(w, http.StatusBadRequest, "missing upload field \"file\"")
		return
	}
	defer file.Close()

	format, err := resolveUploadFormat(header)
	if err != nil {
		httpError(w, http.StatusUnsupportedMediaType, err.Error())
		return
	}

	opts := importer.OptionsFromConfig(s.cfg)
	result, err := importer.RunReader(file, header.Filename, format, opts)
	if err != nil {
		if errors.Is(err, importer.ErrEmptyFile) {
			httpError(w, http.StatusUnprocessableEntity, "file contains no rows")
			return
		}
		httpError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	response := importResponse{
		Projects:     summarizeProjects(result.Projects),
		Errors:       result.Errors,
		Report:       output.RenderErrorReport(result.Errors),
		TotalUnits:   result.TotalUnits,
		Processed:    result.Processed,
		Skipped:      result.Skipped,
		DroppedRows:  result.DroppedRows,
		ProjectCount: result.ProjectCount,
	}

	if r.FormValue("dryRun") != "true" {
		meta := storage.ProjectMeta{
			Location:  firstNonEmpty(r.FormValue("location"), s.cfg.Project.Location),
			Type:      firstNonEmpty(r.FormValue("type"), s.cfg.Project.Type),
			Status:    firstNonEmpty(r.FormValue("status"), s.cfg.Project.Status),
			Developer: firstNonEmpty(r.FormValue("developer"), s.cfg.Project.Developer),
			CreatedBy: r.FormValue("createdBy"),
		}

		summary, saveErr := s.store.SaveBatches(result.Projects, meta)
		logID, logErr := s.store.InsertUploadLog(uploadLogFor(header.Filename, result, meta.CreatedBy, saveErr))
		if saveErr != nil {
			httpError(w, http.StatusInternalServerError, fmt.Sprintf("save batches: %v", saveErr))
			return
		}
		if logErr == nil {
			response.UploadLogID = logID
		}
		response.Persisted = &persistSummary{
			ProjectsCreated: summary.ProjectsCreated,
			UnitsInserted:   summary.UnitsInserted,
			UnitsFailed:     summary.UnitsFailed,
		}
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	projects, err := s.store.ListProjects()
	if err != nil {
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}

	items := make([]projectListItem, 0, len(projects))
	for _, p := range projects {
		items = append(items, projectListItem{
			ID:             p.ID,
			Name:           p.Name,
			Location:       p.Location,
			Type:           p.Type,
			Status:         p.Status,
			Developer:      p.Developer,
			PossessionDate: p.PossessionDate,
			UnitCount:      p.UnitCount,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	projectID, err := strconv.ParseInt(r.URL.Query().Get("project"), 10, 64)
	if err != nil || projectID <= 0 {
		httpError(w, http.StatusBadRequest, "query parameter \"project\" must be a positive project ID")
		return
	}

	units, err := s.store.ListUnitsByProject(projectID)
	if err != nil {
		if errors.Is(err, storage.ErrProjectNotFound) {
			httpError(w, http.StatusNotFound, "project not found")
			return
		}
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}
	items := make([]unitListItem, 0, len(units))
	for _, u := range units {
		items = append(items, unitListItem{
			ID:              u.ID,
			ProjectID:       u.ProjectID,
			Name:            u.Name,
			Floor:           u.Floor,
			Type:            u.Type,
			Size:            u.Size,
			Price:           u.Price,
			DiscountPrice:   u.DiscountPrice,
			RegistrationFee: u.RegistrationFee,
			ROIPercentage:   u.ROIPercentage,
			PaymentPlan:     u.PaymentPlan,
			Status:          u.Status,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	file, err := output.BuildTemplate()
	if err != nil {
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="unit-upload-template.xlsx"`)
	if _, err := file.WriteTo(w); err != nil {
		// Headers are already out; nothing useful left to send.
		return
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// resolveUploadFormat accepts an upload by filename extension or by
// declared content type, whichever matches.
func resolveUploadFormat(header *multipart.FileHeader) (string, error) {
	if format, err := importer.InferFormat(header.Filename, ""); err == nil {
		return format, nil
	}

	contentType := strings.ToLower(header.Header.Get("Content-Type"))
	switch {
	case strings.Contains(contentType, "spreadsheetml"), strings.Contains(contentType, "ms-excel"):
		return "excel", nil
	case strings.Contains(contentType, "csv"):
		return "csv", nil
	default:
		return "", fmt.Errorf("unsupported upload type %q for %s", contentType, header.Filename)
	}
}

func summarizeProjects(batches []unit.ProjectBatch) []projectSummary {
	summaries := make([]projectSummary, 0, len(batches))
	for _, batch := range batches {
		summaries = append(summaries, projectSummary{
			Name:           batch.Name,
			PossessionDate: batch.PossessionDate,
			UnitCount:      len(batch.Units),
		})
	}
	return summaries
}

func uploadLogFor(filename string, result *importer.Result, createdBy string, saveErr error) storage.UploadLog {
	status := "success"
	message := ""
	if saveErr != nil {
		status = "failed"
		message = saveErr.Error()
	}
	return storage.UploadLog{
		FileName:     filename,
		ProjectCount: result.ProjectCount,
		UnitCount:    result.TotalUnits,
		ErrorCount:   len(result.Errors),
		Status:       status,
		Message:      message,
		CreatedBy:    createdBy,
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func httpError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
