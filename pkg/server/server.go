package server

import (
	"crypto/sha256"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/watamovie/CoconalaSummary/pkg/analytics"
	"github.com/watamovie/CoconalaSummary/pkg/config"
	"github.com/watamovie/CoconalaSummary/pkg/export"
	"github.com/watamovie/CoconalaSummary/pkg/models"
	"github.com/watamovie/CoconalaSummary/pkg/parser"
)

// Server handles HTTP requests for sales dashboard data and exports.
type Server struct {
	config   *config.Config
	logger   *log.Logger
	mux      *http.ServeMux
	template *template.Template
	parser   *parser.Parser
	datasets sync.Map
}

// dataset is one uploaded record set. Records are immutable once stored;
// every dashboard refresh recomputes from them.
type dataset struct {
	ID         string
	Name       string
	Records    []models.SalesRecord
	Options    analytics.Options
	UploadedAt time.Time
}

//go:embed templates/*.html
var templateFS embed.FS

// New creates a new HTTP server
func New(config *config.Config, logger *log.Logger) *Server {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/*.html"))
	return &Server{
		config:   config,
		logger:   logger,
		mux:      http.NewServeMux(),
		template: tmpl,
		parser:   parser.New(logger),
	}
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	s.setupRoutes()
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) setupRoutes() {
	// homepage
	s.mux.HandleFunc("/", s.withLogging(s.handleHome))

	s.mux.HandleFunc("/api/upload", s.withLogging(s.handleUpload))
	s.mux.HandleFunc("/api/datasets/", s.withLogging(s.handleDatasets))
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if err := s.template.ExecuteTemplate(w, "index.html", nil); err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to render page", err)
		return
	}
}

// ---------------- upload handler ----------------

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	file, header, err := r.FormFile("sales")
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "sales file required", err)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to read file", err)
		return
	}

	records, err := s.parser.ProcessBytes(data, header.Filename)
	if err != nil {
		if errors.Is(err, parser.ErrNoRecords) {
			s.respondError(w, r, http.StatusBadRequest, "no valid records in file", err)
			return
		}
		s.respondError(w, r, http.StatusBadRequest, "failed to process file", err)
		return
	}

	ds := &dataset{
		ID:         datasetID(header.Filename),
		Name:       header.Filename,
		Records:    records,
		Options:    analytics.CollectOptions(records),
		UploadedAt: time.Now(),
	}
	s.datasets.Store(ds.ID, ds)

	s.logger.Info("dataset stored", "id", ds.ID, "file", ds.Name, "records", len(records))

	if err := s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"dataset": ds.ID,
		"file":    ds.Name,
		"records": len(records),
		"options": ds.Options,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// datasetID derives a short stable id from the upload name and time.
func datasetID(filename string) string {
	input := fmt.Sprintf("%s-%d", filename, time.Now().UnixNano())
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash)[:8]
}

// ---------------- dataset handlers ----------------

// handleDatasets dispatches /api/datasets/{id}/dashboard and
// /api/datasets/{id}/export/{format}.
func (s *Server) handleDatasets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/datasets/")
	parts := strings.Split(rest, "/")
	if len(parts) < 2 || parts[0] == "" {
		s.respondError(w, r, http.StatusBadRequest, "dataset id required", nil)
		return
	}

	value, ok := s.datasets.Load(parts[0])
	if !ok {
		s.respondError(w, r, http.StatusNotFound, "dataset not found", nil)
		return
	}
	ds := value.(*dataset)

	switch {
	case len(parts) == 2 && parts[1] == "dashboard":
		s.handleDashboard(w, r, ds)
	case len(parts) == 2 && parts[1] == "options":
		s.handleOptions(w, r, ds)
	case len(parts) == 3 && parts[1] == "export":
		s.handleExport(w, r, ds, export.Format(parts[2]))
	default:
		s.respondError(w, r, http.StatusNotFound, "unknown endpoint", nil)
	}
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request, ds *dataset) {
	if err := s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"options": ds.Options,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// tableRow is one row of the filtered-records table.
type tableRow struct {
	Date      string `json:"date"`
	Service   string `json:"service"`
	Customer  string `json:"customer"`
	Breakdown string `json:"breakdown"`
	Amount    int    `json:"amount"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, ds *dataset) {
	filter, err := filterFromQuery(r)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid filter", err)
		return
	}

	granularity := analytics.ByMonth
	if r.URL.Query().Get("granularity") == string(analytics.ByDay) {
		granularity = analytics.ByDay
	}
	serviceTop := queryInt(r, "service_top", s.config.ServiceTop)
	customerTop := queryInt(r, "customer_top", s.config.CustomerTop)

	subset := filter.Apply(ds.Records)
	view := analytics.BuildView(subset, granularity, serviceTop, customerTop)

	limit := s.config.TableLimit
	if limit <= 0 || limit > len(subset) {
		limit = len(subset)
	}
	rows := make([]tableRow, limit)
	for i := 0; i < limit; i++ {
		rows[i] = tableRow{
			Date:      subset[i].DateKey(),
			Service:   subset[i].Service,
			Customer:  subset[i].Customer,
			Breakdown: subset[i].Breakdown,
			Amount:    subset[i].Amount,
		}
	}

	if err := s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "success",
		"view":     view,
		"rows":     rows,
		"filtered": len(subset),
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, ds *dataset, format export.Format) {
	filter, err := filterFromQuery(r)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid filter", err)
		return
	}

	subset := filter.Apply(ds.Records)
	text, err := export.Render(format, subset)
	if err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			s.respondError(w, r, http.StatusConflict, "no records to export", err)
			return
		}
		s.respondError(w, r, http.StatusBadRequest, "failed to render export", err)
		return
	}

	encoded, err := export.EncodeShiftJIS(text)
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to encode export", err)
		return
	}

	s.logger.Info("export complete", "dataset", ds.ID, "format", format, "records", len(subset))

	w.Header().Set("Content-Type", "text/csv; charset=Shift_JIS")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(format)))
	if _, err := w.Write(encoded); err != nil {
		s.logger.Warn("failed to write csv response", "err", err)
	}
}

// --- helpers ---

func filterFromQuery(r *http.Request) (analytics.Filter, error) {
	q := r.URL.Query()
	return analytics.FilterFromStrings(q.Get("start"), q.Get("end"), q.Get("service"), q.Get("breakdown"))
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// writeJSON encodes v as JSON with the given status and writes headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// respondError logs the error and returns a minimal JSON error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		s.logger.Warn("request error", "status", status, "msg", message, "err", err, "method", r.Method, "path", r.URL.Path)
	} else {
		s.logger.Warn("request error", "status", status, "msg", message, "method", r.Method, "path", r.URL.Path)
	}
	_ = s.writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// withLogging wraps a handler to log request start/end and recover panics.
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
				s.respondError(w, r, http.StatusInternalServerError, "internal server error", fmt.Errorf("panic: %v", rec))
			}
		}()
		next(w, r)
	}
}
