package reportshttp

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/shared"
	"github.com/kaizen-academy/kaizen-admin/internal/platform/httpx"
	"github.com/kaizen-academy/kaizen-admin/internal/reports"
	"github.com/kaizen-academy/kaizen-admin/internal/reports/export"
)

const requestTimeout = 10 * time.Second

// ReportService is the report contract used by the handler.
type ReportService interface {
	Page(ctx context.Context, category reports.Category, values url.Values) (reports.PageResult, error)
	Export(ctx context.Context, category reports.Category, values url.Values) (reports.Table, error)
	Courses(ctx context.Context, category reports.Category, branchID string) ([]reports.CourseOption, error)
}

// Handler serves the report pages, course lookups and exports.
type Handler struct {
	logger  *slog.Logger
	service ReportService
	pages   shared.Pages
	bufPool sync.Pool
	now     func() time.Time
}

// NewHandler constructs the reports HTTP handler.
func NewHandler(logger *slog.Logger, service ReportService, pages shared.Pages) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	pages.Logger = logger
	pages.Title = "Reports"
	h := &Handler{logger: logger, service: service, pages: pages, now: time.Now}
	h.bufPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

type indexEntry struct {
	Category    reports.Category
	Label       string
	Description string
}

type categoryPage struct {
	Page    reports.PageResult
	Label   string
	Query   string
	CSVURL  string
	XLSXURL string
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	entries := make([]indexEntry, 0, len(reports.Categories))
	for _, c := range reports.Categories {
		entries = append(entries, indexEntry{Category: c, Label: c.Label(), Description: c.Description()})
	}
	h.pages.Render(w, r, "pages/reports_index.html", map[string]any{"Categories": entries}, http.StatusOK)
}

func (h *Handler) handleCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := reports.ParseCategory(chi.URLParam(r, "category"))
	if !ok {
		h.pages.NotFound(w, r, "Report", "/reports")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	page, err := h.service.Page(ctx, category, r.URL.Query())
	if err != nil {
		h.pages.Fail(w, r, "load report", err, "/reports")
		return
	}

	status := http.StatusOK
	if len(page.Errors) > 0 {
		status = http.StatusBadRequest
	}
	base := "/reports/" + string(category)
	query := page.Query()
	h.pages.Render(w, r, "pages/reports_category.html", categoryPage{
		Page:    page,
		Label:   category.Label(),
		Query:   query,
		CSVURL:  withQuery(base+"/export.csv", query),
		XLSXURL: withQuery(base+"/export.xlsx", query),
	}, status)
}

func (h *Handler) handleCourses(w http.ResponseWriter, r *http.Request) {
	category, ok := reports.ParseCategory(chi.URLParam(r, "category"))
	if !ok {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "Unknown report category.")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	courses, err := h.service.Courses(ctx, category, r.URL.Query().Get(reports.KeyBranch))
	if err != nil {
		h.logger.Warn("load report courses", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if courses == nil {
		courses = []reports.CourseOption{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"courses": courses})
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "csv", "text/csv; charset=utf-8", func(buf *bytes.Buffer, category reports.Category, table reports.Table) error {
		return export.WriteCSV(buf, table)
	})
}

func (h *Handler) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", func(buf *bytes.Buffer, category reports.Category, table reports.Table) error {
		return export.WriteXLSX(buf, category.Label(), table)
	})
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request, ext, contentType string, write func(*bytes.Buffer, reports.Category, reports.Table) error) {
	category, ok := reports.ParseCategory(chi.URLParam(r, "category"))
	if !ok {
		h.pages.NotFound(w, r, "Report", "/reports")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	table, err := h.service.Export(ctx, category, r.URL.Query())
	if err != nil {
		if h.pages.HandleAuth(w, r, err) {
			return
		}
		var fe reports.FilterErrors
		if errors.As(err, &fe) {
			httpx.Problem(w, http.StatusBadRequest, "Invalid filters", fe.Error())
			return
		}
		h.logger.Error("export report", slog.Any("error", err), slog.String("category", string(category)))
		httpx.RespondError(w, err)
		return
	}

	buf := h.bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		h.bufPool.Put(buf)
	}()

	if err := write(buf, category, table); err != nil {
		h.logger.Error("write export", slog.Any("error", err), slog.String("format", ext))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	filename := export.FileName(category, h.now(), ext)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("stream export", slog.Any("error", err))
	}
}

func withQuery(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + query
}
