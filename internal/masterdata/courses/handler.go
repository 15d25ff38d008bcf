package courses

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/shared"
	internalShared "github.com/kaizen-academy/kaizen-admin/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
	pages   shared.Pages
}

func NewHandler(logger *slog.Logger, service *Service, pages shared.Pages) *Handler {
	pages.Title = "Courses"
	pages.Logger = logger
	return &Handler{logger: logger, service: service, pages: pages}
}

// MountRoutes registers course routes on r.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/new", h.Form)
	r.Post("/", h.Create)
}

type formPage struct {
	Form         CourseForm
	Errors       shared.FieldErrors
	General      string
	Difficulties []string
	Categories   []string
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters := shared.ParseListFilters(r.URL.Query())
	items, err := h.service.List(r.Context(), filters)
	if err != nil {
		if h.pages.HandleAuth(w, r, err) {
			return
		}
		h.logger.Error("list courses failed", slog.Any("error", err))
		h.pages.Render(w, r, "pages/courses_list.html", map[string]any{
			"Courses": []Course{},
			"Filters": filters,
			"Error":   internalShared.UserSafeMessage(err),
		}, http.StatusBadGateway)
		return
	}
	h.pages.Render(w, r, "pages/courses_list.html", map[string]any{
		"Courses": items,
		"Filters": filters,
	}, http.StatusOK)
}

func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, NewCourseForm(), nil, "", http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := ParseCourseForm(r.PostForm)
	created, err := h.service.Create(r.Context(), form)
	if err != nil {
		if h.pages.HandleAuth(w, r, err) {
			return
		}
		if fields, ok := shared.AsFieldErrors(err); ok {
			h.renderForm(w, r, form, fields, "", http.StatusBadRequest)
			return
		}
		h.logger.Error("create course failed", slog.Any("error", err))
		h.renderForm(w, r, form, nil, internalShared.UserSafeMessage(err), shared.StatusFor(err))
		return
	}
	title := created.Title
	if title == "" {
		title = form.Title
	}
	h.pages.RedirectWithFlash(w, r, "/courses", internalShared.FlashSuccess, "Course "+title+" created successfully")
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, form CourseForm, errs shared.FieldErrors, general string, status int) {
	if errs == nil {
		errs = shared.FieldErrors{}
	}
	h.pages.Render(w, r, "pages/courses_form.html", formPage{
		Form:         form,
		Errors:       errs,
		General:      general,
		Difficulties: Difficulties,
		Categories:   Categories,
	}, status)
}
