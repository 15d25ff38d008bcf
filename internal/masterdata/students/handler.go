package students

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/shared"
	internalShared "github.com/kaizen-academy/kaizen-admin/internal/shared"
)

const listPath = "/students"

type Handler struct {
	logger  *slog.Logger
	service *Service
	pages   shared.Pages
}

func NewHandler(logger *slog.Logger, service *Service, pages shared.Pages) *Handler {
	pages.Title = "Students"
	pages.Logger = logger
	return &Handler{logger: logger, service: service, pages: pages}
}

// MountRoutes registers student routes on r.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/new", h.Form)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
}

type formPage struct {
	Form    StudentForm
	Errors  shared.FieldErrors
	General string
	Options FormOptions
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters := shared.ParseListFilters(r.URL.Query())
	items, err := h.service.List(r.Context(), filters)
	if err != nil {
		if h.pages.HandleAuth(w, r, err) {
			return
		}
		h.logger.Error("list students failed", slog.Any("error", err))
		h.pages.Render(w, r, "pages/students_list.html", map[string]any{
			"Students": []Student{},
			"Filters":  filters,
			"Error":    internalShared.UserSafeMessage(err),
		}, http.StatusBadGateway)
		return
	}
	h.pages.Render(w, r, "pages/students_list.html", map[string]any{
		"Students": items,
		"Filters":  filters,
	}, http.StatusOK)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, internalShared.ErrNotFound) {
			h.pages.NotFound(w, r, "Student", listPath)
			return
		}
		h.pages.Fail(w, r, "get student failed", err, listPath)
		return
	}
	h.pages.Render(w, r, "pages/students_detail.html", detail, http.StatusOK)
}

func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, StudentForm{}, nil, "", http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := ParseStudentForm(r.PostForm)
	created, err := h.service.Create(r.Context(), form)
	if err != nil {
		if h.pages.HandleAuth(w, r, err) {
			return
		}
		form.Password = ""
		if fields, ok := shared.AsFieldErrors(err); ok {
			h.renderForm(w, r, form, fields, "", http.StatusBadRequest)
			return
		}
		h.logger.Error("create student failed", slog.Any("error", err))
		h.renderForm(w, r, form, nil, internalShared.UserSafeMessage(err), shared.StatusFor(err))
		return
	}
	location := listPath
	if created.ID != "" {
		location = listPath + "/" + created.ID
	}
	h.pages.RedirectWithFlash(w, r, location, internalShared.FlashSuccess, "Student "+form.FullName+" created successfully")
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, form StudentForm, errs shared.FieldErrors, general string, status int) {
	opts, err := h.service.Options(r.Context())
	if err != nil && h.pages.HandleAuth(w, r, err) {
		return
	}
	if errs == nil {
		errs = shared.FieldErrors{}
	}
	h.pages.Render(w, r, "pages/students_form.html", formPage{
		Form:    form,
		Errors:  errs,
		General: general,
		Options: opts,
	}, status)
}
