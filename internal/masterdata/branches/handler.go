package branches

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/shared"
	internalShared "github.com/kaizen-academy/kaizen-admin/internal/shared"
)

const listPath = "/branches"

type Handler struct {
	logger  *slog.Logger
	service *Service
	pages   shared.Pages
}

func NewHandler(logger *slog.Logger, service *Service, pages shared.Pages) *Handler {
	pages.Title = "Branches"
	pages.Logger = logger
	return &Handler{logger: logger, service: service, pages: pages}
}

// MountRoutes registers branch routes on r.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/new", h.Form)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Get("/{id}/edit", h.EditForm)
	r.Post("/{id}", h.Update)
	r.Post("/{id}/status", h.ToggleStatus)
	r.Post("/{id}/delete", h.Delete)
}

type formPage struct {
	ID       string
	Form     BranchForm
	Errors   shared.FieldErrors
	General  string
	Options  FormOptions
	Weekdays []string
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters := shared.ParseListFilters(r.URL.Query())
	items, err := h.service.List(r.Context(), filters)
	if err != nil {
		if h.pages.HandleAuth(w, r, err) {
			return
		}
		h.logger.Error("list branches failed", slog.Any("error", err))
		h.pages.Render(w, r, "pages/branches_list.html", map[string]any{
			"Branches": []Branch{},
			"Filters":  filters,
			"Error":    internalShared.UserSafeMessage(err),
		}, http.StatusBadGateway)
		return
	}
	h.pages.Render(w, r, "pages/branches_list.html", map[string]any{
		"Branches": items,
		"Filters":  filters,
	}, http.StatusOK)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	detail, err := h.service.Detail(r.Context(), id)
	if err != nil {
		if errors.Is(err, internalShared.ErrNotFound) {
			h.pages.NotFound(w, r, "Branch", listPath)
			return
		}
		h.pages.Fail(w, r, "get branch failed", err, listPath)
		return
	}
	h.pages.Render(w, r, "pages/branches_detail.html", detail, http.StatusOK)
}

func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, "", NewBranchForm(), nil, "", http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := ParseBranchForm(r.PostForm)
	created, err := h.service.Create(r.Context(), form)
	if err != nil {
		h.formFailed(w, r, "", form, "create branch failed", err)
		return
	}
	location := listPath
	if created.ID != "" {
		location = listPath + "/" + created.ID
	}
	h.pages.RedirectWithFlash(w, r, location, internalShared.FlashSuccess, "Branch created successfully")
}

func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	branch, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, internalShared.ErrNotFound) {
			h.pages.NotFound(w, r, "Branch", listPath)
			return
		}
		h.pages.Fail(w, r, "get branch failed", err, listPath)
		return
	}
	h.renderForm(w, r, id, FormFromBranch(branch), nil, "", http.StatusOK)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := ParseBranchForm(r.PostForm)
	if _, err := h.service.Update(r.Context(), id, form); err != nil {
		h.formFailed(w, r, id, form, "update branch failed", err)
		return
	}
	h.pages.RedirectWithFlash(w, r, listPath+"/"+id, internalShared.FlashSuccess, "Branch updated successfully")
}

// ToggleStatus sets the active flag to the posted "active" value.
func (h *Handler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	active, err := strconv.ParseBool(r.PostFormValue("active"))
	if err != nil {
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}
	if err := h.service.SetActive(r.Context(), id, active); err != nil {
		h.pages.Fail(w, r, "toggle branch status failed", err, listPath)
		return
	}
	message := "Branch deactivated"
	if active {
		message = "Branch activated"
	}
	h.pages.RedirectWithFlash(w, r, backTo(r, listPath), internalShared.FlashSuccess, message)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.pages.Fail(w, r, "delete branch failed", err, listPath)
		return
	}
	h.pages.RedirectWithFlash(w, r, listPath, internalShared.FlashSuccess, "Branch deleted successfully")
}

func (h *Handler) formFailed(w http.ResponseWriter, r *http.Request, id string, form BranchForm, op string, err error) {
	if h.pages.HandleAuth(w, r, err) {
		return
	}
	if fields, ok := shared.AsFieldErrors(err); ok {
		h.renderForm(w, r, id, form, fields, "", http.StatusBadRequest)
		return
	}
	h.logger.Error(op, slog.Any("error", err), slog.String("id", id))
	h.renderForm(w, r, id, form, nil, internalShared.UserSafeMessage(err), shared.StatusFor(err))
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, id string, form BranchForm, errs shared.FieldErrors, general string, status int) {
	opts, err := h.service.Options(r.Context())
	if err != nil && h.pages.HandleAuth(w, r, err) {
		return
	}
	if errs == nil {
		errs = shared.FieldErrors{}
	}
	h.pages.Render(w, r, "pages/branches_form.html", formPage{
		ID:       id,
		Form:     form,
		Errors:   errs,
		General:  general,
		Options:  opts,
		Weekdays: Weekdays,
	}, status)
}

// backTo honours a same-site "return_to" path posted with row actions.
func backTo(r *http.Request, fallback string) string {
	return shared.SafeReturn(r.PostFormValue("return_to"), fallback)
}
