package coaches

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/shared"
	internalShared "github.com/kaizen-academy/kaizen-admin/internal/shared"
)

const listPath = "/coaches"

type Handler struct {
	logger  *slog.Logger
	service *Service
	pages   shared.Pages
}

func NewHandler(logger *slog.Logger, service *Service, pages shared.Pages) *Handler {
	pages.Title = "Coaches"
	pages.Logger = logger
	return &Handler{logger: logger, service: service, pages: pages}
}

// MountRoutes registers coach routes on r.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/new", h.Form)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Get("/{id}/edit", h.EditForm)
	r.Post("/{id}", h.Update)
	r.Post("/{id}/status", h.ToggleStatus)
	r.Post("/{id}/delete", h.Delete)
	r.Post("/{id}/send-credentials", h.SendCredentials)
}

type formPage struct {
	ID              string
	Form            CoachForm
	Errors          shared.FieldErrors
	General         string
	Options         FormOptions
	Genders         []string
	Experiences     []string
	Specializations []string
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters := shared.ParseListFilters(r.URL.Query())
	items, err := h.service.List(r.Context(), filters)
	if err != nil {
		if h.pages.HandleAuth(w, r, err) {
			return
		}
		h.logger.Error("list coaches failed", slog.Any("error", err))
		h.pages.Render(w, r, "pages/coaches_list.html", map[string]any{
			"Coaches": []Coach{},
			"Filters": filters,
			"Error":   internalShared.UserSafeMessage(err),
		}, http.StatusBadGateway)
		return
	}
	h.pages.Render(w, r, "pages/coaches_list.html", map[string]any{
		"Coaches": items,
		"Filters": filters,
	}, http.StatusOK)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, internalShared.ErrNotFound) {
			h.pages.NotFound(w, r, "Coach", listPath)
			return
		}
		h.pages.Fail(w, r, "get coach failed", err, listPath)
		return
	}
	h.pages.Render(w, r, "pages/coaches_detail.html", detail, http.StatusOK)
}

func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, "", NewCoachForm(), nil, "", http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := ParseCoachForm(r.PostForm)
	created, err := h.service.Create(r.Context(), form)
	if err != nil {
		h.formFailed(w, r, "", form, "create coach failed", err)
		return
	}

	location := listPath
	if created.ID != "" {
		location = listPath + "/" + created.ID
	}
	if !form.SendCredentials || created.ID == "" {
		h.pages.RedirectWithFlash(w, r, location, internalShared.FlashSuccess, "Coach created successfully")
		return
	}
	queued, err := h.service.SendCredentials(r.Context(), created.ID)
	switch {
	case err != nil:
		h.logger.Warn("send coach credentials failed", slog.Any("error", err), slog.String("id", created.ID))
		h.pages.RedirectWithFlash(w, r, location, internalShared.FlashWarning,
			"Coach created, but the credentials email could not be sent: "+internalShared.UserSafeMessage(err))
	case queued:
		h.pages.RedirectWithFlash(w, r, location, internalShared.FlashSuccess, "Coach created successfully. Credentials email queued.")
	default:
		h.pages.RedirectWithFlash(w, r, location, internalShared.FlashSuccess, "Coach created successfully. Credentials email sent.")
	}
}

func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	coach, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, internalShared.ErrNotFound) {
			h.pages.NotFound(w, r, "Coach", listPath)
			return
		}
		h.pages.Fail(w, r, "get coach failed", err, listPath)
		return
	}
	h.renderForm(w, r, id, FormFromCoach(coach), nil, "", http.StatusOK)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := ParseCoachForm(r.PostForm)
	if _, err := h.service.Update(r.Context(), id, form); err != nil {
		h.formFailed(w, r, id, form, "update coach failed", err)
		return
	}
	h.pages.RedirectWithFlash(w, r, listPath+"/"+id, internalShared.FlashSuccess, "Coach updated successfully")
}

func (h *Handler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	active, err := strconv.ParseBool(r.PostFormValue("active"))
	if err != nil {
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}
	if err := h.service.SetActive(r.Context(), id, active); err != nil {
		h.pages.Fail(w, r, "toggle coach status failed", err, listPath)
		return
	}
	message := "Coach deactivated"
	if active {
		message = "Coach activated"
	}
	h.pages.RedirectWithFlash(w, r, shared.SafeReturn(r.PostFormValue("return_to"), listPath), internalShared.FlashSuccess, message)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.pages.Fail(w, r, "delete coach failed", err, listPath)
		return
	}
	h.pages.RedirectWithFlash(w, r, listPath, internalShared.FlashSuccess, "Coach deleted successfully")
}

func (h *Handler) SendCredentials(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	location := listPath + "/" + id
	queued, err := h.service.SendCredentials(r.Context(), id)
	if err != nil {
		h.pages.Fail(w, r, "send coach credentials failed", err, location)
		return
	}
	message := "Credentials email sent"
	if queued {
		message = "Credentials email queued"
	}
	h.pages.RedirectWithFlash(w, r, location, internalShared.FlashSuccess, message)
}

func (h *Handler) formFailed(w http.ResponseWriter, r *http.Request, id string, form CoachForm, op string, err error) {
	if h.pages.HandleAuth(w, r, err) {
		return
	}
	form.Password = ""
	if fields, ok := shared.AsFieldErrors(err); ok {
		h.renderForm(w, r, id, form, fields, "", http.StatusBadRequest)
		return
	}
	h.logger.Error(op, slog.Any("error", err), slog.String("id", id))
	h.renderForm(w, r, id, form, nil, internalShared.UserSafeMessage(err), shared.StatusFor(err))
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, id string, form CoachForm, errs shared.FieldErrors, general string, status int) {
	opts, err := h.service.Options(r.Context())
	if err != nil && h.pages.HandleAuth(w, r, err) {
		return
	}
	if errs == nil {
		errs = shared.FieldErrors{}
	}
	h.pages.Render(w, r, "pages/coaches_form.html", formPage{
		ID:              id,
		Form:            form,
		Errors:          errs,
		General:         general,
		Options:         opts,
		Genders:         Genders,
		Experiences:     Experiences,
		Specializations: Specializations,
	}, status)
}
