package shared

import (
	"log/slog"
	"net/http"

	internalShared "github.com/kaizen-academy/kaizen-admin/internal/shared"
	"github.com/kaizen-academy/kaizen-admin/internal/view"
)

// LoginPath is where users are sent when the backend token is unusable.
const LoginPath = "/auth/login"

// Pages bundles the rendering helpers every master data handler needs.
type Pages struct {
	Logger    *slog.Logger
	Templates *view.Engine
	CSRF      *internalShared.CSRFManager
	Title     string
}

// Render writes a page with the common layout data.
func (p Pages) Render(w http.ResponseWriter, r *http.Request, name string, data any, status int) {
	sess := internalShared.SessionFromContext(r.Context())
	var csrfToken string
	if sess != nil && p.CSRF != nil {
		csrfToken, _ = p.CSRF.EnsureToken(r.Context(), sess)
	}
	viewData := view.TemplateData{
		Title:       p.Title,
		CSRFToken:   csrfToken,
		Flash:       sess.PopFlash(),
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if principal, ok := internalShared.PrincipalFromContext(r.Context()); ok {
		viewData.User = &principal
	}
	w.WriteHeader(status)
	if err := p.Templates.Render(w, name, viewData); err != nil {
		p.log().Error("render template", slog.Any("error", err), slog.String("template", name))
	}
}

// RedirectWithFlash queues a flash message and redirects with 303.
func (p Pages) RedirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := internalShared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(internalShared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// Fail handles an error raised while serving a request. Authentication failures
// clear the stored token and send the user to the login page; anything else is
// flashed and the user is redirected to location.
func (p Pages) Fail(w http.ResponseWriter, r *http.Request, op string, err error, location string) {
	if p.HandleAuth(w, r, err) {
		return
	}
	p.log().Error(op, slog.Any("error", err))
	p.RedirectWithFlash(w, r, location, internalShared.FlashError, internalShared.UserSafeMessage(err))
}

// HandleAuth redirects to login when err is an authentication failure.
func (p Pages) HandleAuth(w http.ResponseWriter, r *http.Request, err error) bool {
	if !internalShared.IsAuthError(err) {
		return false
	}
	sess := internalShared.SessionFromContext(r.Context())
	internalShared.ClearAuth(sess)
	p.log().Info("backend session rejected", slog.Any("error", err), slog.String("path", r.URL.Path))
	p.RedirectWithFlash(w, r, LoginPath, internalShared.FlashWarning, internalShared.SessionExpiredMessage)
	return true
}

// NotFound renders the shared not-found page with retry and back links.
func (p Pages) NotFound(w http.ResponseWriter, r *http.Request, what, backURL string) {
	p.Render(w, r, "pages/not_found.html", map[string]any{
		"What":     what,
		"RetryURL": r.URL.Path,
		"BackURL":  backURL,
	}, http.StatusNotFound)
}

func (p Pages) log() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}
