package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"time"

	domainauth "github.com/launchpath/lp-gateway/internal/domain/auth"
	"github.com/launchpath/lp-gateway/internal/domain/route"
	apperrors "github.com/launchpath/lp-gateway/internal/errors"
	"github.com/launchpath/lp-gateway/internal/service"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// GatewayOptions groups dependencies for the Gateway middleware.
type GatewayOptions struct {
	Identity *service.IdentityService
	Policy   *route.Policy
	Bypass   route.Bypass
	// CookieName is the credential cookie read on every request.
	CookieName string
	Logger     *slog.Logger
}

// callbackParam carries the original destination through a login redirect so
// the user lands where they were headed once authenticated.
const callbackParam = "callbackUrl"

// Gateway returns the access-control middleware applied to every request.
// Bypassed routes skip fact extraction and policy evaluation entirely. For
// everything else the request facts are evaluated against the policy with a
// lazy identity resolver: the credential is only verified when a rule needs
// an identity. Denied requests are redirected to the login page with the
// original destination in the callbackUrl parameter. A policy evaluation
// error means a dependency was unreachable, which is answered with 503 rather
// than a login redirect so an outage never looks like a logout.
func Gateway(opts GatewayOptions) func(http.Handler) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.Bypass.Match(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			facts := route.Extract(r.Host, r.URL)
			resolve := opts.Identity.Resolver(credentialFromRequest(r, opts.CookieName))

			// The resolver runs at most once, and only when a rule needs an
			// identity. A successful resolution is stashed on the request so
			// downstream handlers see the caller.
			decision, err := opts.Policy.Evaluate(r.Context(), facts, func(ctx context.Context) (*domainauth.Identity, error) {
				identity, rerr := resolve(ctx)
				if rerr != nil {
					return nil, rerr
				}
				if identity != nil {
					r = r.WithContext(SetIdentityInContext(r.Context(), identity))
				}
				return identity, nil
			})
			if err != nil {
				logger.ErrorContext(r.Context(), "policy evaluation failed",
					"path", facts.FullPath, "error", err)
				if apperrors.IsUnavailable(err) || apperrors.GetCode(err) == apperrors.ErrCodeTimeout {
					WriteAppError(w, err)
					return
				}
				WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "gateway_error", Err: err})
				return
			}

			if !decision.Allowed {
				http.Redirect(w, r, loginRedirectURL(decision.RedirectTo, facts), http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// loginRedirectURL appends the original destination to the redirect target.
func loginRedirectURL(target string, facts route.Facts) string {
	u := url.URL{Path: target}
	q := url.Values{}
	q.Set(callbackParam, facts.FullPath)
	u.RawQuery = q.Encode()
	return u.String()
}

// credentialFromRequest reads the raw credential from the session cookie,
// falling back to a bearer Authorization header for API clients.
func credentialFromRequest(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	const bearerPrefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) > len(bearerPrefix) && auth[:len(bearerPrefix)] == bearerPrefix {
		return auth[len(bearerPrefix):]
	}
	return ""
}
