package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/hrisapi"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a verified access token and keeps
// the raw token in the context for calls to the HRIS backend.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.HandleError(w, user.ErrInvalidToken)
			return
		}

		if _, err := jwt.ClaimsFromMap(claims); err != nil {
			response.HandleError(w, err)
			return
		}

		raw := jwtauth.TokenFromHeader(r)
		if raw == "" {
			raw = jwtauth.TokenFromCookie(r)
		}
		ctx := hrisapi.WithAccessToken(r.Context(), raw)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(hfn)
}

// TokenFromQuery reads the "token" query parameter; EventSource cannot set headers.
func TokenFromQuery(r *http.Request) string {
	return r.URL.Query().Get("token")
}
