package middleware

import (
	"net/http"
	"regexp"

	"github.com/hearthhq/hearth/pkg/authn"
	"github.com/hearthhq/hearth/pkg/identity"
)

var bearerRegex = regexp.MustCompile(`^Bearer (\S+)$`)

// TokenParser validates a signed auth token and returns its claims.
type TokenParser interface {
	Parse(token string) (*authn.Claims, error)
}

// TokenAuthenticator is middleware that validates bearer auth tokens
type TokenAuthenticator struct {
	Parser TokenParser
}

// NewTokenAuthenticator creates a new bearer token authenticator middleware
func NewTokenAuthenticator(parser TokenParser) *TokenAuthenticator {
	return &TokenAuthenticator{Parser: parser}
}

// Middleware returns an HTTP middleware that validates bearer tokens and
// stores the resulting identity in the request context
func (a *TokenAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization missing"))
			return
		}

		tokenMatches := bearerRegex.FindStringSubmatch(authHeader)

		if len(tokenMatches) != 2 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization header"))
			return
		}

		claims, err := a.Parser.Parse(tokenMatches[1])
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid or expired token"))
			return
		}

		id, err := identity.FromClaims(claims)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization token"))
			return
		}

		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}
