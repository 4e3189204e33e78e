package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"

	"hotel_booking/internal/domain"
)

// Claims is the token payload issued by the identity service. The booking
// core only consumes (uid, role); it never issues or refreshes tokens.
type Claims struct {
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type actorKey struct{}

// Auth verifies the bearer token and injects the caller's Actor into the
// request context. Handlers behind it can assume ActorFrom succeeds.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if !strings.HasPrefix(raw, "Bearer ") {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
				return
			}
			raw = strings.TrimPrefix(raw, "Bearer ")

			claims := &Claims{}
			tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid || claims.UserID == 0 {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid token")
				return
			}

			role := domain.Role(claims.Role)
			switch role {
			case domain.RoleUser, domain.RoleManager, domain.RoleAdmin:
			default:
				role = domain.RoleUser
			}
			actor := domain.Actor{ID: claims.UserID, Role: role}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey{}, actor)))
		})
	}
}

func ActorFrom(ctx context.Context) (domain.Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(domain.Actor)
	return a, ok
}
