package jwtverify

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	commonhttp "github.com/dmikhr/blog-platform/backend/internal/common/http"
	"github.com/dmikhr/blog-platform/backend/internal/common/logger"
	"github.com/dmikhr/blog-platform/backend/internal/observability/metrics"
)

// Claims is the identity resolved from a verified access token. It exists
// only for the duration of a request.
type Claims struct {
	UserID int64
	Email  string
}

type contextKey string

const claimsKey contextKey = "jwt_claims"

// Middleware gates protected routes. Requests without a "Bearer " scheme are
// rejected before the token is ever parsed; every other failure mode
// (signature, expiry, malformed payload) collapses into the same 401 so the
// client learns nothing about why verification failed.
func Middleware(secret string, log *logger.Logger) func(next http.Handler) http.Handler {
	secretBytes := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
				log.Warnf("jwt auth failed path=%s: missing or invalid authorization header", r.URL.Path)
				commonhttp.WriteError(w, http.StatusUnauthorized, "missing or invalid authorization")
				return
			}

			tokenString := strings.TrimPrefix(raw, "Bearer ")
			claims, err := parseToken(tokenString, secretBytes)
			if err != nil {
				log.Warnf("jwt auth failed path=%s: %v", r.URL.Path, err)
				commonhttp.WriteError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func FromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(Claims)
	return claims, ok
}

func ParseToken(tokenString string, secret []byte) (Claims, error) {
	return parseToken(tokenString, secret)
}

func parseToken(tokenString string, secret []byte) (Claims, error) {
	metrics.JWTValidationsTotal.Inc()

	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		if err == nil {
			err = errors.New("token is not valid")
		}
		metrics.JWTValidationsFailed.Inc()
		return Claims{}, err
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		metrics.JWTValidationsFailed.Inc()
		return Claims{}, errors.New("invalid claims type")
	}

	sub, _ := mapClaims["sub"].(string)
	email, _ := mapClaims["email"].(string)
	if sub == "" || email == "" {
		metrics.JWTValidationsFailed.Inc()
		return Claims{}, errors.New("missing sub or email claims")
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		metrics.JWTValidationsFailed.Inc()
		return Claims{}, errors.New("sub claim is not a valid user id")
	}

	return Claims{
		UserID: userID,
		Email:  email,
	}, nil
}
