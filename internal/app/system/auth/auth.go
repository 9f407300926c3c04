// internal/app/system/auth/auth.go

// Package auth verifies the identity of inbound requests.
//
// Whop fronts every request to an installed app with a signed user token
// header. We verify that token locally (ES256 against Whop's published
// public key) and resolve the acting company, then stash both in the
// request context for handlers. There is no session store and no cookie:
// identity is re-established on every request.
package auth

import (
	"context"
	"crypto/ecdsa"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/scamwatch/scamwatch/internal/app/system/timeouts"
	"github.com/scamwatch/scamwatch/internal/app/system/whop"
)

// Headers consumed by the verifier. The experience header has accumulated
// a few spellings across Whop iframe versions; all are accepted.
const (
	UserTokenHeader = "X-Whop-User-Token"
	CompanyIDHeader = "X-Whop-Company-Id"
)

// tokenIssuer is the issuer Whop's experience proxy stamps on user tokens.
const tokenIssuer = "urn:whopcom:exp-proxy"

var experienceHeaders = []string{
	"X-Whop-Experience-Id",
	"Whop-Experience-Id",
	"X-Experience-Id",
	"Experience-Id",
}

// Identity is the verified caller of a request. CompanyID may be empty:
// failing to resolve a company is not an authentication failure, and
// handlers that need a tenant answer 400 instead.
type Identity struct {
	UserID    string
	CompanyID string
}

type ctxKey string

const identityKey ctxKey = "identity"

// CurrentIdentity returns the verified identity stored by VerifyUser.
func CurrentIdentity(r *http.Request) (Identity, bool) {
	id, ok := r.Context().Value(identityKey).(Identity)
	return id, ok
}

// WithTestIdentity injects an identity directly, bypassing token
// verification. For handler tests only.
func WithTestIdentity(r *http.Request, id Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, id))
}

// Verifier validates user tokens and resolves the acting company.
type Verifier struct {
	appID     string
	publicKey *ecdsa.PublicKey
	provider  whop.API
	log       *zap.Logger
}

// NewVerifier builds a Verifier from the configured app ID and the
// PEM-encoded ES256 public key Whop signs user tokens with.
func NewVerifier(appID, publicKeyPEM string, provider whop.API, logger *zap.Logger) (*Verifier, error) {
	key, err := jwt.ParseECPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		return nil, err
	}
	return &Verifier{
		appID:     appID,
		publicKey: key,
		provider:  provider,
		log:       logger,
	}, nil
}

// VerifyUser is middleware that loads a verified Identity into the request
// context when the user token checks out. Requests without a valid token
// simply pass through without an identity; RequireVerified turns that into
// a 401 on protected routes.
func (v *Verifier) VerifyUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(UserTokenHeader)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := v.verifyToken(token)
		if err != nil {
			v.log.Warn("user token rejected", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		id := Identity{
			UserID:    userID,
			CompanyID: v.resolveCompanyID(r),
		}
		r = r.WithContext(context.WithValue(r.Context(), identityKey, id))
		next.ServeHTTP(w, r)
	})
}

// verifyToken checks the signature, algorithm and audience of the user
// token and returns the subject user ID.
func (v *Verifier) verifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodECDSA); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return v.publicKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(v.appID),
	)
	if err != nil {
		return "", err
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", jwt.ErrTokenInvalidSubject
	}
	return sub, nil
}

// resolveCompanyID determines the acting company for the request.
//
// Order: explicit company header; experience header or ?experience=
// resolved through the provider; direct ?company_id=. Empty string means
// no company could be resolved.
func (v *Verifier) resolveCompanyID(r *http.Request) string {
	if companyID := r.Header.Get(CompanyIDHeader); companyID != "" {
		return companyID
	}

	experienceID := ""
	for _, h := range experienceHeaders {
		if val := r.Header.Get(h); val != "" {
			experienceID = val
			break
		}
	}
	if experienceID == "" {
		experienceID = r.URL.Query().Get("experience")
	}

	if experienceID == "" {
		// No experience anywhere; a direct company id in the query is the
		// last resort.
		return r.URL.Query().Get("company_id")
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	exp, err := v.provider.RetrieveExperience(ctx, experienceID)
	if err != nil {
		v.log.Warn("experience lookup failed",
			zap.String("experience_id", experienceID),
			zap.Error(err))
		return ""
	}
	return exp.Company.ID
}

// RequireVerified rejects requests that carry no verified identity with a
// JSON 401. Mount after VerifyUser.
func RequireVerified(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentIdentity(r); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
