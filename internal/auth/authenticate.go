// Package auth guards the destructive archive operations with a single admin
// bearer key. Everything else on the API is open: the service is a local,
// single-user tool.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"strings"

	"textlens/internal/models"

	"github.com/danielgtaylor/huma/v2"
)

const (
	AuthUserKey = "authUser"
	IsAdminKey  = "isAdmin"
)

// Config is the security scheme configuration for the API.
var Config = map[string]*huma.SecurityScheme{
	"adminAuth": {
		Type:   "http",
		In:     "header",
		Scheme: "bearer",
		Name:   "Authorization",
	},
}

// AdminKeyAuth returns a middleware that checks the Authorization header
// against the configured admin key on operations that declare adminAuth.
// Keys are compared as SHA-256 digests in constant time.
func AdminKeyAuth(api huma.API, options *models.Options) func(ctx huma.Context, next func(huma.Context)) {
	adminDigest := sha256.Sum256([]byte(options.AdminKey))

	return func(ctx huma.Context, next func(huma.Context)) {
		if !requiresScheme(ctx, "adminAuth") {
			next(ctx)
			return
		}

		token := strings.TrimPrefix(ctx.Header("Authorization"), "Bearer ")
		digest := sha256.Sum256([]byte(token))
		if options.AdminKey != "" && subtle.ConstantTimeCompare(digest[:], adminDigest[:]) == 1 {
			ctx = huma.WithValue(ctx, IsAdminKey, true)
			ctx = huma.WithValue(ctx, AuthUserKey, "admin")
		}
		next(ctx)
	}
}

// AuthTermination rejects requests whose operation requires authentication
// but where no preceding auth middleware established a user. It has to run
// last in the middleware chain.
func AuthTermination(api huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		isAuthRequired := false
		for _, securityScheme := range ctx.Operation().Security {
			if len(securityScheme) > 0 {
				isAuthRequired = true
				break
			}
		}
		if !isAuthRequired {
			next(ctx)
			return
		}

		if _, ok := ctx.Context().Value(AuthUserKey).(string); ok {
			next(ctx)
			return
		}
		_ = huma.WriteErr(api, ctx, http.StatusUnauthorized,
			"Authentication failed. Perhaps a missing or incorrect API key?")
	}
}

func requiresScheme(ctx huma.Context, scheme string) bool {
	for _, opScheme := range ctx.Operation().Security {
		if _, ok := opScheme[scheme]; ok {
			return true
		}
	}
	return false
}
