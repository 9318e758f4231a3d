package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/taxdesk/backoffice-api/internal/config"
	"go.uber.org/zap"
)

func allowAnyOrigin(r *http.Request, origin string) bool {
	return origin != ""
}

func denyAllOrigins(r *http.Request, origin string) bool {
	return false
}

func isDevEnvironment(environment string) bool {
	return environment == "development" || environment == "local" || environment == ""
}

// CORS builds the cross-origin policy from config. The back office is a
// browser app on a separate origin, so this runs on every route.
//
// Origin resolution: an explicit list wins; "*" anywhere in the list means
// reflect any origin; an empty list allows everything in development and
// denies everything otherwise.
func CORS(cfg *config.CORSConfig, environment string, logger *zap.Logger) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	switch {
	case containsWildcard(cfg.AllowedOrigins):
		if !isDevEnvironment(environment) {
			logger.Warn("CORS wildcard origin outside development",
				zap.String("environment", environment))
		}
		options.AllowOriginFunc = allowAnyOrigin
	case len(cfg.AllowedOrigins) > 0:
		options.AllowedOrigins = cfg.AllowedOrigins
		logger.Info("CORS restricted to configured origins",
			zap.Strings("origins", cfg.AllowedOrigins))
	case isDevEnvironment(environment):
		options.AllowOriginFunc = allowAnyOrigin
		logger.Info("CORS open for development")
	default:
		// An empty AllowedOrigins would default to "*" inside the cors
		// package, so deny explicitly.
		options.AllowOriginFunc = denyAllOrigins
		logger.Warn("CORS has no allowed origins, denying all cross-origin requests",
			zap.String("environment", environment))
	}

	return cors.Handler(options)
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
