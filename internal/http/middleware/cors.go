package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/minima-hotel/backoffice-api/internal/config"
	"go.uber.org/zap"
)

func isDevEnvironment(environment string) bool {
	return environment == "development" || environment == "local" || environment == ""
}

// CORS builds the cross-origin policy for the back-office dashboard. The
// dashboard is the only browser client, so production deployments list its
// origin explicitly; everything else is denied.
func CORS(cfg *config.CORSConfig, environment string, logger *zap.Logger) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	allowAny := func(r *http.Request, origin string) bool { return origin != "" }

	hasWildcard := false
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			hasWildcard = true
			break
		}
	}

	switch {
	case hasWildcard:
		if !isDevEnvironment(environment) {
			logger.Warn("Wildcard CORS origin outside development",
				zap.String("environment", environment))
		}
		options.AllowOriginFunc = allowAny

	case len(cfg.AllowedOrigins) > 0:
		options.AllowedOrigins = cfg.AllowedOrigins
		logger.Info("CORS restricted to dashboard origins",
			zap.Strings("origins", cfg.AllowedOrigins))

	case isDevEnvironment(environment):
		// Local dashboard dev servers run on changing ports
		options.AllowOriginFunc = allowAny
		logger.Info("CORS open for development")

	default:
		// An empty AllowedOrigins list defaults to "*" inside the cors
		// package, so denial has to go through AllowOriginFunc.
		options.AllowOriginFunc = func(r *http.Request, origin string) bool { return false }
		logger.Warn("No CORS origins configured; denying all cross-origin requests",
			zap.String("environment", environment))
	}

	return cors.Handler(options)
}
