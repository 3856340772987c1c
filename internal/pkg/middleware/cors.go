package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/dltpay/paygate/app/repository"
	"github.com/dltpay/paygate/internal/pkg/env"
)

// NewDynamicCORS builds a CORS middleware whose allow-list combines the
// static ALLOWED_ORIGINS env list with the active partner domains stored in
// the database. The database is consulted per preflight so newly onboarded
// partners work without a restart; if the lookup fails only the static list
// applies.
func NewDynamicCORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOriginsFunc: originAllowed,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	})
}

func originAllowed(origin string) bool {
	for _, allowed := range staticOrigins() {
		if strings.EqualFold(origin, allowed) {
			return true
		}
	}

	domains, err := repository.GetGlobalFactory().GetCorsClientRepository().GetActiveDomains()
	if err != nil {
		log.Printf("[CORS] partner domain lookup failed: %v", err)
		return false
	}
	for _, domain := range domains {
		if strings.EqualFold(origin, domain) {
			return true
		}
	}
	return false
}

func staticOrigins() []string {
	raw := env.GetEnv("ALLOWED_ORIGINS", "http://localhost:5173")
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
