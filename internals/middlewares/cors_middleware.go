package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/nillpakhi2003-droid/saroyarsir/internals/configs"
)

// CorsMiddleware builds the CORS middleware. Origins come from
// CORS_ORIGINS (comma separated) so deployments can add their frontends
// without a rebuild.
func CorsMiddleware() fiber.Handler {
	origins := configs.GetEnv("CORS_ORIGINS", "http://localhost:5173, http://127.0.0.1:5500")
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	})
}
