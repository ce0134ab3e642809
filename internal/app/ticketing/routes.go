package ticketing

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/NikolaMax/ticketing-backend/internal/http/handlers/auth/changepassword"
	"github.com/NikolaMax/ticketing-backend/internal/http/handlers/auth/confirm"
	"github.com/NikolaMax/ticketing-backend/internal/http/handlers/auth/login"
	"github.com/NikolaMax/ticketing-backend/internal/http/handlers/auth/refresh"
	"github.com/NikolaMax/ticketing-backend/internal/http/handlers/auth/register"
	"github.com/NikolaMax/ticketing-backend/internal/http/handlers/charts/aggregate"
	"github.com/NikolaMax/ticketing-backend/internal/http/handlers/charts/sysinfo"
	"github.com/NikolaMax/ticketing-backend/internal/http/handlers/health"
	"github.com/NikolaMax/ticketing-backend/internal/http/middlewarectx"
	"github.com/NikolaMax/ticketing-backend/internal/lib/jwt"
	"github.com/NikolaMax/ticketing-backend/internal/models"
	authservice "github.com/NikolaMax/ticketing-backend/internal/services/auth"
	reportservice "github.com/NikolaMax/ticketing-backend/internal/services/report"
)

// RegisterRoutes registers every route of the application.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	authService *authservice.Service, reportService *reportservice.Service, files register.FileStore) {

	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	limiter := rate.NewLimiter(10, 30)

	r.Route("/auth", func(r chi.Router) {
		// Open endpoints. Refresh verifies the presented token itself.
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Post("/refresh", refresh.New(logger, authService).ServeHTTP)
		r.Post("/registerUser", register.New(logger, authService, files, models.RoleRegisteredUser).ServeHTTP)
		r.Post("/registerAdmin", register.New(logger, authService, files, models.RoleAdmin).ServeHTTP)
		r.Get("/confirmRegistration/{encodedId}", confirm.New(logger, authService).ServeHTTP)

		// Any authenticated role.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))
			r.Post("/change-password", changepassword.New(logger, authService).ServeHTTP)
		})
	})

	// Reporting charts, system administrators only.
	r.Route("/api/charts", func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
		r.Use(middlewarectx.RequireRoles(logger, models.RoleSysAdmin))
		r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))

		r.Get("/sysinfo", sysinfo.New(logger, reportService).ServeHTTP)

		r.Get("/event_incomes", aggregate.New(logger, "event_incomes", reportService.EventIncomes).ServeHTTP)
		r.Put("/event_incomes/interval", aggregate.NewInterval(logger, "event_incomes", reportService.EventIncomes).ServeHTTP)

		r.Get("/event_tickets_sold", aggregate.New(logger, "event_tickets_sold", reportService.EventTicketsSold).ServeHTTP)
		r.Put("/event_tickets_sold/interval", aggregate.NewInterval(logger, "event_tickets_sold", reportService.EventTicketsSold).ServeHTTP)

		r.Get("/location_incomes", aggregate.New(logger, "location_incomes", reportService.LocationIncomes).ServeHTTP)
		r.Put("/location_incomes/interval", aggregate.NewInterval(logger, "location_incomes", reportService.LocationIncomes).ServeHTTP)

		r.Get("/location_tickets_sold", aggregate.New(logger, "location_tickets_sold", reportService.LocationTicketsSold).ServeHTTP)
		r.Put("/location_tickets_sold/interval", aggregate.NewInterval(logger, "location_tickets_sold", reportService.LocationTicketsSold).ServeHTTP)
	})

	r.Get("/health", health.Handler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
