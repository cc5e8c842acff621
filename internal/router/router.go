package router

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"propertyhub/docs"
	"propertyhub/internal/auth"
	"propertyhub/internal/config"
	"propertyhub/internal/errors"
	"propertyhub/internal/handler"
	"propertyhub/internal/metrics"
	"propertyhub/internal/middleware"
)

// Handlers groups the endpoint handlers mounted by Register.
type Handlers struct {
	Auth     *handler.AuthHandler
	Property *handler.PropertyHandler
	Utility  *handler.UtilityHandler
	JWT      *auth.JWTService
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, h Handlers) {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	e.Use(middleware.RequestLogger(logger))
	if h.Metrics != nil {
		e.Use(h.Metrics.Middleware())
	}
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))

	health := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
	e.GET("/health", health)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if h.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(h.Metrics.Handler()))
	}

	api := e.Group("/api")
	api.GET("/health", health)

	authenticate := middleware.Authenticate(h.JWT)

	// Auth routes
	api.POST("/auth/signup", h.Auth.Signup)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/auth/validate", h.Auth.Validate, authenticate)

	// Resource routes are public unless AUTH_REQUIRED is set.
	var resourceMW []echo.MiddlewareFunc
	if cfg.AuthRequired {
		resourceMW = append(resourceMW, authenticate)
	}
	deleteMW := append([]echo.MiddlewareFunc{}, resourceMW...)
	if cfg.DeleteRole != "" {
		if !cfg.AuthRequired {
			deleteMW = append(deleteMW, authenticate)
		}
		deleteMW = append(deleteMW, middleware.RequireRole(cfg.DeleteRole))
	}

	properties := api.Group("/properties", resourceMW...)
	properties.GET("", h.Property.List)
	properties.GET("/search", h.Property.Search)
	properties.GET("/:id", h.Property.Get)
	properties.POST("", h.Property.Create)
	properties.PUT("/:id", h.Property.Update)
	api.DELETE("/properties/:id", h.Property.Delete, deleteMW...)

	utilities := api.Group("/utilities", resourceMW...)
	utilities.GET("/:propertyId", h.Utility.ListByProperty)
	utilities.GET("/bill/:id", h.Utility.Get)
	utilities.POST("", h.Utility.Create)
	utilities.PUT("/bill/:id", h.Utility.Update)
	api.DELETE("/utilities/bill/:id", h.Utility.Delete, deleteMW...)
}

// ErrorHandler renders every error as {status, statusCode, message}.
// Unclassified errors are logged and reported as a bare 500.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *errors.HTTPError
		var echoErr *echo.HTTPError
		switch {
		case errors.As(err, &echoErr):
			httpErr = fromEchoError(echoErr)
		default:
			httpErr = errors.MapErrorToHTTP(err)
		}

		if httpErr.StatusCode >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(httpErr.StatusCode)
		} else {
			err = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		if err != nil {
			logger.Error("write error response", "error", err)
		}
	}
}

func fromEchoError(he *echo.HTTPError) *errors.HTTPError {
	if he.Internal != nil {
		if inner := errors.MapErrorToHTTP(he.Internal); inner.StatusCode != http.StatusInternalServerError {
			return inner
		}
	}

	switch he.Code {
	case http.StatusBadRequest, http.StatusUnsupportedMediaType:
		return errors.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	case http.StatusInternalServerError:
		return errors.NewHTTPError(he.Code, http.StatusText(he.Code))
	}

	if msg, ok := he.Message.(string); ok {
		return errors.NewHTTPError(he.Code, msg)
	}
	return errors.NewHTTPError(he.Code, http.StatusText(he.Code))
}
