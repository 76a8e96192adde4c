package router

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/auth"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/config"
	apperrors "github.com/Saai-Jaswant/God-Pill-Project-X/internal/errors"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/handler"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/metrics"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *zap.Logger,
	m *metrics.Metrics,
	tokens *auth.JWTService,
	productHandler *handler.ProductHandler,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	ratingHandler *handler.RatingHandler,
	newsletterHandler *handler.NewsletterHandler,
) {
	e.HideBanner = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler(log, cfg.IsDevelopment())

	e.Use(middleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(m.Middleware())
	e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: cfg.RequestTimeout,
		ErrorHandler: func(err error, c echo.Context) error {
			if errors.Is(err, context.DeadlineExceeded) {
				return &apperrors.HTTPError{
					StatusCode: http.StatusServiceUnavailable,
					Message:    "Service temporarily unavailable",
					Err:        err,
				}
			}
			return err
		},
	}))

	e.GET("/health", handler.Health)
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	requireAuth := auth.Middleware(tokens)

	products := api.Group("/products")
	products.GET("", productHandler.List)
	products.GET("/search/:query", productHandler.Search)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create)
	products.PUT("/:id", productHandler.Update)
	products.DELETE("/:id", productHandler.Delete)

	users := api.Group("/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.POST("/logout", authHandler.Logout, requireAuth)
	users.GET("/profile", userHandler.GetProfile, requireAuth)
	users.PUT("/profile", userHandler.UpdateProfile, requireAuth)

	ratings := api.Group("/ratings")
	ratings.POST("", ratingHandler.Submit, requireAuth)
	ratings.GET("/product/:id", ratingHandler.ListForProduct)
	ratings.GET("/user", ratingHandler.ListForUser, requireAuth)
	ratings.DELETE("/:productId", ratingHandler.Delete, requireAuth)

	newsletter := api.Group("/newsletter")
	newsletter.POST("/subscribe", newsletterHandler.Subscribe)
	newsletter.POST("/unsubscribe", newsletterHandler.Unsubscribe)
	newsletter.GET("/subscribers", newsletterHandler.ListSubscribers)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator reports failing fields by their JSON names.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// ErrorHandler renders every error as {"error": ...}. Unknown errors and panics
// become a generic 500; causes are only exposed in development.
func ErrorHandler(log *zap.Logger, development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *apperrors.HTTPError
		var echoErr *echo.HTTPError
		switch {
		case errors.As(err, &httpErr):
		case errors.As(err, &echoErr):
			httpErr = fromEchoError(echoErr)
		default:
			httpErr = apperrors.Internal("Something went wrong!", err)
		}

		if httpErr.StatusCode >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", httpErr.StatusCode),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(httpErr.StatusCode)
		} else {
			err = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse(development))
		}
		if err != nil {
			log.Warn("write error response", zap.Error(err))
		}
	}
}

func fromEchoError(he *echo.HTTPError) *apperrors.HTTPError {
	if he.Code >= http.StatusInternalServerError {
		return apperrors.Internal("Something went wrong!", he)
	}
	msg := http.StatusText(he.Code)
	if s, ok := he.Message.(string); ok && s != "" {
		msg = s
	}
	return &apperrors.HTTPError{StatusCode: he.Code, Message: msg, Err: he.Internal}
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogRequestID: true,
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency.Round(time.Microsecond)),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			log.Info("request", fields...)
			return nil
		},
	})
}
