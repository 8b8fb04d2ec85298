package v1

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/officehours/internal/profile"
	aierrors "github.com/hrygo/officehours/server/internal/errors"
	"github.com/hrygo/officehours/server/internal/observability"
	"github.com/hrygo/officehours/server/service/office"
	"github.com/hrygo/officehours/server/timezone"
)

// APIV1Service serves the JSON API.
type APIV1Service struct {
	Profile  *profile.Profile
	Service  office.OfficeService
	Resolver *timezone.Resolver
}

func NewAPIV1Service(profile *profile.Profile, service office.OfficeService, resolver *timezone.Resolver) *APIV1Service {
	if resolver == nil {
		resolver = timezone.NewDefaultResolver()
	}
	return &APIV1Service{
		Profile:  profile,
		Service:  service,
		Resolver: resolver,
	}
}

// RegisterRoutes registers the API handlers with the given Echo instance.
func (s *APIV1Service) RegisterRoutes(echoServer *echo.Echo) {
	echoServer.POST("/knowledge", s.AddKnowledge)
	echoServer.POST("/query", s.Query)
	echoServer.GET("/health", s.Health)
	echoServer.GET("/debug/vector", s.DebugVector)
	echoServer.GET("/regions", s.ListRegions)
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorJSON writes err with the status its code maps to.
func errorJSON(c echo.Context, err error) error {
	status := aierrors.HTTPStatus(err)
	resp := ErrorResponse{
		Code:    string(aierrors.GetCodeFromError(err, aierrors.ErrCodeRetrieval)),
		Message: http.StatusText(status),
	}
	// Internal failures do not leak provider or database details.
	var aiErr *aierrors.AIError
	if status < http.StatusInternalServerError && errors.As(err, &aiErr) {
		resp.Message = aiErr.Message
	}
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", slog.String("path", c.Path()), slog.String("error", err.Error()))
	}
	return c.JSON(status, resp)
}

// requestContext attaches a request-scoped logger carrying echo's request id.
func requestContext(c echo.Context, operation string) context.Context {
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	reqCtx := observability.NewRequestContextWithID(slog.Default(), requestID, operation)
	return observability.WithRequestContext(c.Request().Context(), reqCtx)
}
