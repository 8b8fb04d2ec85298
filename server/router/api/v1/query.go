package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	aierrors "github.com/hrygo/officehours/server/internal/errors"
)

// QueryRequest is the body of POST /query.
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResponse carries the narrated answer.
type QueryResponse struct {
	AIMessage string `json:"ai_message"`
}

// Query answers an availability question.
// POST /query
func (s *APIV1Service) Query(c echo.Context) error {
	var req QueryRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, aierrors.InvalidArgument("invalid request body"))
	}
	if strings.TrimSpace(req.Query) == "" {
		return errorJSON(c, aierrors.InvalidArgument("query is required"))
	}

	answer, err := s.Service.Answer(requestContext(c, "query"), req.Query)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, QueryResponse{AIMessage: answer.AIMessage})
}
