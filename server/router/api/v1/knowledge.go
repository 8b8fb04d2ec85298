package v1

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	aierrors "github.com/hrygo/officehours/server/internal/errors"
	"github.com/hrygo/officehours/server/service/office"
)

// AddKnowledgeResponse reports how many items were stored.
type AddKnowledgeResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// AddKnowledge ingests a list of office rule records.
// POST /knowledge
func (s *APIV1Service) AddKnowledge(c echo.Context) error {
	var items []office.KnowledgeItem
	if err := c.Bind(&items); err != nil {
		return errorJSON(c, aierrors.InvalidArgument("request body must be a list of knowledge items"))
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errorJSON(c, aierrors.InvalidArgument(fmt.Sprintf("item %d: %v", i, err)))
		}
	}

	count, err := s.Service.Ingest(requestContext(c, "ingest"), items)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, AddKnowledgeResponse{Status: "success", Count: count})
}
