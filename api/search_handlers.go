package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/inverted-index/internal/query"
)

// SearchRequest is the body of POST /search.
// Terms is any JSON value: a string, or arrays and objects nesting further
// values. Location selects an index; without it the most recent index is
// searched and missing words yield "".
type SearchRequest struct {
	Terms    json.RawMessage `json:"terms"`
	Location string          `json:"location,omitempty"`
}

// SearchHandler resolves the request terms and searches one index.
// Request Body: SearchRequest
func (api *API) SearchHandler(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendBindError(c, err)
		return
	}

	if result := ValidateSearchRequest(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	terms, err := query.ParseJSON(req.Terms)
	if err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	result, err := api.engine.Search(terms, req.Location)
	if err != nil {
		SendEngineError(c, "search", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
