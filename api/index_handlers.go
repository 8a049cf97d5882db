package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/inverted-index/index"
	"github.com/gcbaptista/inverted-index/services"
)

// CreateIndexRequest is the body of POST /indexes.
type CreateIndexRequest struct {
	Location string `json:"location"`
}

// IndexListResponse is the body of GET /indexes.
type IndexListResponse struct {
	Indexes []index.Stats `json:"indexes"`
	Count   int           `json:"count"`
}

// CreateIndexHandler builds an index from the location in the request body,
// replacing any earlier index for the same location.
// Request Body: CreateIndexRequest
func (api *API) CreateIndexHandler(c *gin.Context) {
	var req CreateIndexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendBindError(c, err)
		return
	}

	if result := ValidateCreateIndexRequest(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if c.Query("async") == "true" {
		api.createIndexAsync(c, req.Location)
		return
	}

	ii, err := api.engine.CreateIndex(c.Request.Context(), req.Location)
	if err != nil {
		SendEngineError(c, "create index", err)
		return
	}

	c.JSON(http.StatusCreated, ii.Stats())
}

// ListIndexesHandler lists summaries of all stored indexes, oldest first.
func (api *API) ListIndexesHandler(c *gin.Context) {
	locations := api.engine.ListIndexes()
	summaries := make([]index.Stats, 0, len(locations))
	for _, location := range locations {
		ii, err := api.engine.GetIndex(location)
		if err != nil {
			// removed since ListIndexes was called
			continue
		}
		summaries = append(summaries, ii.Stats())
	}
	c.JSON(http.StatusOK, IndexListResponse{Indexes: summaries, Count: len(summaries)})
}

// GetIndexHandler returns the full index built from ?location=.
func (api *API) GetIndexHandler(c *gin.Context) {
	location := c.Query("location")
	if result := ValidateLocation("location", location); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	ii, err := api.engine.GetIndex(location)
	if err != nil {
		SendEngineError(c, "get index", err)
		return
	}
	c.JSON(http.StatusOK, ii)
}

// DeleteIndexHandler removes the index built from ?location=. Removing an
// unknown location succeeds.
func (api *API) DeleteIndexHandler(c *gin.Context) {
	location := c.Query("location")
	if result := ValidateLocation("location", location); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	api.engine.RemoveIndex(location)
	c.JSON(http.StatusOK, gin.H{"message": "Index for '" + location + "' removed"})
}

func (api *API) createIndexAsync(c *gin.Context, location string) {
	async, ok := api.engine.(services.AsyncIndexer)
	if !ok {
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Asynchronous index creation is not supported")
		return
	}

	jobID, err := async.CreateIndexAsync(location)
	if err != nil {
		SendEngineError(c, "create index", err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Index creation started for '" + location + "'",
		"job_id":  jobID,
	})
}

func sendBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		SendError(c, http.StatusRequestEntityTooLarge, ErrorCodeValidationFailed,
			"Request body exceeds the size limit")
		return
	}
	SendInvalidJSONError(c, err)
}
