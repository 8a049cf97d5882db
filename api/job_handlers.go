package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/inverted-index/services"
)

// GetJobHandler returns the status of a background index build.
func (api *API) GetJobHandler(c *gin.Context) {
	async, ok := api.engine.(services.AsyncIndexer)
	if !ok {
		SendError(c, http.StatusNotFound, ErrorCodeJobNotFound, "Background jobs are not supported")
		return
	}

	job, err := async.GetJob(c.Param("jobId"))
	if err != nil {
		SendEngineError(c, "get job", err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// ListJobsHandler lists background jobs, optionally only those for ?location=.
func (api *API) ListJobsHandler(c *gin.Context) {
	async, ok := api.engine.(services.AsyncIndexer)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"jobs": []interface{}{}, "count": 0})
		return
	}

	jobs := async.ListJobs(c.Query("location"))
	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "count": len(jobs)})
}
