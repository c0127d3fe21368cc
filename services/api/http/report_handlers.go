package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vinayakrc/store-monitoring/services/api/jobs"
)

// handleTriggerReport starts an asynchronous report run.
// POST /trigger_report
func (s *Server) handleTriggerReport(c *gin.Context) {
	reportID := s.runner.Trigger()
	c.JSON(http.StatusOK, gin.H{"report_id": reportID})
}

// handleGetReport polls a report job. Running and Failed jobs answer with a
// status document; a Complete job answers with the CSV artifact itself.
// GET /get_report?report_id=
func (s *Server) handleGetReport(c *gin.Context) {
	reportID := c.Query("report_id")
	if reportID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "report_id is required"})
		return
	}

	snapshot, ok := s.runner.Poll(reportID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	switch snapshot.State {
	case jobs.StateRunning:
		c.JSON(http.StatusOK, gin.H{"status": string(jobs.StateRunning)})
	case jobs.StateFailed:
		c.JSON(http.StatusOK, gin.H{"status": string(jobs.StateFailed), "error": snapshot.Diagnostic})
	default:
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=report_%s.csv", reportID))
		c.Data(http.StatusOK, "text/csv", []byte(snapshot.Artifact))
	}
}
