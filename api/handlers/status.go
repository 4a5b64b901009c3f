package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"
	log "github.com/sirupsen/logrus"

	"github.com/hunmap/roadnet/service"
)

type StatusResult struct {
	Body struct {
		Started     string `json:"started" doc:"Time in UTC when the server started"`
		Uptime      string `json:"uptime" doc:"Uptime of the server"`
		TotalPoints int    `json:"total_points" doc:"Points with valid geometry in the store"`
	}
}

// StatusHandler reports uptime and verifies the store is still answering
// queries.
func StatusHandler(svc *service.Service, start time.Time) func(ctx context.Context, input *struct{}) (*StatusResult, error) {
	return func(ctx context.Context, input *struct{}) (*StatusResult, error) {
		stats, err := svc.GetStatistics(ctx)
		if err != nil {
			log.Errorf("Status check failed: %v", err)
			return nil, huma.Error503ServiceUnavailable("store is not answering queries")
		}

		statusResult := &StatusResult{}
		statusResult.Body.Started = start.UTC().String()
		statusResult.Body.Uptime = formatDuration(time.Since(start))
		statusResult.Body.TotalPoints = stats.TotalPoints

		return statusResult, nil
	}
}

// formatDuration formats a time.Duration into a more readable string.
func formatDuration(d time.Duration) string {
	seconds := int(d.Seconds())
	days := seconds / 86400
	seconds -= days * 86400
	hours := seconds / 3600
	seconds -= hours * 3600
	minutes := seconds / 60
	seconds -= minutes * 60

	if days > 0 {
		return fmt.Sprintf("%dd %02dh %02dm %02ds", days, hours, minutes, seconds)
	} else if hours > 0 {
		return fmt.Sprintf("%02dh %02dm %02ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%02dm %02ds", minutes, seconds)
	}
	return fmt.Sprintf("%02ds", seconds)
}
