package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	log "github.com/sirupsen/logrus"

	"github.com/hunmap/roadnet/service"
)

type StatisticsResult struct {
	Body service.Statistics
}

// StatisticsHandler handles the dataset statistics request.
func StatisticsHandler(svc *service.Service) func(ctx context.Context, input *struct{}) (*StatisticsResult, error) {
	return func(ctx context.Context, input *struct{}) (*StatisticsResult, error) {
		stats, err := svc.GetStatistics(ctx)
		if err != nil {
			log.Errorf("Error getting statistics: %v", err)
			return nil, huma.Error500InternalServerError("failed to compute statistics")
		}

		if stats.RoadTypes == nil {
			stats.RoadTypes = []service.TypeCount{}
		}
		if stats.PointTypes == nil {
			stats.PointTypes = []service.TypeCount{}
		}

		return &StatisticsResult{Body: *stats}, nil
	}
}
