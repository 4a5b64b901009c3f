package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	log "github.com/sirupsen/logrus"

	"github.com/hunmap/roadnet/service"
)

type RoadInput struct {
	Lcd int `path:"lcd" doc:"Local code of the road" example:"29"`
}

type RoadResult struct {
	Body service.RoadDetails
}

// RoadHandler handles the single road detail request. An unknown local code
// is a 404, not a server fault.
func RoadHandler(svc *service.Service) func(ctx context.Context, input *RoadInput) (*RoadResult, error) {
	return func(ctx context.Context, input *RoadInput) (*RoadResult, error) {
		road, err := svc.GetRoadDetails(ctx, input.Lcd)
		if err != nil {
			log.Errorf("Error getting road details: %v", err)
			return nil, huma.Error500InternalServerError("failed to query road details")
		}
		if road == nil {
			return nil, huma.Error404NotFound("Road not found")
		}

		return &RoadResult{Body: *road}, nil
	}
}
