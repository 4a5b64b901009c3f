package handlers

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	log "github.com/sirupsen/logrus"

	"github.com/hunmap/roadnet/service"
)

type PointsInput struct {
	West       float64 `query:"west" required:"true" doc:"Western longitude (WGS84)"`
	South      float64 `query:"south" required:"true" doc:"Southern latitude (WGS84)"`
	East       float64 `query:"east" required:"true" doc:"Eastern longitude (WGS84)"`
	North      float64 `query:"north" required:"true" doc:"Northern latitude (WGS84)"`
	Categories string  `query:"categories" doc:"Comma-separated point subtype codes" example:"12,17"`
}

type PointsResult struct {
	Body struct {
		Count    int                    `json:"count"`
		Features []service.PointFeature `json:"features"`
	}
}

// PointsHandler handles the points-in-bounding-box request.
func PointsHandler(svc *service.Service) func(ctx context.Context, input *PointsInput) (*PointsResult, error) {
	return func(ctx context.Context, input *PointsInput) (*PointsResult, error) {
		categories, err := parseCodes(input.Categories)
		if err != nil {
			return nil, huma.Error400BadRequest(fmt.Sprintf("%v", err))
		}

		features, err := svc.PointsInBBox(ctx, input.West, input.South, input.East, input.North, categories)
		if err != nil {
			log.Errorf("Error getting points: %v", err)
			return nil, huma.Error500InternalServerError("failed to query points")
		}

		if features == nil {
			features = []service.PointFeature{}
		}

		result := &PointsResult{}
		result.Body.Count = len(features)
		result.Body.Features = features

		return result, nil
	}
}
