package handlers

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	log "github.com/sirupsen/logrus"

	"github.com/hunmap/roadnet/service"
)

type RoadsInput struct {
	West  float64 `query:"west" required:"true" doc:"Western longitude (WGS84)"`
	South float64 `query:"south" required:"true" doc:"Southern latitude (WGS84)"`
	East  float64 `query:"east" required:"true" doc:"Eastern longitude (WGS84)"`
	North float64 `query:"north" required:"true" doc:"Northern latitude (WGS84)"`
	Types string  `query:"types" doc:"Comma-separated road subtype codes, e.g. 1,2,3,4" example:"1,2"`
}

type RoadsResult struct {
	Body struct {
		Count    int                   `json:"count"`
		Features []service.RoadFeature `json:"features"`
	}
}

// RoadsHandler handles the roads-in-bounding-box request.
func RoadsHandler(svc *service.Service) func(ctx context.Context, input *RoadsInput) (*RoadsResult, error) {
	return func(ctx context.Context, input *RoadsInput) (*RoadsResult, error) {
		roadTypes, err := parseCodes(input.Types)
		if err != nil {
			return nil, huma.Error400BadRequest(fmt.Sprintf("%v", err))
		}

		features, err := svc.RoadsInBBox(ctx, input.West, input.South, input.East, input.North, roadTypes)
		if err != nil {
			log.Errorf("Error getting roads: %v", err)
			return nil, huma.Error500InternalServerError("failed to query roads")
		}

		if features == nil {
			features = []service.RoadFeature{}
		}

		result := &RoadsResult{}
		result.Body.Count = len(features)
		result.Body.Features = features

		return result, nil
	}
}
