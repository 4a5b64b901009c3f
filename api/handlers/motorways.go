package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	log "github.com/sirupsen/logrus"

	"github.com/hunmap/roadnet/service"
)

type MotorwaysResult struct {
	Body struct {
		Count     int                `json:"count"`
		Motorways []service.Motorway `json:"motorways"`
	}
}

// MotorwaysHandler handles the motorway listing request.
func MotorwaysHandler(svc *service.Service) func(ctx context.Context, input *struct{}) (*MotorwaysResult, error) {
	return func(ctx context.Context, input *struct{}) (*MotorwaysResult, error) {
		motorways, err := svc.GetMotorways(ctx)
		if err != nil {
			log.Errorf("Error getting motorways: %v", err)
			return nil, huma.Error500InternalServerError("failed to query motorways")
		}

		if motorways == nil {
			motorways = []service.Motorway{}
		}

		result := &MotorwaysResult{}
		result.Body.Count = len(motorways)
		result.Body.Motorways = motorways

		return result, nil
	}
}
