package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	log "github.com/sirupsen/logrus"

	"github.com/hunmap/roadnet/service"
)

type SearchInput struct {
	Q     string `query:"q" required:"true" minLength:"2" doc:"Search query" example:"Budapest"`
	Limit int    `query:"limit" default:"50" minimum:"1" maximum:"200" doc:"Maximum number of results"`
}

type SearchResult struct {
	Body struct {
		Count   int                    `json:"count"`
		Results []service.SearchResult `json:"results"`
	}
}

// SearchHandler handles the location name search request. The minimum query
// length and the limit range are enforced here at the boundary.
func SearchHandler(svc *service.Service) func(ctx context.Context, input *SearchInput) (*SearchResult, error) {
	return func(ctx context.Context, input *SearchInput) (*SearchResult, error) {
		results, err := svc.SearchLocations(ctx, input.Q, input.Limit)
		if err != nil {
			log.Errorf("Error searching: %v", err)
			return nil, huma.Error500InternalServerError("failed to search locations")
		}

		if results == nil {
			results = []service.SearchResult{}
		}

		searchResult := &SearchResult{}
		searchResult.Body.Count = len(results)
		searchResult.Body.Results = results

		return searchResult, nil
	}
}
