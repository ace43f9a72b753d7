package handlers

import (
	"context"
	"fmt"
	"net/http"

	"textlens/internal/models"
	"textlens/internal/samples"

	"github.com/danielgtaylor/huma/v2"
)

// List the embedded sample inputs for one app.
func getSamplesFunc(ctx context.Context, input *models.GetSamplesRequest) (*models.GetSamplesResponse, error) {
	list, err := samples.ByKind(input.Kind)
	if err != nil {
		return nil, huma.Error404NotFound(fmt.Sprintf("no samples for kind %q", input.Kind))
	}

	response := &models.GetSamplesResponse{}
	response.Body.Samples = list
	return response, nil
}

// RegisterSampleRoutes registers the sample library.
func RegisterSampleRoutes(api huma.API) {
	getSamplesOp := huma.Operation{
		OperationID: "getSamples",
		Method:      http.MethodGet,
		Path:        "/v1/samples/{kind}",
		Summary:     "List sample inputs for an app",
		Tags:        []string{"samples"},
	}

	huma.Register(api, getSamplesOp, getSamplesFunc)
}
