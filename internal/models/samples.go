package models

// Sample is a ready-made input text that can be loaded into either app.
type Sample struct {
	Name string `json:"name" yaml:"name" example:"Positive Sci-Fi" doc:"Display name of the sample"`
	Text string `json:"text" yaml:"text" doc:"Sample input text"`
}

// List samples for one app
// GET Path: "/v1/samples/{kind}"

type GetSamplesRequest struct {
	Kind string `json:"kind" path:"kind" enum:"movie,resume" doc:"Which app the samples are for"`
}

type GetSamplesResponse struct {
	Body struct {
		Samples []Sample `json:"samples" doc:"Sample inputs"`
	}
}
