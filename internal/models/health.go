package models

// Service health
// GET Path: "/v1/health"

type RuntimeHealth struct {
	Reachable bool   `json:"reachable" doc:"Whether the LLM runtime answered the probe"`
	Version   string `json:"version,omitempty" example:"ollama 0.5.7" doc:"Runtime version string, when reachable"`
	Error     string `json:"error,omitempty" doc:"Probe failure detail, when unreachable"`
}

type DatabaseHealth struct {
	Configured bool   `json:"configured" doc:"Whether the analysis archive is enabled"`
	Reachable  bool   `json:"reachable" doc:"Whether the database answered a ping"`
	Error      string `json:"error,omitempty" doc:"Ping failure detail, when unreachable"`
}

type GetHealthResponse struct {
	Body struct {
		Status   string         `json:"status" enum:"ok,degraded" doc:"Overall service status"`
		Runtime  RuntimeHealth  `json:"runtime" doc:"LLM runtime reachability"`
		Database DatabaseHealth `json:"database" doc:"Archive database reachability"`
	}
}
