package models

// Ask a one-shot question
// POST Path: "/v1/qa"

type PostQARequest struct {
	Body struct {
		Question string `json:"question" minLength:"1" maxLength:"4000" example:"How many floors are in the Burj Khalifa?" doc:"Question to answer"`
		Model    string `json:"model,omitempty" example:"mistral:latest" doc:"Optional model override for this call"`
	}
}

type QAResponse struct {
	Body struct {
		Answer    string `json:"answer" doc:"Model answer"`
		Reasoning string `json:"reasoning,omitempty" doc:"Chain-of-thought reasoning that led to the answer"`
		Model     string `json:"model" doc:"Model that produced the answer"`
	}
}
