package models

// SectionAnalysis is the evaluation of a single identified resume section.
type SectionAnalysis struct {
	Section  string  `json:"section" example:"EXPERIENCE" doc:"Section name as identified in the resume"`
	Analysis string  `json:"analysis" doc:"Critical feedback for the section"`
	Score    float64 `json:"score" minimum:"1" maximum:"10" example:"7" doc:"Section score on a 1-10 scale"`
}

// ResumeAnalysis is the structured result of evaluating one resume.
type ResumeAnalysis struct {
	Sections        []string          `json:"sections" doc:"Key sections identified in the resume"`
	SectionAnalyses []SectionAnalysis `json:"section_analyses,omitempty" doc:"Per-section evaluations (detailed mode only)"`
	OverallSummary  string            `json:"overall_summary" doc:"Overall assessment of the resume"`
	Strengths       []string          `json:"strengths" doc:"Key strengths"`
	Weaknesses      []string          `json:"weaknesses" doc:"Key weaknesses"`
	Recommendations []string          `json:"recommendations" doc:"Actionable improvement suggestions"`
}

// Analyze a resume
// POST Path: "/v1/resumes/analysis"

type PostResumeAnalysisRequest struct {
	Mode string `json:"mode,omitempty" query:"mode" enum:"quick,detailed" default:"detailed" doc:"Analysis mode: quick skips per-section evaluation"`
	Body struct {
		ResumeText string `json:"resume_text" minLength:"1" maxLength:"50000" doc:"Resume/CV text to evaluate (minimum 50 words)"`
	}
}

type ResumeAnalysisResponse struct {
	Body struct {
		AnalysisID int64          `json:"analysis_id,omitempty" doc:"Archive identifier, present when the archive is enabled"`
		Model      string         `json:"model" example:"llama3.2:3b" doc:"Model that produced the analysis"`
		Analysis   ResumeAnalysis `json:"analysis" doc:"Structured resume evaluation"`
	}
}
