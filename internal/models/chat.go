package models

// ChatRequest is one question posted to the local chat endpoint.
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse carries either the generated answer or a user-visible error.
type ChatResponse struct {
	Answer string `json:"answer,omitempty"`
	Error  string `json:"error,omitempty"`
}
