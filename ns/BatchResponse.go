package ns

const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// BatchResponse is the outcome of one namecheap.domains.check call. Errors
// holds API-level and transport-level messages for the whole batch;
// per-domain errors live on the individual results.
type BatchResponse struct {
	Status  string              `json:"status"`
	Results []DomainCheckResult `json:"results"`
	Errors  []string            `json:"errors"`
}

func ErrorResponse(messages ...string) BatchResponse {
	return BatchResponse{Status: StatusError, Errors: messages}
}
