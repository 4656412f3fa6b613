package models

// ExecutionResult is returned synchronously by the recommendation executor.
// Success=false is a normal, expected outcome (no slot available, cannot
// decline); it is distinct from a returned error, which signals an
// infrastructure-class failure.
type ExecutionResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}
