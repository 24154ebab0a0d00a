package api

import "fmt"

// ConfigTarget is a switchable MPD configuration part as reported by the
// backend. Key is the identity; Name is the human-readable label.
type ConfigTarget struct {
	Key  string `json:"key"`  // e.g., "exclusive"
	Name string `json:"name"` // e.g., "Exclusive (DSD)"
}

// String returns "Name (key)"
func (t ConfigTarget) String() string {
	if t.Key == "" {
		return t.Name
	}
	return fmt.Sprintf("%s (%s)", t.Name, t.Key)
}

// switchResponse is the body of a successful GET /switch/{key}
type switchResponse struct {
	Message string `json:"message"`
}

// errorResponse is the optional body of a non-2xx response
type errorResponse struct {
	Error string `json:"error"`
}
