// Package api provides the HTTP client for the MPD config switcher backend.
//
// The backend exposes three routes under a common prefix (default "/api"):
//
//	GET /currentmode   -> {"key": "...", "name": "..."}
//	GET /configparts   -> [{"key": "...", "name": "..."}, ...]
//	GET /switch/{key}  -> {"message": "..."} or non-2xx {"error": "..."}
//
// The switch route mutates daemon state despite being a GET. That is a
// backend contract kept for compatibility; new mutating endpoints should not
// copy it.
//
// # Usage Example
//
//	client := api.NewClient("http://localhost:6279", "/api")
//
//	mode, err := client.CurrentMode(ctx)
//	if err != nil {
//	    fmt.Println(api.ShortMessage(err))
//	}
//
// # Error Handling
//
// Every failure is an *api.Error. The Type field separates network failures
// (unreachable, refused, timeout, DNS), backend-reported HTTP errors and JSON
// parse failures. ShortMessage turns any of them into the single line shown
// to the operator. The client performs no retries.
package api
