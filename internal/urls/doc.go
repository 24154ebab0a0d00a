// Package urls holds the project URLs shown in version output and
// troubleshooting hints, so they change in one place.
//
// Usage:
//
//	import "github.com/benedictjohannes/mpd-config-switcher/internal/urls"
//
//	fmt.Printf("Report problems at: %s\n", urls.Issues)
package urls
