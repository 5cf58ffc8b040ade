// ABOUTME: Dependencies container provides dependency injection for shared components
// ABOUTME: Defines the contract for dependencies required by the trends services

package interfaces

// Dependencies holds all external dependencies required by the shared
// components. Each trends microservice builds one of these at startup and
// passes it to the pieces it uses.
type Dependencies struct {
	// Cache provides caching functionality
	Cache Cache

	// HTTPClient provides HTTP request functionality
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger
}
