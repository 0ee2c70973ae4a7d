// ABOUTME: Version constants for the Cadence engine
// ABOUTME: Single place to bump release identity
package version

const (
	// Version is the semantic version of this build
	Version = "0.1.0"

	// Product is the product name announced by the engine
	Product = "Cadence"

	// Manufacturer identifies who builds this software
	Manufacturer = "Cadence Audio"
)
