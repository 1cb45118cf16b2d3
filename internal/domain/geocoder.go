package domain

import "context"

// PlaceholderCredential is the documented stand-in for a missing API key.
const PlaceholderCredential = "YOUR_API_KEY"

// Geocoder resolves a free-text address to a coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Coordinate, error)
}

// CredentialSource reports the secondary provider's key and whether it is usable.
type CredentialSource interface {
	Credential() (key string, ok bool)
}

// ValidCredential reports whether key is present and not the placeholder.
func ValidCredential(key string) bool {
	return key != "" && key != PlaceholderCredential
}
