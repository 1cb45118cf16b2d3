// Package domain models addresses, coordinates and distance results for the
// two-address distance workflow, plus the error taxonomy shared by every
// provider adapter.
//
// # Providers
//
// Addresses are resolved by the Geospatial Information Authority of Japan
// (GSI) address search first. It is free and needs no key. When it fails and
// a Google Maps API key is configured, the Google Geocoding API is consulted
// as a fallback.
//
// Distances are computed by, in order: a spherical geometry library (when
// enabled), the GSI surveying calculation service (bl2st_calc), and finally
// the haversine formula, which needs no network and always succeeds.
//
// # Wire Conventions
//
// Coordinate order differs between providers:
//
//	GSI address search:  geometry.coordinates = [lon, lat]
//	Google Geocoding:    geometry.location    = {"lat": .., "lng": ..}
//	GSI reverse geocoder query:  ?lon=..&lat=..
//	GSI bl2st_calc query:        ?latitude1=..&longitude1=..&latitude2=..&longitude2=..
//
// bl2st_calc reports OutputData.geoLength as a decimal string in meters on
// the Bessel ellipsoid.
//
// Google status codes:
//
//	OK                                  success, results[0] is used
//	ZERO_RESULTS                        address not found
//	OVER_DAILY_LIMIT, OVER_QUERY_LIMIT  usage limit reached
//	REQUEST_DENIED                      invalid key or API not enabled
//	INVALID_REQUEST                     malformed request
//	UNKNOWN_ERROR                       transient server error
//
// # Rounding
//
// Results carry the distance twice, rounded independently from the same raw
// kilometer value:
//
//	km = round(raw * 1000) / 1000       three decimal places
//	m  = round(raw * 1000 * 10) / 10    one decimal place
//
// The two are not guaranteed to agree at rounding boundaries. See [NewDistance].
//
// # Credentials
//
// The Google key is an opaque string. The literal placeholder "YOUR_API_KEY"
// counts as no key at all. See [ValidCredential].
package domain
