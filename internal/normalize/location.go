// Package normalize turns raw source strings into structured location,
// salary, skill-set and category values. Everything here is pure: no I/O,
// no shared state, callable from any adapter.
package normalize

import (
	"strings"

	"jobhound-ingest/pkg/models"
)

// RemoteSentinel is the city/state value used for fully remote postings.
const RemoteSentinel = "Remote"

// ParseLocation splits a raw location string into a structured Location.
// An empty string or an explicit remote flag yields the Remote sentinel with
// the caller's default country. Otherwise parts are positional: city, state,
// and country when a third comma-separated part is present.
func ParseLocation(raw string, isRemote bool, defaultCountry string) models.Location {
	if raw == "" || isRemote {
		return models.Location{
			City:    RemoteSentinel,
			State:   RemoteSentinel,
			Country: defaultCountry,
			Remote:  true,
		}
	}

	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	loc := models.Location{
		City:    "Unknown",
		State:   "Unknown",
		Country: defaultCountry,
		Hybrid:  strings.Contains(strings.ToLower(raw), "hybrid"),
	}

	if len(parts) > 0 && parts[0] != "" {
		loc.City = parts[0]
	}
	if len(parts) > 1 && parts[1] != "" {
		loc.State = parts[1]
	}
	if len(parts) > 2 && parts[2] != "" {
		loc.Country = parts[2]
	}

	return loc
}

// IsRemoteText reports whether a raw location string describes a remote
// position. Adapters use this to derive the remote flag before ParseLocation.
func IsRemoteText(raw string) bool {
	return strings.Contains(strings.ToLower(raw), "remote")
}
