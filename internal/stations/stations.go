// internal/stations/stations.go

// Package stations maps known fishing spots to NOAA tide station IDs.
package stations

import "strings"

// Mapping associates a spot name with its NOAA station identifier.
type Mapping struct {
	Name      string
	StationID string
}

// registry is evaluated in declaration order; the first name contained in
// the caller's location text wins.
var registry = []Mapping{
	{"cape cod", "8447930"},          // Woods Hole, MA
	{"boston harbor", "8443970"},     // Boston, MA
	{"new york harbor", "8518750"},   // The Battery, NY
	{"chesapeake bay", "8575512"},    // Baltimore, MD
	{"long island sound", "8516945"}, // Kings Point, NY
}

// Resolve finds the station ID for a free-form location string. Matching is
// substring containment over the lowercased input; no trimming or accent
// folding. Returns false when no known spot matches.
func Resolve(locationText string) (string, bool) {
	lower := strings.ToLower(locationText)
	for _, m := range registry {
		if strings.Contains(lower, m.Name) {
			return m.StationID, true
		}
	}
	return "", false
}

// Names returns the display names of all supported fishing spots, in
// registry order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, m := range registry {
		names = append(names, titleCase(m.Name))
	}
	return names
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
