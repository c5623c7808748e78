package poitiers

import (
	"math"
	"strconv"
	"strings"

	"github.com/parking-microservice/internal/domain"
)

// toParking переводит запись источника в доменную модель.
// Второе значение - false, если геоточка была, но не разобралась.
func toParking(d parkingData) (domain.Parking, bool) {
	name := d.name()

	id := name
	if d.ID != nil {
		id = strconv.Itoa(*d.ID)
	}

	raw := selectGeopoint(d)
	lat, lon, ok := parseGeopoint(raw)

	return domain.Parking{
		ID:              id,
		Name:            name,
		Latitude:        lat,
		Longitude:       lon,
		TotalSpaces:     d.Capacite,
		AvailableSpaces: d.Places,
		Status:          domain.DeriveStatus(d.Capacite, d.Places),
	}, ok || raw == ""
}

// selectGeopoint: основное поле, при отсутствии или пустом значении - запасное
func selectGeopoint(d parkingData) string {
	if d.Geopoint != nil && *d.Geopoint != "" {
		return *d.Geopoint
	}
	if d.InfoParkingsGeoPoint != nil {
		return *d.InfoParkingsGeoPoint
	}
	return ""
}

// parseGeopoint разбирает строку вида "<lat>, <lon>".
// Any failure yields nil for both coordinates, never just one of them.
func parseGeopoint(raw string) (*float64, *float64, bool) {
	if raw == "" {
		return nil, nil, false
	}

	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return nil, nil, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, nil, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, nil, false
	}
	// ParseFloat принимает "NaN" и "Infinity"
	if !isFinite(lat) || !isFinite(lon) {
		return nil, nil, false
	}

	return &lat, &lon, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
