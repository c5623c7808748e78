package domain

import "math"

// ParkingStatus - состояние парковки
type ParkingStatus string

const (
	ParkingStatusOpen    ParkingStatus = "OPEN"
	ParkingStatusFull    ParkingStatus = "FULL"
	ParkingStatusClosed  ParkingStatus = "CLOSED"
	ParkingStatusUnknown ParkingStatus = "UNKNOWN"
)

// Parking представляет текущее известное состояние одной парковки.
// Значение неизменяемо: методы With* возвращают копию.
type Parking struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Address         *string       `json:"address,omitempty"`
	Latitude        *float64      `json:"latitude,omitempty"`
	Longitude       *float64      `json:"longitude,omitempty"`
	TotalSpaces     *int          `json:"total_spaces,omitempty"`
	AvailableSpaces *int          `json:"available_spaces,omitempty"`
	Status          ParkingStatus `json:"status"`

	// DistanceKm заполняется только при поиске рядом с точкой
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are known.
func (p Parking) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// IsOpen - парковка открыта и есть свободные места
func (p Parking) IsOpen() bool {
	return p.Status == ParkingStatusOpen
}

// OccupancyRate возвращает процент занятых мест, округлённый вниз.
// Если вместимость или число свободных мест неизвестны, возвращает 0.
func (p Parking) OccupancyRate() float64 {
	if p.TotalSpaces == nil || p.AvailableSpaces == nil || *p.TotalSpaces == 0 {
		return 0
	}
	total := float64(*p.TotalSpaces)
	occupied := total - float64(*p.AvailableSpaces)
	return math.Floor(occupied * 100 / total)
}

// WithDistance returns a copy of p carrying distanceKm. p itself is not modified.
func (p Parking) WithDistance(distanceKm float64) Parking {
	d := distanceKm
	p.DistanceKm = &d
	return p
}

// DeriveStatus определяет статус по вместимости и числу свободных мест.
// CLOSED не выводится: источник не передаёт признак закрытия.
func DeriveStatus(totalSpaces, availableSpaces *int) ParkingStatus {
	if totalSpaces == nil || availableSpaces == nil {
		return ParkingStatusUnknown
	}
	if *availableSpaces == 0 {
		return ParkingStatusFull
	}
	return ParkingStatusOpen
}
