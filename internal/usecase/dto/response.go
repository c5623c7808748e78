package dto

import "github.com/parking-microservice/internal/domain"

// ParkingResponse - парковка в ответе API. Пустые поля опускаются.
type ParkingResponse struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Address         *string              `json:"address,omitempty"`
	Latitude        *float64             `json:"latitude,omitempty"`
	Longitude       *float64             `json:"longitude,omitempty"`
	TotalSpaces     *int                 `json:"totalSpaces,omitempty"`
	AvailableSpaces *int                 `json:"availableSpaces,omitempty"`
	Status          domain.ParkingStatus `json:"status"`
	IsOpen          bool                 `json:"isOpen"`
	OccupancyRate   float64              `json:"occupancyRate"`
	DistanceKm      *float64             `json:"distanceKm,omitempty"` // only for nearby queries
}

// ParkingFromDomain строит ответ; isOpen и occupancyRate вычисляются здесь
func ParkingFromDomain(p domain.Parking) ParkingResponse {
	return ParkingResponse{
		ID:              p.ID,
		Name:            p.Name,
		Address:         p.Address,
		Latitude:        p.Latitude,
		Longitude:       p.Longitude,
		TotalSpaces:     p.TotalSpaces,
		AvailableSpaces: p.AvailableSpaces,
		Status:          p.Status,
		IsOpen:          p.IsOpen(),
		OccupancyRate:   p.OccupancyRate(),
		DistanceKm:      p.DistanceKm,
	}
}

// ParkingsFromDomain - то же для списка; nil превращается в пустой массив
func ParkingsFromDomain(parkings []domain.Parking) []ParkingResponse {
	result := make([]ParkingResponse, 0, len(parkings))
	for _, p := range parkings {
		result = append(result, ParkingFromDomain(p))
	}
	return result
}
