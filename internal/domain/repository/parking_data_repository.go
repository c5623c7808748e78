package repository

import (
	"context"

	"github.com/parking-microservice/internal/domain"
)

// ParkingDataRepository - источник актуальных данных о парковках.
//
// FetchParkings never returns an error: a failed fetch yields an empty slice
// and the cause is logged by the implementation. Order follows the source.
type ParkingDataRepository interface {
	FetchParkings(ctx context.Context) []domain.Parking
}
