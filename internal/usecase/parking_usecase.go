package usecase

import (
	"context"
	"sort"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/pkg/utils"
	"go.uber.org/zap"
)

// ParkingUseCase - бизнес-логика списка парковок и поиска поблизости
type ParkingUseCase struct {
	parkingRepo repository.ParkingDataRepository
	logger      *zap.Logger
}

func NewParkingUseCase(
	parkingRepo repository.ParkingDataRepository,
	logger *zap.Logger,
) *ParkingUseCase {
	return &ParkingUseCase{
		parkingRepo: parkingRepo,
		logger:      logger,
	}
}

// GetAllParkings возвращает данные источника без изменений
func (uc *ParkingUseCase) GetAllParkings(ctx context.Context) []domain.Parking {
	return uc.parkingRepo.FetchParkings(ctx)
}

// GetParkingsNearby возвращает парковки в радиусе radiusKm от точки, ближайшие первыми.
//
// Coordinates and radius are assumed to be validated by the caller. Distances
// are rounded to two decimals before filtering; equal distances keep source order.
func (uc *ParkingUseCase) GetParkingsNearby(
	ctx context.Context,
	lat, lon, radiusKm float64,
) []domain.Parking {
	all := uc.parkingRepo.FetchParkings(ctx)

	result := make([]domain.Parking, 0, len(all))
	for _, p := range all {
		if !p.HasCoordinates() {
			continue
		}

		distance := utils.RoundTo2(utils.HaversineDistance(lat, lon, *p.Latitude, *p.Longitude))
		// NaN не проходит сравнение и отбрасывается
		if !(distance <= radiusKm) {
			continue
		}

		result = append(result, p.WithDistance(distance))
	}

	sort.SliceStable(result, func(i, j int) bool {
		return *result[i].DistanceKm < *result[j].DistanceKm
	})

	uc.logger.Debug("Nearby parkings computed",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
		zap.Float64("radius_km", radiusKm),
		zap.Int("candidates", len(all)),
		zap.Int("found", len(result)),
	)

	return result
}
