package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	apperrors "github.com/parking-microservice/internal/pkg/errors"
	"github.com/parking-microservice/internal/pkg/utils"
	"github.com/parking-microservice/internal/pkg/validator"
	"github.com/parking-microservice/internal/usecase"
	"github.com/parking-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// ParkingHandler - обработчик запросов по парковкам
type ParkingHandler struct {
	parkingUC       *usecase.ParkingUseCase
	defaultRadiusKm float64
	logger          *zap.Logger
}

// NewParkingHandler - создание нового ParkingHandler
func NewParkingHandler(parkingUC *usecase.ParkingUseCase, defaultRadiusKm float64, logger *zap.Logger) *ParkingHandler {
	return &ParkingHandler{
		parkingUC:       parkingUC,
		defaultRadiusKm: defaultRadiusKm,
		logger:          logger,
	}
}

// GetAllParkings godoc
// @Summary List all parkings
// @Description Возвращает все парковки источника в исходном порядке
// @Tags Parkings
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.ParkingResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/parkings [get]
func (h *ParkingHandler) GetAllParkings(c *fiber.Ctx) error {
	parkings := h.parkingUC.GetAllParkings(c.UserContext())

	return utils.SendSuccess(c, dto.ParkingsFromDomain(parkings), &utils.Meta{
		Total: len(parkings),
	})
}

// GetParkingsNearby godoc
// @Summary Parkings near a point
// @Description Парковки в радиусе от точки, отсортированные по расстоянию
// @Tags Parkings
// @Produce json
// @Param latitude query number true "Latitude" minimum(-90) maximum(90)
// @Param longitude query number true "Longitude" minimum(-180) maximum(180)
// @Param radius query number false "Search radius in km" default(5.0)
// @Success 200 {object} utils.SuccessResponse{data=[]dto.ParkingResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/parkings/nearby [get]
func (h *ParkingHandler) GetParkingsNearby(c *fiber.Ctx) error {
	req, err := h.parseNearbyRequest(c)
	if err != nil {
		h.logger.Warn("Invalid nearby request", zap.Error(err))
		return utils.SendError(c, err)
	}

	if err := validator.Validate(&req); err != nil {
		h.logger.Warn("Nearby request validation failed", zap.Error(err))
		return utils.SendError(c, apperrors.ErrValidation.WithDetails(validator.FieldErrors(err)))
	}

	parkings := h.parkingUC.GetParkingsNearby(c.UserContext(), *req.Latitude, *req.Longitude, req.Radius)

	return utils.SendSuccess(c, dto.ParkingsFromDomain(parkings), &utils.Meta{
		Total:    len(parkings),
		RadiusKm: req.Radius,
	})
}

func (h *ParkingHandler) parseNearbyRequest(c *fiber.Ctx) (dto.NearbyParkingsRequest, error) {
	req := dto.NearbyParkingsRequest{Radius: h.defaultRadiusKm}

	for _, name := range []string{"latitude", "longitude"} {
		if strings.TrimSpace(c.Query(name)) == "" {
			return req, apperrors.ErrMissingParameter.WithDetail(name, "Missing required parameter")
		}
	}

	lat, err := queryFloat(c, "latitude")
	if err != nil {
		return req, err
	}
	lon, err := queryFloat(c, "longitude")
	if err != nil {
		return req, err
	}
	req.Latitude = &lat
	req.Longitude = &lon

	if strings.TrimSpace(c.Query("radius")) != "" {
		radius, err := queryFloat(c, "radius")
		if err != nil {
			return req, err
		}
		req.Radius = radius
	}

	return req, nil
}

func queryFloat(c *fiber.Ctx, name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(c.Query(name)), 64)
	if err != nil {
		return 0, apperrors.ErrTypeMismatch.WithDetail(name, "Invalid type. Expected double")
	}
	return v, nil
}
