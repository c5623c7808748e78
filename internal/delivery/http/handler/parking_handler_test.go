package handler

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/usecase"
)

type mockParkingDataRepository struct {
	mock.Mock
}

func (m *mockParkingDataRepository) FetchParkings(ctx context.Context) []domain.Parking {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Parking)
}

type parkingJSON struct {
	ID            string   `json:"id"`
	Status        string   `json:"status"`
	IsOpen        bool     `json:"isOpen"`
	OccupancyRate float64  `json:"occupancyRate"`
	DistanceKm    *float64 `json:"distanceKm"`
	Latitude      *float64 `json:"latitude"`
}

type successJSON struct {
	Data []parkingJSON `json:"data"`
	Meta struct {
		Total    int     `json:"total"`
		RadiusKm float64 `json:"radius_km"`
	} `json:"meta"`
}

type errorJSON struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func newParking(id string, lat, lon float64, total, available int) domain.Parking {
	return domain.Parking{
		ID:              id,
		Name:            "Parking " + id,
		Latitude:        &lat,
		Longitude:       &lon,
		TotalSpaces:     &total,
		AvailableSpaces: &available,
		Status:          domain.DeriveStatus(&total, &available),
	}
}

func setupApp(t *testing.T, parkings []domain.Parking) *fiber.App {
	t.Helper()

	repo := new(mockParkingDataRepository)
	repo.On("FetchParkings", mock.Anything).Return(parkings)

	uc := usecase.NewParkingUseCase(repo, zap.NewNop())
	h := NewParkingHandler(uc, 5.0, zap.NewNop())

	app := fiber.New()
	app.Get("/api/parkings", h.GetAllParkings)
	app.Get("/api/parkings/nearby", h.GetParkingsNearby)
	return app
}

func doGet(t *testing.T, app *fiber.App, target string) (int, []byte) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func fixtures() []domain.Parking {
	noCoords := domain.Parking{ID: "nocoords", Name: "No coords", Status: domain.ParkingStatusUnknown}
	return []domain.Parking{
		newParking("near", 46.5988, 0.3404, 100, 30),
		newParking("here", 46.5802, 0.3404, 100, 0),
		newParking("far", 48.8566, 2.3522, 100, 50),
		noCoords,
	}
}

func TestParkingHandler_GetAllParkings(t *testing.T) {
	app := setupApp(t, fixtures())

	status, body := doGet(t, app, "/api/parkings")
	require.Equal(t, fiber.StatusOK, status)

	var resp successJSON
	require.NoError(t, json.Unmarshal(body, &resp))

	require.Len(t, resp.Data, 4)
	assert.Equal(t, 4, resp.Meta.Total)
	assert.Equal(t, "near", resp.Data[0].ID)
	assert.Equal(t, "OPEN", resp.Data[0].Status)
	assert.True(t, resp.Data[0].IsOpen)
	assert.Equal(t, 70.0, resp.Data[0].OccupancyRate)
	assert.Nil(t, resp.Data[0].DistanceKm)

	assert.Equal(t, "FULL", resp.Data[1].Status)
	assert.False(t, resp.Data[1].IsOpen)
	assert.Nil(t, resp.Data[3].Latitude)
}

func TestParkingHandler_GetAllParkings_Empty(t *testing.T) {
	app := setupApp(t, []domain.Parking{})

	status, body := doGet(t, app, "/api/parkings")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"data":[],"meta":{"total":0}}`, string(body))
}

func TestParkingHandler_GetParkingsNearby(t *testing.T) {
	app := setupApp(t, fixtures())

	status, body := doGet(t, app, "/api/parkings/nearby?latitude=46.5802&longitude=0.3404&radius=5")
	require.Equal(t, fiber.StatusOK, status)

	var resp successJSON
	require.NoError(t, json.Unmarshal(body, &resp))

	require.Len(t, resp.Data, 2)
	assert.Equal(t, "here", resp.Data[0].ID)
	assert.Equal(t, "near", resp.Data[1].ID)
	require.NotNil(t, resp.Data[0].DistanceKm)
	require.NotNil(t, resp.Data[1].DistanceKm)
	assert.Equal(t, 0.0, *resp.Data[0].DistanceKm)
	assert.Equal(t, 2.07, *resp.Data[1].DistanceKm)
	assert.Equal(t, 2, resp.Meta.Total)
	assert.Equal(t, 5.0, resp.Meta.RadiusKm)
}

func TestParkingHandler_GetParkingsNearby_NonFiniteCoordinates(t *testing.T) {
	parkings := append(fixtures(), newParking("nan", math.NaN(), math.NaN(), 10, 5))
	app := setupApp(t, parkings)

	status, body := doGet(t, app, "/api/parkings/nearby?latitude=46.5802&longitude=0.3404&radius=5")
	require.Equal(t, fiber.StatusOK, status)

	var resp successJSON
	require.NoError(t, json.Unmarshal(body, &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "here", resp.Data[0].ID)
	assert.Equal(t, "near", resp.Data[1].ID)
}

func TestParkingHandler_GetParkingsNearby_DefaultRadius(t *testing.T) {
	app := setupApp(t, fixtures())

	status, body := doGet(t, app, "/api/parkings/nearby?latitude=46.5802&longitude=0.3404")
	require.Equal(t, fiber.StatusOK, status)

	var resp successJSON
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 5.0, resp.Meta.RadiusKm)
}

func TestParkingHandler_GetParkingsNearby_SmallRadius(t *testing.T) {
	app := setupApp(t, fixtures())

	status, body := doGet(t, app, "/api/parkings/nearby?latitude=46.5802&longitude=0.3404&radius=1")
	require.Equal(t, fiber.StatusOK, status)

	var resp successJSON
	require.NoError(t, json.Unmarshal(body, &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "here", resp.Data[0].ID)
}

func TestParkingHandler_GetParkingsNearby_BadRequests(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expectedCode  string
		expectedField string
	}{
		{name: "missing latitude", query: "longitude=0.34", expectedCode: "MISSING_PARAMETER", expectedField: "latitude"},
		{name: "missing longitude", query: "latitude=46.58", expectedCode: "MISSING_PARAMETER", expectedField: "longitude"},
		{name: "empty latitude", query: "latitude=&longitude=0.34", expectedCode: "MISSING_PARAMETER", expectedField: "latitude"},
		{name: "latitude not a number", query: "latitude=abc&longitude=0.34", expectedCode: "TYPE_MISMATCH", expectedField: "latitude"},
		{name: "radius not a number", query: "latitude=46.58&longitude=0.34&radius=far", expectedCode: "TYPE_MISMATCH", expectedField: "radius"},
		{name: "latitude out of range", query: "latitude=91&longitude=0.34", expectedCode: "VALIDATION_ERROR", expectedField: "latitude"},
		{name: "longitude out of range", query: "latitude=46.58&longitude=-180.5", expectedCode: "VALIDATION_ERROR", expectedField: "longitude"},
		{name: "zero radius", query: "latitude=46.58&longitude=0.34&radius=0", expectedCode: "VALIDATION_ERROR", expectedField: "radius"},
		{name: "negative radius", query: "latitude=46.58&longitude=0.34&radius=-1", expectedCode: "VALIDATION_ERROR", expectedField: "radius"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupApp(t, fixtures())

			status, body := doGet(t, app, "/api/parkings/nearby?"+tt.query)
			require.Equal(t, fiber.StatusBadRequest, status)

			var resp errorJSON
			require.NoError(t, json.Unmarshal(body, &resp))
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
			assert.Contains(t, resp.Error.Details, tt.expectedField)
		})
	}
}

func TestParkingHandler_GetParkingsNearby_BoundaryValuesAccepted(t *testing.T) {
	app := setupApp(t, fixtures())

	status, _ := doGet(t, app, "/api/parkings/nearby?latitude=-90&longitude=180&radius=0.01")
	assert.Equal(t, fiber.StatusOK, status)
}
