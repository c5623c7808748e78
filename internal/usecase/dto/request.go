package dto

// NearbyParkingsRequest - параметры поиска парковок поблизости (query string)
type NearbyParkingsRequest struct {
	Latitude  *float64 `query:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `query:"longitude" validate:"required,min=-180,max=180"`
	Radius    float64  `query:"radius" validate:"gt=0"` // km
}
