package repository

import (
	"context"
	"math"
	"strconv"

	"github.com/iliyamo/hotel-room-booking/internal/database"
)

// HotelRepo reads the hotel table and answers the authorization questions
// every manager-only workflow must ask. Hotels are immutable from this
// service's perspective.
type HotelRepo struct{ Sess *database.Session }

func NewHotelRepo(s *database.Session) *HotelRepo { return &HotelRepo{Sess: s} }

// Hotel carries the fields needed for the nearby-hotels listing.
type Hotel struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// IsManager reports whether the user manages at least one hotel.
func (r *HotelRepo) IsManager(ctx context.Context, userID int64) (bool, error) {
	n, err := r.Sess.ExecuteCount(ctx,
		`SELECT DISTINCT manageruserid FROM hotel WHERE manageruserid = $1`, userID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ManagesHotel reports whether the exact (manager, hotel) pair exists.
// Manager-only workflows must check this, not merely IsManager: managing
// hotel A grants nothing on hotel B.
func (r *HotelRepo) ManagesHotel(ctx context.Context, userID, hotelID int64) (bool, error) {
	n, err := r.Sess.ExecuteCount(ctx,
		`SELECT hotelid FROM hotel WHERE manageruserid = $1 AND hotelid = $2`, userID, hotelID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Nearby returns hotels within the given Euclidean distance of the point.
// All hotels are materialized and filtered here; coordinates are plain
// planar units, not geodesic.
func (r *HotelRepo) Nearby(ctx context.Context, lat, lon, radius float64) ([]Hotel, error) {
	res, err := r.Sess.ExecuteMaterialize(ctx,
		`SELECT hotelname, latitude, longitude FROM hotel`)
	if err != nil {
		return nil, err
	}
	hotels := make([]Hotel, 0, len(res.Rows))
	for _, row := range res.Rows {
		hLat, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, err
		}
		hLon, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, err
		}
		if distance(lat, lon, hLat, hLon) <= radius {
			hotels = append(hotels, Hotel{Name: row[0], Latitude: hLat, Longitude: hLon})
		}
	}
	return hotels, nil
}

func distance(lat1, lon1, lat2, lon2 float64) float64 {
	return math.Sqrt((lat1-lat2)*(lat1-lat2) + (lon1-lon2)*(lon1-lon2))
}
