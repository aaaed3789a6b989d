package warehouse

import (
	"context"
	"math"

	"go.uber.org/zap"

	"gasline/internal/domain"
	"gasline/internal/geocode"
)

type Repository interface {
	All(ctx context.Context) ([]domain.Warehouse, error)
	FindByBranch(ctx context.Context, branchID int) (*domain.Warehouse, error)
}

type Geocoder interface {
	Geocode(ctx context.Context, q geocode.Query) (*geocode.LatLng, error)
}

// Resolver picks the fulfilling warehouse for an order. It is best-effort by
// contract: every failure degrades to a nil warehouse id and the back office
// falls back to its own default. Warehouse misassignment reroutes
// fulfillment; it never blocks checkout.
type Resolver struct {
	repo     Repository
	geocoder Geocoder
	logger   *zap.Logger
}

func NewResolver(repo Repository, geocoder Geocoder, logger *zap.Logger) *Resolver {
	return &Resolver{
		repo:     repo,
		geocoder: geocoder,
		logger:   logger,
	}
}

// Resolve returns the warehouse id serving the order, or nil when none could
// be determined. Branch pickup maps 1:1 from the branch entity; fleet and
// carrier deliveries pick the nearest warehouse by great-circle distance
// from the shipping coordinates, geocoding the address when no coordinates
// were saved.
func (r *Resolver) Resolve(ctx context.Context, method domain.DeliveryMethod, branchID *int, shipping domain.Address) *int {
	if method == domain.DeliveryPickup && branchID != nil {
		wh, err := r.repo.FindByBranch(ctx, *branchID)
		if err != nil {
			r.logger.Warn("branch warehouse lookup failed",
				zap.Int("branchId", *branchID), zap.Error(err))
			return nil
		}
		if wh == nil {
			return nil
		}
		return &wh.ID
	}

	coords := r.shippingCoords(ctx, shipping)
	if coords == nil {
		return nil
	}

	warehouses, err := r.repo.All(ctx)
	if err != nil {
		r.logger.Warn("listing warehouses failed", zap.Error(err))
		return nil
	}

	var nearest *int
	best := math.MaxFloat64
	for _, wh := range warehouses {
		if wh.Lat == nil || wh.Lng == nil {
			continue
		}
		d := haversineKm(coords.Lat, coords.Lng, *wh.Lat, *wh.Lng)
		if d < best {
			best = d
			id := wh.ID
			nearest = &id
		}
	}
	return nearest
}

func (r *Resolver) shippingCoords(ctx context.Context, shipping domain.Address) *geocode.LatLng {
	if shipping.Lat != nil && shipping.Lng != nil {
		return &geocode.LatLng{Lat: *shipping.Lat, Lng: *shipping.Lng}
	}

	coords, err := r.geocoder.Geocode(ctx, geocode.Query{
		Street:  shipping.Street,
		City:    shipping.City,
		State:   shipping.State,
		Zip:     shipping.Zip,
		Country: shipping.Country,
	})
	if err != nil {
		r.logger.Warn("geocoding shipping address failed",
			zap.String("city", shipping.City), zap.String("zip", shipping.Zip), zap.Error(err))
		return nil
	}
	return coords
}

const earthRadiusKm = 6371.0

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
