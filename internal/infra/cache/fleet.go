package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
)

const fleetKey = "cache:fleet"

// FleetCache cache Redis du parc de véhicules (matricules et périodes
// compris), avec TTL court. Le service fonctionne sans lui : un cache
// nil est toléré par les appelants.
type FleetCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFleetCache crée le cache du parc
func NewFleetCache(addr, password string, db int, ttl time.Duration) *FleetCache {
	return &FleetCache{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		ttl:    ttl,
	}
}

// GetFleet renvoie le parc en cache, ou nil en cas d'absence
func (c *FleetCache) GetFleet(ctx context.Context) ([]*domain.Vehicle, error) {
	data, err := c.client.Get(ctx, fleetKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var vehicles []*domain.Vehicle
	if err := json.Unmarshal(data, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// SetFleet met le parc en cache pour la durée du TTL
func (c *FleetCache) SetFleet(ctx context.Context, vehicles []*domain.Vehicle) error {
	payload, err := json.Marshal(vehicles)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, fleetKey, payload, c.ttl).Err()
}

// Invalidate purge le parc en cache. Appelé après toute mutation du
// calendrier pour que la recherche de disponibilité ne serve pas un
// état périmé plus longtemps que le TTL.
func (c *FleetCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, fleetKey).Err()
}
