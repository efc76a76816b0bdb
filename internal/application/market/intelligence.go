// Package market enriches extracted property data with Dutch public
// registries: BAG building data, EP-Online energy labels, and CBS area
// statistics.
package market

import (
	"context"
	"regexp"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// BuildingClient resolves an address to a building-registry record.
type BuildingClient interface {
	LookupBuilding(ctx context.Context, address, postalCode string) (common.Metadata, error)
}

// EnergyLabelClient looks up the registered energy label of an address.
type EnergyLabelClient interface {
	LookupLabel(ctx context.Context, postalCode, houseNumber string) (common.Metadata, error)
}

// AreaStatisticsClient returns housing statistics for a municipality.
type AreaStatisticsClient interface {
	GetAreaStatistics(ctx context.Context, municipality string) (common.Metadata, error)
}

var houseNumberPattern = regexp.MustCompile(`\d+`)

// Intelligence runs the market enrichment. Every lookup is best-effort: a
// failing registry leaves its slot nil and never fails the enrichment.
type Intelligence struct {
	building BuildingClient
	energy   EnergyLabelClient
	area     AreaStatisticsClient
	logger   logging.Logger
}

// NewIntelligence wires the three registry clients.
func NewIntelligence(building BuildingClient, energy EnergyLabelClient, area AreaStatisticsClient, log logging.Logger) *Intelligence {
	return &Intelligence{
		building: building,
		energy:   energy,
		area:     area,
		logger:   log.Named("market"),
	}
}

// Enrich looks up registry data for the property. The result always carries
// the three slots bag_data, energy_label_data and area_statistics; a slot is
// nil when its lookup was skipped, found nothing, or failed.
//
// Sequencing: the BAG lookup needs address and postal code; the energy-label
// lookup needs the postal code plus the first number in the address; the
// area-statistics lookup needs the municipality resolved by the BAG lookup.
func (m *Intelligence) Enrich(ctx context.Context, propertyData common.Metadata) common.Metadata {
	result := common.Metadata{
		"bag_data":          nil,
		"energy_label_data": nil,
		"area_statistics":   nil,
	}

	address, _ := propertyData["address"].(string)
	postalCode, _ := propertyData["postal_code"].(string)

	if address != "" && postalCode != "" {
		bagData, err := m.building.LookupBuilding(ctx, address, postalCode)
		if err != nil {
			m.logger.Warn("building lookup failed", logging.Err(err))
		} else if bagData != nil {
			result["bag_data"] = map[string]interface{}(bagData)
		}
	}

	if postalCode != "" {
		if houseNumber := houseNumberPattern.FindString(address); houseNumber != "" {
			labelData, err := m.energy.LookupLabel(ctx, postalCode, houseNumber)
			if err != nil {
				m.logger.Warn("energy label lookup failed", logging.Err(err))
			} else if labelData != nil {
				result["energy_label_data"] = map[string]interface{}(labelData)
			}
		}
	}

	if bagData, ok := result["bag_data"].(map[string]interface{}); ok {
		if municipality, ok := bagData["municipality"].(string); ok && municipality != "" {
			stats, err := m.area.GetAreaStatistics(ctx, municipality)
			if err != nil {
				m.logger.Warn("area statistics lookup failed", logging.Err(err))
			} else if stats != nil {
				result["area_statistics"] = map[string]interface{}(stats)
			}
		}
	}

	return result
}
