package external

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/config"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/database/redis"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// EPOnlineClient looks up registered energy labels in the EP-Online registry.
// Lookups require an API key; without one every lookup returns nil data.
type EPOnlineClient struct {
	rest     *restClient
	apiKey   string
	cache    redis.Cache
	cacheTTL time.Duration
	logger   logging.Logger
}

// NewEPOnlineClient builds a client from the external config. cache may be nil.
func NewEPOnlineClient(cfg config.ExternalConfig, cache redis.Cache, log logging.Logger) *EPOnlineClient {
	headers := map[string]string{}
	if cfg.EPOnlineAPIKey != "" {
		headers["Authorization"] = "Bearer " + cfg.EPOnlineAPIKey
	}
	return &EPOnlineClient{
		rest:     newRESTClient(cfg.EPOnlineBaseURL, cfg.RequestTimeout, headers),
		apiKey:   cfg.EPOnlineAPIKey,
		cache:    cache,
		cacheTTL: cfg.CacheTTL,
		logger:   log.Named("eponline"),
	}
}

type epLabel struct {
	LabelLetter  string  `json:"labelLetter"`
	EnergieIndex float64 `json:"energieIndex"`
	Opnamedatum  string  `json:"opnamedatum"`
	GeldigTot    string  `json:"geldigTot"`
}

// LookupLabel returns the registered energy label for a postal code and house
// number, or nil data when none is registered or no API key is configured.
func (c *EPOnlineClient) LookupLabel(ctx context.Context, postalCode, houseNumber string) (common.Metadata, error) {
	if c.apiKey == "" {
		c.logger.Info("EP-Online API key not configured, skipping energy label lookup")
		return nil, nil
	}

	key := "energy:" + strings.ReplaceAll(postalCode, " ", "") + ":" + houseNumber
	var result common.Metadata
	loader := func(ctx context.Context) (interface{}, error) {
		return c.fetch(ctx, postalCode, houseNumber)
	}
	if c.cache == nil {
		data, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		md, _ := data.(common.Metadata)
		return md, nil
	}
	if err := c.cache.GetOrSet(ctx, key, &result, c.cacheTTL, loader); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *EPOnlineClient) fetch(ctx context.Context, postalCode, houseNumber string) (common.Metadata, error) {
	params := url.Values{}
	params.Set("postcode", strings.ReplaceAll(postalCode, " ", ""))
	params.Set("huisnummer", houseNumber)

	// The registry returns either a single object or an array of labels.
	var raw json.RawMessage
	if err := c.rest.getJSON(ctx, "/PandEnergielabel/Adres", params, &raw); err != nil {
		return nil, err
	}

	var label epLabel
	var labels []epLabel
	if err := json.Unmarshal(raw, &labels); err == nil {
		if len(labels) == 0 {
			return nil, nil
		}
		label = labels[0]
	} else if err := json.Unmarshal(raw, &label); err != nil {
		return nil, nil
	}
	if label.LabelLetter == "" {
		return nil, nil
	}

	return common.Metadata{
		"energy_label":      label.LabelLetter,
		"energy_index":      label.EnergieIndex,
		"registration_date": label.Opnamedatum,
		"valid_until":       label.GeldigTot,
	}, nil
}
