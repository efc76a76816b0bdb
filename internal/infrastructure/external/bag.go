package external

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/config"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/database/redis"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// BAGClient resolves an address against the BAG building registry via the
// public PDOK location server. No API key is needed.
type BAGClient struct {
	rest     *restClient
	cache    redis.Cache
	cacheTTL time.Duration
	logger   logging.Logger
}

// NewBAGClient builds a client from the external config. cache may be nil.
func NewBAGClient(cfg config.ExternalConfig, cache redis.Cache, log logging.Logger) *BAGClient {
	return &BAGClient{
		rest:     newRESTClient(cfg.BAGBaseURL, cfg.RequestTimeout, nil),
		cache:    cache,
		cacheTTL: cfg.CacheTTL,
		logger:   log.Named("bag"),
	}
}

type pdokResponse struct {
	Response struct {
		Docs []pdokDoc `json:"docs"`
	} `json:"response"`
}

type pdokDoc struct {
	NummeraanduidingID string  `json:"nummeraanduiding_id"`
	Weergavenaam       string  `json:"weergavenaam"`
	Gemeentenaam       string  `json:"gemeentenaam"`
	Provincienaam      string  `json:"provincienaam"`
	CentroideLL        string  `json:"centroide_ll"`
	Bouwjaar           int     `json:"bouwjaar"`
	Gebruiksdoel       string  `json:"gebruiksdoel"`
	Oppervlakte        float64 `json:"oppervlakte"`
}

// LookupBuilding resolves the address to a BAG record. Returns nil data when
// the registry has no match.
func (c *BAGClient) LookupBuilding(ctx context.Context, address, postalCode string) (common.Metadata, error) {
	key := "bag:" + strings.ReplaceAll(postalCode, " ", "") + ":" + address
	var result common.Metadata
	loader := func(ctx context.Context) (interface{}, error) {
		return c.fetch(ctx, address, postalCode)
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

func (c *BAGClient) fetch(ctx context.Context, address, postalCode string) (common.Metadata, error) {
	params := url.Values{}
	params.Set("q", address+" "+postalCode)
	params.Set("fq", "type:adres")
	params.Set("rows", "1")

	var resp pdokResponse
	if err := c.rest.getJSON(ctx, "/free", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Response.Docs) == 0 {
		c.logger.Info("no BAG match for address", logging.String("postal_code", postalCode))
		return nil, nil
	}
	doc := resp.Response.Docs[0]

	data := common.Metadata{
		"bag_nummeraanduiding_id": doc.NummeraanduidingID,
		"address":                 doc.Weergavenaam,
		"municipality":            doc.Gemeentenaam,
		"province":                doc.Provincienaam,
		"year_built":              doc.Bouwjaar,
		"usage_purpose":           doc.Gebruiksdoel,
		"floor_area":              doc.Oppervlakte,
	}
	if lat, lon, ok := parseCentroid(doc.CentroideLL); ok {
		data["lat"] = lat
		data["lon"] = lon
	}
	return data, nil
}

// parseCentroid extracts lat/lon from a PDOK "POINT(lon lat)" centroid.
func parseCentroid(centroid string) (lat, lon float64, ok bool) {
	s := strings.TrimPrefix(centroid, "POINT(")
	s = strings.TrimSuffix(s, ")")
	parts := strings.Fields(s)
	if len(parts) < 2 {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, false
	}
	lat, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}
