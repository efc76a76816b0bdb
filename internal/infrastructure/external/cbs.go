package external

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/config"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/database/redis"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// Existing-homes price dataset on CBS StatLine.
const cbsHousePriceDataset = "/83913NED/Observations"

// CBSClient queries CBS StatLine OData for municipal housing statistics.
type CBSClient struct {
	rest     *restClient
	cache    redis.Cache
	cacheTTL time.Duration
	logger   logging.Logger
}

// NewCBSClient builds a client from the external config. cache may be nil.
func NewCBSClient(cfg config.ExternalConfig, cache redis.Cache, log logging.Logger) *CBSClient {
	return &CBSClient{
		rest:     newRESTClient(cfg.CBSBaseURL, cfg.RequestTimeout, nil),
		cache:    cache,
		cacheTTL: cfg.CacheTTL,
		logger:   log.Named("cbs"),
	}
}

type cbsResponse struct {
	Value []cbsObservation `json:"value"`
}

type cbsObservation struct {
	GemiddeldeVerkoopprijs          *float64 `json:"GemiddeldeVerkoopprijs_1"`
	AantalVerkopen                  *float64 `json:"AantalVerkopen_2"`
	PrijsindexBestaandeKoopwoningen *float64 `json:"PrijsindexBestaandeKoopwoningen_3"`
	Perioden                        string   `json:"Perioden"`
}

// GetAreaStatistics returns the latest housing statistics for a municipality,
// or nil data when StatLine has no observations for it.
func (c *CBSClient) GetAreaStatistics(ctx context.Context, municipality string) (common.Metadata, error) {
	key := "cbs:" + municipality
	var result common.Metadata
	loader := func(ctx context.Context) (interface{}, error) {
		return c.fetch(ctx, municipality)
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

func (c *CBSClient) fetch(ctx context.Context, municipality string) (common.Metadata, error) {
	// OData string literals escape single quotes by doubling them
	// (e.g. 's-Hertogenbosch).
	safe := strings.ReplaceAll(municipality, "'", "''")

	params := url.Values{}
	params.Set("$filter", "contains(RegioS, '"+safe+"')")
	params.Set("$top", "5")
	params.Set("$orderby", "Perioden desc")

	var resp cbsResponse
	if err := c.rest.getJSON(ctx, cbsHousePriceDataset, params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Value) == 0 {
		c.logger.Info("no CBS observations for municipality", logging.String("municipality", municipality))
		return nil, nil
	}
	latest := resp.Value[0]

	data := common.Metadata{
		"municipality": municipality,
		"period":       latest.Perioden,
	}
	if latest.GemiddeldeVerkoopprijs != nil {
		data["avg_purchase_price"] = *latest.GemiddeldeVerkoopprijs
	}
	if latest.AantalVerkopen != nil {
		data["num_transactions"] = *latest.AantalVerkopen
	}
	if latest.PrijsindexBestaandeKoopwoningen != nil {
		data["price_index"] = *latest.PrijsindexBestaandeKoopwoningen
	}
	return data, nil
}
