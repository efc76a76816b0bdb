package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/config"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
)

func testExternalConfig(baseURL string) config.ExternalConfig {
	return config.ExternalConfig{
		BAGBaseURL:      baseURL,
		EPOnlineBaseURL: baseURL,
		EPOnlineAPIKey:  "test-key",
		CBSBaseURL:      baseURL,
		RequestTimeout:  5 * time.Second,
		CacheTTL:        time.Hour,
	}
}

func TestBAGLookupBuilding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/free", r.URL.Path)
		assert.Equal(t, "Keizersgracht 1 1015 CC", r.URL.Query().Get("q"))
		assert.Equal(t, "type:adres", r.URL.Query().Get("fq"))

		w.Write([]byte(`{"response":{"docs":[{
			"nummeraanduiding_id":"0363200000123456",
			"weergavenaam":"Keizersgracht 1, 1015CC Amsterdam",
			"gemeentenaam":"Amsterdam",
			"provincienaam":"Noord-Holland",
			"centroide_ll":"POINT(4.88969 52.37403)",
			"bouwjaar":1890,
			"gebruiksdoel":"woonfunctie",
			"oppervlakte":120
		}]}}`))
	}))
	defer srv.Close()

	client := NewBAGClient(testExternalConfig(srv.URL), nil, logging.NewNopLogger())
	data, err := client.LookupBuilding(context.Background(), "Keizersgracht 1", "1015 CC")
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, "Amsterdam", data["municipality"])
	assert.Equal(t, 1890, data["year_built"])
	assert.InDelta(t, 52.37403, data["lat"], 1e-9)
	assert.InDelta(t, 4.88969, data["lon"], 1e-9)
}

func TestBAGLookupBuildingNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"docs":[]}}`))
	}))
	defer srv.Close()

	client := NewBAGClient(testExternalConfig(srv.URL), nil, logging.NewNopLogger())
	data, err := client.LookupBuilding(context.Background(), "Nergensstraat 1", "9999 ZZ")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestBAGLookupBuildingServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewBAGClient(testExternalConfig(srv.URL), nil, logging.NewNopLogger())
	_, err := client.LookupBuilding(context.Background(), "Keizersgracht 1", "1015 CC")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeMarketLookupFailed))
}

func TestParseCentroid(t *testing.T) {
	lat, lon, ok := parseCentroid("POINT(5.12142 52.09074)")
	require.True(t, ok)
	assert.InDelta(t, 52.09074, lat, 1e-9)
	assert.InDelta(t, 5.12142, lon, 1e-9)

	_, _, ok = parseCentroid("")
	assert.False(t, ok)
	_, _, ok = parseCentroid("POINT(abc def)")
	assert.False(t, ok)
}

func TestEPOnlineLookupLabel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/PandEnergielabel/Adres", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "1015CC", r.URL.Query().Get("postcode"))
		assert.Equal(t, "1", r.URL.Query().Get("huisnummer"))

		w.Write([]byte(`[{"labelLetter":"C","energieIndex":1.4,"opnamedatum":"2021-03-01","geldigTot":"2031-03-01"}]`))
	}))
	defer srv.Close()

	client := NewEPOnlineClient(testExternalConfig(srv.URL), nil, logging.NewNopLogger())
	data, err := client.LookupLabel(context.Background(), "1015 CC", "1")
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, "C", data["energy_label"])
	assert.Equal(t, 1.4, data["energy_index"])
}

func TestEPOnlineLookupLabelSingleObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"labelLetter":"G","energieIndex":2.9}`))
	}))
	defer srv.Close()

	client := NewEPOnlineClient(testExternalConfig(srv.URL), nil, logging.NewNopLogger())
	data, err := client.LookupLabel(context.Background(), "1015 CC", "1")
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, "G", data["energy_label"])
}

func TestEPOnlineSkipsWithoutAPIKey(t *testing.T) {
	cfg := testExternalConfig("http://unreachable.invalid")
	cfg.EPOnlineAPIKey = ""

	client := NewEPOnlineClient(cfg, nil, logging.NewNopLogger())
	data, err := client.LookupLabel(context.Background(), "1015 CC", "1")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestEPOnlineEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewEPOnlineClient(testExternalConfig(srv.URL), nil, logging.NewNopLogger())
	data, err := client.LookupLabel(context.Background(), "1015 CC", "1")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCBSGetAreaStatistics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/83913NED/Observations", r.URL.Path)
		assert.Equal(t, "contains(RegioS, 'Utrecht')", r.URL.Query().Get("$filter"))
		assert.Equal(t, "Perioden desc", r.URL.Query().Get("$orderby"))

		w.Write([]byte(`{"value":[
			{"GemiddeldeVerkoopprijs_1":485000,"AantalVerkopen_2":312,"PrijsindexBestaandeKoopwoningen_3":112.4,"Perioden":"2024MM06"},
			{"GemiddeldeVerkoopprijs_1":479000,"AantalVerkopen_2":298,"PrijsindexBestaandeKoopwoningen_3":111.1,"Perioden":"2024MM05"}
		]}`))
	}))
	defer srv.Close()

	client := NewCBSClient(testExternalConfig(srv.URL), nil, logging.NewNopLogger())
	data, err := client.GetAreaStatistics(context.Background(), "Utrecht")
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, "Utrecht", data["municipality"])
	assert.Equal(t, 485000.0, data["avg_purchase_price"])
	assert.Equal(t, 112.4, data["price_index"])
	assert.Equal(t, "2024MM06", data["period"])
}

func TestCBSEscapesQuotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "contains(RegioS, '''s-Hertogenbosch')", r.URL.Query().Get("$filter"))
		w.Write([]byte(`{"value":[]}`))
	}))
	defer srv.Close()

	client := NewCBSClient(testExternalConfig(srv.URL), nil, logging.NewNopLogger())
	data, err := client.GetAreaStatistics(context.Background(), "'s-Hertogenbosch")
	require.NoError(t, err)
	assert.Nil(t, data)
}
