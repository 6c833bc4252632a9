package benchmark

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finlytic/ccfm-service/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<gesmes:Envelope xmlns:gesmes="http://www.gesmes.org/xml/2002-08-01" xmlns="http://www.ecb.int/vocabulary/2002-08-01/eurofxref">
	<gesmes:subject>Reference rates</gesmes:subject>
	<Cube>
		<Cube time="2026-08-27">
			<Cube currency="USD" rate="1.0832"/>
			<Cube currency="JPY" rate="162.41"/>
			<Cube currency="GBP" rate="0.8511"/>
		</Cube>
	</Cube>
</gesmes:Envelope>`

func newTestClient(url string) *Client {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewClient(&config.Config{BenchmarkURL: url}, log)
}

func TestGetRate_ParsesFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		w.Write([]byte(feedXML))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	rate, err := client.GetRate("USD")
	require.NoError(t, err)
	assert.Equal(t, 1.0832, rate)

	// lookup is case-insensitive
	rate, err = client.GetRate("gbp")
	require.NoError(t, err)
	assert.Equal(t, 0.8511, rate)
}

func TestGetRate_UnknownCurrency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedXML))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetRate("XXX")
	assert.Error(t, err)
}

func TestGetRate_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetRate("USD")
	assert.Error(t, err)
}

func TestGetRate_MalformedFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<Envelope><Cube></Cube></Envelope>`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetRate("USD")
	assert.Error(t, err)
}
