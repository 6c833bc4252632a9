package benchmark

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/finlytic/ccfm-service/internal/config"
	"github.com/sirupsen/logrus"
)

// Client fetches daily FX reference rates from the ECB eurofxref feed.
// The dashboard shows them next to the cash metrics so figures reported in
// other currencies can be eyeballed against the euro baseline.
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new benchmark rate client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.BenchmarkURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// fetchFeed downloads the raw XML feed
func (c *Client) fetchFeed() ([]byte, error) {
	resp, err := c.client.Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("benchmark XML response: %s", string(body))
	return body, nil
}

// parseFeed extracts the per-currency rates from the Cube elements
func (c *Client) parseFeed(rawBody []byte) (map[string]float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %v", err)
	}

	cubes := doc.FindElements("//Cube[@currency]")
	if len(cubes) == 0 {
		return nil, fmt.Errorf("no rate data found in XML")
	}

	rates := make(map[string]float64, len(cubes))
	for _, cube := range cubes {
		currency := cube.SelectAttrValue("currency", "")
		rateAttr := cube.SelectAttrValue("rate", "")
		rate, err := strconv.ParseFloat(rateAttr, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rate for %s: %v", currency, err)
		}
		rates[strings.ToUpper(currency)] = rate
	}
	return rates, nil
}

// GetRate retrieves the current reference rate for one currency
func (c *Client) GetRate(currency string) (float64, error) {
	body, err := c.fetchFeed()
	if err != nil {
		return 0, err
	}

	rates, err := c.parseFeed(body)
	if err != nil {
		return 0, err
	}

	rate, ok := rates[strings.ToUpper(currency)]
	if !ok {
		return 0, fmt.Errorf("no reference rate for currency %q", currency)
	}

	c.log.Infof("Retrieved reference rate for %s: %.4f", strings.ToUpper(currency), rate)
	return rate, nil
}
