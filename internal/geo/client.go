package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	autherror "github.com/AnthoniusHendriyanto/account-service/internal/errors"
	"go.uber.org/zap"
)

type publicIPResponse struct {
	IP string `json:"ip"`
}

type countryResponse struct {
	Status  string `json:"status"`
	Country string `json:"country"`
	Message string `json:"message"`
}

// Client resolves the host's public address and the country of an address
// using two JSON endpoints in the ipify and ip-api formats.
type Client struct {
	publicIPURL string
	countryURL  string
	http        *http.Client
	l           *zap.Logger
}

func NewClient(publicIPURL, countryURL string, timeout time.Duration, l *zap.Logger) *Client {
	if l == nil {
		l = zap.NewNop()
	}
	return &Client{
		publicIPURL: publicIPURL,
		countryURL:  countryURL,
		http:        &http.Client{Timeout: timeout},
		l:           l,
	}
}

func (c *Client) PublicIP(ctx context.Context) (string, error) {
	var body publicIPResponse
	if err := c.getJSON(ctx, c.publicIPURL, &body); err != nil {
		return "", err
	}
	if body.IP == "" {
		return "", fmt.Errorf("%w: empty public ip", autherror.ErrUpstreamUnavailable)
	}
	return body.IP, nil
}

func (c *Client) CountryOf(ctx context.Context, ip string) (string, error) {
	reqURL, err := url.JoinPath(c.countryURL, url.PathEscape(ip))
	if err != nil {
		return "", fmt.Errorf("%w: %v", autherror.ErrUpstreamUnavailable, err)
	}

	var body countryResponse
	if err := c.getJSON(ctx, reqURL, &body); err != nil {
		return "", err
	}
	if body.Status != "success" || body.Country == "" {
		c.l.Debug("country lookup rejected", zap.String("ip", ip), zap.String("status", body.Status), zap.String("message", body.Message))
		return "", fmt.Errorf("%w: lookup status %q", autherror.ErrUpstreamUnavailable, body.Status)
	}
	return body.Country, nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", autherror.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", autherror.ErrUpstreamUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", autherror.ErrUpstreamUnavailable, req.URL.Host, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", autherror.ErrUpstreamUnavailable, err)
	}
	return nil
}
