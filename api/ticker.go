package api

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// GetTicker fetches the price of one ARK in every currency of
// TickerCurrencies. The request goes to the price service, not the node, and
// carries no node headers.
func (c *Client) GetTicker(ctx context.Context) (*Ticker, error) {
	q := url.Values{}
	q.Set("fsym", TickerSymbol)
	q.Set("tsyms", strings.Join(TickerCurrencies, ","))
	endpoint := c.tickerURL + "?" + q.Encode()

	body, status, err := c.fetch(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	ticker, err := DecodeTicker(body)
	if err != nil {
		if status < 200 || status > 299 {
			return nil, &TransportError{URL: endpoint, StatusCode: status, Err: err}
		}
		c.logger.Debug("treating undecodable ticker as absent", zap.String("url", endpoint), zap.Error(err))
		return nil, nil
	}

	return ticker, nil
}
