// Package seedsource busca o dataset de vendas usado para popular a base
package seedsource

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/transaction-report-api/internal/config"
	"github.com/vfg2006/transaction-report-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:generate mockgen -source=client.go -destination=mocks/client_mock.go -package=mocks
type Client interface {
	FetchTransactions(ctx context.Context) ([]*domain.Transaction, error)
}

type HTTPClient struct {
	httpClient *http.Client
	sourceURL  string
}

func NewClient(cfg config.Seed) *HTTPClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &HTTPClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		sourceURL: cfg.SourceURL,
	}
}

func (c *HTTPClient) FetchTransactions(ctx context.Context) ([]*domain.Transaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sourceURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a requisição")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a resposta")
	}

	transactions := make([]*domain.Transaction, 0, len(records))
	for _, record := range records {
		transactions = append(transactions, record.ToDomain())
	}

	return transactions, nil
}
