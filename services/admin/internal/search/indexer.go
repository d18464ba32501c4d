package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/farm_admin/services/admin/internal/models"
)

type Indexer interface {
	IndexActivity(ctx context.Context, entry *models.AdminActivityLog) error
}

type Config struct {
	URL      string
	User     string
	Password string
	Index    string
}

// NewClient connects and checks the cluster answers Info.
func NewClient(cfg Config) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.User,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: new client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch: info: %s: %s", res.Status(), body)
	}
	return client, nil
}

type ESIndexer struct {
	Client *elasticsearch.Client
	Index  string
}

func NewESIndexer(client *elasticsearch.Client, index string) *ESIndexer {
	return &ESIndexer{Client: client, Index: index}
}

// IndexActivity stores entry under its log id, so a retried write replaces
// the earlier document.
func (x *ESIndexer) IndexActivity(ctx context.Context, entry *models.AdminActivityLog) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(entry); err != nil {
		return fmt.Errorf("elasticsearch: encode: %w", err)
	}

	res, err := x.Client.Index(
		x.Index,
		&buf,
		x.Client.Index.WithContext(ctx),
		x.Client.Index.WithDocumentID(strconv.FormatUint(uint64(entry.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch: index %s: %s", x.Index, res.Status())
	}
	return nil
}

type Nop struct{}

func (Nop) IndexActivity(context.Context, *models.AdminActivityLog) error { return nil }
