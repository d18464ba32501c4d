package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/farm_admin/services/admin/internal/models"
)

type fakeCluster struct {
	mu   sync.Mutex
	docs map[string]map[string]any
}

func (f *fakeCluster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	if r.Method == http.MethodGet && r.URL.Path == "/" {
		_, _ = io.WriteString(w, `{"name":"test","cluster_name":"test","version":{"number":"9.0.0","build_flavor":"default"},"tagline":"You Know, for Search"}`)
		return
	}

	// PUT /<index>/_doc/<id>
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 || parts[1] != "_doc" {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"bad path"}`)
		return
	}
	var doc map[string]any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	f.docs[parts[0]+"/"+parts[2]] = doc
	f.mu.Unlock()
	w.WriteHeader(http.StatusCreated)
	_, _ = io.WriteString(w, `{"result":"created"}`)
}

func TestESIndexer(t *testing.T) {
	cluster := &fakeCluster{docs: map[string]map[string]any{}}
	srv := httptest.NewServer(cluster)
	defer srv.Close()

	client, err := NewClient(Config{URL: srv.URL})
	require.NoError(t, err)

	target := uint(7)
	entry := &models.AdminActivityLog{
		ID:        42,
		AdminID:   1,
		Action:    "PUT /api/admin/inventory/7/",
		TargetID:  &target,
		Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, NewESIndexer(client, "admin_activity").IndexActivity(context.Background(), entry))

	cluster.mu.Lock()
	doc, ok := cluster.docs["admin_activity/42"]
	cluster.mu.Unlock()
	require.True(t, ok)
	assert.Equal(t, "PUT /api/admin/inventory/7/", doc["action"])
	assert.EqualValues(t, 7, doc["targetId"])
}

func TestNewClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewClient(Config{URL: srv.URL})
	require.Error(t, err)
}
