package commands

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/dbtest"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/repository"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/service"
)

const sampleCatalog = `[
  {
    "name": "Vitamin D3 2000 IU",
    "manufacturer": "Sunlab",
    "image_url": "https://img.example.com/d3.png",
    "ingredients": [{"name": "Cholecalciferol", "amount": "0.05", "unit": "mg"}],
    "health_claims": [{"claim": "Supports normal bone health", "attributes": {"authority": "EFSA"}}]
  },
  {"name": "Magnesium citrate"}
]`

func TestDecodeCatalog(t *testing.T) {
	entries, err := decodeCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Cholecalciferol", entries[0].Ingredients[0].Name)
	assert.Equal(t, "0.05", entries[0].Ingredients[0].Amount.String())
	assert.Nil(t, entries[1].Ingredients)
}

func TestDecodeCatalog_RejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name    string
		catalog string
	}{
		{"not json", `{`},
		{"missing name", `[{"description": "nameless"}]`},
		{"bad image url", `[{"name": "x", "image_url": "not a url"}]`},
		{"ingredient without name", `[{"name": "x", "ingredients": [{"unit": "mg"}]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeCatalog(strings.NewReader(tt.catalog))
			assert.Error(t, err)
		})
	}
}

func TestReadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o600))

	entries, err := readCatalogFile(path)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = readCatalogFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestFetchCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/catalog.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(sampleCatalog))
	}))
	defer srv.Close()

	entries, err := fetchCatalog(context.Background(), srv.URL+"/catalog.json")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = fetchCatalog(context.Background(), srv.URL+"/nope")
	assert.ErrorContains(t, err, "404")
}

func TestSeedCatalog(t *testing.T) {
	gormDB := dbtest.New(t)
	productRepo := repository.NewProductRepository(gormDB)
	products := service.NewProductService(productRepo, repository.NewRatingRepository(gormDB))
	ctx := context.Background()

	entries, err := decodeCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	created, err := seedCatalog(ctx, products, entries, false)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	created, err = seedCatalog(ctx, products, entries, true)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	list, err := products.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2, "reset removes the first load")

	var d3 uint
	for _, p := range list {
		if p.Name == "Vitamin D3 2000 IU" {
			d3 = p.ID
		}
	}
	detail, err := products.Get(ctx, d3)
	require.NoError(t, err)
	require.Len(t, detail.HealthClaims, 1)
	assert.Equal(t, "EFSA", detail.HealthClaims[0].Attributes["authority"])
}
