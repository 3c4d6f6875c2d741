package core

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memProductRepo is an in-memory ProductRepository for seeding tests.
type memProductRepo struct {
	products []Product
}

func (r *memProductRepo) List(context.Context) ([]Product, error) {
	return append([]Product(nil), r.products...), nil
}

// Search mirrors the store's case-insensitive substring match.
func (r *memProductRepo) Search(_ context.Context, name string) ([]Product, error) {
	needle := strings.ToLower(name)
	out := make([]Product, 0)
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Count(context.Context) (int, error) {
	return len(r.products), nil
}

func (r *memProductRepo) Insert(_ context.Context, p Product) (int64, error) {
	p.ID = int64(len(r.products) + 1)
	r.products = append(r.products, p)
	return p.ID, nil
}

// recordingCache counts Invalidate calls; Get/Set are unused by the seeder.
type recordingCache struct {
	invalidations int
}

func (c *recordingCache) Get(context.Context) ([]Product, error) { return nil, ErrCacheMiss }

func (c *recordingCache) Set(context.Context, []Product) error { return nil }

func (c *recordingCache) Invalidate(context.Context) error {
	c.invalidations++
	return nil
}

func TestSeedProductsEmptyCatalog(t *testing.T) {
	repo := &memProductRepo{}
	cache := &recordingCache{}
	cfg := Config{SeedProducts: true}

	require.NoError(t, SeedProducts(context.Background(), repo, cache, cfg))

	require.Len(t, repo.products, len(defaultProducts))
	assert.Equal(t, "Laptop", repo.products[0].Name)
	assert.Equal(t, float64(1200), repo.products[0].Price)
	assert.Equal(t, 1, cache.invalidations)
}

func TestSeedProductsSkipsNonEmptyCatalog(t *testing.T) {
	repo := &memProductRepo{products: []Product{{ID: 1, Name: "Existing", Price: 10}}}
	cache := &recordingCache{}

	require.NoError(t, SeedProducts(context.Background(), repo, cache, Config{SeedProducts: true}))

	assert.Len(t, repo.products, 1)
	assert.Zero(t, cache.invalidations)
}

func TestSeedProductsDisabled(t *testing.T) {
	repo := &memProductRepo{}

	require.NoError(t, SeedProducts(context.Background(), repo, nil, Config{SeedProducts: false}))
	assert.Empty(t, repo.products)
}

func TestSeedProductsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
products:
  - name: Keyboard
    price: 45.5
    description: Mechanical keyboard
    image_url: /images/keyboard.png
  - name: Mouse
    price: 25
`), 0o644))

	repo := &memProductRepo{}
	cfg := Config{SeedProducts: true, SeedFile: path}

	require.NoError(t, SeedProducts(context.Background(), repo, nil, cfg))

	require.Len(t, repo.products, 2)
	assert.Equal(t, "Keyboard", repo.products[0].Name)
	assert.Equal(t, 45.5, repo.products[0].Price)
	assert.Equal(t, "/images/keyboard.png", repo.products[0].ImageURL)
	assert.Equal(t, "Mouse", repo.products[1].Name)
}

func TestParseSeedYAMLErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"empty document", ""},
		{"no products", "products: []"},
		{"missing name", "products:\n  - price: 10"},
		{"negative price", "products:\n  - name: Bad\n    price: -1"},
		{"not yaml", "{{{{"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseSeedYAML([]byte(tc.data))
			assert.Error(t, err)
		})
	}
}
