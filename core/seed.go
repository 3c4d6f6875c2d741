package core

import (
	"context"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultProducts is the built-in demo catalog used when no seed file is configured.
var defaultProducts = []Product{
	{Name: "Laptop", Price: 1200, Description: "A powerful laptop", ImageURL: "/images/laptop.png"},
	{Name: "Smartphone", Price: 800, Description: "A smart smartphone", ImageURL: "/images/smartphone.jpg"},
	{Name: "Headphones", Price: 150, Description: "Noise-cancelling headphones", ImageURL: "/images/headphones.jpg"},
	{Name: "Coffee Maker", Price: 80, Description: "Brews great coffee", ImageURL: "/images/cofeemaker.jpg"},
}

type seedDoc struct {
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	Name        string  `yaml:"name"`
	Price       float64 `yaml:"price"`
	Description string  `yaml:"description"`
	ImageURL    string  `yaml:"image_url"`
}

// SeedProducts inserts the initial catalog when the products table is empty.
// It is idempotent: a non-empty catalog is left untouched. After inserting it
// drops any cached listing so the cache cannot serve a pre-seed snapshot.
func SeedProducts(ctx context.Context, repo ProductRepository, cache CatalogCache, cfg Config) error {
	if !cfg.SeedProducts {
		return nil
	}

	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := defaultProducts
	if cfg.SeedFile != "" {
		products, err = loadSeedFile(cfg.SeedFile)
		if err != nil {
			return err
		}
	}

	for _, p := range products {
		if _, err := repo.Insert(ctx, p); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}
	log.Printf("seeded %d products into empty catalog", len(products))

	if cache != nil {
		if err := cache.Invalidate(ctx); err != nil {
			log.Printf("failed to invalidate catalog cache after seeding: %v", err)
		}
	}
	return nil
}

func loadSeedFile(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	return parseSeedYAML(data)
}

func parseSeedYAML(data []byte) ([]Product, error) {
	var doc seedDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if len(doc.Products) == 0 {
		return nil, fmt.Errorf("seed file contains no products")
	}
	out := make([]Product, 0, len(doc.Products))
	for i, p := range doc.Products {
		if p.Name == "" {
			return nil, fmt.Errorf("seed product %d: name is required", i+1)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("seed product %q: price must be non-negative", p.Name)
		}
		out = append(out, Product{
			Name:        p.Name,
			Price:       p.Price,
			Description: p.Description,
			ImageURL:    p.ImageURL,
		})
	}
	return out, nil
}
