// Package catalog holds the full listing set in memory. The dataset is
// loaded once from a JSON file and treated as read-only afterwards.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"homescape/server/internal/models"
)

// ErrNotFound is returned when no listing has the requested id.
var ErrNotFound = errors.New("catalog: listing not found")

// Catalog is the read-only listing store.
type Catalog struct {
	listings []models.Listing
	byID     map[int64]models.Listing
	logger   *logrus.Logger
}

// Load reads the dataset file at path and builds the catalog. Duplicate
// ids in the dataset are rejected: id uniqueness is the one invariant
// the store owns.
func Load(path string, logger *logrus.Logger) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return Parse(data, logger)
}

// Parse builds a catalog from raw dataset JSON.
func Parse(data []byte, logger *logrus.Logger) (*Catalog, error) {
	var listings []models.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	byID := make(map[int64]models.Listing, len(listings))
	for _, l := range listings {
		if _, exists := byID[l.ID]; exists {
			return nil, fmt.Errorf("duplicate listing id %d in dataset", l.ID)
		}
		byID[l.ID] = l
	}

	logger.WithField("count", len(listings)).Info("Loaded listing dataset")
	return &Catalog{
		listings: listings,
		byID:     byID,
		logger:   logger,
	}, nil
}

// GetAll returns a copy of every listing in dataset order.
func (c *Catalog) GetAll() []models.Listing {
	out := make([]models.Listing, len(c.listings))
	copy(out, c.listings)
	return out
}

// GetByID returns the listing with the given id, or ErrNotFound.
func (c *Catalog) GetByID(id int64) (models.Listing, error) {
	l, ok := c.byID[id]
	if !ok {
		return models.Listing{}, ErrNotFound
	}
	return l, nil
}

// Len returns the number of listings in the catalog.
func (c *Catalog) Len() int {
	return len(c.listings)
}

// Search returns listings whose title, address, city or state contains
// the query, case-insensitively. An empty query matches everything.
func (c *Catalog) Search(query string) []models.Listing {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.GetAll()
	}

	var result []models.Listing
	for _, l := range c.listings {
		if strings.Contains(strings.ToLower(l.Title), q) ||
			strings.Contains(strings.ToLower(l.Address), q) ||
			strings.Contains(strings.ToLower(l.City), q) ||
			strings.Contains(strings.ToLower(l.State), q) {
			result = append(result, l)
		}
	}
	return result
}

// Stats aggregates the loaded listings.
func (c *Catalog) Stats() models.ListingStats {
	stats := models.ListingStats{
		TotalListings: len(c.listings),
		CountByType:   make(map[string]int),
		CountByStatus: make(map[string]int),
	}
	if len(c.listings) == 0 {
		return stats
	}

	var priceSum float64
	var sqftRatioSum float64
	var sqftRatioCount int
	prices := make([]int, 0, len(c.listings))

	for _, l := range c.listings {
		priceSum += float64(l.Price)
		prices = append(prices, l.Price)
		stats.CountByType[l.PropertyType]++
		stats.CountByStatus[l.Status]++
		if l.SquareFeet > 0 {
			sqftRatioSum += float64(l.Price) / float64(l.SquareFeet)
			sqftRatioCount++
		}
	}

	stats.AveragePrice = priceSum / float64(len(prices))
	stats.MedianPrice = medianPrice(prices)
	if sqftRatioCount > 0 {
		stats.AvgPricePerSqft = sqftRatioSum / float64(sqftRatioCount)
	}
	return stats
}

func medianPrice(prices []int) float64 {
	sorted := make([]int, len(prices))
	copy(sorted, prices)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return float64(sorted[mid-1]+sorted[mid]) / 2
	}
	return float64(sorted[mid])
}
