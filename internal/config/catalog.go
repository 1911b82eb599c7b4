package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"days/internal/models"
)

// Catalog is the static place data: curated spots, a city list, alias
// tables, concept words and the fallback content shown when live data is
// unavailable. Hierarchical data like this is easier to manage in YAML than
// env vars.
type Catalog struct {
	Spots    []Spot            `yaml:"spots"`
	Cities   []City            `yaml:"cities"`
	Synonyms map[string]string `yaml:"synonyms"` // alias -> canonical name
	Concepts []string          `yaml:"concepts"` // words that describe a kind of trip, not a place
	Fallback FallbackConfig    `yaml:"fallback"`
}

// Spot is a curated travel destination.
type Spot struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	NameEN   string   `yaml:"name_en,omitempty"`
	Country  string   `yaml:"country"`
	Lat      float64  `yaml:"lat"`
	Lng      float64  `yaml:"lng"`
	Category string   `yaml:"category"`
	Aliases  []string `yaml:"aliases,omitempty"`
	Keywords []string `yaml:"keywords,omitempty"`
}

// City is a named point used to resolve searches without a network call.
type City struct {
	Name     string  `yaml:"name"`
	Country  string  `yaml:"country,omitempty"`
	Lat      float64 `yaml:"lat"`
	Lng      float64 `yaml:"lng"`
	Priority int     `yaml:"priority"` // 1 continents/oceans, 2 cities
}

// FallbackConfig holds content served when live sources come back empty.
type FallbackConfig struct {
	Gallery  []FallbackImage `yaml:"gallery"`
	Trending []string        `yaml:"trending"` // spot names in rank order
}

// FallbackImage is a static gallery image.
type FallbackImage struct {
	ID          string `yaml:"id"`
	Regular     string `yaml:"regular"`
	Small       string `yaml:"small,omitempty"`
	Description string `yaml:"description,omitempty"`
	Author      string `yaml:"author,omitempty"`
}

// LoadCatalog loads the catalog file at path. A missing file yields the
// built-in catalog; sections left empty in the file are filled from it.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultCatalog(), nil
		}
		return nil, err
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}

	defaults := DefaultCatalog()
	if len(c.Spots) == 0 {
		c.Spots = defaults.Spots
	}
	if len(c.Cities) == 0 {
		c.Cities = defaults.Cities
	}
	if c.Synonyms == nil {
		c.Synonyms = defaults.Synonyms
	}
	if len(c.Concepts) == 0 {
		c.Concepts = defaults.Concepts
	}
	if len(c.Fallback.Gallery) == 0 {
		c.Fallback.Gallery = defaults.Fallback.Gallery
	}
	if len(c.Fallback.Trending) == 0 {
		c.Fallback.Trending = defaults.Fallback.Trending
	}

	return &c, nil
}

// SpotByName finds a spot by its name or English name, ignoring case.
func (c *Catalog) SpotByName(name string) *Spot {
	if c == nil {
		return nil
	}
	for i := range c.Spots {
		if strings.EqualFold(c.Spots[i].Name, name) || (c.Spots[i].NameEN != "" && strings.EqualFold(c.Spots[i].NameEN, name)) {
			return &c.Spots[i]
		}
	}
	return nil
}

// SynonymTable merges spot aliases with the explicit synonyms. Aliases shared
// by several spots (country names, regions) are ambiguous and left out.
// Keys are lowercased.
func (c *Catalog) SynonymTable() map[string]string {
	table := make(map[string]string)
	ambiguous := make(map[string]bool)
	for _, s := range c.Spots {
		for _, a := range s.Aliases {
			key := strings.ToLower(strings.TrimSpace(a))
			if key == "" || ambiguous[key] {
				continue
			}
			if prev, ok := table[key]; ok && prev != s.Name {
				delete(table, key)
				ambiguous[key] = true
				continue
			}
			table[key] = s.Name
		}
	}
	for alias, name := range c.Synonyms {
		table[strings.ToLower(strings.TrimSpace(alias))] = name
	}
	return table
}

// FallbackImages converts the fallback gallery to image descriptors.
func (c *Catalog) FallbackImages() []models.Image {
	images := make([]models.Image, 0, len(c.Fallback.Gallery))
	for _, f := range c.Fallback.Gallery {
		images = append(images, models.Image{
			ID:          f.ID,
			URLs:        models.ImageURLs{Regular: f.Regular, Small: f.Small},
			Description: f.Description,
			Attribution: models.Attribution{Name: f.Author},
		})
	}
	return images
}
