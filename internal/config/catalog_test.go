package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCatalog_MissingFile(t *testing.T) {
	c, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if len(c.Spots) == 0 || len(c.Fallback.Gallery) != 2 {
		t.Errorf("LoadCatalog() did not return defaults: %d spots, %d fallback images", len(c.Spots), len(c.Fallback.Gallery))
	}
}

func TestLoadCatalog_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `
spots:
  - id: "1"
    name: Hallstatt
    country: Austria
    lat: 47.56
    lng: 13.65
    category: nature
    aliases: ["할슈타트"]
synonyms:
  hstatt: Hallstatt
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if len(c.Spots) != 1 || c.Spots[0].Name != "Hallstatt" {
		t.Errorf("Spots = %+v", c.Spots)
	}
	if len(c.Cities) == 0 || len(c.Concepts) == 0 || len(c.Fallback.Trending) == 0 {
		t.Error("empty sections were not filled from defaults")
	}

	table := c.SynonymTable()
	if table["할슈타트"] != "Hallstatt" || table["hstatt"] != "Hallstatt" {
		t.Errorf("SynonymTable() = %v", table)
	}
}

func TestLoadCatalog_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("spots: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalog(path); err == nil {
		t.Error("LoadCatalog() error = nil, want parse error")
	}
}

func TestSynonymTable_Ambiguous(t *testing.T) {
	table := DefaultCatalog().SynonymTable()

	if got := table["오사카"]; got != "Osaka" {
		t.Errorf("table[오사카] = %q, want Osaka", got)
	}
	if got := table["nyc"]; got != "New York" {
		t.Errorf("table[nyc] = %q, want New York", got)
	}
	if _, ok := table["일본"]; ok {
		t.Error("alias shared by several spots must not be a synonym")
	}
	if got := table["교토"]; got != "Kyoto" {
		t.Errorf("explicit synonym lost: %q", got)
	}
}

func TestSpotByName(t *testing.T) {
	c := DefaultCatalog()
	if s := c.SpotByName("osaka"); s == nil || s.Country != "Japan" {
		t.Errorf("SpotByName(osaka) = %+v", s)
	}
	if s := c.SpotByName("Atlantis"); s != nil {
		t.Errorf("SpotByName(Atlantis) = %+v, want nil", s)
	}
	var nilCatalog *Catalog
	if nilCatalog.SpotByName("Osaka") != nil {
		t.Error("nil catalog should find nothing")
	}
}

func TestFallbackImages(t *testing.T) {
	images := DefaultCatalog().FallbackImages()
	if len(images) != 2 {
		t.Fatalf("FallbackImages() returned %d, want 2", len(images))
	}
	for _, img := range images {
		if img.ThumbnailURL() == "" {
			t.Errorf("fallback image %s has no url", img.ID)
		}
	}
}
