package sources

import (
	"testing"
)

const samplePersonHTML = `<!DOCTYPE html>
<html><head>
<script type="application/ld+json">
{"@context":"http://schema.org","@graph":[{"@type":"Person","name":"Dev Example","description":"Backend engineer building data pipelines","address":{"@type":"PostalAddress","addressLocality":"Berlin","addressCountry":"DE"},"alumniOf":[{"@type":"Organization","name":"Tech University"}]}]}
</script>
</head><body>
<h2 class="top-card-layout__headline">Backend engineer building data pipelines</h2>
<span class="top-card__subline-item">Berlin, Germany</span>
</body></html>`

func TestExtractPersonJSONLD(t *testing.T) {
	person := extractPersonJSONLD(samplePersonHTML)
	if person == nil {
		t.Fatal("expected Person block from @graph wrapper")
	}
	if name, _ := person["name"].(string); name != "Dev Example" {
		t.Errorf("name = %q", name)
	}
}

func TestExtractPersonJSONLD_NoBlock(t *testing.T) {
	if person := extractPersonJSONLD("<html><body>nothing here</body></html>"); person != nil {
		t.Errorf("expected nil, got %v", person)
	}
}

func TestRawProfileFromHTML(t *testing.T) {
	raw := rawProfileFromHTML(samplePersonHTML)

	if raw["username"] != "Dev Example" {
		t.Errorf("username = %v", raw["username"])
	}
	if raw["headline"] != "Backend engineer building data pipelines" {
		t.Errorf("headline = %v", raw["headline"])
	}
	if raw["location"] != "Berlin, DE" {
		t.Errorf("location = %v", raw["location"])
	}
	edu, ok := raw["education"].([]any)
	if !ok || len(edu) != 1 {
		t.Fatalf("education = %v", raw["education"])
	}

	// The raw shape must round-trip through the lenient parser.
	extract, dropped := ParseLinkedInProfile(raw)
	if len(dropped) != 0 {
		t.Fatalf("unexpected dropped entries: %v", dropped)
	}
	if extract.Username != "Dev Example" || extract.Location != "Berlin, DE" {
		t.Errorf("extract = %+v", extract)
	}
	if len(extract.Education) != 1 || extract.Education[0].Name != "Tech University" {
		t.Errorf("education = %+v", extract.Education)
	}
}

func TestRawProfileFromHTML_TreeFallback(t *testing.T) {
	body := `<html><body>
<h2 class="top-card-layout__headline">  Platform Engineer  </h2>
<span class="top-card__subline-item">Lisbon, Portugal</span>
</body></html>`

	raw := rawProfileFromHTML(body)
	if raw["headline"] != "Platform Engineer" {
		t.Errorf("headline fallback = %v", raw["headline"])
	}
	if raw["location"] != "Lisbon, Portugal" {
		t.Errorf("location fallback = %v", raw["location"])
	}
}
