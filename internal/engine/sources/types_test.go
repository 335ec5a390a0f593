package sources

import (
	"testing"
)

func TestGitHubExtractValidate(t *testing.T) {
	tests := []struct {
		name    string
		extract GitHubExtract
		wantErr bool
	}{
		{"valid", GitHubExtract{Username: "dev"}, false},
		{"missing username", GitHubExtract{}, true},
		{"negative stars", GitHubExtract{Username: "dev", StarsTotal: -1}, true},
		{"nameless repo", GitHubExtract{Username: "dev", Repositories: []Repository{{}}}, true},
		{"negative repo engagement", GitHubExtract{
			Username:     "dev",
			Repositories: []Repository{{Name: "r", Engagement: Engagement{Forks: -1}}},
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.extract.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLinkedInExtractValidate(t *testing.T) {
	tests := []struct {
		name    string
		extract LinkedInExtract
		wantErr bool
	}{
		{"valid", LinkedInExtract{Username: "dev", ProfileStrength: 80}, false},
		{"missing username", LinkedInExtract{}, true},
		{"negative connections", LinkedInExtract{Username: "dev", Connections: -1}, true},
		{"strength over 100", LinkedInExtract{Username: "dev", ProfileStrength: 101}, true},
		{"negative post engagement", LinkedInExtract{
			Username: "dev",
			Posts:    []Post{{Content: "x", Engagement: Engagement{Likes: -1}}},
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.extract.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHFModelExtract(t *testing.T) {
	m := HFModelExtract{ModelID: "dev/sentiment", Likes: 5}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if got := m.Author(); got != "dev" {
		t.Errorf("Author() = %q, want dev", got)
	}

	m = HFModelExtract{ModelID: "standalone"}
	if got := m.Author(); got != "" {
		t.Errorf("non-namespaced Author() = %q, want empty", got)
	}

	m = HFModelExtract{ModelID: "dev/x", Downloads: -1}
	if err := m.Validate(); err == nil {
		t.Error("expected error for negative downloads")
	}
	m = HFModelExtract{}
	if err := m.Validate(); err == nil {
		t.Error("expected error for missing model_id")
	}
}
