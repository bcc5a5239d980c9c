package seed

import (
	"strings"
	"testing"
)

func TestDev(t *testing.T) {
	d, err := Dev()
	if err != nil {
		t.Fatalf("embedded data should load: %v", err)
	}
	if len(d.Topics) == 0 || len(d.Users) == 0 || len(d.Articles) == 0 || len(d.Comments) == 0 {
		t.Fatalf("embedded data is incomplete: %d topics, %d users, %d articles, %d comments",
			len(d.Topics), len(d.Users), len(d.Articles), len(d.Comments))
	}

	users := make(map[string]bool)
	for _, u := range d.Users {
		users[u.Username] = true
	}
	topics := make(map[string]bool)
	for _, tp := range d.Topics {
		topics[tp.Slug] = true
	}
	for _, a := range d.Articles {
		if !users[a.Author] || !topics[a.Topic] {
			t.Errorf("article %q references unknown author or topic", a.Title)
		}
		if a.ImgID > len(d.Gallery) {
			t.Errorf("article %q references missing image %d", a.Title, a.ImgID)
		}
	}
	for _, c := range d.Comments {
		if !users[c.Author] {
			t.Errorf("comment by unknown user %q", c.Author)
		}
		if c.Body == "" {
			t.Error("comment bodies must not be empty")
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown key",
			yaml:    "gallery: [a]\navatars: [b]\ntopicz: []\n",
			wantErr: "topicz",
		},
		{
			name:    "no gallery",
			yaml:    "avatars: [b]\n",
			wantErr: "gallery",
		},
		{
			name:    "no avatars",
			yaml:    "gallery: [a]\n",
			wantErr: "avatar",
		},
		{
			name: "comment on unknown article",
			yaml: `gallery: [a]
avatars: [b]
articles:
  - title: Real
comments:
  - article: Imaginary
    author: lurker
    body: hi
`,
			wantErr: "Imaginary",
		},
		{
			name: "duplicate title",
			yaml: `gallery: [a]
avatars: [b]
articles:
  - title: Twice
  - title: Twice
`,
			wantErr: "Twice",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestOrDefault(t *testing.T) {
	if orDefault(0) != 1 || orDefault(-3) != 1 || orDefault(4) != 4 {
		t.Error("unset references should map to the placeholder row")
	}
}
