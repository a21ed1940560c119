package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestEmbeddedLoader(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		load        func(string) (string, error)
		asset       string
		wantErr     error
		wantContain string
	}{
		{"base layout", loader.LoadLayout, BaseLayout, nil, "{{ content }}"},
		{"post layout", loader.LoadLayout, DefaultPostLayout, nil, "{{ post_content }}"},
		{"list layout", loader.LoadLayout, DefaultListLayout, nil, "{{ post_list_content }}"},
		{"card component", loader.LoadComponent, CardComponent, nil, "{{ card_item_link }}"},
		{"header component", loader.LoadComponent, "header", nil, "{{ site_title }}"},
		{"footer component", loader.LoadComponent, "footer", nil, "{{ build_date }}"},
		{"site style", loader.LoadStyle, DefaultStyleName, nil, "font-family"},
		{"missing layout", loader.LoadLayout, "nonexistent-xyz", ErrLayoutNotFound, ""},
		{"missing component", loader.LoadComponent, "nonexistent-xyz", ErrComponentNotFound, ""},
		{"missing style", loader.LoadStyle, "nonexistent-xyz", ErrStyleNotFound, ""},
		{"traversal rejected", loader.LoadLayout, "../base", ErrInvalidAssetName, ""},
		{"empty name rejected", loader.LoadComponent, "", ErrInvalidAssetName, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.load(tt.asset)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("load(%q) error = %v, want %v", tt.asset, err, tt.wantErr)
			}
			if tt.wantContain != "" && !strings.Contains(got, tt.wantContain) {
				t.Errorf("load(%q) missing %q", tt.asset, tt.wantContain)
			}
		})
	}
}

func TestBaseLayoutIncludesComponents(t *testing.T) {
	t.Parallel()

	base, err := LoadLayout(BaseLayout)
	if err != nil {
		t.Fatalf("LoadLayout() error = %v", err)
	}
	for _, want := range []string{"{{ component: header }}", "{{ component: footer }}", "{{ sidebar_list }}", "{{ stylesheets }}"} {
		if !strings.Contains(base, want) {
			t.Errorf("base layout missing %q", want)
		}
	}

	if _, err := LoadComponent(CardComponent); err != nil {
		t.Errorf("LoadComponent(card) error = %v", err)
	}
	if _, err := LoadStyle(DefaultStyleName); err != nil {
		t.Errorf("LoadStyle(site) error = %v", err)
	}
}
