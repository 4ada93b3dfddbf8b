package service

import (
	"reflect"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"lowercased and trimmed", []string{" Family ", "CHILDHOOD"}, []string{"family", "childhood"}},
		{"duplicates collapse", []string{"travel", "Travel", " travel"}, []string{"travel"}},
		{"blanks dropped", []string{"", "  ", "home"}, []string{"home"}},
		{"order preserved", []string{"b", "a", "b"}, []string{"b", "a"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := normalizeTags(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("normalizeTags(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateStory(t *testing.T) {
	t.Parallel()

	manyTags := make([]string, maxStoryTags+1)
	for i := range manyTags {
		manyTags[i] = string(rune('a' + i))
	}

	tests := []struct {
		name    string
		title   string
		body    string
		tags    []string
		wantErr error
	}{
		{"valid", "First day", "It was raining.", []string{"weather"}, nil},
		{"missing title", "", "body", nil, ErrMissingTitle},
		{"missing body", "title", "", nil, ErrMissingBody},
		{"too many tags", "title", "body", manyTags, ErrTooManyTags},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateStory(tt.title, tt.body, tt.tags)
			if err != tt.wantErr {
				t.Errorf("validateStory() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
