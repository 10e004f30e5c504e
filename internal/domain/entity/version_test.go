package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNextVersionNumber(t *testing.T) {
	tests := []struct {
		name     string
		numbers  []int
		expected int
	}{
		{name: "empty list starts at one", numbers: nil, expected: 1},
		{name: "single version", numbers: []int{1}, expected: 2},
		{name: "contiguous numbering", numbers: []int{1, 2, 3}, expected: 4},
		{name: "gaps only raise the maximum", numbers: []int{1, 2, 4}, expected: 5},
		{name: "unordered list", numbers: []int{3, 1, 2}, expected: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			versions := make([]VideoVersion, len(tt.numbers))
			for i, n := range tt.numbers {
				versions[i] = VideoVersion{ID: uuid.New(), VersionNumber: n}
			}
			assert.Equal(t, tt.expected, NextVersionNumber(versions))
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "empty means not provided", input: "", wantErr: false},
		{name: "https url", input: "https://example.com/v1.mp4", wantErr: false},
		{name: "http url with port", input: "http://example.com:8080/preview", wantErr: false},
		{name: "missing scheme", input: "example.com/v1.mp4", wantErr: true},
		{name: "scheme without host", input: "https://", wantErr: true},
		{name: "relative path", input: "/videos/v1.mp4", wantErr: true},
		{name: "plain text", input: "not a url", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidURL)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	assert.Nil(t, NormalizeURL(""))

	got := NormalizeURL("https://example.com")
	if assert.NotNil(t, got) {
		assert.Equal(t, "https://example.com", *got)
	}
}

func TestURLValue(t *testing.T) {
	assert.Equal(t, "", URLValue(nil))

	s := "https://example.com"
	assert.Equal(t, s, URLValue(&s))
}

func TestVideoVersionCanApprove(t *testing.T) {
	pending := VideoVersion{}
	approved := VideoVersion{IsApproved: true}

	assert.True(t, pending.CanApprove(MemberRoleClient))
	assert.False(t, pending.CanApprove(MemberRoleOwner))
	assert.False(t, pending.CanApprove(MemberRoleEditor))
	assert.False(t, approved.CanApprove(MemberRoleClient))
}

func TestVideoVersionToResponseOmitsAbsentLinks(t *testing.T) {
	preview := "https://example.com/preview"
	v := VideoVersion{
		ID:         uuid.New(),
		PreviewURL: &preview,
		FinalURL:   nil,
	}

	resp := v.ToResponse()
	if assert.NotNil(t, resp.PreviewURL) {
		assert.Equal(t, preview, *resp.PreviewURL)
	}
	assert.Nil(t, resp.FinalURL)
}
