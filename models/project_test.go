package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsPlaceholder(t *testing.T) {
	require.True(t, IsPlaceholder(""))
	require.True(t, IsPlaceholder("https://placehold.co/800x600?text=x"))
	require.True(t, IsPlaceholder("https://cdn.example.com/placeholder.png"))
	require.False(t, IsPlaceholder("https://x/img1.png"))
}

func TestProject_DisplayImage(t *testing.T) {
	p := Project{CoverImage: "https://x/cover.png"}
	require.Equal(t, "https://x/cover.png", p.DisplayImage())

	p = Project{
		CoverImage: PlaceholderCover,
		Blocks: []Block{
			{ID: "a", URL: PlaceholderImage},
			{ID: "b", URL: "https://x/real.png"},
		},
	}
	require.Equal(t, "https://x/real.png", p.DisplayImage())

	p = Project{CoverImage: PlaceholderCover, Blocks: []Block{{ID: "a", URL: PlaceholderImage}}}
	require.Equal(t, PlaceholderCover, p.DisplayImage())
}

func TestProjectFields_ApplyAndColumns(t *testing.T) {
	title := "New"
	gap := 20
	mode := LayoutStacked
	f := ProjectFields{Title: &title, Gap: &gap, LayoutMode: &mode}

	p := Project{Title: "Old", Category: "Design", Gap: 8, LayoutMode: LayoutCollage}
	f.Apply(&p)
	require.Equal(t, "New", p.Title)
	require.Equal(t, "Design", p.Category)
	require.Equal(t, 20, p.Gap)
	require.Equal(t, LayoutStacked, p.LayoutMode)

	require.Equal(t, map[string]any{"title": "New", "gap": 20, "layout_mode": LayoutStacked}, f.Columns())
}

func TestParseLayoutMode(t *testing.T) {
	mode, err := ParseLayoutMode("pdf")
	require.NoError(t, err)
	require.Equal(t, LayoutStacked, mode)

	mode, err = ParseLayoutMode("")
	require.NoError(t, err)
	require.Equal(t, LayoutCollage, mode)

	_, err = ParseLayoutMode("masonry")
	require.Error(t, err)
}

func TestParseMediaType(t *testing.T) {
	m, err := ParseMediaType("")
	require.NoError(t, err)
	require.Equal(t, MediaImage, m)

	m, err = ParseMediaType("Video")
	require.NoError(t, err)
	require.Equal(t, MediaVideo, m)

	_, err = ParseMediaType("audio")
	require.Error(t, err)
}

func TestNormalize(t *testing.T) {
	require.Equal(t, MediaImage, MediaType("").Normalize())
	require.Equal(t, MediaVideo, MediaType(" Video").Normalize())
	require.Equal(t, MediaImage, MediaType("audio").Normalize())

	require.Equal(t, LayoutStacked, LayoutMode("PDF").Normalize())
	require.Equal(t, LayoutStacked, LayoutMode(" Stacked").Normalize())
	require.Equal(t, LayoutCollage, LayoutMode("").Normalize())
	require.Equal(t, LayoutCollage, LayoutMode("spiral").Normalize())
}
