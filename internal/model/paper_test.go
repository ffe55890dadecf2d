package model_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"zotero-notion-sync/internal/model"
)

func samplePaper() model.Paper {
	return model.Paper{
		Title:       "Attention Is All You Need",
		Authors:     "Ashish Vaswani, Noam Shazeer",
		Link:        "https://doi.org/10.48550/arXiv.1706.03762",
		PublishedAt: "2017-06-12",
		ExternalURL: "https://open-zotero.xyz/select/groups/42/items/ABCD1234",
		ExternalID:  "ABCD1234",
	}
}

func TestPaperEquality(t *testing.T) {
	base := samplePaper()

	t.Run("Identical", func(t *testing.T) {
		other := base
		assert.True(t, base.ContentEqual(other))
		assert.True(t, base.Equal(other))
	})

	t.Run("Only board id differs", func(t *testing.T) {
		other := base.WithBoardID("0f3c-aa")
		assert.True(t, base.ContentEqual(other))
		assert.False(t, base.Equal(other))
	})

	mutations := map[string]func(p *model.Paper){
		"Title":       func(p *model.Paper) { p.Title = "other" },
		"Authors":     func(p *model.Paper) { p.Authors = "other" },
		"Link":        func(p *model.Paper) { p.Link = "" },
		"PublishedAt": func(p *model.Paper) { p.PublishedAt = "2017-06-13" },
		"ExternalURL": func(p *model.Paper) { p.ExternalURL = "other" },
		"ExternalID":  func(p *model.Paper) { p.ExternalID = "other" },
	}
	for field, mutate := range mutations {
		t.Run(field+" differs", func(t *testing.T) {
			other := base
			mutate(&other)
			assert.False(t, base.ContentEqual(other))
			assert.False(t, base.Equal(other))
		})
	}
}

func TestBoardURL(t *testing.T) {
	p := samplePaper()
	assert.Equal(t, "", p.BoardURL())

	p.BoardID = "5f0e1a2b-3c4d-5e6f-7a8b-9c0d1e2f3a4b"
	assert.Equal(t, "https://notion.so/5f0e1a2b3c4d5e6f7a8b9c0d1e2f3a4b", p.BoardURL())
}

func TestNormalizeBoardID(t *testing.T) {
	assert.Equal(t, "abc123def", model.NormalizeBoardID("abc123-def"))
	assert.Equal(t, "abc", model.NormalizeBoardID("abc"))
	assert.Equal(t, "", model.NormalizeBoardID(""))
}

func TestTruncateText(t *testing.T) {
	t.Run("Within limit", func(t *testing.T) {
		text := strings.Repeat("a", model.TextLimit)
		got, truncated := model.TruncateText(text, model.TextLimit)
		assert.False(t, truncated)
		assert.Equal(t, text, got)
	})

	t.Run("Over limit", func(t *testing.T) {
		text := strings.Repeat("a", 2500)
		got, truncated := model.TruncateText(text, model.TextLimit)
		assert.True(t, truncated)
		assert.Equal(t, model.TextLimit, utf8.RuneCountInString(got))
		assert.True(t, strings.HasSuffix(got, "..."))
	})

	t.Run("Counts characters not bytes", func(t *testing.T) {
		text := strings.Repeat("é", model.TextLimit)
		got, truncated := model.TruncateText(text, model.TextLimit)
		assert.False(t, truncated)
		assert.Equal(t, text, got)
	})

	t.Run("Idempotent", func(t *testing.T) {
		once, _ := model.TruncateText(strings.Repeat("b", 2500), model.TextLimit)
		twice, truncated := model.TruncateText(once, model.TextLimit)
		assert.False(t, truncated)
		assert.Equal(t, once, twice)
	})
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", model.Preview("short", 16))
	assert.Equal(t, "0123456789abcdef", model.Preview("0123456789abcdefXYZ", 16))
}
