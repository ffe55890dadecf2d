package model

import (
	"strings"
	"unicode/utf8"
)

// BoardBaseURL is the public host of Board rows; back-link notes point here.
const BoardBaseURL = "https://notion.so"

// TextLimit is the maximum length of a single rich-text value on the Board.
const TextLimit = 2000

const truncationMarker = "..."

// Paper is one bibliography record as seen by a single sync pass.
// Optional fields use the empty string for "absent".
type Paper struct {
	Title       string
	Authors     string // display form, e.g. "Ada Lovelace, Alan Turing"
	Link        string // external URL, usually DOI based
	PublishedAt string // ISO day, e.g. "2021-03-05"
	ExternalURL string // deep link into the Library
	ExternalID  string // Library item key, the join key
	BoardID     string // Board row id without separators; empty until created
}

// ContentEqual reports whether p and o carry the same content.
// BoardID is not compared.
func (p Paper) ContentEqual(o Paper) bool {
	return p.Title == o.Title &&
		p.Authors == o.Authors &&
		p.Link == o.Link &&
		p.PublishedAt == o.PublishedAt &&
		p.ExternalURL == o.ExternalURL &&
		p.ExternalID == o.ExternalID
}

// Equal reports whether p and o match on content and BoardID.
func (p Paper) Equal(o Paper) bool {
	return p.ContentEqual(o) && p.BoardID == o.BoardID
}

// BoardURL is the deep link to the Board row, or "" if the row does not exist yet.
func (p Paper) BoardURL() string {
	if p.BoardID == "" {
		return ""
	}
	return BoardBaseURL + "/" + NormalizeBoardID(p.BoardID)
}

// WithBoardID returns a copy of p linked to the given Board row.
func (p Paper) WithBoardID(id string) Paper {
	p.BoardID = NormalizeBoardID(id)
	return p
}

// NormalizeBoardID strips separator characters from a Board row id.
func NormalizeBoardID(id string) string {
	return strings.ReplaceAll(id, "-", "")
}

// TruncateText shortens text to at most limit characters, replacing the tail
// with "..." when it does not fit. truncated reports whether anything was cut.
func TruncateText(text string, limit int) (out string, truncated bool) {
	if utf8.RuneCountInString(text) <= limit {
		return text, false
	}
	keep := limit - utf8.RuneCountInString(truncationMarker)
	if keep < 0 {
		keep = 0
	}
	runes := []rune(text)
	return string(runes[:keep]) + truncationMarker, true
}

// Preview returns the first n characters of text, for log messages.
func Preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
