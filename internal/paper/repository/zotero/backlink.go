package zotero

import (
	"fmt"
	"regexp"

	"zotero-notion-sync/internal/model"
)

// BackLinkTag is the only tag carried by a back-link note.
const BackLinkTag = "notion-link"

var boardLinkPattern = regexp.MustCompile(regexp.QuoteMeta(model.BoardBaseURL) + `/([a-z0-9-]+)`)

// ParseBoardID returns the Board row id of the first Board link found in a
// note body, with separators removed.
func ParseBoardID(body string) (string, bool) {
	m := boardLinkPattern.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return model.NormalizeBoardID(m[1]), true
}

// BackLinkBody is the note body linking to boardURL.
func BackLinkBody(boardURL string) string {
	return fmt.Sprintf(`<a href="%s">Notion</a>`, boardURL)
}

// IsBackLinkNote reports whether d is a note tagged exactly with BackLinkTag.
func IsBackLinkNote(d ItemData) bool {
	return d.ItemType == "note" && len(d.Tags) == 1 && d.Tags[0].Tag == BackLinkTag
}

func findBackLinkNote(children []Item) *Item {
	for i := range children {
		if IsBackLinkNote(children[i].Data) {
			return &children[i]
		}
	}
	return nil
}
