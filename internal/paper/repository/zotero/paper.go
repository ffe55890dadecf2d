package zotero

import (
	"context"
	"fmt"
	"strings"
	"time"

	"zotero-notion-sync/internal/model"
	"zotero-notion-sync/internal/paper/repository"
	"zotero-notion-sync/pkg/datemath"
	pkgLog "zotero-notion-sync/pkg/log"
)

// LibraryBaseURL is the host of Library deep links.
const LibraryBaseURL = "https://open-zotero.xyz/select/groups"

type implRepository struct {
	client *Client
	dates  *datemath.Parser
	now    func() time.Time
	l      pkgLog.Logger
}

// New creates a new Zotero Library repository.
func New(client *Client, dates *datemath.Parser, l pkgLog.Logger) repository.LibraryRepository {
	return &implRepository{
		client: client,
		dates:  dates,
		now:    time.Now,
		l:      l,
	}
}

func (r *implRepository) ListPapers(ctx context.Context) ([]model.Paper, error) {
	top, err := r.client.TopItems(ctx)
	if err != nil {
		r.l.Errorf(ctx, "zotero repository: failed to list top items: %v", err)
		return nil, err
	}

	papers := make([]model.Paper, 0, len(top))
	byKey := make(map[string]int, len(top))
	for _, item := range top {
		if item.Data.ItemType == "note" {
			continue
		}
		byKey[item.Key] = len(papers)
		papers = append(papers, r.itemToPaper(ctx, item))
	}

	notes, err := r.client.Items(ctx, "note")
	if err != nil {
		r.l.Errorf(ctx, "zotero repository: failed to list notes: %v", err)
		return nil, err
	}

	for _, note := range notes {
		if !IsBackLinkNote(note.Data) {
			continue
		}
		i, ok := byKey[note.Data.ParentItem]
		if !ok {
			// notes on child or trashed items are not papers
			r.l.Debugf(ctx, "zotero repository: ignoring back-link note %s of unknown parent %q", note.Key, note.Data.ParentItem)
			continue
		}
		// the last back-link note seen wins, even one without a link
		id, ok := ParseBoardID(note.Data.Note)
		if !ok {
			r.l.Infof(ctx, "zotero repository: back-link note %s has no board link", note.Key)
		}
		papers[i].BoardID = id
	}

	return papers, nil
}

func (r *implRepository) WriteBackLink(ctx context.Context, p model.Paper) error {
	boardURL := p.BoardURL()
	if boardURL == "" {
		return fmt.Errorf("%w: %s", repository.ErrMissingBoardID, p.ExternalID)
	}
	body := BackLinkBody(boardURL)

	children, err := r.client.Children(ctx, p.ExternalID)
	if err != nil {
		r.l.Errorf(ctx, "zotero repository: failed to list children of %s: %v", p.ExternalID, err)
		return err
	}

	note := findBackLinkNote(children)
	if note == nil {
		_, err := r.client.CreateItems(ctx, []ItemData{{
			ItemType:    "note",
			ParentItem:  p.ExternalID,
			Note:        body,
			Tags:        []Tag{{Tag: BackLinkTag}},
			Collections: []string{},
			Relations:   map[string]any{},
		}})
		if err != nil {
			r.l.Errorf(ctx, "zotero repository: failed to create back-link note for %s: %v", p.ExternalID, err)
			return err
		}
		return nil
	}

	if note.Data.Note == body {
		r.l.Debugf(ctx, "zotero repository: back-link note %s already points at %s", note.Key, boardURL)
		return nil
	}

	data := note.Data
	data.Note = body
	if err := r.client.UpdateItem(ctx, data); err != nil {
		r.l.Errorf(ctx, "zotero repository: failed to update back-link note %s: %v", note.Key, err)
		return err
	}
	return nil
}

// itemToPaper converts a top-level item. Text fields are truncated here so
// they compare equal to what the Board stores.
func (r *implRepository) itemToPaper(ctx context.Context, item Item) model.Paper {
	data := item.Data

	publishedAt, ok := r.dates.ParseDay(data.Date, r.now())
	if !ok && strings.TrimSpace(data.Date) != "" {
		r.l.Infof(ctx, "zotero repository: unparseable date %q on %s, leaving it empty", data.Date, item.Key)
	}

	return model.Paper{
		Title:       r.truncate(ctx, data.Title),
		Authors:     r.truncate(ctx, joinAuthors(data.Creators)),
		Link:        data.URL,
		PublishedAt: publishedAt,
		ExternalURL: fmt.Sprintf("%s/%d/items/%s", LibraryBaseURL, item.Library.ID, item.Key),
		ExternalID:  item.Key,
	}
}

func (r *implRepository) truncate(ctx context.Context, text string) string {
	out, truncated := model.TruncateText(text, model.TextLimit)
	if truncated {
		r.l.Warnf(ctx, "Text truncated to %d symbols: `%s...`", model.TextLimit, model.Preview(text, 16))
	}
	return out
}

// joinAuthors joins the names of creators with role "author", in order.
func joinAuthors(creators []Creator) string {
	names := make([]string, 0, len(creators))
	for _, c := range creators {
		if c.CreatorType != "author" {
			continue
		}
		if c.Name != "" {
			names = append(names, c.Name)
			continue
		}
		names = append(names, c.FirstName+" "+c.LastName)
	}
	return strings.Join(names, ", ")
}
