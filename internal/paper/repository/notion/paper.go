package notion

import (
	"context"
	"fmt"

	"zotero-notion-sync/internal/model"
	"zotero-notion-sync/internal/paper/repository"
	pkgLog "zotero-notion-sync/pkg/log"
)

type implRepository struct {
	client     *Client
	databaseID string
	l          pkgLog.Logger
}

// New creates a new Notion Board repository for one database.
func New(client *Client, databaseID string, l pkgLog.Logger) repository.BoardRepository {
	return &implRepository{
		client:     client,
		databaseID: databaseID,
		l:          l,
	}
}

func (r *implRepository) ListPapers(ctx context.Context) ([]model.Paper, error) {
	var papers []model.Paper
	cursor := ""
	for {
		resp, err := r.client.QueryDatabase(ctx, r.databaseID, cursor)
		if err != nil {
			r.l.Errorf(ctx, "notion repository: failed to query database: %v", err)
			return nil, err
		}

		for _, page := range resp.Results {
			p, err := PageToPaper(page)
			if err != nil {
				return nil, err
			}
			papers = append(papers, p)
		}

		if resp.NextCursor == nil || *resp.NextCursor == "" {
			break
		}
		cursor = *resp.NextCursor
		r.l.Debugf(ctx, "notion repository: fetched %d row(s), continuing at cursor %s", len(papers), cursor)
	}
	return papers, nil
}

func (r *implRepository) CreatePaper(ctx context.Context, p model.Paper) (model.Paper, error) {
	req := CreatePageRequest{
		Parent:     Parent{DatabaseID: r.databaseID},
		Properties: r.buildProperties(ctx, p, false),
	}

	page, err := r.client.CreatePage(ctx, req)
	if err != nil {
		r.l.Errorf(ctx, "notion repository: failed to create page for %s: %v", p.ExternalID, err)
		return model.Paper{}, err
	}
	return PageToPaper(*page)
}

func (r *implRepository) UpdatePaper(ctx context.Context, p model.Paper) (model.Paper, error) {
	if p.BoardID == "" {
		return model.Paper{}, fmt.Errorf("%w: %s", repository.ErrMissingBoardID, p.ExternalID)
	}

	req := UpdatePageRequest{Properties: r.buildProperties(ctx, p, true)}

	page, err := r.client.UpdatePage(ctx, p.BoardID, req)
	if err != nil {
		r.l.Errorf(ctx, "notion repository: failed to update page %s: %v", p.BoardID, err)
		return model.Paper{}, err
	}
	return PageToPaper(*page)
}

// buildProperties builds the property payload for p. With clearAbsent set,
// empty link and date cells are sent as nulls so the stored values are removed.
func (r *implRepository) buildProperties(ctx context.Context, p model.Paper, clearAbsent bool) Properties {
	libraryURL := p.ExternalURL
	props := Properties{
		PropTitle:      {Type: KindTitle, Title: r.textCell(ctx, p.Title)},
		PropAuthors:    {Type: KindRichText, RichText: r.textCell(ctx, p.Authors)},
		PropLibraryURL: {Type: KindURL, URL: &libraryURL},
		PropLibraryID:  {Type: KindRichText, RichText: r.textCell(ctx, p.ExternalID)},
	}

	if p.Link != "" {
		link := p.Link
		props[PropLink] = PropertyValue{Type: KindURL, URL: &link}
	} else if clearAbsent {
		props[PropLink] = PropertyValue{Type: KindURL}
	}

	if p.PublishedAt != "" {
		props[PropPublishedAt] = PropertyValue{Type: KindDate, Date: &DateValue{Start: p.PublishedAt}}
	} else if clearAbsent {
		props[PropPublishedAt] = PropertyValue{Type: KindDate}
	}

	return props
}

// textCell builds a single text fragment, truncated to the store's limit.
func (r *implRepository) textCell(ctx context.Context, text string) []RichText {
	content, truncated := model.TruncateText(text, model.TextLimit)
	if truncated {
		r.l.Warnf(ctx, "Text truncated to %d symbols: `%s...`", model.TextLimit, model.Preview(text, 16))
	}
	return []RichText{{Type: "text", Text: &TextContent{Content: content}}}
}
