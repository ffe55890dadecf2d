package notion

import (
	"fmt"
	"strings"

	"zotero-notion-sync/internal/model"
	"zotero-notion-sync/internal/paper/repository"
)

// DecodeProperty flattens a cell into its plain string form.
// Kinds outside the supported set are an error.
func DecodeProperty(v PropertyValue) (string, error) {
	switch v.Type {
	case KindTitle:
		return decodeRichText(v.Title)
	case KindRichText:
		return decodeRichText(v.RichText)
	case KindSelect:
		if v.Select == nil {
			return "", nil
		}
		return v.Select.Name, nil
	case KindMultiSelect:
		names := make([]string, 0, len(v.MultiSelect))
		for _, opt := range v.MultiSelect {
			names = append(names, opt.Name)
		}
		return strings.Join(names, ", "), nil
	case KindDate:
		if v.Date == nil {
			return "", nil
		}
		return v.Date.Start, nil
	case KindURL:
		if v.URL == nil {
			return "", nil
		}
		return *v.URL, nil
	default:
		return "", fmt.Errorf("%w: %q", repository.ErrUnsupportedPropertyType, v.Type)
	}
}

func decodeRichText(fragments []RichText) (string, error) {
	var sb strings.Builder
	for _, f := range fragments {
		if f.Type != "text" || f.Text == nil {
			return "", fmt.Errorf("%w: rich text fragment %q", repository.ErrUnsupportedPropertyType, f.Type)
		}
		sb.WriteString(f.Text.Content)
	}
	return sb.String(), nil
}

// PageToPaper converts a database row into a Paper.
func PageToPaper(page Page) (model.Paper, error) {
	if page.Object != "page" {
		return model.Paper{}, fmt.Errorf("%w: %q, want page", repository.ErrUnexpectedObject, page.Object)
	}

	var p model.Paper
	cells := []struct {
		name string
		dst  *string
	}{
		{PropTitle, &p.Title},
		{PropAuthors, &p.Authors},
		{PropLink, &p.Link},
		{PropPublishedAt, &p.PublishedAt},
		{PropLibraryURL, &p.ExternalURL},
		{PropLibraryID, &p.ExternalID},
	}
	for _, cell := range cells {
		prop, ok := page.Properties[cell.name]
		if !ok {
			return model.Paper{}, fmt.Errorf("%w: %q on page %s", repository.ErrMissingProperty, cell.name, page.ID)
		}
		s, err := DecodeProperty(prop)
		if err != nil {
			return model.Paper{}, fmt.Errorf("property %q on page %s: %w", cell.name, page.ID, err)
		}
		*cell.dst = s
	}

	p.BoardID = model.NormalizeBoardID(page.ID)
	return p, nil
}
