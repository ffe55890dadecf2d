package notion

import "encoding/json"

// CellKind is the type tag of a database property value.
type CellKind string

// The closed set of property kinds this adapter understands.
const (
	KindTitle       CellKind = "title"
	KindRichText    CellKind = "rich_text"
	KindSelect      CellKind = "select"
	KindMultiSelect CellKind = "multi_select"
	KindDate        CellKind = "date"
	KindURL         CellKind = "url"
)

// Property names of the bibliography database.
const (
	PropTitle       = "Title"
	PropAuthors     = "Authors"
	PropLink        = "Link"
	PropPublishedAt = "Published at"
	PropLibraryURL  = "Zotero URL"
	PropLibraryID   = "Zotero ItemID"
)

// ---- Request/Response types scoped to this package ----

// RichText is one fragment of a title or rich_text value.
type RichText struct {
	Type      string       `json:"type"`
	Text      *TextContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

// TextContent is the payload of a "text" fragment.
type TextContent struct {
	Content string `json:"content"`
}

// SelectOption is a select or multi_select option.
type SelectOption struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// DateValue is the payload of a date property.
type DateValue struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

// PropertyValue is a typed database cell. Only the field matching Type is set.
type PropertyValue struct {
	ID          string         `json:"id,omitempty"`
	Type        CellKind       `json:"type"`
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Date        *DateValue     `json:"date,omitempty"`
	URL         *string        `json:"url,omitempty"`
}

// MarshalJSON writes the type tag and the single value field for that type.
// Nil url, date and select values are written as explicit nulls, which
// clears the cell on update. Kinds outside the supported set are written as a
// bare type tag.
func (v PropertyValue) MarshalJSON() ([]byte, error) {
	body := map[string]any{"type": v.Type}
	if v.ID != "" {
		body["id"] = v.ID
	}

	switch v.Type {
	case KindTitle:
		body[string(v.Type)] = nonNilRichText(v.Title)
	case KindRichText:
		body[string(v.Type)] = nonNilRichText(v.RichText)
	case KindSelect:
		body[string(v.Type)] = v.Select
	case KindMultiSelect:
		opts := v.MultiSelect
		if opts == nil {
			opts = []SelectOption{}
		}
		body[string(v.Type)] = opts
	case KindDate:
		body[string(v.Type)] = v.Date
	case KindURL:
		body[string(v.Type)] = v.URL
	}

	return json.Marshal(body)
}

func nonNilRichText(rt []RichText) []RichText {
	if rt == nil {
		return []RichText{}
	}
	return rt
}

// Properties maps property name to value.
type Properties map[string]PropertyValue

// Page is a database row.
type Page struct {
	Object     string     `json:"object"`
	ID         string     `json:"id"`
	URL        string     `json:"url,omitempty"`
	Archived   bool       `json:"archived,omitempty"`
	Properties Properties `json:"properties"`
}

// Parent identifies the database a page is created in.
type Parent struct {
	DatabaseID string `json:"database_id"`
}

// QueryDatabaseRequest is the body for POST /databases/{id}/query.
type QueryDatabaseRequest struct {
	StartCursor string `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
}

// QueryDatabaseResponse is one page of query results.
type QueryDatabaseResponse struct {
	Object     string  `json:"object"`
	Results    []Page  `json:"results"`
	NextCursor *string `json:"next_cursor"`
	HasMore    bool    `json:"has_more"`
}

// CreatePageRequest is the body for POST /pages.
type CreatePageRequest struct {
	Parent     Parent     `json:"parent"`
	Properties Properties `json:"properties"`
}

// UpdatePageRequest is the body for PATCH /pages/{id}.
type UpdatePageRequest struct {
	Properties Properties `json:"properties"`
}

// ErrorResponse is the error body returned by the API.
type ErrorResponse struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
