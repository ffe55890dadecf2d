package zotero

// ---- Request/Response types scoped to this package ----

// Item is an item object as returned by the Zotero Web API v3.
type Item struct {
	Key     string   `json:"key"`
	Version int      `json:"version"`
	Library Library  `json:"library"`
	Data    ItemData `json:"data"`
}

// Library identifies the user or group library an item lives in.
type Library struct {
	Type string `json:"type"`
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// ItemData is the editable part of an item.
type ItemData struct {
	Key         string         `json:"key,omitempty"`
	Version     int            `json:"version,omitempty"`
	ItemType    string         `json:"itemType"`
	Title       string         `json:"title,omitempty"`
	Creators    []Creator      `json:"creators,omitempty"`
	Date        string         `json:"date,omitempty"`
	URL         string         `json:"url,omitempty"`
	Note        string         `json:"note,omitempty"`
	ParentItem  string         `json:"parentItem,omitempty"`
	Tags        []Tag          `json:"tags"`
	Collections []string       `json:"collections,omitempty"`
	Relations   map[string]any `json:"relations,omitempty"`
}

// Creator is an item contributor. Either Name or FirstName/LastName is set.
type Creator struct {
	CreatorType string `json:"creatorType"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Name        string `json:"name,omitempty"`
}

// Tag is an item tag.
type Tag struct {
	Tag  string `json:"tag"`
	Type int    `json:"type,omitempty"`
}

// WriteResponse is the body returned by POST /items.
type WriteResponse struct {
	Successful map[string]Item         `json:"successful"`
	Success    map[string]string       `json:"success"`
	Unchanged  map[string]string       `json:"unchanged"`
	Failed     map[string]WriteFailure `json:"failed"`
}

// WriteFailure describes one rejected object of a write request.
type WriteFailure struct {
	Key     string `json:"key,omitempty"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}
