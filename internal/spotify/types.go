package spotify

// Wire types for the playlist tracks endpoint. Only the fields the quiz needs
// are decoded.

type playlistTracksResponse struct {
	Items []playlistItem `json:"items"`
	Next  *string        `json:"next"`
}

type playlistItem struct {
	Track *trackObject `json:"track"`
}

type trackObject struct {
	Name       string         `json:"name"`
	DurationMS int            `json:"duration_ms"`
	IsLocal    bool           `json:"is_local"`
	Artists    []artistObject `json:"artists"`
	Album      albumObject    `json:"album"`
}

type artistObject struct {
	Name string `json:"name"`
}

type albumObject struct {
	Images []imageObject `json:"images"`
}

type imageObject struct {
	URL string `json:"url"`
}
