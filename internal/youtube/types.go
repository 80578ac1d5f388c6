package youtube

// Wire types for the Data API v3 search and videos endpoints. Only the fields
// the quiz needs are decoded.

type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	ID      searchItemID  `json:"id"`
	Snippet searchSnippet `json:"snippet"`
}

type searchItemID struct {
	VideoID string `json:"videoId"`
}

type searchSnippet struct {
	Title string `json:"title"`
}

type videosResponse struct {
	Items []videoItem `json:"items"`
}

type videoItem struct {
	ID             string         `json:"id"`
	ContentDetails contentDetails `json:"contentDetails"`
}

type contentDetails struct {
	Duration string `json:"duration"`
}
