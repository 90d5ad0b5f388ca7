package domain

import "time"

// DefaultVocabVersion is the version assigned to a vocab list when none is curated.
const DefaultVocabVersion = "1.0"

// VocabList is the catalog metadata for one downloadable vocabulary set.
// The word content itself lives at JSONURL and is curated outside this service.
type VocabList struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	JSONURL   string    `json:"jsonUrl"`
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VocabDownload records that a user fetched a vocab list.
// A repeated download of the same list refreshes DownloadedAt.
type VocabDownload struct {
	UserID       int64     `json:"userId"`
	VocabListID  int64     `json:"vocabListId"`
	Name         string    `json:"name"`
	DownloadedAt time.Time `json:"downloadedAt"`
}
