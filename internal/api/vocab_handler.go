package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/phrazzld/lexilearn-api/internal/api/shared"
	"github.com/phrazzld/lexilearn-api/internal/domain"
	"github.com/phrazzld/lexilearn-api/internal/service/catalog"
)

// VocabHandler serves the vocabulary catalog and the caller's download history.
type VocabHandler struct {
	catalog catalog.Service
}

// NewVocabHandler creates a new VocabHandler.
func NewVocabHandler(catalogService catalog.Service) *VocabHandler {
	return &VocabHandler{catalog: catalogService}
}

// ListVocabs handles GET /vocab/.
func (h *VocabHandler) ListVocabs(w http.ResponseWriter, r *http.Request) {
	lists, err := h.catalog.ListVocabs(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Internal server error, failed to list vocab lists")
		return
	}
	if lists == nil {
		lists = []domain.VocabList{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, lists)
}

// DownloadVocab handles GET /vocab/{id}. Ids that are not positive integers
// are reported exactly like unknown ids.
func (h *VocabHandler) DownloadVocab(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, errors.Join(catalog.ErrVocabNotFound, err), "")
		return
	}

	var userID *int64
	if uid, ok := getUserIDFromContext(r); ok {
		userID = &uid
	}

	download, err := h.catalog.DownloadVocab(r.Context(), id, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Internal server error, failed to load vocab list")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, VocabDownloadResponse{
		JSONURL: download.JSONURL,
		Name:    download.Name,
	})
}

// ListDownloads handles GET /me/downloads.
func (h *VocabHandler) ListDownloads(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	downloads, err := h.catalog.ListDownloads(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Internal server error, failed to list downloads")
		return
	}

	items := make([]DownloadHistoryItem, 0, len(downloads))
	for _, d := range downloads {
		items = append(items, DownloadHistoryItem{
			VocabListID:  d.VocabListID,
			Name:         d.Name,
			DownloadedAt: d.DownloadedAt.UTC().Format(time.RFC3339),
		})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}
