package dto

import "time"

type BookResponse struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Price       int64  `json:"price"`
	Cover       string `json:"cover,omitempty"`
	Description string `json:"description,omitempty"`
	Stock       int    `json:"stock"`
}

// CatalogSyncMessage is the event bus payload requesting a catalog re-index
// on the CLIP service.
type CatalogSyncMessage struct {
	RequestedAt time.Time `json:"requested_at"`
	Reason      string    `json:"reason,omitempty"`
}
