package kb

import (
	"time"

	kbDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/kb"
)

const DefaultCategory = "General"

type Item struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Category       string    `json:"category"`
	AuthorID       int64     `json:"author_id"`
	SourceTicketID *int64    `json:"source_ticket_id,omitempty"`
	CreatedTime    time.Time `json:"created_time"`
}

func FromDataModel(row *kbDatamodel.KBItem) *Item {
	return &Item{
		ID:             row.ID,
		Title:          row.Title,
		Content:        row.Content,
		Category:       row.Category,
		AuthorID:       row.AuthorID,
		SourceTicketID: row.SourceTicketID,
		CreatedTime:    row.CreatedTime,
	}
}
