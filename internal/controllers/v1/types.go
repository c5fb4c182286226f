package v1

import (
	"time"

	pf_uuid "github.com/pocketfolio/backend/internal/uuid"
)

type URIID struct {
	ID pf_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type Pagination struct {
	Count  int   `json:"count"`  // The amount of records returned in this response
	Offset uint  `json:"offset"` // The offset for the first record returned
	Limit  int   `json:"limit"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total"`  // The total number of resources matching the query
}

type QueryDateRange struct {
	From time.Time `form:"from" time_format:"2006-01-02" time_utc:"1" example:"2024-03-01"` // Start of the date range, inclusive
	To   time.Time `form:"to" time_format:"2006-01-02" time_utc:"1" example:"2024-03-31"`   // End of the date range, inclusive
}
