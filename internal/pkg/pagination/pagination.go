package pagination

import "github.com/gofiber/fiber/v2"

// DefaultLimit is the default number of items per page
const DefaultLimit = 20

// MaxLimit is the maximum number of items per page
const MaxLimit = 100

// Params represents pagination parameters
type Params struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"-"`
}

// Meta represents pagination metadata
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// GetParams extracts and clamps pagination parameters from the request
func GetParams(c *fiber.Ctx) *Params {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", DefaultLimit)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return &Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// GetMeta calculates pagination metadata
func GetMeta(params *Params, total int64) *Meta {
	totalPages := int((total + int64(params.Limit) - 1) / int64(params.Limit))
	return &Meta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}

// Response represents a paginated response body
type Response struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta"`
}

// NewResponse creates a new paginated response
func NewResponse(data interface{}, params *Params, total int64) *Response {
	return &Response{
		Data: data,
		Meta: GetMeta(params, total),
	}
}
