package models

// Response is the envelope shared by every endpoint
// @Description Standard API response envelope
type Response struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty" example:"Resume removed"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes the page window of a list response
// @Description Pagination metadata
type Pagination struct {
	Page  int `json:"page" example:"1"`
	Limit int `json:"limit" example:"10"`
	Total int `json:"total" example:"42"`
	Pages int `json:"pages" example:"5"`
}

// OK wraps data in a success envelope
func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// OKMessage returns a success envelope carrying only a message
func OKMessage(message string) Response {
	return Response{Success: true, Message: message}
}

// Fail wraps an error message in a failure envelope
func Fail(message string) Response {
	return Response{Success: false, Message: message}
}

// Paginated wraps a page of data with its pagination metadata
func Paginated(data interface{}, p *Pagination) Response {
	return Response{Success: true, Data: data, Pagination: p}
}

// NewPagination computes page metadata; pages == ceil(total/limit).
func NewPagination(page, limit, total int) *Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	pages := (total + limit - 1) / limit
	return &Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
