package utils

import "github.com/gin-gonic/gin"

// Response is the shared JSON envelope for every endpoint.
type Response struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPagination derives page metadata from a total row count.
func NewPagination(page, limit int, total int64) *Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

func OK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data})
}

func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, Response{Success: true, Message: msg})
}

func Paginated(c *gin.Context, status int, data interface{}, p *Pagination) {
	c.JSON(status, Response{Success: true, Data: data, Pagination: p})
}

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, Response{Success: false, Message: msg})
}

func ValidationError(c *gin.Context, status int, msg string, errs interface{}) {
	c.JSON(status, Response{Success: false, Message: msg, Errors: errs})
}
