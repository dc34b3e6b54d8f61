package response

import (
	"github.com/gin-gonic/gin"
)

type PaginationMeta struct {
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		// round up: (total + limit - 1) / limit
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return PaginationMeta{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   limit,
	}
}

// Paginate clamps page/pageSize and returns the slice bounds for a list of n items.
func Paginate(n, page, pageSize int) (start, end int) {
	if page < 1 {
		page = 1
	}
	// compare in pages so huge page numbers cannot overflow the offset
	if pageSize < 1 || page-1 > n/pageSize {
		return n, n
	}
	start = min((page-1)*pageSize, n)
	end = min(start+pageSize, n)
	return start, end
}

type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ApiEnvelope struct {
	Ok       bool            `json:"ok"`
	Data     any             `json:"data,omitempty"`
	Meta     *PaginationMeta `json:"meta,omitempty"`
	Error    any             `json:"error,omitempty"`
	Warnings []Warning       `json:"warnings,omitempty"`
}

func Success(c *gin.Context, status int, data interface{}, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{
		Ok:    true,
		Data:  data,
		Meta:  meta,
		Error: nil,
	})
}

// SuccessWithWarnings is used when the request succeeded but a side effect, such as
// persistence, did not.
func SuccessWithWarnings(c *gin.Context, status int, data interface{}, warnings ...Warning) {
	c.JSON(status, ApiEnvelope{
		Ok:       true,
		Data:     data,
		Warnings: warnings,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	c.JSON(status, ApiEnvelope{
		Ok:   false,
		Data: nil,
		Meta: nil,
		Error: map[string]interface{}{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}
