package response_test

import (
	"testing"

	"go-roster/internal/shared/response"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		page      int
		pageSize  int
		wantStart int
		wantEnd   int
	}{
		{name: "first page", n: 7, page: 1, pageSize: 3, wantStart: 0, wantEnd: 3},
		{name: "middle page", n: 7, page: 2, pageSize: 3, wantStart: 3, wantEnd: 6},
		{name: "partial last page", n: 7, page: 3, pageSize: 3, wantStart: 6, wantEnd: 7},
		{name: "past the end", n: 7, page: 4, pageSize: 3, wantStart: 7, wantEnd: 7},
		{name: "zero page treated as first", n: 7, page: 0, pageSize: 3, wantStart: 0, wantEnd: 3},
		{name: "zero page size", n: 7, page: 1, pageSize: 0, wantStart: 7, wantEnd: 7},
		{name: "empty list", n: 0, page: 1, pageSize: 50, wantStart: 0, wantEnd: 0},
		{name: "huge page with small size", n: 7, page: 4611686018427387905, pageSize: 3, wantStart: 7, wantEnd: 7},
		{name: "huge page with max size", n: 7, page: 4611686018427387905, pageSize: 500, wantStart: 7, wantEnd: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := response.Paginate(tt.n, tt.page, tt.pageSize)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
