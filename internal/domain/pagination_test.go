package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name      string
		in        PageRequest
		unlimited bool
		want      PageRequest
	}{
		{"defaults", PageRequest{}, false, PageRequest{Page: 1, PerPage: DefaultPerPage}},
		{"negative", PageRequest{Page: -3, PerPage: -1}, false, PageRequest{Page: 1, PerPage: DefaultPerPage}},
		{"clamped", PageRequest{Page: 2, PerPage: 500}, false, PageRequest{Page: 2, PerPage: MaxPerPage}},
		{"unlimited keeps size", PageRequest{Page: 1, PerPage: 5000}, true, PageRequest{Page: 1, PerPage: 5000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize(tt.unlimited))
		})
	}
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, Pagination{Page: 2, Limit: 15, Total: 31, TotalPages: 3}, NewPagination(PageRequest{Page: 2, PerPage: 15}, 31))
	assert.Equal(t, Pagination{Page: 1, Limit: 15, Total: 0, TotalPages: 0}, NewPagination(PageRequest{Page: 1, PerPage: 15}, 0))
	assert.Equal(t, 30, PageRequest{Page: 3, PerPage: 15}.Offset())
}
