package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListBookingsParams_Bounded(t *testing.T) {
	tests := []struct {
		name     string
		in       ListBookingsParams
		page     int
		pageSize int
	}{
		{"unpaged", ListBookingsParams{Page: 5}, 5, 0},
		{"defaults page", ListBookingsParams{PageSize: 10}, 1, 10},
		{"caps both", ListBookingsParams{Page: 1 << 62, PageSize: 1 << 40}, MaxPage, MaxPageSize},
		{"in range", ListBookingsParams{Page: 3, PageSize: 25, Status: "CONFIRMED"}, 3, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Bounded()
			assert.Equal(t, tt.page, got.Page)
			assert.Equal(t, tt.pageSize, got.PageSize)
			assert.Equal(t, tt.in.Status, got.Status)
		})
	}
}
