package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParamsNormalizes(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		want        Params
	}{
		{"defaults", 0, 0, Params{Page: 1, Limit: DefaultLimit, Offset: 0}},
		{"second page", 2, 3, Params{Page: 2, Limit: 3, Offset: 3}},
		{"negative", -4, -1, Params{Page: 1, Limit: DefaultLimit, Offset: 0}},
		{"capped", 1, 1000, Params{Page: 1, Limit: MaxLimit, Offset: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, *NewParams(tt.page, tt.limit))
		})
	}
}

func TestGetMeta(t *testing.T) {
	meta := GetMeta(NewParams(1, 2), 5)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasMore)

	meta = GetMeta(NewParams(3, 2), 5)
	assert.False(t, meta.HasMore)

	meta = GetMeta(NewParams(1, 10), 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasMore)
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{3, 4}, Slice(items, NewParams(2, 2)))
	assert.Equal(t, []int{5}, Slice(items, NewParams(3, 2)))

	empty := Slice(items, NewParams(9, 2))
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestGetParamsFromQuery(t *testing.T) {
	app := fiber.New()
	var got *Params
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetParams(c)
		return nil
	})

	_, err := app.Test(httptest.NewRequest("GET", "/?page=3&limit=4", nil))
	require.NoError(t, err)
	assert.Equal(t, Params{Page: 3, Limit: 4, Offset: 8}, *got)

	_, err = app.Test(httptest.NewRequest("GET", "/?page=abc&limit=xyz", nil))
	require.NoError(t, err)
	assert.Equal(t, Params{Page: 1, Limit: DefaultLimit, Offset: 0}, *got)
}
