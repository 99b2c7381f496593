package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaginationParams(t *testing.T) {
	app := fiber.New()

	var params PaginationParams
	app.Get("/items", func(c *fiber.Ctx) error {
		params = ParsePaginationParams(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/items?page=2&page_size=25&etat=ENCOURS&query=panne", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, 2, params.Page)
	assert.Equal(t, 25, params.PageSize)
	// page/page_size are stripped, everything else is a filter.
	assert.Equal(t, map[string]string{"etat": "ENCOURS", "query": "panne"}, params.Filters)
}

func TestParsePaginationParamsDefaults(t *testing.T) {
	app := fiber.New()

	var params PaginationParams
	app.Get("/items", func(c *fiber.Ctx) error {
		params = ParsePaginationParams(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/items", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 10, params.PageSize)
	assert.Empty(t, params.Filters)
}

func TestValidatePaginationParams(t *testing.T) {
	assert.NoError(t, ValidatePaginationParams(PaginationParams{Page: 1, PageSize: 10}))
	assert.Error(t, ValidatePaginationParams(PaginationParams{Page: 0, PageSize: 10}))
	assert.Error(t, ValidatePaginationParams(PaginationParams{Page: 1, PageSize: 0}))
	assert.Error(t, ValidatePaginationParams(PaginationParams{Page: 1, PageSize: 101}))
}

func TestNewPaginatedResponse(t *testing.T) {
	app := fiber.New()

	var response PaginatedResponse
	app.Get("/items", func(c *fiber.Ctx) error {
		params := ParsePaginationParams(c)
		items := []string{"a", "b"}
		response = NewPaginatedResponse(c, items, 45, params)
		return c.JSON(response)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/items?page=2&etat=ENCOURS", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, 2, response.Pagination.CurrentPage)
	assert.Equal(t, 10, response.Pagination.PageSize)
	assert.Equal(t, int64(45), response.Pagination.TotalItems)
	assert.Equal(t, 5, response.Pagination.TotalPages)

	require.NotNil(t, response.Pagination.NextPage)
	assert.Contains(t, *response.Pagination.NextPage, "page=3")
	assert.Contains(t, *response.Pagination.NextPage, "etat=ENCOURS")

	require.NotNil(t, response.Pagination.PrevPage)
	assert.Contains(t, *response.Pagination.PrevPage, "page=1")
}

func TestNewPaginatedResponseEdges(t *testing.T) {
	app := fiber.New()

	var response PaginatedResponse
	app.Get("/items", func(c *fiber.Ctx) error {
		params := ParsePaginationParams(c)
		response = NewPaginatedResponse(c, []string{}, 0, params)
		return c.JSON(response)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/items", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// First and only page: no navigation links.
	assert.Nil(t, response.Pagination.NextPage)
	assert.Nil(t, response.Pagination.PrevPage)
	assert.Equal(t, 0, response.Pagination.TotalPages)
}
