package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/emredk/scholaris/internal/pkg/apperrors"
)

func TestParseListParams(t *testing.T) {
	t.Run("accepts the allowed limits", func(t *testing.T) {
		for _, limit := range []string{"5", "10", "30"} {
			page, parsed, err := ParseListParams("1", limit)
			require.NoError(t, err)
			assert.Equal(t, 1, page)
			assert.NotZero(t, parsed)
		}
	})

	t.Run("rejects any other limit", func(t *testing.T) {
		for _, limit := range []string{"0", "7", "15", "100", "-5", "ten", ""} {
			_, _, err := ParseListParams("1", limit)
			assert.ErrorIs(t, err, apperrors.ErrInvalidPageLimit, "limit %q", limit)
		}
	})

	t.Run("rejects bad pages", func(t *testing.T) {
		for _, page := range []string{"0", "-1", "first", ""} {
			_, _, err := ParseListParams(page, "10")
			assert.ErrorIs(t, err, apperrors.ErrInvalidPage, "page %q", page)
		}
	})
}

func TestCheckPageBounds(t *testing.T) {
	t.Run("empty collection on page one", func(t *testing.T) {
		assert.ErrorIs(t, CheckPageBounds(0, 1, 10), apperrors.ErrNothingFound)
	})

	t.Run("empty collection past page one", func(t *testing.T) {
		assert.ErrorIs(t, CheckPageBounds(0, 2, 10), apperrors.ErrPageNotFound)
	})

	t.Run("page past the end", func(t *testing.T) {
		assert.ErrorIs(t, CheckPageBounds(12, 3, 10), apperrors.ErrPageNotFound)
	})

	t.Run("last partial page is served", func(t *testing.T) {
		assert.NoError(t, CheckPageBounds(12, 2, 10))
	})
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 3, TotalPages(12, 5))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 10, Offset(2, 10))
	assert.Equal(t, 50, Offset(11, 5))
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(23, 2, 10)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 10, info.PageSize)
	assert.Equal(t, int64(23), info.TotalItems)
}
