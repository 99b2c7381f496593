package pagination

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Code string
	Etat string
}

func (r row) SearchFields() []string {
	return []string{r.Code, r.Etat}
}

func makeRows(n int) []row {
	rows := make([]row, 0, n)
	for i := 0; i < n; i++ {
		etat := "ENCOURS"
		if i%5 == 0 {
			etat = "TERMINER"
		}
		rows = append(rows, row{Code: fmt.Sprintf("REC-%08d", i), Etat: etat})
	}
	return rows
}

func TestDerive_emptyQueryPaginates(t *testing.T) {
	rows := makeRows(25)

	page := Derive(rows, "", 1, 10)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.PageItems, 10)
	assert.Equal(t, rows[:10], page.PageItems)

	last := Derive(rows, "", 3, 10)
	assert.Len(t, last.PageItems, 5)
	assert.Equal(t, rows[20:], last.PageItems)
}

func TestDerive_noMatchIsOnePageEmpty(t *testing.T) {
	page := Derive(makeRows(25), "zz-no-match", 1, 10)
	assert.Equal(t, 1, page.TotalPages)
	assert.Empty(t, page.PageItems)
}

func TestDerive_caseInsensitiveSubstring(t *testing.T) {
	rows := makeRows(25)

	page := Derive(rows, "terminer", 1, 10)
	require.Len(t, page.PageItems, 5)
	for _, r := range page.PageItems {
		assert.Equal(t, "TERMINER", r.Etat)
	}
}

func TestDerive_stableOrder(t *testing.T) {
	rows := makeRows(25)
	page := Derive(rows, "encours", 1, 100)

	prev := -1
	for _, r := range page.PageItems {
		var i int
		_, err := fmt.Sscanf(r.Code, "REC-%08d", &i)
		require.NoError(t, err)
		assert.Greater(t, i, prev)
		prev = i
	}
}

func TestDerive_outOfRangePageClamps(t *testing.T) {
	rows := makeRows(12)

	page := Derive(rows, "", 9, 10)
	assert.Equal(t, 2, page.Current)
	assert.Len(t, page.PageItems, 2)

	page = Derive(rows, "", 0, 10)
	assert.Equal(t, 1, page.Current)
}

func TestDeriveFresh_resetsToFirstPage(t *testing.T) {
	rows := makeRows(30)

	// User sits on page 3, then types a query matching 3 rows.
	stale := Derive(rows, "", 3, 10)
	require.Equal(t, 3, stale.Current)

	fresh := DeriveFresh(rows, "REC-0000000", 10)
	assert.Equal(t, 1, fresh.Current)
	assert.Equal(t, 1, fresh.TotalPages)
	assert.Len(t, fresh.PageItems, 10) // REC-00000000 .. REC-00000009 all contain the prefix
}

func TestDerive_dashboardScenario(t *testing.T) {
	// 12 complaints: page 1 of 2 at size 10, then a query matching 3
	// collapses pagination to one page of 3.
	rows := makeRows(12)

	page := Derive(rows, "", 1, 10)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.PageItems, 10)

	filtered := DeriveFresh(rows, "TERMINER", 10)
	assert.Equal(t, 1, filtered.TotalPages)
	assert.Len(t, filtered.PageItems, 3)
}
