package explorer

import (
	"os"
	"path/filepath"
	"testing"

	"streakd/internal/structures"
	"streakd/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const datasetFixture = `[
	{"id": 1, "title": "Two Sum", "slug": "two-sum", "difficulty": "Easy", "topics": ["Array", "Hash Table"], "acceptance": 55.3},
	{"id": 4, "title": "Median of Two Sorted Arrays", "slug": "median-of-two-sorted-arrays", "difficulty": "Hard", "topics": ["Array", "Binary Search"], "acceptance": 43.2},
	{"id": 20, "title": "Valid Parentheses", "slug": "valid-parentheses", "difficulty": "Easy", "topics": ["String", "Stack"], "acceptance": 42.1},
	{"id": 146, "title": "LRU Cache", "slug": "lru-cache", "difficulty": "Medium", "topics": ["Hash Table", "Design"], "paidOnly": false, "acceptance": 45.0},
	{"id": 200, "title": "Number of Islands", "slug": "number-of-islands", "difficulty": "Medium", "topics": ["Graph"], "acceptance": 62.8}
]`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestExplorer(t *testing.T, curated ...string) ExplorerInterface {
	t.Helper()
	conf := &structures.Config{
		Explorer: structures.ExplorerConfig{
			DatasetPath:  writeFixture(t, "problems.json", datasetFixture),
			CuratedLists: curated,
			PageSize:     50,
		},
	}
	return NewExplorer(conf, &testutil.MockLogger{})
}

func TestQuery_NoFiltersReturnsAllByID(t *testing.T) {
	e := newTestExplorer(t)

	page, err := e.Query(Query{}, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, page.Total)
	require.Len(t, page.Items, 5)
	assert.Equal(t, 1, page.Items[0].ID)
	assert.Equal(t, 200, page.Items[4].ID)
}

func TestQuery_SearchMatchesTitleAndSlug(t *testing.T) {
	e := newTestExplorer(t)

	page, err := e.Query(Query{Search: "two"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	page, err = e.Query(Query{Search: "lru-cache"}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, 146, page.Items[0].ID)
}

func TestQuery_DifficultyCaseInsensitive(t *testing.T) {
	e := newTestExplorer(t)

	page, err := e.Query(Query{Difficulty: "easy"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	page, err = e.Query(Query{Difficulty: "HARD"}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, 4, page.Items[0].ID)
}

func TestQuery_TopicFilter(t *testing.T) {
	e := newTestExplorer(t)

	page, err := e.Query(Query{Topic: "hash table"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
}

func TestQuery_CompletionStatus(t *testing.T) {
	e := newTestExplorer(t)
	completed := map[int]struct{}{1: {}, 146: {}}

	page, err := e.Query(Query{Status: "completed"}, completed)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	for _, item := range page.Items {
		assert.True(t, item.Completed)
	}

	page, err = e.Query(Query{Status: "pending"}, completed)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	for _, item := range page.Items {
		assert.False(t, item.Completed)
	}
}

func TestQuery_SortByAcceptanceDesc(t *testing.T) {
	e := newTestExplorer(t)

	page, err := e.Query(Query{Sort: "acceptance", Order: "desc"}, nil)
	require.NoError(t, err)
	require.Len(t, page.Items, 5)
	assert.Equal(t, 200, page.Items[0].ID)
	assert.Equal(t, 20, page.Items[4].ID)
}

func TestQuery_SortByDifficultyStable(t *testing.T) {
	e := newTestExplorer(t)

	page, err := e.Query(Query{Sort: "difficulty"}, nil)
	require.NoError(t, err)
	require.Len(t, page.Items, 5)
	// Ties keep dataset order within each difficulty band.
	ids := []int{page.Items[0].ID, page.Items[1].ID, page.Items[2].ID, page.Items[3].ID, page.Items[4].ID}
	assert.Equal(t, []int{1, 20, 146, 200, 4}, ids)
}

func TestQuery_Pagination(t *testing.T) {
	e := newTestExplorer(t)

	page, err := e.Query(Query{Page: 2, PageSize: 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 20, page.Items[0].ID)
	assert.Equal(t, 146, page.Items[1].ID)
}

func TestQuery_PageBeyondEndIsEmpty(t *testing.T) {
	e := newTestExplorer(t)

	page, err := e.Query(Query{Page: 9, PageSize: 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Empty(t, page.Items)
}

func TestQuery_CuratedList(t *testing.T) {
	list := writeFixture(t, "blind.json", `{"name": "Blind 75", "ids": [1, 200]}`)
	e := newTestExplorer(t, list)

	page, err := e.Query(Query{List: "Blind 75"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, []string{"Blind 75"}, page.Lists)

	_, err = e.Query(Query{List: "nope"}, nil)
	assert.Error(t, err)
}

func TestQuery_BrokenCuratedListDegrades(t *testing.T) {
	broken := writeFixture(t, "broken.json", `{"ids": [1]}`)
	e := newTestExplorer(t, broken)

	page, err := e.Query(Query{}, nil)
	require.NoError(t, err)
	assert.Empty(t, page.Lists)
}

func TestNewExplorer_MissingDatasetSurfacedOnQuery(t *testing.T) {
	conf := &structures.Config{
		Explorer: structures.ExplorerConfig{
			DatasetPath: filepath.Join(t.TempDir(), "absent.json"),
			PageSize:    50,
		},
	}
	e := NewExplorer(conf, &testutil.MockLogger{})

	_, err := e.Query(Query{}, nil)
	assert.Error(t, err)
}

func TestNewExplorer_MalformedDatasetSurfacedOnQuery(t *testing.T) {
	conf := &structures.Config{
		Explorer: structures.ExplorerConfig{
			DatasetPath: writeFixture(t, "problems.json", `{"not": "an array"`),
			PageSize:    50,
		},
	}
	e := NewExplorer(conf, &testutil.MockLogger{})

	_, err := e.Query(Query{}, nil)
	assert.ErrorContains(t, err, "malformed")
}
