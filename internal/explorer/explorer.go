package explorer

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"streakd/internal/providers"
	"streakd/internal/structures"

	json "github.com/goccy/go-json"
	"github.com/samber/lo"
)

// Problem is one entry of the bundled static dataset.
type Problem struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Difficulty string   `json:"difficulty"`
	Topics     []string `json:"topics"`
	PaidOnly   bool     `json:"paidOnly"`
	Acceptance float64  `json:"acceptance"`
}

// ProblemView is a Problem joined with the user's completion set.
type ProblemView struct {
	Problem
	Completed bool `json:"completed"`
}

// CuratedList is one optional hand-picked problem list.
type CuratedList struct {
	Name string `json:"name"`
	IDs  []int  `json:"ids"`
}

// Query captures the explorer's filter, sort and pagination parameters.
type Query struct {
	Search     string
	Difficulty string
	Topic      string
	List       string
	Status     string // "", "completed", "pending"
	Sort       string // "id", "title", "difficulty", "acceptance"
	Order      string // "asc", "desc"
	Page       int
	PageSize   int
}

// Page is one result window plus the total match count.
type Page struct {
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
	Lists    []string      `json:"lists"`
	Items    []ProblemView `json:"items"`
}

type ExplorerInterface interface {
	Query(q Query, completed map[int]struct{}) (*Page, error)
}

// Explorer serves the problems-browser page: pure filter/sort/paginate over
// the bundled dataset, no network. A missing or malformed dataset blocks
// the page's primary function, so unlike the poll path the load error is
// kept and surfaced on every query.
type Explorer struct {
	problems []Problem
	lists    map[string]map[int]struct{}
	names    []string
	pageSize int
	loadErr  error
}

func NewExplorer(conf *structures.Config, logger providers.Logger) ExplorerInterface {
	e := &Explorer{
		lists:    make(map[string]map[int]struct{}),
		pageSize: conf.Explorer.PageSize,
	}

	if conf.Explorer.DatasetPath == "" {
		e.loadErr = fmt.Errorf("no problems dataset configured")
		return e
	}

	if err := e.loadDataset(conf.Explorer.DatasetPath); err != nil {
		logger.Errorf(providers.TypeApp, "Problems dataset unavailable: %s", err)
		e.loadErr = err
		return e
	}
	logger.Infof(providers.TypeApp, "Loaded %d problems from %s", len(e.problems), conf.Explorer.DatasetPath)

	for _, path := range conf.Explorer.CuratedLists {
		if err := e.loadCuratedList(path); err != nil {
			// Curated lists are optional extras; a broken one degrades to
			// absence instead of blocking the dataset.
			logger.Warnf(providers.TypeApp, "Skipping curated list %s: %s", path, err)
		}
	}
	return e
}

func (e *Explorer) loadDataset(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var problems []Problem
	if err := json.Unmarshal(data, &problems); err != nil {
		return fmt.Errorf("malformed dataset %s: %w", path, err)
	}
	if len(problems) == 0 {
		return fmt.Errorf("dataset %s is empty", path)
	}
	e.problems = problems
	return nil
}

func (e *Explorer) loadCuratedList(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var list CuratedList
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("malformed curated list %s: %w", path, err)
	}
	if list.Name == "" {
		return fmt.Errorf("curated list %s has no name", path)
	}
	set := make(map[int]struct{}, len(list.IDs))
	for _, id := range list.IDs {
		set[id] = struct{}{}
	}
	e.lists[list.Name] = set
	e.names = append(e.names, list.Name)
	return nil
}

func (e *Explorer) Query(q Query, completed map[int]struct{}) (*Page, error) {
	if e.loadErr != nil {
		return nil, e.loadErr
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	difficulty := strings.ToLower(q.Difficulty)
	topic := strings.ToLower(q.Topic)

	var listSet map[int]struct{}
	if q.List != "" {
		var ok bool
		listSet, ok = e.lists[q.List]
		if !ok {
			return nil, fmt.Errorf("unknown curated list %q", q.List)
		}
	}

	matched := lo.Filter(e.problems, func(p Problem, _ int) bool {
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) && !strings.Contains(strings.ToLower(p.Slug), search) {
			return false
		}
		if difficulty != "" && strings.ToLower(p.Difficulty) != difficulty {
			return false
		}
		if topic != "" && !lo.ContainsBy(p.Topics, func(t string) bool { return strings.ToLower(t) == topic }) {
			return false
		}
		if listSet != nil {
			if _, ok := listSet[p.ID]; !ok {
				return false
			}
		}
		_, done := completed[p.ID]
		if q.Status == "completed" && !done {
			return false
		}
		if q.Status == "pending" && done {
			return false
		}
		return true
	})

	sortProblems(matched, q.Sort, q.Order == "desc")

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = e.pageSize
	}
	page := max(q.Page, 1)

	start := (page - 1) * pageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := min(start+pageSize, len(matched))

	items := lo.Map(matched[start:end], func(p Problem, _ int) ProblemView {
		_, done := completed[p.ID]
		return ProblemView{Problem: p, Completed: done}
	})

	return &Page{
		Total:    len(matched),
		Page:     page,
		PageSize: pageSize,
		Lists:    e.names,
		Items:    items,
	}, nil
}

var difficultyRank = map[string]int{"easy": 0, "medium": 1, "hard": 2}

func sortProblems(problems []Problem, field string, desc bool) {
	less := func(a, b Problem) bool { return a.ID < b.ID }
	switch field {
	case "title":
		less = func(a, b Problem) bool { return a.Title < b.Title }
	case "difficulty":
		less = func(a, b Problem) bool {
			return difficultyRank[strings.ToLower(a.Difficulty)] < difficultyRank[strings.ToLower(b.Difficulty)]
		}
	case "acceptance":
		less = func(a, b Problem) bool { return a.Acceptance < b.Acceptance }
	}
	sort.SliceStable(problems, func(i, j int) bool {
		if desc {
			return less(problems[j], problems[i])
		}
		return less(problems[i], problems[j])
	})
}
