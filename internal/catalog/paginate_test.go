package catalog

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/torrentio/cli/internal/models"
)

func gameRange(n int) []models.Game {
	games := make([]models.Game, n)
	for i := range games {
		games[i] = models.Game{ID: fmt.Sprintf("g%d", i+1), Title: fmt.Sprintf("Game %d", i+1)}
	}
	return games
}

func TestPaginate(t *testing.T) {
	t.Run("Catalog Of 25 At Page Size 12", func(t *testing.T) {
		games := gameRange(25)

		t.Run("Page 1", func(t *testing.T) {
			page := Paginate(games, 12, 1)

			if len(page.Items) != 12 {
				t.Errorf("expected 12 items, got %d", len(page.Items))
			}
			if page.TotalPages != 3 {
				t.Errorf("expected 3 total pages, got %d", page.TotalPages)
			}
			if !reflect.DeepEqual(page.Window.Pages, []int{1, 2, 3}) {
				t.Errorf("expected window [1 2 3], got %v", page.Window.Pages)
			}
			if page.Window.Ellipsis {
				t.Error("expected no ellipsis when all pages are visible")
			}
		})

		t.Run("Page 3", func(t *testing.T) {
			page := Paginate(games, 12, 3)

			if len(page.Items) != 1 {
				t.Errorf("expected 1 item, got %d", len(page.Items))
			}
			if page.Items[0].ID != "g25" {
				t.Errorf("expected g25, got %s", page.Items[0].ID)
			}
			if !reflect.DeepEqual(page.Window.Pages, []int{1, 2, 3}) {
				t.Errorf("expected window [1 2 3], got %v", page.Window.Pages)
			}
		})

		t.Run("Page 99 Clamps To 3", func(t *testing.T) {
			page := Paginate(games, 12, 99)

			if page.CurrentPage != 3 {
				t.Errorf("expected clamp to page 3, got %d", page.CurrentPage)
			}
			if len(page.Items) != 1 {
				t.Errorf("expected 1 item, got %d", len(page.Items))
			}
		})

		t.Run("Page 0 Clamps To 1", func(t *testing.T) {
			page := Paginate(games, 12, 0)

			if page.CurrentPage != 1 {
				t.Errorf("expected clamp to page 1, got %d", page.CurrentPage)
			}
		})
	})

	t.Run("Partition Law", func(t *testing.T) {
		games := gameRange(53)
		pageSize := 12

		var rebuilt []models.Game
		total := TotalPages(len(games), pageSize)
		for p := 1; p <= total; p++ {
			rebuilt = append(rebuilt, Paginate(games, pageSize, p).Items...)
		}

		if !reflect.DeepEqual(rebuilt, games) {
			t.Error("expected union of all pages to reconstruct the filtered sequence exactly")
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		games := gameRange(30)

		first := Paginate(games, 12, 2)
		second := Paginate(games, 12, 2)

		if !reflect.DeepEqual(first, second) {
			t.Error("expected identical output for identical input")
		}
	})

	t.Run("Empty Sequence", func(t *testing.T) {
		page := Paginate([]models.Game{}, 12, 1)

		if len(page.Items) != 0 {
			t.Errorf("expected no items, got %d", len(page.Items))
		}
		if page.TotalPages != 0 {
			t.Errorf("expected 0 total pages, got %d", page.TotalPages)
		}
		if page.CurrentPage != 1 {
			t.Errorf("expected current page 1, got %d", page.CurrentPage)
		}
		if len(page.Window.Pages) != 0 {
			t.Errorf("expected empty window, got %v", page.Window.Pages)
		}
	})

	t.Run("Non Positive Page Size Falls Back To Default", func(t *testing.T) {
		page := Paginate(gameRange(13), 0, 1)

		if page.PageSize != DefaultPageSize {
			t.Errorf("expected page size %d, got %d", DefaultPageSize, page.PageSize)
		}
		if page.TotalPages != 2 {
			t.Errorf("expected 2 total pages, got %d", page.TotalPages)
		}
	})
}

func TestPageWindow(t *testing.T) {
	tc := []struct {
		name        string
		currentPage int
		totalPages  int
		wantPages   []int
		wantDots    bool
	}{
		{"all pages fit", 1, 3, []int{1, 2, 3}, false},
		{"exactly five pages", 3, 5, []int{1, 2, 3, 4, 5}, false},
		{"window at start", 1, 9, []int{1, 2, 3, 4, 5}, true},
		{"window centered", 5, 9, []int{3, 4, 5, 6, 7}, true},
		{"window reanchored at tail", 9, 9, []int{5, 6, 7, 8, 9}, false},
		{"window near tail", 8, 9, []int{5, 6, 7, 8, 9}, false},
		{"single page", 1, 1, []int{1}, false},
		{"no pages", 1, 0, []int{}, false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := PageWindow(tt.currentPage, tt.totalPages)

			if !reflect.DeepEqual(got.Pages, tt.wantPages) {
				t.Errorf("PageWindow(%d, %d).Pages = %v, want %v", tt.currentPage, tt.totalPages, got.Pages, tt.wantPages)
			}
			if got.Ellipsis != tt.wantDots {
				t.Errorf("PageWindow(%d, %d).Ellipsis = %v, want %v", tt.currentPage, tt.totalPages, got.Ellipsis, tt.wantDots)
			}
			if got.LastPage != tt.totalPages {
				t.Errorf("PageWindow(%d, %d).LastPage = %d, want %d", tt.currentPage, tt.totalPages, got.LastPage, tt.totalPages)
			}
			if len(got.Pages) > 5 {
				t.Errorf("window holds %d pages, cap is 5", len(got.Pages))
			}
		})
	}

	t.Run("Last Entry Equals Total When Five Or Fewer Pages", func(t *testing.T) {
		for totalPages := 1; totalPages <= 5; totalPages++ {
			for current := 1; current <= totalPages; current++ {
				w := PageWindow(current, totalPages)
				if w.Pages[len(w.Pages)-1] != totalPages {
					t.Errorf("PageWindow(%d, %d) last entry = %d, want %d", current, totalPages, w.Pages[len(w.Pages)-1], totalPages)
				}
			}
		}
	})
}
