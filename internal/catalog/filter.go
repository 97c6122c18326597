package catalog

import (
	"github.com/torrentio/cli/internal/models"
	"github.com/torrentio/cli/internal/shared"
)

// CriterionKind enumerates the supported filter criteria.
type CriterionKind int

const (
	KindNone CriterionKind = iota
	KindGenre
	KindID
)

// Criterion selects a subset of the catalog. The zero value selects everything.
type Criterion struct {
	kind  CriterionKind
	label string
	id    string
}

// None returns the identity criterion.
func None() Criterion { return Criterion{} }

// ByGenre returns a criterion matching games whose genre equals label,
// compared case-insensitively. An empty label behaves as [None].
func ByGenre(label string) Criterion {
	return Criterion{kind: KindGenre, label: label}
}

// ByID returns a criterion matching at most one entity by its id.
func ByID(id string) Criterion {
	return Criterion{kind: KindID, id: id}
}

// Kind returns the criterion's kind.
func (c Criterion) Kind() CriterionKind { return c.kind }

// Genre returns the genre label for [KindGenre] criteria.
func (c Criterion) Genre() string { return c.label }

// Apply derives the subset of catalog selected by c, preserving relative order.
//
// Pure function: it never mutates catalog and an empty catalog yields an empty
// result rather than an error.
func Apply(catalog []models.Game, c Criterion) []models.Game {
	switch c.kind {
	case KindGenre:
		if c.label == "" {
			return catalog
		}

		want := shared.NormalizeGenre(c.label)
		filtered := []models.Game{}
		for _, game := range catalog {
			if shared.NormalizeGenre(game.Genre) == want {
				filtered = append(filtered, game)
			}
		}
		return filtered

	case KindID:
		for _, game := range catalog {
			if game.ID == c.id {
				return []models.Game{game}
			}
		}
		return []models.Game{}

	default:
		return catalog
	}
}

// FilterByID derives the at-most-one-element subset of catalog holding the
// entity with the given id. Used for detail views of any entity type.
func FilterByID[E models.Entity](catalog []E, id string) []E {
	for _, item := range catalog {
		if item.EntityID() == id {
			return []E{item}
		}
	}
	return []E{}
}

// Genres returns the distinct normalized genre labels present in catalog, in
// first-appearance order.
func Genres(catalog []models.Game) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, game := range catalog {
		label := shared.NormalizeGenre(game.Genre)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, label)
	}
	return out
}
