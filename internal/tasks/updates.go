package tasks

import "fmt"

// Phase identifies which stage of a catalog operation an update reports.
type Phase int

const (
	PhaseFetchGames Phase = iota
	PhaseFetchDevelopers
	PhaseSearch
	PhaseCacheWrite
	PhaseRestore
	PhaseDone
)

// String returns a human-readable label for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseFetchGames:
		return "fetching games"
	case PhaseFetchDevelopers:
		return "fetching developers"
	case PhaseSearch:
		return "searching"
	case PhaseCacheWrite:
		return "writing cache"
	case PhaseRestore:
		return "restoring cache"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// ProgressUpdate reports the status of an in-flight catalog operation.
type ProgressUpdate struct {
	Phase   Phase
	Step    int
	Total   int
	Message string
}

func fetchGamesUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseFetchGames,
		Step:    step,
		Total:   total,
		Message: "fetching games",
	}
}

func fetchDevelopersUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseFetchDevelopers,
		Step:    step,
		Total:   total,
		Message: "fetching developers",
	}
}

func searchGamesUpdate(query string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseSearch,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("searching for %q", query),
	}
}

func cacheWriteUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseCacheWrite,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("caching %d entries", count),
	}
}

func restoreUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseRestore,
		Step:    1,
		Total:   1,
		Message: "loading cached catalog",
	}
}

func refreshDoneUpdate(games, developers int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseDone,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("loaded %d games, %d developers", games, developers),
	}
}
