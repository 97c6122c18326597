package ui

import (
	"github.com/torrentio/cli/internal/models"
	"github.com/torrentio/cli/internal/tasks"
)

type catalogLoadedMsg struct {
	result *tasks.RefreshResult
	err    error
}

type searchDoneMsg struct {
	query string
	games []models.Game
	err   error
}

type progressUpdateMsg tasks.ProgressUpdate
