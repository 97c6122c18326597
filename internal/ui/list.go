package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/torrentio/cli/internal/models"
)

var _ list.Item = developerItem{}

// developerItem wraps [models.Developer] to implement [list.Item].
type developerItem struct {
	developer models.Developer
}

func (i developerItem) FilterValue() string { return i.developer.Name }
func (i developerItem) Title() string       { return i.developer.Name }
func (i developerItem) Description() string {
	return fmt.Sprintf("Founded %d • %s", i.developer.Founded, i.developer.Country)
}
