// Package routes holds the orchestrator's page locations that palette
// commands navigate to.
package routes

import (
	"fmt"
	"strings"

	"github.com/oakwood-commons/cmdk/internal/command"
)

// Route paths of the orchestrator web client.
const (
	Projects         = "/projects"
	ProjectSettings  = "/project-settings"
	Pipelines        = "/pipelines"
	Pipeline         = "/pipeline"
	JupyterLab       = "/jupyter-lab"
	PipelineSettings = "/pipeline-settings"
	Logs             = "/logs"
	Jobs             = "/jobs"
	Job              = "/job"
	EditJob          = "/edit-job"
	Environments     = "/environments"
	FileManager      = "/file-manager"
	Settings         = "/settings"
	Help             = "/help"
)

// Page is a statically configured page entry.
type Page struct {
	Title string `yaml:"title" json:"title" toml:"title"`
	Path  string `yaml:"path" json:"path" toml:"path"`
}

// DefaultPages mirrors the navigable top-level pages of the web client.
func DefaultPages() []Page {
	return []Page{
		{Title: "Projects", Path: Projects},
		{Title: "Pipelines", Path: Pipelines},
		{Title: "Jobs", Path: Jobs},
		{Title: "Environments", Path: Environments},
		{Title: "File manager", Path: FileManager},
		{Title: "Settings", Path: Settings},
		{Title: "Help", Path: Help},
	}
}

// PageCommands turns pages into "Page: <title>" commands with empty query.
func PageCommands(pages []Page) ([]command.Command, error) {
	cmds := make([]command.Command, 0, len(pages))
	for i, p := range pages {
		title := strings.TrimSpace(p.Title)
		if title == "" {
			return nil, fmt.Errorf("page %d: title is required", i)
		}
		if !strings.HasPrefix(p.Path, "/") {
			return nil, fmt.Errorf("page %q: path %q must start with '/'", title, p.Path)
		}
		cmds = append(cmds, command.Page("Page: "+title, p.Path, nil))
	}
	return cmds, nil
}
