package registry

import (
	"fmt"

	"github.com/oakwood-commons/cmdk/internal/command"
	"github.com/oakwood-commons/cmdk/internal/routes"
)

// ProjectPaths maps project UUIDs to their display path. A UUID that is
// missing resolves to the empty string.
type ProjectPaths map[string]string

// PathsOf indexes projects by UUID.
func PathsOf(projects []Project) ProjectPaths {
	paths := make(ProjectPaths, len(projects))
	for _, p := range projects {
		paths[p.UUID] = p.Path
	}
	return paths
}

// ProjectCommand groups the settings and pipelines pages of a project.
func ProjectCommand(p Project) command.Command {
	query := map[string]string{"projectUuid": p.UUID}
	return command.List("Project: "+p.Path,
		command.Page("Project settings: "+p.Path, routes.ProjectSettings, query),
		command.Page("Pipelines: "+p.Path, routes.Pipelines, query),
	)
}

// PipelineCommand groups the editor, JupyterLab, settings and logs pages of
// a pipeline.
func PipelineCommand(paths ProjectPaths, p Pipeline) command.Command {
	display := fmt.Sprintf("%s [%s]", p.Name, paths[p.ProjectUUID])
	query := map[string]string{
		"pipelineUuid": p.UUID,
		"projectUuid":  p.ProjectUUID,
	}
	return command.List("Pipeline: "+display,
		command.Page("Edit: "+display, routes.Pipeline, query),
		command.Page("JupyterLab: "+display, routes.JupyterLab, query),
		command.Page("Settings: "+display, routes.PipelineSettings, query),
		command.Page("Logs: "+display, routes.Logs, query),
	)
}

// JobCommand opens a job, or the job editor when the job is a draft.
func JobCommand(paths ProjectPaths, j Job) command.Command {
	display := fmt.Sprintf("%s [%s]", j.Name, paths[j.ProjectUUID])
	query := map[string]string{
		"projectUuid": j.ProjectUUID,
		"jobUuid":     j.UUID,
	}
	if j.Status == JobStatusDraft {
		return command.Page("Edit job: "+display, routes.EditJob, query)
	}
	return command.Page("Job: "+display, routes.Job, query)
}
