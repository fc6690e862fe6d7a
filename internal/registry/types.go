package registry

// JobStatusDraft marks a job that has not been scheduled yet.
const JobStatusDraft = "DRAFT"

// Project is an orchestrator project as returned by the projects endpoint.
type Project struct {
	UUID string `json:"uuid" yaml:"uuid" toml:"uuid"`
	Path string `json:"path" yaml:"path" toml:"path"`
}

// Pipeline is a pipeline definition belonging to a project.
type Pipeline struct {
	UUID        string `json:"uuid" yaml:"uuid" toml:"uuid"`
	Name        string `json:"name" yaml:"name" toml:"name"`
	Path        string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
	ProjectUUID string `json:"project_uuid" yaml:"project_uuid" toml:"project_uuid"`
}

// Job is a scheduled or draft pipeline run.
type Job struct {
	UUID         string `json:"uuid" yaml:"uuid" toml:"uuid"`
	Name         string `json:"name" yaml:"name" toml:"name"`
	Status       string `json:"status" yaml:"status" toml:"status"`
	ProjectUUID  string `json:"project_uuid" yaml:"project_uuid" toml:"project_uuid"`
	PipelineUUID string `json:"pipeline_uuid,omitempty" yaml:"pipeline_uuid,omitempty" toml:"pipeline_uuid,omitempty"`
}

// Fields exposes the project to source predicates.
func (p Project) Fields() map[string]any {
	return map[string]any{"uuid": p.UUID, "path": p.Path}
}

// Fields exposes the pipeline to source predicates.
func (p Pipeline) Fields() map[string]any {
	return map[string]any{
		"uuid":         p.UUID,
		"name":         p.Name,
		"path":         p.Path,
		"project_uuid": p.ProjectUUID,
	}
}

// Fields exposes the job to source predicates.
func (j Job) Fields() map[string]any {
	return map[string]any{
		"uuid":          j.UUID,
		"name":          j.Name,
		"status":        j.Status,
		"project_uuid":  j.ProjectUUID,
		"pipeline_uuid": j.PipelineUUID,
	}
}
