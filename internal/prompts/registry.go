package prompts

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Task describes one AI task: which model to use, the system prompt and
// how much user content may be sent with it.
type Task struct {
	Model           string `yaml:"model"`
	System          string `yaml:"system"`
	MaxContentChars int    `yaml:"max_content_chars"`
}

// Registry manages prompt/model definitions loaded from embedded YAML
type Registry struct {
	tasks map[string]*Task
	mu    sync.RWMutex
}

// NewRegistry creates a new prompt registry and loads embedded YAML files
func NewRegistry() (*Registry, error) {
	r := &Registry{
		tasks: make(map[string]*Task),
	}

	if err := r.loadTaskFile("analyze"); err != nil {
		return nil, fmt.Errorf("failed to load analyze prompt: %w", err)
	}

	return r, nil
}

// loadTaskFile loads a task's prompt YAML file
func (r *Registry) loadTaskFile(name string) error {
	filename := fmt.Sprintf("config/%s.yaml", name)
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var task Task
	if err := yaml.Unmarshal(data, &task); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}

	if task.Model == "" || task.System == "" {
		return fmt.Errorf("%s: model and system are required", filename)
	}
	if task.MaxContentChars <= 0 {
		return fmt.Errorf("%s: max_content_chars must be positive", filename)
	}

	r.mu.Lock()
	r.tasks[name] = &task
	r.mu.Unlock()

	return nil
}

// Get returns the task definition for the given name
func (r *Registry) Get(name string) (*Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[name]
	if !ok {
		return nil, fmt.Errorf("unknown task: %s", name)
	}
	return task, nil
}
