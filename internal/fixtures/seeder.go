package fixtures

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/task"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/timepolicy"
)

// Seeder (re)loads demo task data into a repository
type Seeder struct {
	policy    *timepolicy.Policy
	repo      task.TaskRepository
	tasksFile string
	seed      int64
	manager   DemoEmployee
	employees []DemoEmployee
	mu        sync.Mutex
}

func NewSeeder(policy *timepolicy.Policy, repo task.TaskRepository, tasksFile string, seed int64) *Seeder {
	return &Seeder{
		policy:    policy,
		repo:      repo,
		tasksFile: tasksFile,
		seed:      seed,
		manager:   DemoManager,
		employees: DefaultDemoEmployees,
	}
}

// Reset replaces all task data: from the YAML file when configured, generated otherwise
func (s *Seeder) Reset(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		tasks       []task.Task
		submissions []task.Submission
		source      = "generated"
	)
	if s.tasksFile != "" {
		var err error
		tasks, submissions, err = LoadTasksFile(s.tasksFile, s.policy)
		if err != nil {
			return 0, err
		}
		source = s.tasksFile
	} else {
		tasks, submissions = GenerateDemoTasks(s.policy, s.seed, s.manager, s.employees...)
	}

	if err := s.repo.Replace(ctx, tasks, submissions); err != nil {
		return 0, fmt.Errorf("failed to replace demo tasks: %w", err)
	}

	slog.Info("Demo tasks seeded",
		"source", source,
		"tasks", len(tasks),
		"submissions", len(submissions),
		"today", s.policy.FormatDate(s.policy.Now()),
	)
	return len(tasks), nil
}

// ProvisionEmployee gives an employee with no tasks the generated demo set.
// Curated fixture files are left alone.
func (s *Seeder) ProvisionEmployee(ctx context.Context, employeeID, employeeName string) (int, error) {
	if s.tasksFile != "" || employeeID == "" {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.List(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	if employeeName == "" {
		employeeName = "Demo Employee"
	}
	tasks, submissions := GenerateDemoTasks(s.policy, s.seed^employeeSeed(employeeID), s.manager, DemoEmployee{ID: employeeID, Name: employeeName})

	for _, t := range tasks {
		if _, err := s.repo.Create(ctx, t); err != nil {
			return 0, fmt.Errorf("failed to provision demo task: %w", err)
		}
	}
	for _, sub := range submissions {
		if _, err := s.repo.CreateSubmission(ctx, sub); err != nil {
			return 0, fmt.Errorf("failed to provision demo submission: %w", err)
		}
	}

	slog.Info("Demo tasks provisioned", "employee_id", employeeID, "tasks", len(tasks))
	return len(tasks), nil
}

func employeeSeed(employeeID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(employeeID))
	return int64(h.Sum64())
}
