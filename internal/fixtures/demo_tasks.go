package fixtures

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/task"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/timepolicy"
	"github.com/google/uuid"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func strPtr(s string) *string              { return &s }
func timePtr(t time.Time) *time.Time       { return &t }
func newID() string                        { return uuid.Must(uuid.NewV7()).String() }
func clampProgress(progress int) int       { return min(max(progress, 0), 100) }
func pick[T any](rng *rand.Rand, xs []T) T { return xs[rng.IntN(len(xs))] }

// wallClock is hour:minute on the civil day of day, in the policy zone
func wallClock(p *timepolicy.Policy, day time.Time, hour, minute int) time.Time {
	day = p.ToZoned(day)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, p.Location())
}

// ==========================================
// DEMO PEOPLE
// ==========================================

// DemoEmployee is a person referenced by demo tasks
type DemoEmployee struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// DemoManager assigns every generated task
var DemoManager = DemoEmployee{ID: "0190b5e0-4a1c-7c3e-9d2a-1f4b5c6d7e00", Name: "Walter Skinner"}

// DefaultDemoEmployees receive the generated task set
var DefaultDemoEmployees = []DemoEmployee{
	{ID: "0190b5e0-4a1c-7c3e-9d2a-1f4b5c6d7e01", Name: "Dana Scully"},
	{ID: "0190b5e0-4a1c-7c3e-9d2a-1f4b5c6d7e02", Name: "Fox Mulder"},
	{ID: "0190b5e0-4a1c-7c3e-9d2a-1f4b5c6d7e03", Name: "John Doggett"},
	{ID: "0190b5e0-4a1c-7c3e-9d2a-1f4b5c6d7e04", Name: "Monica Reyes"},
}

// ==========================================
// TASK TEMPLATES
// ==========================================

var demoTitles = []struct{ title, description string }{
	{"Prepare monthly attendance recap", "Summarize late arrivals and absences for the team lead."},
	{"Update onboarding checklist", "Add the new laptop request step and the security training link."},
	{"Review leave policy draft", "Leave comments on the annual leave carry-over section."},
	{"Clean up shared drive", "Archive project folders older than one year."},
	{"Draft Q3 training plan", "List trainings per position grade with estimated budget."},
	{"Verify payroll bank accounts", "Cross-check bank account numbers against signed forms."},
	{"Organize team offsite", "Collect availability and shortlist three venues."},
	{"Write incident post-mortem", "Timeline, root cause and follow-up actions for last week's outage."},
	{"Migrate timesheet templates", "Move the spreadsheet templates into the HRIS portal."},
	{"Collect equipment inventory", "Record serial numbers of laptops and monitors per branch."},
}

// slot places one generated task relative to today in the policy zone
type slot struct {
	dayOffset int
	hour      int
	minute    int
	status    task.Status
	progress  int
}

var demoSlots = []slot{
	{dayOffset: -4, hour: 17, minute: 0, status: task.StatusInProgress, progress: 60}, // overdue
	{dayOffset: -2, hour: 12, minute: 0, status: task.StatusCompleted, progress: 100},
	{dayOffset: 0, hour: 17, minute: 0, status: task.StatusInProgress, progress: 30}, // due today
	{dayOffset: 1, hour: 10, minute: 0, status: task.StatusTodo, progress: 0},
	{dayOffset: 3, hour: 17, minute: 0, status: task.StatusSubmitted, progress: 100},
	{dayOffset: 7, hour: 9, minute: 30, status: task.StatusTodo, progress: 0},
	{dayOffset: 12, hour: 17, minute: 0, status: task.StatusRejected, progress: 80},
}

// ==========================================
// GENERATOR
// ==========================================

// GenerateDemoTasks builds a task set whose deadlines are relative to today in
// the policy zone: some overdue, some due today, some upcoming. The same seed
// yields the same titles, priorities and statuses.
func GenerateDemoTasks(p *timepolicy.Policy, seed int64, assigner DemoEmployee, employees ...DemoEmployee) ([]task.Task, []task.Submission) {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
	today := p.ToMidnight(p.Now())

	tasks := make([]task.Task, 0, len(employees)*len(demoSlots))
	submissions := make([]task.Submission, 0)

	for _, employee := range employees {
		for _, s := range demoSlots {
			tmpl := pick(rng, demoTitles)
			deadline := wallClock(p, p.AddDays(today, s.dayOffset), s.hour, s.minute)
			created := wallClock(p, p.AddDays(today, min(s.dayOffset-7, -1)), 9, 0)

			t := task.Task{
				ID:             newID(),
				Title:          tmpl.title,
				Description:    tmpl.description,
				AssigneeID:     employee.ID,
				AssigneeName:   employee.Name,
				AssignedByID:   assigner.ID,
				AssignedByName: assigner.Name,
				Priority:       pick(rng, task.Priorities),
				Status:         s.status,
				Progress:       s.progress,
				Deadline:       deadline,
				CreatedAt:      created,
				UpdatedAt:      created,
			}

			switch s.status {
			case task.StatusCompleted:
				submittedAt := wallClock(p, p.AddDays(deadline, -1), 16, 0)
				reviewedAt := submittedAt.Add(3 * time.Hour)
				t.CompletedAt = timePtr(reviewedAt)
				t.UpdatedAt = reviewedAt
				submissions = append(submissions, task.Submission{
					ID: newID(), TaskID: t.ID, EmployeeID: employee.ID, EmployeeName: employee.Name,
					Note: "Done, see attached summary.", Progress: 100, SubmittedAt: submittedAt,
					Status: task.SubmissionApproved, ReviewNote: strPtr("Looks good."),
					ReviewedAt: timePtr(reviewedAt), ReviewerID: strPtr(assigner.ID),
				})
			case task.StatusSubmitted:
				submittedAt := wallClock(p, p.AddDays(today, -1), 15, 0)
				t.UpdatedAt = submittedAt
				submissions = append(submissions, task.Submission{
					ID: newID(), TaskID: t.ID, EmployeeID: employee.ID, EmployeeName: employee.Name,
					Note: "Ready for review.", Progress: 100, SubmittedAt: submittedAt,
					Status: task.SubmissionPending,
				})
			case task.StatusRejected:
				submittedAt := wallClock(p, p.AddDays(today, -3), 11, 0)
				reviewedAt := wallClock(p, p.AddDays(today, -2), 10, 0)
				t.UpdatedAt = reviewedAt
				submissions = append(submissions, task.Submission{
					ID: newID(), TaskID: t.ID, EmployeeID: employee.ID, EmployeeName: employee.Name,
					Note: fmt.Sprintf("First pass at %q.", tmpl.title), Progress: s.progress, SubmittedAt: submittedAt,
					Status: task.SubmissionRejected, ReviewNote: strPtr("Please add the missing branch data."),
					ReviewedAt: timePtr(reviewedAt), ReviewerID: strPtr(assigner.ID),
				})
			}

			tasks = append(tasks, t)
		}
	}

	return tasks, submissions
}
