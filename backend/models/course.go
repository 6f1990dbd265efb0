package models

// Status of a module or lesson from the learner's point of view.
type Status string

const (
	StatusLocked     Status = "locked"
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// QuizStatus is separate from Status because a quiz is pass/fail, not gradual.
type QuizStatus string

const (
	QuizLocked     QuizStatus = "locked"
	QuizNotStarted QuizStatus = "not_started"
	QuizPassed     QuizStatus = "passed"
	QuizFailed     QuizStatus = "failed"
)

// DefaultPassingScore is used when a quiz does not declare its own.
const DefaultPassingScore = 70

type Course struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Title        string `json:"title"`
	TotalModules int    `json:"total_modules"`
}

type Module struct {
	ID       string   `json:"id"`
	Number   int      `json:"number"`
	Title    string   `json:"title"`
	Lessons  []Lesson `json:"lessons"`
	Quiz     Quiz     `json:"quiz"`
	Status   Status   `json:"status"`
	Progress int      `json:"progress"` // 0..100
}

type Lesson struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ContentType  string `json:"content_type"` // video, article
	ContentURL   string `json:"content_url"`
	Status       Status `json:"status"`
	Progress     int    `json:"progress"`      // 0..100
	LastPosition int    `json:"last_position"` // playback offset in seconds
}

type Quiz struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Questions    []Question `json:"questions"`
	PassingScore int        `json:"passing_score"`
	Status       QuizStatus `json:"status"`
	BestScore    int        `json:"best_score"`
}

type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"` // option ids
	Correct []string `json:"correct"` // subset of Options
	Points  int      `json:"points"`  // 0 means 1
}

// CourseContent is everything the content source returns for one course:
// the immutable definition plus zeroed progress shapes for a fresh learner.
type CourseContent struct {
	Course    Course          `json:"course"`
	Modules   []Module        `json:"modules"`
	Qubits    []QubitsModule  `json:"qubits_modules"`
	Dashboard QubitsDashboard `json:"qubits_dashboard"`
	Progress  LearnerProgress `json:"learner_progress"`
}

// Weight returns the question's point weight, defaulting to 1.
func (q Question) Weight() int {
	if q.Points <= 0 {
		return 1
	}
	return q.Points
}

// EffectivePassingScore returns the quiz passing score, defaulting to 70.
func (z Quiz) EffectivePassingScore() int {
	if z.PassingScore <= 0 {
		return DefaultPassingScore
	}
	return z.PassingScore
}

// CloneModules deep-copies a module list so derivation code can return
// new state without mutating its input.
func CloneModules(modules []Module) []Module {
	if modules == nil {
		return nil
	}
	out := make([]Module, len(modules))
	for i, m := range modules {
		out[i] = m
		out[i].Lessons = append([]Lesson(nil), m.Lessons...)
		out[i].Quiz.Questions = cloneQuestions(m.Quiz.Questions)
	}
	return out
}

func cloneQuestions(questions []Question) []Question {
	if questions == nil {
		return nil
	}
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = q
		out[i].Options = append([]string(nil), q.Options...)
		out[i].Correct = append([]string(nil), q.Correct...)
	}
	return out
}

// CloneQubits deep-copies the practice-bank module views.
func CloneQubits(modules []QubitsModule) []QubitsModule {
	if modules == nil {
		return nil
	}
	return append([]QubitsModule(nil), modules...)
}
