// ABOUTME: Think task model for the question-answering service
// ABOUTME: Carries the prompt, generation limits, and task lifecycle fields

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Default generation limits for think tasks.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 250
)

// ThinkResult is the answer produced for a think task.
type ThinkResult struct {
	Answer   string `json:"answer"`
	Thinking string `json:"thinking"`
}

// ThinkError describes why a think task failed.
type ThinkError struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

// ThinkTask is a scheduled question-answering task owned by a user.
type ThinkTask struct {
	UserID int64  `json:"user_id" validate:"required"`
	TaskID string `json:"task_id" validate:"required"`

	// SearchTaskID links the task to a prior search task, if any
	SearchTaskID string `json:"search_task_id,omitempty"`

	// Question is the question to be answered (3-500 characters)
	Question string `json:"question" validate:"required,min=3,max=500"`

	// Context is optional background information for the question
	Context string `json:"context,omitempty" validate:"max=2000"`

	// Temperature controls randomness in generation; lower is more
	// deterministic (0.0-2.0)
	Temperature float64 `json:"temperature" validate:"gte=0,lte=2"`

	// MaxTokens caps the number of output tokens generated (10-512)
	MaxTokens int `json:"max_tokens" validate:"gte=10,lte=512"`

	// ScheduleAt is the earliest time the task should run
	ScheduleAt time.Time `json:"schedule_at"`

	Status TaskStatus `json:"status" validate:"required"`

	Result     *ThinkResult `json:"result_data,omitempty"`
	Error      *ThinkError  `json:"error,omitempty"`
	RetryCount int          `json:"retry_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewThinkTask creates a pending think task with default generation limits,
// scheduled to run immediately.
func NewThinkTask(userID int64, question string) *ThinkTask {
	now := time.Now()
	return &ThinkTask{
		UserID:      userID,
		TaskID:      uuid.New().String(),
		Question:    question,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		ScheduleAt:  now,
		Status:      TaskStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate checks the task fields.
func (t *ThinkTask) Validate() error {
	if err := validateStruct(t); err != nil {
		return err
	}

	if !t.Status.Valid() {
		return errInvalidStatus(t.Status)
	}

	return nil
}
