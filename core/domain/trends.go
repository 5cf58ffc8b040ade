// ABOUTME: Trends query and task models shared by the trends services
// ABOUTME: Provides validation and lifecycle helpers for scheduled trend lookups

package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SearchProperty selects which Google property a trends query targets.
type SearchProperty string

const (
	PropertyWebSearch     SearchProperty = "web"
	PropertyYoutubeSearch SearchProperty = "youtube"
	PropertyNewsSearch    SearchProperty = "news"
	PropertyImageSearch   SearchProperty = "images"
	PropertyFroogleSearch SearchProperty = "froogle"
)

// DefaultGeo is used when a query does not restrict the region.
const DefaultGeo = "Worldwide"

// TermList holds the search terms of a query. Producers send either a
// single string or an array of strings for the "q" field, so both forms
// decode.
type TermList []string

func (t *TermList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*t = TermList{single}
		return nil
	}

	var terms []string
	if err := json.Unmarshal(data, &terms); err != nil {
		return err
	}
	*t = terms
	return nil
}

// TrendsQuery describes a trends lookup request.
type TrendsQuery struct {
	// Terms are the search terms or topics to look up
	Terms TermList `json:"q" validate:"required,min=1,dive,required"`

	// Geo is the geographical region, e.g. "US", "DE", or "Worldwide"
	Geo string `json:"geo"`

	// Time is the time range, e.g. "now 7-d" or "2023-01-01 2023-01-31"
	Time string `json:"time,omitempty"`

	// Category is the category ID (0 means all categories)
	Category int `json:"cat" validate:"gte=0"`

	// Property is the Google property to search (empty means web search)
	Property SearchProperty `json:"gprop,omitempty" validate:"omitempty,oneof=web youtube news images froogle"`

	// TZOffset is the time zone offset in minutes
	TZOffset int `json:"tz"`
}

// NewTrendsQuery creates a query for the given terms with default region
// and category.
func NewTrendsQuery(terms ...string) TrendsQuery {
	return TrendsQuery{
		Terms: terms,
		Geo:   DefaultGeo,
	}
}

// Validate checks the query fields.
func (q *TrendsQuery) Validate() error {
	return validateStruct(q)
}

// TrendsTask is a scheduled trends lookup owned by a user.
type TrendsTask struct {
	// TaskID is the unique identifier (UUID) for the task
	TaskID string `json:"task_id" validate:"required"`

	// UserID is the owner of the task
	UserID int64 `json:"user_id" validate:"required"`

	// Status is the current lifecycle status
	Status TaskStatus `json:"status" validate:"required"`

	// Request is the trends query to execute
	Request *TrendsQuery `json:"request_data,omitempty"`

	// ScheduleAt is the earliest time the task should run
	ScheduleAt time.Time `json:"schedule_at"`

	// Result holds the lookup payload once the task completes
	Result map[string]interface{} `json:"result_data,omitempty"`

	// ErrorMessage is set when the task fails
	ErrorMessage string `json:"error_message,omitempty"`

	// RetryCount is the number of times the task has been retried
	RetryCount int `json:"retry_count"`

	// CreatedAt and UpdatedAt are maintained by the task store
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTrendsTask creates a pending task for the given user and query,
// scheduled to run immediately.
func NewTrendsTask(userID int64, query TrendsQuery) *TrendsTask {
	now := time.Now()
	return &TrendsTask{
		TaskID:     uuid.New().String(),
		UserID:     userID,
		Status:     TaskStatusPending,
		Request:    &query,
		ScheduleAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Validate checks the task fields and the embedded query, if any.
func (t *TrendsTask) Validate() error {
	if err := validateStruct(t); err != nil {
		return err
	}

	if !t.Status.Valid() {
		return errInvalidStatus(t.Status)
	}

	if t.Request != nil {
		return t.Request.Validate()
	}

	return nil
}
