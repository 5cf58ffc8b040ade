// Package messages holds the user-facing message strings shared by the
// trends microservices, so every service reports the same wording.
package messages

const (
	InvalidToken       = "Invalid Token"
	ExpiredToken       = "Token has expired"
	InvalidCredentials = "No user matches the given credentials"

	UserAlreadyExists = "User with that email already exists"
	UserAlreadyActive = "This email is already verified."
	UserNotFound      = "User not found"
	UserForbidden     = "You are not allowed to perform this action"

	TaskNotFound        = "Task not found"
	SearchTasksNotFound = "No tasks matching the given search task id"

	OllamaModelNotLoaded     = "Ollama is running but the Deep Seek model is not loaded."
	OllamaServiceRunning     = "Ollama service is running with Deep Seek model loaded"
	OllamaUnexpectedResponse = "Ollama service returned unexpected response"
	OllamaConnectionFailed   = "Cannot connect to Ollama service"

	RateLimitExceeded = "Rate limit exceeded"
)
