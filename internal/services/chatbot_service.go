package services

import (
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/yukikurage/taskbot-api/internal/logger"
	"github.com/yukikurage/taskbot-api/internal/models"
)

const noTasksLine = "No tasks found in the system."

var promptTemplate = template.Must(template.New("chatbot").Parse(`You are a helpful task management assistant. Your role is to answer questions about tasks in the system based on the provided data.

TODAY'S DATE: {{.Today}}

CURRENT TASKS IN THE SYSTEM:
{{.TaskData}}

IMPORTANT INSTRUCTIONS:
1. Only answer questions based on the task data provided above
2. Be concise and helpful in your responses
3. If asked about tasks that don't exist, politely inform the user
4. When counting tasks, be accurate
5. Format your response in PLAIN TEXT only - no markdown, no asterisks, no bullet points with symbols
6. Use simple line breaks and dashes (-) for lists if needed
7. If the question is unclear, ask for clarification
8. Do not make up information that is not in the task data

USER QUESTION: {{.Question}}

Please provide a helpful response based on the task data above.`))

var chatbotQueries = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "chatbot_queries_total",
		Help: "Chatbot queries by outcome",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(chatbotQueries)
}

// TaskLister loads the full task set the chatbot answers from.
type TaskLister interface {
	ListAll(ctx context.Context) ([]models.Task, error)
}

// ChatResult is the outcome of a chatbot query. Error is empty on success.
type ChatResult struct {
	Response string
	Success  bool
	Error    string
}

// ChatbotService answers natural-language questions about the stored tasks.
// A nil generator means no AI credential is configured.
type ChatbotService struct {
	tasks     TaskLister
	generator TextGenerator
	keyName   string
	now       func() time.Time
}

// NewChatbotService creates a ChatbotService. keyName is the setting that
// enables the generator and is quoted back when it is missing.
func NewChatbotService(tasks TaskLister, generator TextGenerator, keyName string) *ChatbotService {
	return &ChatbotService{
		tasks:     tasks,
		generator: generator,
		keyName:   keyName,
		now:       time.Now,
	}
}

// Configured reports whether an AI generator is available.
func (s *ChatbotService) Configured() bool {
	return s.generator != nil
}

// ProcessQuery grounds question in the current task list and asks the generator.
// Failures are reported in the result, never as an error.
func (s *ChatbotService) ProcessQuery(ctx context.Context, question string) ChatResult {
	log := logger.FromContext(ctx)

	if s.generator == nil {
		chatbotQueries.WithLabelValues("unconfigured").Inc()
		return ChatResult{
			Response: fmt.Sprintf("AI chatbot is not configured. Please set %s in environment variables.", s.keyName),
			Success:  false,
			Error:    fmt.Sprintf("%s not configured", s.keyName),
		}
	}

	answer, err := s.answer(ctx, question)
	if err != nil {
		log.Warn("chatbot query failed", "error", err)
		chatbotQueries.WithLabelValues("error").Inc()
		return ChatResult{
			Response: fmt.Sprintf("An error occurred while processing your query: %s", err.Error()),
			Success:  false,
			Error:    err.Error(),
		}
	}

	chatbotQueries.WithLabelValues("success").Inc()
	return ChatResult{
		Response: answer,
		Success:  true,
	}
}

func (s *ChatbotService) answer(ctx context.Context, question string) (string, error) {
	tasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load tasks: %w", err)
	}

	prompt, err := BuildPrompt(question, FormatTaskData(tasks), s.now().Format(models.DateLayout))
	if err != nil {
		return "", err
	}

	return s.generator.Generate(ctx, prompt)
}

// FormatTaskLine renders one task the way the prompt lists it.
// Assignee must be preloaded.
func FormatTaskLine(task models.Task) string {
	assignee := "Unassigned"
	if task.Assignee != nil {
		assignee = task.Assignee.FullName
	}

	deadline := "No deadline"
	if task.Deadline != nil {
		deadline = task.Deadline.String()
	}

	return fmt.Sprintf("- ID: %d | Title: \"%s\" | Status: %s | Deadline: %s | Assignee: %s",
		task.ID, task.Title, task.Status.Label(), deadline, assignee)
}

// FormatTaskData renders every task on its own line.
func FormatTaskData(tasks []models.Task) string {
	if len(tasks) == 0 {
		return noTasksLine
	}

	lines := make([]string, len(tasks))
	for i, task := range tasks {
		lines[i] = FormatTaskLine(task)
	}
	return strings.Join(lines, "\n")
}

// BuildPrompt composes the full prompt sent to the generator.
func BuildPrompt(question, taskData, today string) (string, error) {
	var sb strings.Builder
	err := promptTemplate.Execute(&sb, struct {
		Today    string
		TaskData string
		Question string
	}{
		Today:    today,
		TaskData: taskData,
		Question: question,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build prompt: %w", err)
	}
	return sb.String(), nil
}
