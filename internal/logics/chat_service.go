package logics

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"register-server/configs"
	"register-server/internal/apperrors"
	"register-server/internal/models"
	"register-server/internal/repositories"

	"github.com/google/uuid"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const chatSystemPrompt = "You are an assistant for a correspondence register. " +
	"You answer questions about inward and outward letters using the query_database tool. " +
	"Always call get_table_schema before writing SQL if you are unsure about column names. " +
	"Only SELECT queries are permitted."

const chatCacheTTL = time.Hour

// ChatService answers free-form questions about the registers by letting a
// chat model query the database through a restricted tool interface.
type ChatService struct {
	db     *gorm.DB
	client openai.Client
	model  string
	logger *zap.Logger
}

// NewChatService returns a new instance of ChatService configured from the
// openai section of the service configuration.
func NewChatService(db *gorm.DB, logger *zap.Logger) *ChatService {
	client := openai.NewClient(
		option.WithAPIKey(configs.Configs.Openai.ApiKey),
		option.WithBaseURL(configs.Configs.Openai.BaseURL),
	)
	return &ChatService{
		db:     db,
		client: client,
		model:  configs.Configs.Openai.Model,
		logger: logger,
	}
}

var chatTools = []openai.ChatCompletionToolParam{
	{
		Function: openai.FunctionDefinitionParam{
			Name:        "query_database",
			Description: openai.String("Execute a SELECT SQL query against the inward and outward tables. Use this to find letters, check status, or build summaries."),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]interface{}{
					"sql": map[string]interface{}{
						"type":        "string",
						"description": "The SELECT SQL query, e.g. SELECT * FROM inward WHERE assignment_status = 'Pending'",
					},
				},
				"required": []string{"sql"},
			},
		},
	},
	{
		Function: openai.FunctionDefinitionParam{
			Name:        "get_table_schema",
			Description: openai.String("Get the columns of the inward and outward tables."),
			Parameters: openai.FunctionParameters{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	},
}

// Chat runs one question through the model. The model may call the database
// tools once; their results are fed back for a final answer. Answers are
// cached in Redis keyed by the conversation content, and the full transcript
// is archived in MongoDB when it is available.
func (cs *ChatService) Chat(ctx context.Context, messages []models.ChatMessage) (string, error) {
	if len(messages) == 0 {
		return "", apperrors.New(apperrors.ErrInvalidInput, "messages are required")
	}
	if configs.Configs.Openai.ApiKey == "" {
		return "", apperrors.New(apperrors.ErrInternal, "chat assistant is not configured")
	}

	if answer, ok := cs.cachedAnswer(ctx, messages); ok {
		return answer, nil
	}

	params := openai.ChatCompletionNewParams{
		Model:    cs.model,
		Messages: []openai.ChatCompletionMessageParamUnion{openai.SystemMessage(chatSystemPrompt)},
		Tools:    chatTools,
	}
	for _, m := range messages {
		switch m.Role {
		case "assistant":
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		}
	}

	resp, err := cs.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", apperrors.Wrap(err, "chat completion failed")
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.NewAppError(apperrors.ErrInternal, "chat model returned no choices", nil)
	}

	answer := resp.Choices[0].Message.Content

	if toolCalls := resp.Choices[0].Message.ToolCalls; len(toolCalls) > 0 {
		params.Messages = append(params.Messages, resp.Choices[0].Message.ToParam())
		for _, tc := range toolCalls {
			result := cs.runTool(ctx, tc.Function.Name, tc.Function.Arguments)
			params.Messages = append(params.Messages, openai.ToolMessage(result, tc.ID))
		}

		// Second round without tools produces the final natural-language answer.
		params.Tools = nil
		resp, err = cs.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return "", apperrors.Wrap(err, "chat completion failed")
		}
		if len(resp.Choices) == 0 {
			return "", apperrors.NewAppError(apperrors.ErrInternal, "chat model returned no choices", nil)
		}
		answer = resp.Choices[0].Message.Content
	}

	cs.cacheAnswer(ctx, messages, answer)
	cs.archiveTranscript(ctx, messages, answer)

	return answer, nil
}

func (cs *ChatService) runTool(ctx context.Context, name, arguments string) string {
	switch name {
	case "query_database":
		var args struct {
			SQL string `json:"sql"`
		}
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return "Error: invalid tool arguments"
		}
		return cs.runQueryTool(ctx, args.SQL)
	case "get_table_schema":
		schema := map[string]string{
			"inward":  "id, inward_no, subject, means_of_receipt, from_whom, received_at, file_reference, assigned_team, assigned_to_email, assignment_instructions, assignment_status, assignment_date, completion_date, due_date, created_at, updated_at",
			"outward": "id, outward_no, subject, means_of_dispatch, to_whom, sent_by, sent_at, file_reference, postal_tariff, case_closed, linked_inward_id, created_by_team, team_member_email, created_at, updated_at",
		}
		out, _ := json.Marshal(schema)
		return string(out)
	default:
		return "Error: unknown tool " + name
	}
}

// runQueryTool executes a model-written query. Anything other than a single
// SELECT statement is rejected before it reaches the database.
func (cs *ChatService) runQueryTool(ctx context.Context, sql string) string {
	if !isSelectQuery(sql) {
		return "Error: only SELECT queries are allowed"
	}

	cs.logger.Info("chat assistant querying database", zap.String("sql", sql))

	var rows []map[string]interface{}
	if err := cs.db.WithContext(ctx).Raw(sql).Scan(&rows).Error; err != nil {
		return "Error executing query: " + err.Error()
	}
	out, err := json.Marshal(rows)
	if err != nil {
		return "Error serializing query result: " + err.Error()
	}
	return string(out)
}

func isSelectQuery(sql string) bool {
	trimmed := strings.TrimSpace(sql)
	if !strings.HasPrefix(strings.ToLower(trimmed), "select") {
		return false
	}
	// A trailing semicolon is fine, an embedded one smuggles a second statement.
	if i := strings.Index(trimmed, ";"); i >= 0 && i != len(trimmed)-1 {
		return false
	}
	return true
}

func chatCacheKey(messages []models.ChatMessage) (string, error) {
	data, err := json.Marshal(messages)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(data)
	return "chat:" + hex.EncodeToString(hash[:]), nil
}

func (cs *ChatService) cachedAnswer(ctx context.Context, messages []models.ChatMessage) (string, bool) {
	if repositories.DBS.Redis == nil {
		return "", false
	}
	key, err := chatCacheKey(messages)
	if err != nil {
		return "", false
	}
	answer, err := repositories.DBS.Redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			cs.logger.Warn("failed to read chat cache", zap.Error(err))
		}
		return "", false
	}
	cs.logger.Info("chat cache hit", zap.String("cacheKey", key))
	return answer, true
}

func (cs *ChatService) cacheAnswer(ctx context.Context, messages []models.ChatMessage, answer string) {
	if repositories.DBS.Redis == nil || answer == "" {
		return
	}
	key, err := chatCacheKey(messages)
	if err != nil {
		return
	}
	if err := repositories.DBS.Redis.Set(ctx, key, answer, chatCacheTTL).Err(); err != nil {
		cs.logger.Warn("failed to write chat cache", zap.Error(err))
	}
}

func (cs *ChatService) archiveTranscript(ctx context.Context, messages []models.ChatMessage, answer string) {
	if repositories.DBS.MongoDB == nil {
		return
	}
	transcript := models.ChatTranscript{
		SessionID: uuid.NewString(),
		Messages:  messages,
		Answer:    answer,
		CreatedAt: time.Now(),
	}
	collection := repositories.DBS.MongoDB.Database(configs.Configs.MongoDB.Database).Collection("chat_transcripts")
	if _, err := collection.InsertOne(ctx, transcript); err != nil {
		cs.logger.Warn("failed to archive chat transcript", zap.Error(err))
	}
}
