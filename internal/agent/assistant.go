package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/rs/zerolog/log"
	"github.com/turingair/flightassist/config"
	"github.com/turingair/flightassist/internal/domain"
	"github.com/turingair/flightassist/internal/memory"
	"github.com/turingair/flightassist/internal/tools"
)

var (
	ErrModelInvoke = errors.New("model invoke failed")
	ErrToolLoop    = errors.New("tool call loop did not converge")
)

// maxToolRounds bounds the tool-call loop; a single booking request never
// needs more than a lookup followed by a mutation.
const maxToolRounds = 5

const systemPromptFormat = `您是"图灵航空"公司的客户聊天支持代理。请以友好、乐于助人且愉快的方式来回复。
您正在通过在线聊天系统与客户互动。

在提供有关预订或取消预订的信息之前，您必须始终从用户处获取以下信息：
- 预订号
- 客户姓名

在询问用户之前，请检查消息历史记录以获取此信息。
在更改或退订之前，请先获取预订信息并且告知条款，待用户回复确定之后才进行更改或退订的工具调用。

请讲中文。
今天的日期是 %s。`

// Assistant is the customer support agent: a chat-completions loop that
// executes booking tool calls and keeps per-conversation memory.
type Assistant struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int64
	tools       *tools.BookingTools
	history     memory.History
}

func New(cfg *config.LLMConfig, bookingTools *tools.BookingTools, history memory.History) *Assistant {
	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if trimmed := strings.TrimRight(cfg.BaseURL, "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}

	return &Assistant{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		tools:       bookingTools,
		history:     history,
	}
}

// Chat answers one customer message within a conversation, replaying stored
// history so the joint key can be picked up from earlier turns.
func (a *Assistant) Chat(ctx context.Context, conversationID, message string) (string, error) {
	past, err := a.history.Load(ctx, conversationID)
	if err != nil {
		log.Warn().Err(err).Str("conversation", conversationID).Msg("failed to load chat history")
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(past)+2)
	messages = append(messages, openai.SystemMessage(
		fmt.Sprintf(systemPromptFormat, domain.Today().Format(domain.DateLayout))))
	for _, m := range past {
		switch m.Role {
		case memory.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}
	messages = append(messages, openai.UserMessage(message))

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(a.model),
		Messages:    messages,
		Tools:       tools.Definitions(),
		Temperature: openai.Float(a.temperature),
		MaxTokens:   openai.Int(a.maxTokens),
	}

	for round := 0; round < maxToolRounds; round++ {
		completion, err := a.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrModelInvoke, err)
		}
		if len(completion.Choices) == 0 {
			return "", fmt.Errorf("%w: empty choices", ErrModelInvoke)
		}

		msg := completion.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			a.remember(ctx, conversationID, message, msg.Content)
			return msg.Content, nil
		}

		params.Messages = append(params.Messages, msg.ToParam())
		for _, call := range msg.ToolCalls {
			log.Info().Str("tool", call.Function.Name).
				Str("args", call.Function.Arguments).Msg("executing tool call")
			out, err := a.tools.Execute(ctx, call.Function.Name, call.Function.Arguments)
			if err != nil {
				out = "工具调用失败：" + err.Error()
			}
			params.Messages = append(params.Messages, openai.ToolMessage(out, call.ID))
		}
	}

	return "", ErrToolLoop
}

func (a *Assistant) remember(ctx context.Context, conversationID, question, answer string) {
	err := a.history.Append(ctx, conversationID,
		memory.Message{Role: memory.RoleUser, Content: question},
		memory.Message{Role: memory.RoleAssistant, Content: answer},
	)
	if err != nil {
		log.Warn().Err(err).Str("conversation", conversationID).Msg("failed to save chat history")
	}
}
