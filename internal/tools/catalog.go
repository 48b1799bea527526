package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go/v2"
)

const (
	ToolGetBookingDetails = "getBookingDetails"
	ToolChangeBooking     = "changeBooking"
	ToolCancelBooking     = "cancelBooking"
)

// Definitions returns the function schemas advertised to the chat model.
func Definitions() []openai.ChatCompletionToolUnionParam {
	jointKeyProps := map[string]any{
		"bookingNumber": map[string]any{"type": "string", "description": "预订号"},
		"name":          map[string]any{"type": "string", "description": "客户姓名"},
	}

	changeProps := map[string]any{
		"bookingNumber": map[string]any{"type": "string", "description": "预订号"},
		"name":          map[string]any{"type": "string", "description": "客户姓名"},
		"date":          map[string]any{"type": "string", "description": "新的航班日期，格式 yyyy-MM-dd"},
		"from":          map[string]any{"type": "string", "description": "新的出发地"},
		"to":            map[string]any{"type": "string", "description": "新的目的地"},
	}

	return []openai.ChatCompletionToolUnionParam{
		openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        ToolGetBookingDetails,
			Description: openai.String("获取机票预订详细信息，需要提供预订号和客户姓名"),
			Parameters: openai.FunctionParameters{
				"type":       "object",
				"properties": jointKeyProps,
				"required":   []string{"bookingNumber", "name"},
			},
		}),
		openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        ToolChangeBooking,
			Description: openai.String("修改机票预订信息，包括日期、出发地和目的地"),
			Parameters: openai.FunctionParameters{
				"type":       "object",
				"properties": changeProps,
				"required":   []string{"bookingNumber", "name", "date", "from", "to"},
			},
		}),
		openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        ToolCancelBooking,
			Description: openai.String("取消机票预订，需要提供预订号和客户姓名"),
			Parameters: openai.FunctionParameters{
				"type":       "object",
				"properties": jointKeyProps,
				"required":   []string{"bookingNumber", "name"},
			},
		}),
	}
}

// Execute dispatches a model tool call to the booking tools and returns the
// content for the tool result message.
func (t *BookingTools) Execute(ctx context.Context, name, argsJSON string) (string, error) {
	switch name {
	case ToolGetBookingDetails:
		var req BookingDetailsRequest
		if err := json.Unmarshal([]byte(argsJSON), &req); err != nil {
			return "", fmt.Errorf("decode %s arguments: %w", name, err)
		}
		out, err := json.Marshal(t.GetBookingDetails(ctx, req))
		if err != nil {
			return "", err
		}
		return string(out), nil
	case ToolChangeBooking:
		var req ChangeBookingRequest
		if err := json.Unmarshal([]byte(argsJSON), &req); err != nil {
			return "", fmt.Errorf("decode %s arguments: %w", name, err)
		}
		return t.ChangeBooking(ctx, req), nil
	case ToolCancelBooking:
		var req CancelBookingRequest
		if err := json.Unmarshal([]byte(argsJSON), &req); err != nil {
			return "", fmt.Errorf("decode %s arguments: %w", name, err)
		}
		return t.CancelBooking(ctx, req), nil
	default:
		return fmt.Sprintf("tool %s is not available", name), nil
	}
}
