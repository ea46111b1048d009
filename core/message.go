package core

// ToolCall describes a tool invocation requested by a model. Unified across
// providers so downstream logic does not need per-vendor branching.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments,omitempty"` // serialized JSON argument payload
}

// ToolResult captures the outcome of a previously requested tool call.
type ToolResult struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
	IsError bool   `json:"is_error,omitempty"`
}

// Message is one turn of a sub-agent conversation. Role is "user",
// "assistant" or "tool". Assistant messages may carry tool calls; tool
// messages carry the matching results.
type Message struct {
	Role        string       `json:"role"`
	Text        string       `json:"text,omitempty"`
	ToolCalls   []ToolCall   `json:"tool_calls,omitempty"`
	ToolResults []ToolResult `json:"tool_results,omitempty"`
}

// NewUserMessage builds a plain user-role text message.
func NewUserMessage(text string) Message {
	return Message{Role: "user", Text: text}
}

// NewAssistantMessage builds a plain assistant-role text message.
func NewAssistantMessage(text string) Message {
	return Message{Role: "assistant", Text: text}
}

// NewToolResultMessage wraps tool results in a tool-role message.
func NewToolResultMessage(results ...ToolResult) Message {
	return Message{Role: "tool", ToolResults: results}
}

// LastAssistantText returns the text of the last assistant message in the
// transcript, or "" if there is none.
func LastAssistantText(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "assistant" && messages[i].Text != "" {
			return messages[i].Text
		}
	}
	return ""
}
