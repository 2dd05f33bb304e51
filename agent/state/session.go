package state

import (
	"sync"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	contractx "github.com/tanpawarit/simrs-agent/agent/contract"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is the metadata attached to a tool-event message.
type ToolCall struct {
	CallID string             `json:"call_id,omitempty"`
	Name   string             `json:"name"`
	Args   map[string]any     `json:"args,omitempty"`
	Result contractx.Envelope `json:"result"`
}

// Message is one entry of the user-visible transcript.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	ToolCall  *ToolCall `json:"tool_call,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Session holds one conversation: the append-only transcript read by the
// presentation layer and the message history sent to the model.
// - Transcript: user, assistant and tool-event messages in arrival order
// - History: system prompt + provider-level messages (tool calls, tool responses)
type Session struct {
	mu         sync.RWMutex
	transcript []Message
	history    []*schema.Message
	now        func() time.Time
}

func NewSession(systemPrompt string) *Session {
	s := &Session{now: time.Now}
	if systemPrompt != "" {
		s.history = append(s.history, schema.SystemMessage(systemPrompt))
	}
	return s
}

/* ------------------------------ Transcript ------------------------------ */

func (s *Session) AppendUser(content string) Message {
	return s.appendMessage(Message{Role: RoleUser, Content: content})
}

func (s *Session) AppendAssistant(content string) Message {
	return s.appendMessage(Message{Role: RoleAssistant, Content: content})
}

func (s *Session) AppendToolEvent(call ToolCall) Message {
	return s.appendMessage(Message{
		Role:     RoleTool,
		Content:  call.Name,
		ToolCall: &call,
	})
}

func (s *Session) appendMessage(m Message) Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = uuid.NewString()
	m.Timestamp = s.now().UTC()
	s.transcript = append(s.transcript, m)
	return m
}

// Transcript returns a snapshot copy of the transcript.
func (s *Session) Transcript() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transcript)
}

/* -------------------------------- History ------------------------------- */

func (s *Session) AppendHistory(msgs ...*schema.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range msgs {
		if m != nil {
			s.history = append(s.history, m)
		}
	}
}

// History returns the model-facing conversation so far.
func (s *Session) History() []*schema.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*schema.Message, len(s.history))
	copy(out, s.history)
	return out
}
