package contract

type ToolStatus string

const (
	StatusSuccess  ToolStatus = "success"
	StatusError    ToolStatus = "error"
	StatusNotFound ToolStatus = "not_found"
	StatusInfo     ToolStatus = "info"
)

// Envelope is the uniform tool outcome handed back to the model.
type Envelope struct {
	Status  ToolStatus `json:"status"`
	Message string     `json:"message,omitempty"`
	Data    any        `json:"data,omitempty"`
	Note    string     `json:"note,omitempty"`
	Content string     `json:"content,omitempty"`
}

type ToolRequest struct {
	CallID string         `json:"call_id,omitempty"`
	Tool   string         `json:"tool"`
	Args   map[string]any `json:"args,omitempty"`
}

type ToolResult struct {
	CallID string   `json:"call_id,omitempty"`
	Tool   string   `json:"tool"`
	Result Envelope `json:"result"`
}

// ToolCallEvent is reported to observers before a tool runs.
type ToolCallEvent struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}
