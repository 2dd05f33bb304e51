package api

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"
	contractx "github.com/tanpawarit/simrs-agent/agent/contract"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply     string                    `json:"reply"`
	ToolCalls []contractx.ToolCallEvent `json:"tool_calls"`
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, contractx.ErrRequest)
		return
	}

	ctx := r.Context()
	if h.chatTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.chatTimeout)
		defer cancel()
	}

	reply, err := h.chat.HandleMessage(ctx, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	calls := reply.ToolCalls
	if calls == nil {
		calls = []contractx.ToolCallEvent{}
	}
	writeSuccess(w, http.StatusOK, "", chatResponse{Reply: reply.Text, ToolCalls: calls})
}

func (h *Handler) Messages(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "", h.session.Transcript())
}

type toolView struct {
	Name string `json:"name"`
	Desc string `json:"description"`
}

func (h *Handler) Tools(w http.ResponseWriter, r *http.Request) {
	out := make([]toolView, 0, len(h.catalog))
	for _, t := range h.catalog {
		out = append(out, toolView{Name: t.Name, Desc: t.Desc})
	}
	writeSuccess(w, http.StatusOK, "", out)
}
