package tool

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/simrs-agent/agent/contract"
)

func (e *Executor) provideMedicalInfo(ctx context.Context, args map[string]any) contractx.Envelope {
	topic := stringArg(args, "topic")
	if topic == "" {
		topic = "General"
	}

	content := fmt.Sprintf("SOP-2024 REFERENCE: Handling of %q requires initial triage. Make sure vital signs are stable.", topic)
	if extra := stringArg(args, "context"); extra != "" {
		content += fmt.Sprintf(" Context considered: %s.", extra)
	}
	return contractx.Envelope{Status: contractx.StatusSuccess, Content: content}
}
