package prompt

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/simrs-agent/agent/contract"
)

//go:embed template/system.txt
var systemRaw string

const todayPlaceholder = "{{today}}"

// PromptSet holds loaded prompt content.
type PromptSet struct {
	System string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
func LoadPromptSet() PromptSet {
	return PromptSet{
		System: strings.TrimSpace(systemRaw),
	}
}

// Validate reports ErrPromptMissing when a prompt is blank.
func (p PromptSet) Validate() error {
	if p.System == "" {
		return fmt.Errorf("%w: system", contractx.ErrPromptMissing)
	}
	return nil
}

// SystemFor renders the system prompt with the given date as "today".
func (p PromptSet) SystemFor(now time.Time) string {
	return strings.ReplaceAll(p.System, todayPlaceholder, now.Format("2 January 2006"))
}
