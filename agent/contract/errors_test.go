package contract

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: fmt.Errorf("%w: %w", ErrModelInvoke, ErrConfiguration), want: "configuration"},
		{err: fmt.Errorf("%w: bad payload", ErrRequest), want: "request"},
		{err: fmt.Errorf("%w: message is empty", ErrValidation), want: "validation"},
		{err: ErrTurnInFlight, want: "turn_in_flight"},
		{err: ErrRoundLimit, want: "round_limit"},
		{err: errors.New("boom"), want: "transport"},
	}
	for _, tc := range cases {
		if got := ErrorKind(tc.err); got != tc.want {
			t.Fatalf("ErrorKind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestUserMessageConfigurationCarriesDetail(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("%w: %w", ErrModelInvoke, fmt.Errorf("%w: openrouter api key is not set", ErrConfiguration))
	got := UserMessage(fmt.Errorf("node call_model: %w\n---\nnode path: [call_model]", err))

	if !strings.HasPrefix(got, "Configuration error:") {
		t.Fatalf("unexpected message: %q", got)
	}
	if !strings.HasSuffix(got, "(openrouter api key is not set)") {
		t.Fatalf("detail missing: %q", got)
	}
}

func TestUserMessageGenericTexts(t *testing.T) {
	t.Parallel()

	if got := UserMessage(ErrRequest); got != "Invalid request, please retry." {
		t.Fatalf("unexpected request message: %q", got)
	}
	if got := UserMessage(errors.New("dial tcp: timeout")); !strings.Contains(got, "interrupted") {
		t.Fatalf("unexpected transport message: %q", got)
	}
	if UserMessage(nil) != "" {
		t.Fatal("nil error must render empty")
	}
}

func TestUserMessageSeparatesEmptyMessageFromFormErrors(t *testing.T) {
	t.Parallel()

	empty := UserMessage(fmt.Errorf("%w: %w", ErrValidation, ErrEmptyMessage))
	if empty != "Please type a message before sending." {
		t.Fatalf("unexpected empty-message text: %q", empty)
	}

	form := UserMessage(fmt.Errorf("%w: Key: 'PatientInput.NIK' Error:Field validation for 'NIK' failed on the 'required' tag", ErrValidation))
	if form == empty || !strings.Contains(form, "fields") {
		t.Fatalf("form validation must not ask for a chat message: %q", form)
	}
}
