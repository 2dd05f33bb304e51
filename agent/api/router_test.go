package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orchestratorx "github.com/tanpawarit/simrs-agent/agent/agents/orchestrator"
	contractx "github.com/tanpawarit/simrs-agent/agent/contract"
	recordsx "github.com/tanpawarit/simrs-agent/agent/records"
	statex "github.com/tanpawarit/simrs-agent/agent/state"
	toolx "github.com/tanpawarit/simrs-agent/agent/tool"
)

type fakeChat struct {
	reply orchestratorx.Reply
	err   error
	got   []string
}

func (f *fakeChat) HandleMessage(ctx context.Context, text string, opts ...orchestratorx.TurnOption) (orchestratorx.Reply, error) {
	f.got = append(f.got, text)
	return f.reply, f.err
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T, chat ChatService) (http.Handler, *recordsx.Store, *statex.Session) {
	t.Helper()

	store := recordsx.New(recordsx.DefaultSeed())
	session := statex.NewSession("")
	router := NewRouter(Config{MaxRequests: 1000}, Deps{
		Chat:    chat,
		Session: session,
		Store:   store,
		Catalog: toolx.Catalog(),
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("# metrics"))
		}),
		Now: func() time.Time { return time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC) },
	})
	return router, store, session
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestChatReturnsReplyAndToolCalls(t *testing.T) {
	t.Parallel()

	chat := &fakeChat{reply: orchestratorx.Reply{
		Text:      "Dokter anak tersedia.",
		ToolCalls: []contractx.ToolCallEvent{{Tool: toolx.ToolScheduleMedicalService, Args: map[string]any{"resource_name": "Anak"}}},
	}}
	h, _, _ := newTestServer(t, chat)

	rec, env := do(t, h, http.MethodPost, "/v1/chat", `{"message":"dokter anak?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, []string{"dokter anak?"}, chat.got)

	var body chatResponse
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, "Dokter anak tersedia.", body.Reply)
	require.Len(t, body.ToolCalls, 1)
	assert.Equal(t, toolx.ToolScheduleMedicalService, body.ToolCalls[0].Tool)
}

func TestChatErrorStatusMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		code int
		kind string
	}{
		{err: fmt.Errorf("%w: key missing", contractx.ErrConfiguration), code: http.StatusServiceUnavailable, kind: "configuration"},
		{err: contractx.ErrRequest, code: http.StatusBadRequest, kind: "request"},
		{err: fmt.Errorf("%w: empty", contractx.ErrValidation), code: http.StatusBadRequest, kind: "validation"},
		{err: contractx.ErrTurnInFlight, code: http.StatusConflict, kind: "turn_in_flight"},
		{err: contractx.ErrRoundLimit, code: http.StatusLoopDetected, kind: "round_limit"},
		{err: fmt.Errorf("%w: reset", contractx.ErrTransport), code: http.StatusBadGateway, kind: "transport"},
	}
	for _, tc := range cases {
		h, _, _ := newTestServer(t, &fakeChat{err: tc.err})
		rec, env := do(t, h, http.MethodPost, "/v1/chat", `{"message":"halo"}`)
		assert.Equal(t, tc.code, rec.Code, tc.kind)
		assert.False(t, env.Success)
		assert.Equal(t, tc.kind, env.Error)
		assert.Equal(t, contractx.UserMessage(tc.err), env.Message)
	}
}

func TestChatMalformedBody(t *testing.T) {
	t.Parallel()

	chat := &fakeChat{}
	h, _, _ := newTestServer(t, chat)

	rec, env := do(t, h, http.MethodPost, "/v1/chat", `{"message":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "request", env.Error)
	assert.Empty(t, chat.got)
}

func TestMessagesReturnsTranscript(t *testing.T) {
	t.Parallel()

	h, _, session := newTestServer(t, &fakeChat{})
	session.AppendUser("halo")
	session.AppendAssistant("Selamat pagi")

	rec, env := do(t, h, http.MethodGet, "/v1/messages", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var msgs []statex.Message
	require.NoError(t, json.Unmarshal(env.Data, &msgs))
	require.Len(t, msgs, 2)
	assert.Equal(t, statex.RoleUser, msgs[0].Role)
	assert.Equal(t, "Selamat pagi", msgs[1].Content)
}

func TestCreatePatientAppliesDefaults(t *testing.T) {
	t.Parallel()

	h, store, _ := newTestServer(t, &fakeChat{})

	rec, env := do(t, h, http.MethodPost, "/v1/patients", `{"name":"Rina Kusuma","nik":"3201000011112222"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var p recordsx.Patient
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "P003", p.ID)
	assert.Equal(t, "2000-01-01", p.DOB)
	assert.Equal(t, "General Checkup", p.Diagnosis)
	assert.Equal(t, recordsx.PatientOutpatient, p.Status)
	assert.Equal(t, "2026-10-19", p.LastVisit)

	stored, ok := store.GetPatient("P003")
	require.True(t, ok)
	assert.Equal(t, p, stored)
}

func TestCreatePatientRequiresNameAndNIK(t *testing.T) {
	t.Parallel()

	h, store, _ := newTestServer(t, &fakeChat{})

	for _, body := range []string{`{"name":"Rina"}`, `{"nik":"123"}`, `{"name":"Rina","nik":"1","status":"Discharged"}`} {
		rec, env := do(t, h, http.MethodPost, "/v1/patients", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "validation", env.Error, body)
		assert.NotContains(t, env.Message, "type a message", body)
	}
	assert.Len(t, store.ListPatients(), 2)
}

func TestGetPatient(t *testing.T) {
	t.Parallel()

	h, _, _ := newTestServer(t, &fakeChat{})

	rec, env := do(t, h, http.MethodGet, "/v1/patients/P002", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var p recordsx.Patient
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "Siti Aminah", p.Name)

	rec, env = do(t, h, http.MethodGet, "/v1/patients/P404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", env.Error)

	rec, env = do(t, h, http.MethodGet, "/v1/patients", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []recordsx.Patient
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 2)
}

func TestDoctors(t *testing.T) {
	t.Parallel()

	h, _, _ := newTestServer(t, &fakeChat{})

	rec, env := do(t, h, http.MethodPost, "/v1/doctors", `{"name":"Dr. Agus, Sp.JP","specialty":"Jantung"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var d recordsx.Doctor
	require.NoError(t, json.Unmarshal(env.Data, &d))
	assert.Equal(t, "D003", d.ID)
	assert.Equal(t, []string{"09:00", "13:00"}, d.AvailableSlots)

	rec, _ = do(t, h, http.MethodPost, "/v1/doctors", `{"name":"Dr. Tanpa Spesialis"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, h, http.MethodGet, "/v1/doctors?q=anak", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var found []recordsx.Doctor
	require.NoError(t, json.Unmarshal(env.Data, &found))
	require.Len(t, found, 1)
	assert.Equal(t, "D001", found[0].ID)
}

func TestToolsAndMetrics(t *testing.T) {
	t.Parallel()

	h, _, _ := newTestServer(t, &fakeChat{})

	rec, env := do(t, h, http.MethodGet, "/v1/tools", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var tools []toolView
	require.NoError(t, json.Unmarshal(env.Data, &tools))
	require.Len(t, tools, 4)
	assert.Equal(t, toolx.ToolManagePatientData, tools[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mrec := httptest.NewRecorder()
	h.ServeHTTP(mrec, req)
	assert.Equal(t, http.StatusOK, mrec.Code)
	assert.Contains(t, mrec.Body.String(), "# metrics")
}
