package tool

import (
	"context"
	"strings"
	"testing"

	contractx "github.com/tanpawarit/simrs-agent/agent/contract"
	recordsx "github.com/tanpawarit/simrs-agent/agent/records"
)

func TestCatalogAdvertisesFourTools(t *testing.T) {
	t.Parallel()

	infos, executor := Build(recordsx.New(recordsx.DefaultSeed()), Config{})
	if len(infos) != 4 {
		t.Fatalf("expected 4 tool infos, got %d", len(infos))
	}

	want := []string{
		ToolManagePatientData,
		ToolScheduleMedicalService,
		ToolManageHospitalAdmin,
		ToolProvideMedicalInfo,
	}
	for i, name := range want {
		if infos[i].Name != name {
			t.Fatalf("tool[%d] = %s, want %s", i, infos[i].Name, name)
		}
		if infos[i].Desc == "" {
			t.Fatalf("tool %s has empty description", name)
		}
		if infos[i].ParamsOneOf == nil {
			t.Fatalf("tool %s has no parameter schema", name)
		}
	}
	if executor == nil {
		t.Fatal("executor must not be nil")
	}
}

func TestCatalogToolsAreAllExecutable(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(recordsx.New(recordsx.DefaultSeed()), Config{})
	for _, info := range Catalog() {
		out := executor.Execute(context.Background(), contractx.ToolRequest{Tool: info.Name})
		if out.Tool != info.Name {
			t.Fatalf("unexpected tool: %s", out.Tool)
		}
		if out.Result.Status == "" {
			t.Fatalf("tool %s returned empty status", info.Name)
		}
		if strings.HasPrefix(out.Result.Message, "Unknown tool") {
			t.Fatalf("tool %s is not wired to a handler", info.Name)
		}
	}
}

func TestParametersMatchCatalog(t *testing.T) {
	t.Parallel()

	for _, info := range Catalog() {
		params := Parameters(info.Name)
		if len(params) == 0 {
			t.Fatalf("tool %s has no parameter table", info.Name)
		}
	}
	if Parameters("order_pizza") != nil {
		t.Fatal("unknown tool must have no parameters")
	}

	action := Parameters(ToolManagePatientData)["action"]
	if action == nil || !action.Required || len(action.Enum) != 3 {
		t.Fatalf("unexpected action parameter: %+v", action)
	}
	if Parameters(ToolScheduleMedicalService)["datetime"].Required {
		t.Fatal("datetime must be optional")
	}
}

func TestParametersReturnsIndependentCopy(t *testing.T) {
	t.Parallel()

	params := Parameters(ToolManagePatientData)
	params["action"].Required = false
	params["action"].Enum[0] = "drop_table"
	delete(params, "details")

	again := Parameters(ToolManagePatientData)
	if !again["action"].Required || again["action"].Enum[0] == "drop_table" {
		t.Fatalf("catalog parameter was mutated: %+v", again["action"])
	}
	if _, ok := again["details"]; !ok {
		t.Fatal("catalog parameter table lost a key")
	}
}
