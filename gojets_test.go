package gojets_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/njchilds90/gojets"
	"github.com/njchilds90/gojets/algebra"
)

func decode(t *testing.T, raw string) gojets.ToolRequest {
	t.Helper()
	var req gojets.ToolRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		t.Fatalf("bad request JSON: %v", err)
	}
	return req
}

// ============================================================
// Jet ring and lift tools
// ============================================================

func TestHandleToolCall_JetRing(t *testing.T) {
	resp := gojets.HandleToolCall(decode(t, `{"tool":"jet_ring","params":{"vars":["x","y"],"trun":3}}`))
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map result, got %T", resp.Result)
	}
	gens, ok := result["generators"].([]string)
	if !ok {
		t.Fatalf("expected []string generators, got %T", result["generators"])
	}
	if got := strings.Join(gens, ","); got != "x0,x1,x2,y0,y1,y2" {
		t.Errorf("want x0,x1,x2,y0,y1,y2, got %s", got)
	}
	if result["blocks"] != 2 || result["trun"] != 3 {
		t.Errorf("want 2 blocks of 3, got %v x %v", result["blocks"], result["trun"])
	}
}

func TestHandleToolCall_JetRingMultiplicities(t *testing.T) {
	resp := gojets.HandleToolCall(decode(t, `{"tool":"jet_ring","params":{"vars":["x"],"mults":[2],"trun":2,"field":"GF(5)"}}`))
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if !strings.HasPrefix(resp.String, "GF(5)[x_1_0, x_1_1, x_2_0, x_2_1]") {
		t.Errorf("unexpected ring %s", resp.String)
	}
}

func TestHandleToolCall_HasseSchmidt(t *testing.T) {
	resp := gojets.HandleToolCall(gojets.ToolRequest{
		Tool: "hasse_schmidt",
		Params: map[string]interface{}{
			"vars":  []string{"x", "y"},
			"polys": []string{"x^2 + y^3 - 1"},
			"n":     2,
		},
	})
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	lifted, ok := resp.Result.([][]string)
	if !ok {
		t.Fatalf("expected [][]string result, got %T", resp.Result)
	}
	if len(lifted) != 1 || len(lifted[0]) != 3 {
		t.Fatalf("expected 1x3 components, got %v", lifted)
	}
	for _, want := range []string{"2*x0*x1", "3*y0^2*y1"} {
		if !strings.Contains(lifted[0][1], want) {
			t.Errorf("first order component %q should contain %q", lifted[0][1], want)
		}
	}
}

func TestHandleToolCall_HasseSchmidtTooDeep(t *testing.T) {
	resp := gojets.HandleToolCall(decode(t, `{"tool":"hasse_schmidt","params":{"vars":["x"],"polys":["x^2"],"n":2,"trun":2}}`))
	if resp.Kind != "DimensionMismatch" {
		t.Errorf("want DimensionMismatch, got %q (%s)", resp.Kind, resp.Error)
	}
}

// ============================================================
// Operator tools
// ============================================================

func TestHandleToolCall_Derive(t *testing.T) {
	tests := []struct {
		operator, variant string
		n                 float64
		want              string
	}{
		{"delta", "it", 1, "2*x0*x1"},
		{"delta", "it", 2, "2*x1^2 + 2*x0*x2"},
		{"deltilde", "it", 1, "2*x0*x1"},
		{"deltilde_corr", "it", 2, "x1^2 + 2*x0*x2"},
		{"delta", "list", 1, "x0^2, 2*x0*x1"},
		{"delta", "ideal", 1, "(x0^2, 2*x0*x1)"},
	}
	for _, tt := range tests {
		resp := gojets.HandleToolCall(gojets.ToolRequest{
			Tool: "derive",
			Params: map[string]interface{}{
				"vars": []interface{}{"x"}, "trun": float64(3),
				"operator": tt.operator, "variant": tt.variant,
				"polys": []interface{}{"x0^2"}, "n": tt.n,
			},
		})
		if resp.Error != "" {
			t.Errorf("%s/%s: unexpected error: %s", tt.operator, tt.variant, resp.Error)
			continue
		}
		if resp.String != tt.want {
			t.Errorf("%s/%s n=%v: want %s, got %s", tt.operator, tt.variant, tt.n, tt.want, resp.String)
		}
	}
}

func TestHandleToolCall_DeriveErrors(t *testing.T) {
	for _, raw := range []string{
		`{"tool":"derive","params":{"vars":["x"],"trun":3,"operator":"nabla","polys":["x0"],"n":1}}`,
		`{"tool":"derive","params":{"vars":["x"],"trun":3,"operator":"delta","variant":"sum","polys":["x0"],"n":1}}`,
		`{"tool":"derive","params":{"vars":["x"],"trun":3,"operator":"delta","polys":["x0"],"n":1.5}}`,
		`{"tool":"derive","params":{"vars":["x"],"trun":3,"operator":"delta","polys":["y0"],"n":1}}`,
	} {
		if resp := gojets.HandleToolCall(decode(t, raw)); resp.Error == "" {
			t.Errorf("expected error for %s", raw)
		}
	}
}

func TestHandleToolCall_ChangeBasis(t *testing.T) {
	resp := gojets.HandleToolCall(decode(t, `{"tool":"change_basis","params":{"vars":["x"],"trun":3,"direction":"hs_to_diff","polys":["x2 + x1"]}}`))
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if resp.String != "x1 + 1/2*x2" {
		t.Errorf("want x1 + 1/2*x2, got %s", resp.String)
	}

	resp = gojets.HandleToolCall(decode(t, `{"tool":"change_basis","params":{"vars":["x"],"trun":3,"field":"GF(2)","direction":"diff_to_hs","polys":["x2"]}}`))
	if resp.Kind != "ConfigurationError" {
		t.Errorf("want ConfigurationError in GF(2), got %q (%s)", resp.Kind, resp.Error)
	}
}

// ============================================================
// Gröbner and general component tools
// ============================================================

func TestHandleToolCall_Groebner(t *testing.T) {
	resp := gojets.HandleToolCall(decode(t, `{"tool":"groebner","params":{"vars":["x","y"],"order":"lex","polys":["x^2 + y^2 - 1","x - y"]}}`))
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if resp.String != "y^2 - 1/2, x - y" {
		t.Errorf("want y^2 - 1/2, x - y, got %s", resp.String)
	}

	resp = gojets.HandleToolCall(decode(t, `{"tool":"groebner","params":{"vars":["x","y","z"],"polys":["y - x^2","z - x^3"],"eliminate":["x"]}}`))
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if resp.String != "y^3 - z^2" {
		t.Errorf("want y^3 - z^2, got %s", resp.String)
	}
}

func TestHandleToolCall_GeneralComponent(t *testing.T) {
	sat := gojets.HandleToolCall(decode(t, `{"tool":"general_component","params":{
		"method":"saturation","vars":["x","y"],"ideal":["x^2 - y^3 - y^2"],"n":1}}`))
	if sat.Error != "" {
		t.Fatalf("unexpected error: %s", sat.Error)
	}
	result := sat.Result.(map[string]interface{})
	if result["witness"] != "2*x" {
		t.Errorf("want witness 2*x, got %v", result["witness"])
	}

	bir := gojets.HandleToolCall(decode(t, `{"tool":"general_component","params":{
		"method":"birational","vars":["x","y"],"model_vars":["s"],"map":["s^3 - s","s^2 - 1"],"n":1}}`))
	if bir.Error != "" {
		t.Fatalf("unexpected error: %s", bir.Error)
	}
	if _, ok := bir.Result.(map[string]interface{})["witness"]; ok {
		t.Error("birational result should carry no witness")
	}

	// Both generator lists describe the same ideal up to radical; check
	// membership of the saturation generators in the birational radical.
	r, err := algebra.NewRing(algebra.QQ, []string{"x0", "x1", "y0", "y1"}, "grevlex")
	if err != nil {
		t.Fatal(err)
	}
	satGens, err := algebra.ParseAll(r, result["generators"].([]string))
	if err != nil {
		t.Fatal(err)
	}
	birGens, err := algebra.ParseAll(r, bir.Result.(map[string]interface{})["generators"].([]string))
	if err != nil {
		t.Fatal(err)
	}
	I, _ := algebra.NewIdeal(r, satGens...)
	J, _ := algebra.NewIdeal(r, birGens...)
	same, err := algebra.NewEngine().RadicalEqual(context.Background(), I, J)
	if err != nil {
		t.Fatal(err)
	}
	if !same {
		t.Errorf("saturation %s and birational %s differ", I, J)
	}
}

func TestHandleToolCall_NoSmoothPoint(t *testing.T) {
	resp := gojets.HandleToolCall(decode(t, `{"tool":"general_component","params":{
		"method":"saturation","vars":["x","y"],"ideal":["x^2","x*y","y^2"],"n":1}}`))
	if resp.Kind != "NoSmoothPointCandidate" {
		t.Errorf("want NoSmoothPointCandidate, got %q (%s)", resp.Kind, resp.Error)
	}
}

func TestToolbox_PairBudget(t *testing.T) {
	tb := gojets.Toolbox{Engine: algebra.NewEngine(algebra.WithMaxPairs(1))}
	resp := tb.Handle(context.Background(), decode(t, `{"tool":"groebner","params":{"vars":["x","y","z"],"polys":["y - x^2","z - x^3"]}}`))
	if resp.Kind != "EngineFailure" {
		t.Errorf("want EngineFailure, got %q (%s)", resp.Kind, resp.Error)
	}
}

func TestHandleToolCall_HugeJetRing(t *testing.T) {
	for _, tool := range []string{"jet_ring", "derive", "change_basis"} {
		resp := gojets.HandleToolCall(gojets.ToolRequest{
			Tool: tool,
			Params: map[string]interface{}{
				"vars": []string{"x", "y"}, "trun": 1 << 62,
				"operator": "delta", "direction": "hs_to_diff", "polys": []string{"x0"}, "n": 1,
			},
		})
		if resp.Kind != "ConfigurationError" {
			t.Errorf("%s: want ConfigurationError, got %q (%s)", tool, resp.Kind, resp.Error)
		}
	}
	resp := gojets.HandleToolCall(decode(t, `{"tool":"jet_ring","params":{"vars":["x"],"mults":[4611686018427387904],"trun":2}}`))
	if resp.Kind != "ConfigurationError" {
		t.Errorf("want ConfigurationError for huge multiplicity, got %q (%s)", resp.Kind, resp.Error)
	}
}

func TestToolbox_MaxGenerators(t *testing.T) {
	tb := gojets.Toolbox{MaxGenerators: 8}
	tests := []struct {
		name   string
		raw    string
		reject bool
	}{
		{"within cap", `{"tool":"jet_ring","params":{"vars":["x","y"],"trun":4}}`, false},
		{"trun over cap", `{"tool":"jet_ring","params":{"vars":["x","y"],"trun":5}}`, true},
		{"mults over cap", `{"tool":"jet_ring","params":{"vars":["x"],"mults":[3],"trun":3}}`, true},
		{"lift order over cap", `{"tool":"hasse_schmidt","params":{"vars":["x","y"],"polys":["x*y"],"n":4}}`, true},
		{"huge lift order", `{"tool":"hasse_schmidt","params":{"vars":["x"],"polys":["x"],"n":4611686018427387904}}`, true},
		{"graph ring over cap", `{"tool":"general_component","params":{"method":"birational","vars":["x","y"],"model_vars":["s"],"map":["s","s^2"],"n":2}}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := tb.Handle(context.Background(), decode(t, tt.raw))
			if tt.reject && resp.Kind != "ConfigurationError" {
				t.Errorf("want ConfigurationError, got %q (%s)", resp.Kind, resp.Error)
			}
			if !tt.reject && resp.Error != "" {
				t.Errorf("unexpected error: %s", resp.Error)
			}
		})
	}
}

// ============================================================
// Dispatch
// ============================================================

func TestHandleToolCall_UnknownTool(t *testing.T) {
	resp := gojets.HandleToolCall(gojets.ToolRequest{Tool: "nonexistent", Params: map[string]interface{}{}})
	if resp.Error == "" {
		t.Error("expected error for unknown tool")
	}
}

func TestHandleToolCall_MissingParam(t *testing.T) {
	resp := gojets.HandleToolCall(gojets.ToolRequest{Tool: "groebner", Params: map[string]interface{}{"vars": []string{"x"}}})
	if !strings.Contains(resp.Error, "missing param: polys") {
		t.Errorf("want missing param error, got %q", resp.Error)
	}
}

func TestMCPToolSpec(t *testing.T) {
	spec := gojets.MCPToolSpec()
	for _, tool := range []string{"jet_ring", "hasse_schmidt", "derive", "change_basis", "groebner", "general_component", "mcp_spec"} {
		if !strings.Contains(spec, `"`+tool+`"`) {
			t.Errorf("MCP spec should contain %q", tool)
		}
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(spec), &m); err != nil {
		t.Errorf("MCP spec should be valid JSON: %v", err)
	}
	resp := gojets.HandleToolCall(gojets.ToolRequest{Tool: "mcp_spec"})
	if _, err := json.Marshal(resp); err != nil {
		t.Errorf("mcp_spec response should marshal: %v", err)
	}
}
