// Package gojets exposes jet scheme computations as MCP tools.
//
// Design goals:
//   - Exact arithmetic over QQ and GF(p)
//   - Deterministic, stable output for identical requests
//   - AI/LLM friendly: polynomials travel as plain strings in JSON
//   - Embeddable in Go services, CLI tools, and agent backends
package gojets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/njchilds90/gojets/algebra"
	"github.com/njchilds90/gojets/errs"
	"github.com/njchilds90/gojets/jets"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
	// Kind classifies Error, e.g. "DimensionMismatch".
	Kind string `json:"kind,omitempty"`
}

// Toolbox runs tool calls against one engine. The zero value is ready to
// use with a silent logger and an unbounded engine.
type Toolbox struct {
	Engine *algebra.Engine
	Logger *zap.Logger
	// Order is the default monomial order when a request names none.
	Order string
	// MaxGenerators rejects requests whose jet ring would have more
	// generators; 0 leaves only jets.MaxGenerators.
	MaxGenerators int
}

// HandleToolCall runs req with a default Toolbox.
func HandleToolCall(req ToolRequest) ToolResponse {
	var tb Toolbox
	return tb.Handle(context.Background(), req)
}

func fail(err error) ToolResponse {
	resp := ToolResponse{Error: err.Error()}
	if k := errs.KindOf(err); k != 0 {
		resp.Kind = k.String()
	}
	return resp
}

// Handle dispatches req to the named tool.
func (tb *Toolbox) Handle(ctx context.Context, req ToolRequest) ToolResponse {
	log := tb.Logger
	if log == nil {
		log = zap.NewNop()
	}
	p := params(req.Params)
	opts := []jets.Option{jets.WithEngine(tb.Engine), jets.WithLogger(log)}
	order := func() string {
		if s, ok := p.optStr("order"); ok {
			return s
		}
		return tb.Order
	}

	var resp ToolResponse
	if err := tb.checkSize(p); err != nil {
		log.Debug("tool call rejected", zap.String("tool", req.Tool), zap.Error(err))
		return fail(err)
	}
	var err error
	switch req.Tool {
	case "jet_ring":
		resp, err = tb.jetRing(p, order())
	case "hasse_schmidt":
		resp, err = tb.hasseSchmidt(p, order())
	case "derive":
		resp, err = tb.derive(p, order())
	case "change_basis":
		resp, err = tb.changeBasis(p, order())
	case "groebner":
		resp, err = tb.groebner(ctx, p, order())
	case "general_component":
		if s, ok := p.optStr("order"); ok {
			opts = append(opts, jets.WithOrder(s))
		} else if tb.Order != "" {
			opts = append(opts, jets.WithOrder(tb.Order))
		}
		resp, err = tb.generalComponent(ctx, p, opts)
	case "mcp_spec":
		return ToolResponse{Result: json.RawMessage(MCPToolSpec()), String: "ok"}
	default:
		err = fmt.Errorf("unknown tool: %s", req.Tool)
	}
	if err != nil {
		log.Debug("tool call failed", zap.String("tool", req.Tool), zap.Error(err))
		return fail(err)
	}
	return resp
}

// ============================================================
// Tools
// ============================================================

func (tb *Toolbox) jetRing(p params, order string) (ToolResponse, error) {
	jr, err := p.jetRing(order)
	if err != nil {
		return ToolResponse{}, err
	}
	meta := jr.Meta()
	return ToolResponse{
		Result: map[string]interface{}{
			"generators": jr.Ring().Names(),
			"blocks":     meta.Blocks,
			"trun":       meta.Trun,
			"order":      jr.Ring().Order().String(),
		},
		String: jr.String(),
	}, nil
}

func (tb *Toolbox) hasseSchmidt(p params, order string) (ToolResponse, error) {
	base, err := p.ring("vars", "")
	if err != nil {
		return ToolResponse{}, err
	}
	n, err := p.integer("n")
	if err != nil {
		return ToolResponse{}, err
	}
	polys, err := p.polys(base, "polys")
	if err != nil {
		return ToolResponse{}, err
	}
	trun := n + 1
	if t, ok, err := p.optInteger("trun"); err != nil {
		return ToolResponse{}, err
	} else if ok {
		trun = t
	}
	jr, err := jets.Over(base, trun, order)
	if err != nil {
		return ToolResponse{}, err
	}
	emb, err := jets.BaseEmbedding(base, jr)
	if err != nil {
		return ToolResponse{}, err
	}
	level0, err := emb.ApplyAll(polys)
	if err != nil {
		return ToolResponse{}, err
	}
	lifted, err := jets.HasseSchmidt(jr, level0, n)
	if err != nil {
		return ToolResponse{}, err
	}
	out := make([][]string, len(lifted))
	lines := make([]string, 0, len(lifted))
	for i, comps := range lifted {
		out[i] = polyStrings(comps)
		lines = append(lines, strings.Join(out[i], ", "))
	}
	return ToolResponse{Result: out, String: strings.Join(lines, "\n")}, nil
}

// derive applies one operator family to polynomials of a jet ring. variant
// is "it" (the n-th iterate of each), "list" (iterates 0..n of each) or
// "ideal" (all of them as one generator list).
func (tb *Toolbox) derive(p params, order string) (ToolResponse, error) {
	jr, err := p.jetRing(order)
	if err != nil {
		return ToolResponse{}, err
	}
	opName, err := p.str("operator")
	if err != nil {
		return ToolResponse{}, err
	}
	op, err := jets.ParseOperator(opName)
	if err != nil {
		return ToolResponse{}, err
	}
	variant := "list"
	if v, ok := p.optStr("variant"); ok {
		variant = v
	}
	n, err := p.integer("n")
	if err != nil {
		return ToolResponse{}, err
	}
	polys, err := p.polys(jr.Ring(), "polys")
	if err != nil {
		return ToolResponse{}, err
	}

	switch variant {
	case "it":
		out := make([]string, len(polys))
		for i, f := range polys {
			g, err := jr.Iterate(op, f, n)
			if err != nil {
				return ToolResponse{}, err
			}
			out[i] = g.String()
		}
		return ToolResponse{Result: out, String: strings.Join(out, ", ")}, nil
	case "list":
		out := make([][]string, len(polys))
		lines := make([]string, len(polys))
		for i, f := range polys {
			l, err := jr.Iterates(op, f, n)
			if err != nil {
				return ToolResponse{}, err
			}
			out[i] = polyStrings(l)
			lines[i] = strings.Join(out[i], ", ")
		}
		return ToolResponse{Result: out, String: strings.Join(lines, "\n")}, nil
	case "ideal":
		I, err := jr.IterateIdeal(op, polys, n)
		if err != nil {
			return ToolResponse{}, err
		}
		return ToolResponse{Result: polyStrings(I.Gens()), String: I.String()}, nil
	}
	return ToolResponse{}, errs.Configf("derive", "unknown variant %q (want it, list or ideal)", variant)
}

// changeBasis applies HSToDiff ("hs_to_diff") or DiffToHS ("diff_to_hs").
func (tb *Toolbox) changeBasis(p params, order string) (ToolResponse, error) {
	jr, err := p.jetRing(order)
	if err != nil {
		return ToolResponse{}, err
	}
	dir, err := p.str("direction")
	if err != nil {
		return ToolResponse{}, err
	}
	var m *algebra.RingMap
	switch dir {
	case "hs_to_diff":
		m, err = jets.HSToDiff(jr)
	case "diff_to_hs":
		m, err = jets.DiffToHS(jr)
	default:
		err = errs.Configf("change_basis", "unknown direction %q", dir)
	}
	if err != nil {
		return ToolResponse{}, err
	}
	polys, err := p.polys(jr.Ring(), "polys")
	if err != nil {
		return ToolResponse{}, err
	}
	imgs, err := m.ApplyAll(polys)
	if err != nil {
		return ToolResponse{}, err
	}
	out := polyStrings(imgs)
	return ToolResponse{Result: out, String: strings.Join(out, ", ")}, nil
}

func (tb *Toolbox) groebner(ctx context.Context, p params, order string) (ToolResponse, error) {
	r, err := p.ring("vars", order)
	if err != nil {
		return ToolResponse{}, err
	}
	polys, err := p.polys(r, "polys")
	if err != nil {
		return ToolResponse{}, err
	}
	I, err := algebra.NewIdeal(r, polys...)
	if err != nil {
		return ToolResponse{}, err
	}
	var basis []algebra.Poly
	if elim, ok, err := p.optList("eliminate"); err != nil {
		return ToolResponse{}, err
	} else if ok {
		E, err := tb.Engine.EliminateNames(ctx, I, elim)
		if err != nil {
			return ToolResponse{}, err
		}
		basis = E.Gens()
	} else {
		basis, err = tb.Engine.Basis(ctx, I)
		if err != nil {
			return ToolResponse{}, err
		}
	}
	out := polyStrings(basis)
	return ToolResponse{Result: out, String: strings.Join(out, ", ")}, nil
}

func (tb *Toolbox) generalComponent(ctx context.Context, p params, opts []jets.Option) (ToolResponse, error) {
	method, err := p.str("method")
	if err != nil {
		return ToolResponse{}, err
	}
	n, err := p.integer("n")
	if err != nil {
		return ToolResponse{}, err
	}
	base, err := p.ring("vars", "")
	if err != nil {
		return ToolResponse{}, err
	}

	var comp *jets.Component
	switch jets.Method(method) {
	case jets.MethodSaturation:
		polys, err := p.polys(base, "ideal")
		if err != nil {
			return ToolResponse{}, err
		}
		I, err := algebra.NewIdeal(base, polys...)
		if err != nil {
			return ToolResponse{}, err
		}
		comp, err = jets.GeneralComponentSaturation(ctx, base, I, n, opts...)
		if err != nil {
			return ToolResponse{}, err
		}
	case jets.MethodBirational:
		model, err := p.ring("model_vars", "")
		if err != nil {
			return ToolResponse{}, err
		}
		birimage, err := p.polys(model, "map")
		if err != nil {
			return ToolResponse{}, err
		}
		var modelIdeal *algebra.Ideal
		if _, ok := p["model_ideal"]; ok {
			gens, err := p.polys(model, "model_ideal")
			if err != nil {
				return ToolResponse{}, err
			}
			if modelIdeal, err = algebra.NewIdeal(model, gens...); err != nil {
				return ToolResponse{}, err
			}
		}
		comp, err = jets.GeneralComponentBirational(ctx, base, model, modelIdeal, birimage, n, opts...)
		if err != nil {
			return ToolResponse{}, err
		}
	default:
		return ToolResponse{}, errs.Configf("general_component", "unknown method %q (want saturation or birational)", method)
	}
	gens := polyStrings(comp.Ideal.Gens())
	result := map[string]interface{}{
		"method":     string(comp.Method),
		"generators": gens,
		"ring":       comp.Ring.Ring().Names(),
	}
	if !comp.Witness.IsZero() {
		result["witness"] = comp.Witness.String()
	}
	return ToolResponse{Result: result, String: comp.Ideal.String()}, nil
}

// checkSize estimates the jet ring a request builds, blocks times levels,
// from vars, mults and model_vars with trun, or n+1 without it.
func (tb *Toolbox) checkSize(p params) error {
	limit := tb.MaxGenerators
	if limit <= 0 {
		return nil
	}
	vars, _, err := p.optList("vars")
	if err != nil {
		return err
	}
	blocks := len(vars)
	mults, ok, err := p.optIntList("mults")
	if err != nil {
		return err
	}
	if ok {
		blocks = 0
		for _, m := range mults {
			if m > limit {
				return errs.Configf("toolbox", "multiplicity %d exceeds %d generators", m, limit)
			}
			blocks += m
		}
	}
	model, _, err := p.optList("model_vars")
	if err != nil {
		return err
	}
	blocks += len(model)

	levels := 1
	if trun, ok, err := p.optInteger("trun"); err != nil {
		return err
	} else if ok {
		levels = trun
	} else if n, ok, err := p.optInteger("n"); err != nil {
		return err
	} else if ok {
		if n >= limit {
			return errs.Configf("toolbox", "jet order %d exceeds %d generators", n, limit)
		}
		levels = n + 1
	}
	if blocks > 0 && levels > limit/blocks {
		return errs.Configf("toolbox", "%d blocks of %d levels exceed %d generators", blocks, levels, limit)
	}
	return nil
}

func polyStrings(ps []algebra.Poly) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}

// ============================================================
// MCP spec
// ============================================================

func MCPToolSpec() string {
	ring := map[string]string{"vars": "array", "field": "string", "order": "string"}
	with := func(extra map[string]string) map[string]string {
		out := map[string]string{}
		for k, v := range ring {
			out[k] = v
		}
		for k, v := range extra {
			out[k] = v
		}
		return out
	}
	tools := []map[string]interface{}{
		ts("jet_ring", "Build a jet ring. Optional: mults (int[]), field (QQ | GF(p)), order", []string{"vars", "trun"},
			with(map[string]string{"trun": "integer", "mults": "array"})),
		ts("hasse_schmidt", "Hasse-Schmidt lift of base polynomials to jet order n", []string{"vars", "polys", "n"},
			with(map[string]string{"polys": "array", "n": "integer", "trun": "integer"})),
		ts("derive", "Apply delta | deltilde | deltilde_corr to jet polynomials. variant: it | list | ideal", []string{"vars", "trun", "operator", "polys", "n"},
			with(map[string]string{"trun": "integer", "mults": "array", "operator": "string", "variant": "string", "polys": "array", "n": "integer"})),
		ts("change_basis", "Rescale jet coordinates. direction: hs_to_diff | diff_to_hs", []string{"vars", "trun", "direction", "polys"},
			with(map[string]string{"trun": "integer", "mults": "array", "direction": "string", "polys": "array"})),
		ts("groebner", "Reduced Gröbner basis. Optional: eliminate (string[])", []string{"vars", "polys"},
			with(map[string]string{"polys": "array", "eliminate": "array"})),
		ts("general_component", "General component of the n-th jet scheme. method: saturation (ideal) | birational (model_vars, model_ideal, map)", []string{"method", "vars", "n"},
			with(map[string]string{"method": "string", "n": "integer", "ideal": "array", "model_vars": "array", "model_ideal": "array", "map": "array"})),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
