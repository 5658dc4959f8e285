package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/njchilds90/gojets/algebra"
	"github.com/njchilds90/gojets/errs"
	"github.com/njchilds90/gojets/internal/problem"
	"github.com/njchilds90/gojets/jets"
)

var (
	ringField string
	ringTrun  int
	ringMults []int

	// jetOrder overrides the problem's n when >= 0.
	jetOrder int

	operatorName    string
	componentMethod string
	groebnerOrder   string
	groebnerElim    []string
)

var ringCmd = &cobra.Command{
	Use:   "ring VAR...",
	Short: "Print the generators of a jet ring",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRing,
}

var liftCmd = &cobra.Command{
	Use:   "lift PROBLEM",
	Short: "Hasse-Schmidt lift of the problem ideal",
	Args:  cobra.ExactArgs(1),
	RunE:  runLift,
}

var deriveCmd = &cobra.Command{
	Use:   "derive PROBLEM",
	Short: "Iterate a jet derivation on the problem ideal",
	Long: `Applies delta, deltilde or deltilde_corr to each generator of the problem
ideal, placed at level 0 of its jet ring, and prints iterates 0..n.`,
	Args: cobra.ExactArgs(1),
	RunE: runDerive,
}

var componentCmd = &cobra.Command{
	Use:   "component PROBLEM",
	Short: "General component of the jet scheme",
	Args:  cobra.ExactArgs(1),
	RunE:  runComponent,
}

var compareCmd = &cobra.Command{
	Use:   "compare PROBLEM",
	Short: "Run both algorithms and check their radicals agree",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompare,
}

var groebnerCmd = &cobra.Command{
	Use:   "groebner PROBLEM",
	Short: "Reduced Gröbner basis of the problem ideal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroebner,
}

func init() {
	ringCmd.Flags().StringVar(&ringField, "field", "QQ", "Coefficient field: QQ or GF(p)")
	ringCmd.Flags().IntVar(&ringTrun, "trun", 2, "Levels per variable")
	ringCmd.Flags().IntSliceVar(&ringMults, "mults", nil, "Multiplicity of each variable (default all 1)")

	for _, c := range []*cobra.Command{liftCmd, deriveCmd, componentCmd, compareCmd} {
		c.Flags().IntVar(&jetOrder, "n", -1, "Jet order (default from the problem file)")
	}
	deriveCmd.Flags().StringVar(&operatorName, "operator", jets.Shift.String(), "delta, deltilde or deltilde_corr")
	componentCmd.Flags().StringVar(&componentMethod, "method", string(jets.MethodSaturation), "saturation or birational")
	groebnerCmd.Flags().StringVar(&groebnerOrder, "order", "grevlex", "Monomial order")
	groebnerCmd.Flags().StringSliceVar(&groebnerElim, "eliminate", nil, "Variables to eliminate")
}

func loadProblem(path string) (*problem.Problem, error) {
	p, err := problem.Load(path)
	if err != nil {
		return nil, err
	}
	if jetOrder >= 0 {
		p.N = jetOrder
	}
	logger.Debug("loaded problem",
		zap.String("path", path),
		zap.Stringer("ring", p.Base),
		zap.Int("n", p.N))
	return p, nil
}

// levelZero builds the jet ring of p with n+1 levels and places the
// problem ideal at level 0.
func levelZero(p *problem.Problem) (*jets.JetRing, []algebra.Poly, error) {
	order := p.Order
	if order == "" {
		order = cfg.Jets.Order
	}
	jr, err := jets.Over(p.Base, p.N+1, order)
	if err != nil {
		return nil, nil, err
	}
	emb, err := jets.BaseEmbedding(p.Base, jr)
	if err != nil {
		return nil, nil, err
	}
	polys, err := emb.ApplyAll(p.Ideal.Gens())
	if err != nil {
		return nil, nil, err
	}
	return jr, polys, nil
}

func runRing(cmd *cobra.Command, args []string) error {
	field, err := algebra.ParseField(ringField)
	if err != nil {
		return err
	}
	mults := ringMults
	if len(mults) == 0 {
		mults = make([]int, len(args))
		for i := range mults {
			mults[i] = 1
		}
	}
	jr, err := jets.NewJetRing(field, args, mults, ringTrun, cfg.Jets.Order)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, jr)
	for b := 0; b < jr.Blocks(); b++ {
		names := make([]string, jr.Trun())
		for l := range names {
			g, err := jr.Gen(jets.Index{Block: b, Level: l})
			if err != nil {
				return err
			}
			names[l] = g.String()
		}
		fmt.Fprintf(out, "%s: %s\n", jr.Block(b).Name, strings.Join(names, ", "))
	}
	return nil
}

func runLift(cmd *cobra.Command, args []string) error {
	p, err := loadProblem(args[0])
	if err != nil {
		return err
	}
	jr, polys, err := levelZero(p)
	if err != nil {
		return err
	}
	lifted, err := jets.HasseSchmidt(jr, polys, p.N)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for i, comps := range lifted {
		fmt.Fprintf(out, "HS(%s)\n", p.Ideal.Gens()[i])
		writeIndexed(out, comps)
	}
	return nil
}

func runDerive(cmd *cobra.Command, args []string) error {
	op, err := jets.ParseOperator(operatorName)
	if err != nil {
		return err
	}
	p, err := loadProblem(args[0])
	if err != nil {
		return err
	}
	jr, polys, err := levelZero(p)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for i, f := range polys {
		its, err := jr.Iterates(op, f, p.N)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s(%s)\n", op, p.Ideal.Gens()[i])
		writeIndexed(out, its)
	}
	return nil
}

func computeComponent(ctx context.Context, p *problem.Problem, method jets.Method) (*jets.Component, error) {
	opts := jetOptions(p.Order)
	switch method {
	case jets.MethodSaturation:
		return jets.GeneralComponentSaturation(ctx, p.Base, p.Ideal, p.N, opts...)
	case jets.MethodBirational:
		if !p.HasModel() {
			return nil, errs.Configf("gojets.component", "birational method needs a model section")
		}
		return jets.GeneralComponentBirational(ctx, p.Base, p.Model, p.ModelIdeal, p.Map, p.N, opts...)
	}
	return nil, errs.Configf("gojets.component", "unknown method %q (want saturation or birational)", method)
}

// computeAll runs every computation concurrently. The first failure cancels
// the context the others run under.
func computeAll(ctx context.Context, fns ...func(context.Context) (*jets.Component, error)) ([]*jets.Component, error) {
	out := make([]*jets.Component, len(fns))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, fn := range fns {
		eg.Go(func() error {
			c, err := fn(egCtx)
			out[i] = c
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func runComponent(cmd *cobra.Command, args []string) error {
	p, err := loadProblem(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()
	comp, err := computeComponent(ctx, p, jets.Method(componentMethod))
	if err != nil {
		return err
	}
	writeComponent(cmd.OutOrStdout(), comp)
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	p, err := loadProblem(args[0])
	if err != nil {
		return err
	}
	if !p.HasModel() {
		return errs.Configf("gojets.compare", "problem has no model section")
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()
	method := func(m jets.Method) func(context.Context) (*jets.Component, error) {
		return func(ctx context.Context) (*jets.Component, error) {
			return computeComponent(ctx, p, m)
		}
	}
	comps, err := computeAll(ctx, method(jets.MethodSaturation), method(jets.MethodBirational))
	if err != nil {
		return err
	}
	sat, bir := comps[0], comps[1]
	same, err := jets.SameRadical(ctx, sat, bir, jetOptions(p.Order)...)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	writeComponent(out, sat)
	writeComponent(out, bir)
	fmt.Fprintf(out, "same radical: %t\n", same)
	if !same {
		return fmt.Errorf("saturation and birational components differ at order %d", p.N)
	}
	return nil
}

func runGroebner(cmd *cobra.Command, args []string) error {
	p, err := loadProblem(args[0])
	if err != nil {
		return err
	}
	r, err := p.Base.WithOrder(groebnerOrder)
	if err != nil {
		return err
	}
	m, err := algebra.NameMap(p.Base, r)
	if err != nil {
		return err
	}
	I, err := m.Pushforward(p.Ideal)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()
	var basis []algebra.Poly
	if len(groebnerElim) > 0 {
		E, err := engine.EliminateNames(ctx, I, groebnerElim)
		if err != nil {
			return err
		}
		basis = E.Gens()
	} else if basis, err = engine.Basis(ctx, I); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, g := range basis {
		fmt.Fprintln(out, g)
	}
	return nil
}

func writeIndexed(out io.Writer, ps []algebra.Poly) {
	for k, f := range ps {
		fmt.Fprintf(out, "  [%d] %s\n", k, f)
	}
}

func writeComponent(out io.Writer, c *jets.Component) {
	fmt.Fprintf(out, "%s component in %s\n", c.Method, c.Ring)
	if !c.Witness.IsZero() {
		fmt.Fprintf(out, "  witness %s\n", c.Witness)
	}
	for _, g := range c.Ideal.Gens() {
		fmt.Fprintf(out, "  %s\n", g)
	}
}
