package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"plan-pricing/core/catalog"
	"plan-pricing/core/output"
	"plan-pricing/core/pricing"
	"plan-pricing/core/types"
	"plan-pricing/internal/config"
	"plan-pricing/internal/errors"
	"plan-pricing/internal/logging"
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Plan catalog commands",
}

var plansShowCmd = &cobra.Command{
	Use:   "show <catalog>",
	Short: "Show the plans in a catalog",
	Long: `Show every plan in a JSON or HCL catalog at one billing cycle.

The PRICE column is the formatted price at the cycle; PER MONTH is the
exact monthly equivalent (annual prices divided by twelve, monthly prices
standing in for missing annual ones).`,
	Args: cobra.ExactArgs(1),
	RunE: runPlansShow,
}

var plansCycleCmd = &cobra.Command{
	Use:   "cycle <code-or-name>",
	Short: "Print the period name for a billing cycle code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), pricing.BillingCyclePeriod(cycleArg(args[0])))
		return nil
	},
}

var (
	showCycle  string
	showFormat string
	showPlan   string
	showStrict bool
	showHidden bool
)

func init() {
	plansCmd.AddCommand(plansShowCmd)
	plansCmd.AddCommand(plansCycleCmd)

	plansShowCmd.Flags().StringVarP(&showCycle, "cycle", "c", "", "billing cycle (monthly, annual, lifetime)")
	plansShowCmd.Flags().StringVarP(&showFormat, "format", "f", "", "output format (cli, json)")
	plansShowCmd.Flags().StringVarP(&showPlan, "plan", "p", "", "show only the plan with this id")
	plansShowCmd.Flags().BoolVar(&showStrict, "strict", false, "reject catalogs with invalid plans")
	plansShowCmd.Flags().BoolVar(&showHidden, "all", false, "include hidden plans")
}

func runPlansShow(cmd *cobra.Command, args []string) (err error) {
	cfg := config.Get()
	log := logging.With(zap.String("catalog", args[0]))
	defer func() {
		if err != nil {
			logging.Error("plans show failed", zap.String("catalog", args[0]), zap.Error(err))
		}
	}()

	cycleName := showCycle
	if cycleName == "" {
		cycleName = cfg.Output.DefaultCycle
	}
	cycle, err := pricing.ParseBillingCycle(cycleName)
	if err != nil {
		return err
	}

	format := showFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	formatter, err := output.NewRegistry().Get(output.Format(format))
	if err != nil {
		return err
	}

	loader := catalog.NewLoader(catalog.WithStrict(showStrict || cfg.Catalog.Strict))
	c, err := loader.Load(args[0])
	if err != nil {
		return err
	}

	plans := c.Plans
	if !showHidden && !cfg.Output.ShowHidden {
		plans = c.Visible()
	}
	if showPlan != "" {
		p, ok := c.Find(types.PlanID(showPlan))
		if !ok {
			return errors.Newf(errors.TypeInput, "plan %q not found", showPlan).
				WithContext("file", args[0]).
				WithContext("plan_id", showPlan)
		}
		plans = []*pricing.Pricing{p}
	}

	log.Info("rendering plans",
		zap.String("cycle", cycle.Period()),
		zap.Int("plans", len(plans)),
	)

	return formatter.Render(cmd.OutOrStdout(), output.SummarizeAll(plans, cycle))
}

// cycleArg turns an integer argument into a cycle code so "12" on the
// command line means the annual code rather than the string "12".
func cycleArg(arg string) any {
	if n, err := strconv.Atoi(arg); err == nil {
		return n
	}
	return arg
}
