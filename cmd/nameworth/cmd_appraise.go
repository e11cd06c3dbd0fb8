package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func addOutputFlags(fs *pflag.FlagSet) {
	fs.Bool("json", false, "Emit results as JSON instead of a table")
}

func newAppraiseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appraise <domain> [domain...]",
		Short: "Appraise one or more domains",
		Long:  "Appraise domains: remote estimate when available, local model otherwise, composed into liquidity/market/buy-now tiers.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAppraise,
	}
	addOutputFlags(cmd.Flags())
	return cmd
}

func runAppraise(cmd *cobra.Command, args []string) error {
	stack, err := buildStack(configPath)
	if err != nil {
		return err
	}

	rows, err := stack.appraiser.AppraiseAll(context.Background(), args)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DOMAIN\tSOURCE\tBRAND\tSCORE\tLIQUIDITY\tMARKET\tBUY NOW\tSTATUS")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			r.Domain, r.Source, r.BrandLabel, r.BrandScore,
			price(r.Liquidity), price(r.Market), price(r.BuyNow), r.Status)
	}
	return w.Flush()
}

func price(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("$%d", *v)
}
