package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/caiorodriguesslv/planwise-backend/internal/cli"
	"github.com/caiorodriguesslv/planwise-backend/internal/ledger"
)

func reportCmd() *cobra.Command {
	var (
		year  int
		month int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a financial summary",
		Long: `Print the user's financial summary: totals, balance, and goal tallies.
With --year (and optionally --month) the summary covers one calendar
period instead of the whole ledger.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svcs, err := initServices(ctx)
			if err != nil {
				return err
			}
			defer svcs.close()

			ownerID, err := resolveOwner(ctx, svcs, cmd.Flag("user").Value.String())
			if err != nil {
				return err
			}

			var summary *ledger.Summary
			switch {
			case month != 0:
				report, err := svcs.reports.Monthly(ctx, ownerID, year, time.Month(month))
				if err != nil {
					return err
				}
				fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Summary for %s %d", time.Month(month), year)))
				summary = &report.Summary
			case year != 0:
				report, err := svcs.reports.Yearly(ctx, ownerID, year)
				if err != nil {
					return err
				}
				fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Summary for %d", year)))
				summary = &report.Summary
			default:
				summary, err = svcs.reports.Summary(ctx, ownerID, nil)
				if err != nil {
					return err
				}
				fmt.Println(cli.TitleStyle.Render("Overall summary"))
			}

			fmt.Printf("  Incomes:  %12s\n", summary.TotalIncomes)
			fmt.Printf("  Expenses: %12s\n", summary.TotalExpenses)
			balance := fmt.Sprintf("%12s", summary.Balance)
			if summary.Balance.IsNegative() {
				balance = cli.ErrorStyle.Render(balance)
			}
			fmt.Printf("  Balance:  %s\n", balance)

			goals, err := svcs.reports.Goals(ctx, ownerID)
			if err != nil {
				return err
			}
			fmt.Println(cli.TitleStyle.Render("Goals"))
			fmt.Printf("  In progress: %d\n", goals.InProgress)
			fmt.Printf("  Achieved:    %d\n", goals.Achieved)
			fmt.Printf("  Expired:     %d\n", goals.Expired)

			return nil
		},
	}

	cmd.Flags().String("user", "", "owner email")
	cmd.Flags().IntVar(&year, "year", 0, "restrict to a calendar year")
	cmd.Flags().IntVar(&month, "month", 0, "restrict to a month of --year")

	return cmd
}
