package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/caiorodriguesslv/planwise-backend/internal/cli"
	"github.com/caiorodriguesslv/planwise-backend/internal/ofx"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.ofx>",
		Short: "Import an OFX/QFX bank statement",
		Long: `Import an OFX/QFX statement into a user's ledger. Money out becomes
expenses and money in becomes incomes, filed under per-kind catch-all
categories that are created on first use.`,
		Args: cobra.ExactArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().String("user", "", "owner email")
	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open statement: %w", err)
	}
	defer func() { _ = file.Close() }()

	entries, err := ofx.NewParser().ParseFile(ctx, file)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println(cli.SubtleStyle.Render("statement contains no entries"))
		return nil
	}

	svcs, err := initServices(ctx)
	if err != nil {
		return err
	}
	defer svcs.close()

	ownerID, err := resolveOwner(ctx, svcs, cmd.Flag("user").Value.String())
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(entries),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Importing entries..."),
	)

	importer := ofx.NewImporter(svcs.categories, svcs.transactions)
	result, err := importer.Import(ctx, ownerID, entries, func() { _ = bar.Add(1) })
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("imported %d entries", result.Imported)))
	if result.Skipped > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("skipped %d malformed entries", result.Skipped)))
	}
	return nil
}
