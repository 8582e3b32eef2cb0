package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caiorodriguesslv/planwise-backend/internal/cli"
	"github.com/caiorodriguesslv/planwise-backend/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage a user's categories",
	}
	cmd.PersistentFlags().String("user", "", "owner email")

	cmd.AddCommand(categoriesListCmd())
	cmd.AddCommand(categoriesAddCmd())
	cmd.AddCommand(categoriesDeleteCmd())
	return cmd
}

func categoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List live categories",
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

			cats, err := svcs.categories.List(ctx, ownerID)
			if err != nil {
				return err
			}

			if len(cats) == 0 {
				fmt.Println(cli.SubtleStyle.Render("no categories yet"))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render("Categories"))
			header := fmt.Sprintf("%-6s %-30s %s", "ID", "NAME", "TYPE")
			fmt.Println(cli.TableHeaderStyle.Render(header))
			for _, cat := range cats {
				fmt.Printf("%-6d %-30s %s\n", cat.ID, cat.Name, cat.Kind)
			}
			return nil
		},
	}
}

func categoriesAddCmd() *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kind, err := model.ParseCategoryKind(strings.ToUpper(kindFlag))
			if err != nil {
				return err
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

			cat, err := svcs.categories.Create(ctx, ownerID, args[0], kind)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("created %s category %q (id %d)", cat.Kind, cat.Name, cat.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "type", "EXPENSE", "category type (INCOME or EXPENSE)")
	return cmd
}

func categoriesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Retire a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category id %q", args[0])
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

			if err := svcs.categories.Delete(ctx, ownerID, id); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("retired category %d", id)))
			return nil
		},
	}
}
