package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ronaldlvm7/finance-app/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Manage spending categories",
	}

	cmd.AddCommand(categoriesAddCmd())
	cmd.AddCommand(categoriesListCmd())

	return cmd
}

func categoriesAddCmd() *cobra.Command {
	var (
		parent string
		icon   string
		color  string
		fixed  bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			category := &model.Category{
				Name:    args[0],
				Icon:    icon,
				Color:   color,
				IsFixed: fixed,
			}
			if parent != "" {
				p, err := resolveCategory(ctx, store, parent)
				if err != nil {
					return err
				}
				category.ParentID = p.ID
			}

			if err := engine.AddCategory(ctx, category); err != nil {
				return err
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Created category %q", category.Name)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&parent, "parent", "p", "", "parent category")
	cmd.Flags().StringVar(&icon, "icon", "", "display icon")
	cmd.Flags().StringVar(&color, "color", "", "display color")
	cmd.Flags().BoolVar(&fixed, "fixed", false, "mark as a fixed monthly expense")

	return cmd
}

func categoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			_, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return err
			}
			if len(categories) == 0 {
				fmt.Println(mutedStyle.Render("No categories yet."))
				return nil
			}

			names := make(map[string]string, len(categories))
			for _, c := range categories {
				names[c.ID] = c.Name
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, headerStyle.Render("ID\tNAME\tPARENT\tFIXED"))
			for i := range categories {
				c := &categories[i]
				fixed := ""
				if c.IsFixed {
					fixed = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", shortID(c.ID), c.Name, names[c.ParentID], fixed)
			}
			return w.Flush()
		},
	}
}
