package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/wonderland/internal/clipboard"
	"github.com/dshills/wonderland/internal/input"
	"github.com/dshills/wonderland/internal/lang"
)

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the supported language identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "LANGUAGE\tKIND\tLINE\tBLOCK")
			for _, l := range lang.All() {
				p := lang.For(l).Profile()
				line, block := p.LineComment, "-"
				if line == "" {
					line = "-"
				}
				if p.Block != nil {
					block = p.Block.Open + " " + p.Block.Close
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l, p.Kind, line, block)
			}
			return tw.Flush()
		},
	}
}

func newCommandsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the available commands, including Lua plugins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.newApp(cmd.Context(), clipboard.NewMemory(""), input.SourceCLI)
			if err != nil {
				return err
			}
			defer a.Close()

			descriptions := make(map[string]string)
			for _, p := range a.Plugins() {
				descriptions[p.Action()] = p.Description
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, name := range a.Commands() {
				fmt.Fprintf(tw, "%s\t%s\n", name, descriptions[name])
			}
			return tw.Flush()
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wonderland %s\n", version)
			fmt.Fprintf(out, "Commit: %s\n", commit)
			fmt.Fprintf(out, "Built: %s\n", date)
		},
	}
}
