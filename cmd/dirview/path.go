package main

import (
	"fmt"

	"github.com/dirview/dirview/internal/config"
	"github.com/dirview/dirview/internal/normalize"
	"github.com/spf13/cobra"
)

func newPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Path utilities for remote listings",
	}

	cmd.AddCommand(newNormalizeCmd())
	cmd.AddCommand(newBaseCmd())

	return cmd
}

func newNormalizeCmd() *cobra.Command {
	var style string
	var parent bool

	cmd := &cobra.Command{
		Use:   "normalize PATH...",
		Short: "Resolve .. segments and separators",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var n normalize.Normalizer
			switch style {
			case config.StyleUnix:
				n = normalize.Unix()
			case config.StyleWindows:
				n = normalize.New(normalize.WindowsRoot)
			default:
				return fmt.Errorf("unknown path style %q", style)
			}

			for _, arg := range args {
				out := n.Normalize(arg)
				if parent {
					out = n.NormalizeParent(arg)
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), out); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&style, "style", config.StyleUnix, "Path style: unix|windows")
	cmd.Flags().BoolVar(&parent, "parent", false, "Print the directory one level above each path")

	return cmd
}

func newBaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "base PATH...",
		Short: "Print the last element of each path",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), normalize.BaseName(arg)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
