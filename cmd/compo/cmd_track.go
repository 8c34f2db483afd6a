package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/compo-vcs/compo/pkg/component"
	"github.com/compo-vcs/compo/pkg/workspace"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a compo workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := workspace.Init(".")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "initialized workspace at %s\n", ws.Dir)
			return nil
		},
	}
}

func newTrackCmd() *cobra.Command {
	var imported bool

	cmd := &cobra.Command{
		Use:   "track <name> <dir>",
		Short: "Track a component directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, dir := args[0], args[1]

			ws, err := workspace.Open(".")
			if err != nil {
				return err
			}
			if _, ok := ws.Track.Get(name); ok {
				return fmt.Errorf("component %q is already tracked", name)
			}

			origin := component.OriginAuthored
			if imported {
				origin = component.OriginImported
			}
			ws.Track.Add(component.ID{Name: name}, dir, origin)
			if err := ws.Track.Write(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "tracking %s at %s (%s)\n", name, dir, origin)
			return nil
		},
	}

	cmd.Flags().BoolVar(&imported, "imported", false, "mark the component as imported from an external source")

	return cmd
}

func newSnapCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "snap <component> <version>",
		Short: "Record the working tree as a new component version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, version := args[0], args[1]

			ws, err := workspace.Open(".")
			if err != nil {
				return err
			}

			h, err := ws.Snapshot(name, version, message)
			if err != nil {
				return err
			}

			short := string(h)
			if len(short) > 8 {
				short = short[:8]
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s@%s %s] %s\n", name, version, short, message)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "snapshot log message")

	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracked components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := workspace.Open(".")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range ws.Track.Names() {
				entry, _ := ws.Track.Get(name)
				version := entry.Version
				if version == "" {
					version = "(no snapshot)"
				}
				fmt.Fprintf(out, "%s@%s\t%s\t%s\n", name, version, entry.Origin, entry.RootDir)
			}
			return nil
		},
	}
}
