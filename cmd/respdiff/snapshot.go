package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aleister1102/respdiff/internal/history"
	"github.com/aleister1102/respdiff/internal/jsonvalue"
)

func snapshotCmd(a *app) *cobra.Command {
	command := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage saved snapshots",
		Long: `Snapshots are named JSON documents kept in a local SQLite database.
"snapshot:<name>" refers to the latest snapshot saved under a name.`,
	}

	command.AddCommand(snapshotSaveCmd(a))
	command.AddCommand(snapshotListCmd(a))
	command.AddCommand(snapshotShowCmd(a))
	command.AddCommand(snapshotDeleteCmd(a))

	return command
}

func snapshotSaveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save NAME REF",
		Short: "Save a document under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, ref := args[0], args[1]
			return a.withStore(func(store *history.Store) error {
				loader, err := a.newLoader(cmd, store)
				if err != nil {
					return err
				}
				v, err := loader.Load(cmd.Context(), ref)
				if err != nil {
					return err
				}
				snap, err := store.SaveValue(name, ref, v)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved snapshot %s as %s\n", snap.Name, snap.ID)
				return err
			})
		},
	}
}

func snapshotListCmd(a *app) *cobra.Command {
	var limit int

	command := &cobra.Command{
		Use:   "list [NAME]",
		Short: "List snapshots, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return a.withStore(func(store *history.Store) error {
				snaps, err := store.List(name, limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(snaps) == 0 {
					_, err = fmt.Fprintln(out, "No snapshots.")
					return err
				}
				for _, s := range snaps {
					if _, err := fmt.Fprintf(out, "%s  %-20s  %s  %s\n",
						s.ID, s.Name, s.CreatedAt.Local().Format(time.DateTime), s.Source); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	command.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of snapshots to list (0 for all)")

	return command
}

func snapshotShowCmd(a *app) *cobra.Command {
	var compact bool

	command := &cobra.Command{
		Use:   "show ID",
		Short: "Print a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store *history.Store) error {
				snap, err := store.Get(args[0])
				if err != nil {
					return err
				}
				v, err := history.Value(snap)
				if err != nil {
					return err
				}
				out := jsonvalue.Pretty(v)
				if compact {
					out = jsonvalue.Compact(v)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			})
		},
	}

	command.Flags().BoolVar(&compact, "compact", false, "print compact JSON instead of indented")

	return command
}

func snapshotDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store *history.Store) error {
				if err := store.Delete(args[0]); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted snapshot %s\n", args[0])
				return err
			})
		},
	}
}

func (a *app) withStore(fn func(*history.Store) error) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}
