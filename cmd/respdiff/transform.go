package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aleister1102/respdiff/internal/config"
	"github.com/aleister1102/respdiff/internal/differ"
	"github.com/aleister1102/respdiff/internal/history"
	"github.com/aleister1102/respdiff/internal/jsonvalue"
)

func redactCmd(a *app) *cobra.Command {
	var paths []string
	var compact bool

	command := &cobra.Command{
		Use:     "redact REF",
		Short:   "Print a document with the given paths removed",
		Example: `  respdiff redact -x meta.requestId -x 'items[*].ts' response.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths = config.NormalizeExclusionPaths(paths)
			for _, p := range paths {
				if err := config.ValidateExclusionPath(p); err != nil {
					return err
				}
			}
			return a.transform(cmd, args[0], compact, func(v jsonvalue.Value) jsonvalue.Value {
				return differ.RedactValue(v, paths)
			})
		},
	}

	command.Flags().StringArrayVarP(&paths, "exclude", "x", nil, "path to remove (repeatable)")
	_ = command.MarkFlagRequired("exclude")
	command.Flags().BoolVar(&compact, "compact", false, "print compact JSON instead of indented")

	return command
}

func canonicalizeCmd(a *app) *cobra.Command {
	var compact bool

	command := &cobra.Command{
		Use:     "canonicalize REF",
		Aliases: []string{"canon"},
		Short:   "Print a document with object keys and array elements sorted",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transform(cmd, args[0], compact, differ.CanonicalizeValue)
		},
	}

	command.Flags().BoolVar(&compact, "compact", false, "print compact JSON instead of indented")

	return command
}

// transform loads ref, applies fn and prints the result.
func (a *app) transform(cmd *cobra.Command, ref string, compact bool, fn func(jsonvalue.Value) jsonvalue.Value) error {
	var store *history.Store
	if needsStore(ref) {
		var err error
		if store, err = a.openStore(); err != nil {
			return err
		}
		defer store.Close()
	}

	loader, err := a.newLoader(cmd, store)
	if err != nil {
		return err
	}
	v, err := loader.Load(cmd.Context(), ref)
	if err != nil {
		return err
	}

	v = fn(v)
	out := jsonvalue.Pretty(v)
	if compact {
		out = jsonvalue.Compact(v)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
