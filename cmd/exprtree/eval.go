package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/exprtree"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [sample...]",
		Short: "Evaluate sample trees (default: linear)",
		RunE:  runEval,
	}
	cmd.Flags().StringArray("given", nil, "name=value variable definition (repeatable)")
	cmd.Flags().String("vars", "", "YAML file mapping variable names to integers")
	cmd.Flags().Bool("echo", true, "Print each tree before its result")
	cmd.Flags().Bool("list", false, "List samples and their variables")
	return cmd
}

func runEval(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	log := newLogger(cmd)
	f := exprtree.NewFactory(exprtree.WithLogger(log))

	if list, _ := cmd.Flags().GetBool("list"); list {
		for _, s := range samples {
			fmt.Fprintf(out, "%s\t%s\n", s.name, strings.Join(exprtree.Vars(s.build(f)), " "))
		}
		return nil
	}

	path, _ := cmd.Flags().GetString("vars")
	given, _ := cmd.Flags().GetStringArray("given")
	echo, _ := cmd.Flags().GetBool("echo")
	ctx, err := loadContext(path, given)
	if err != nil {
		return exitError(exitUsage, "%v", err)
	}
	log.Debug("context loaded", "vars", ctx.Vars())

	if len(args) == 0 {
		args = []string{"linear"}
	}
	trees := make([]exprtree.Expr, 0, len(args))
	for _, name := range args {
		s, ok := findSample(name)
		if !ok {
			return exitError(exitUsage, "unknown sample %q", name)
		}
		trees = append(trees, s.build(f))
	}

	failed := 0
	for _, e := range trees {
		r, err := e.Eval(ctx)
		if err != nil {
			failed++
			var u *exprtree.UnboundVariableError
			if errors.As(err, &u) {
				log.Debug("evaluation failed", "tree", e.String(), "variable", u.Name)
			}
			if echo {
				fmt.Fprintf(out, "%v : %v\n", e, err)
			} else {
				fmt.Fprintln(out, err)
			}
			continue
		}
		if echo {
			fmt.Fprintf(out, "%v = %d\n", e, r)
		} else {
			fmt.Fprintln(out, r)
		}
	}
	if failed > 0 {
		return exitError(exitEval, "%d of %d evaluations failed", failed, len(trees))
	}
	return nil
}
