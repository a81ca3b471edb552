package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/go-satellite/satellite/pkg/queens"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "queens N",
		Short: "queens",
		Long:  `Solve the N-queens problem via Tseitin transformation and the satellite DPLL solver. Exits 0 whether or not N is satisfiable.`,
		Args:  cobra.ExactArgs(1),

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Wrapf(err, "invalid board size %q", args[0])
			}
			return solveOne(n)
		},
	}

	rootCmd.AddCommand(batchCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	if err := rootCmd.PersistentFlags().MarkHidden("debug"); err != nil {
		log.Panic(err.Error())
	}

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func solveOne(n int) error {
	board, err := queens.New(n)
	if err != nil {
		return err
	}
	sol, err := board.Solve()
	if err != nil {
		return err
	}
	if !sol.Satisfiable {
		log.Infof("%d-queens: unsatisfiable", n)
		return nil
	}
	log.Infof("%d-queens: satisfiable", n)
	fmt.Print(board.Render(sol))
	return nil
}

func batchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch N [N...]",
		Short: "solve several board sizes concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ns := make([]int, len(args))
			for i, a := range args {
				n, err := strconv.Atoi(a)
				if err != nil {
					return errors.Wrapf(err, "invalid board size %q", a)
				}
				ns[i] = n
			}

			results, err := queens.SolveBatch(context.Background(), ns)
			if err != nil {
				return err
			}
			for _, r := range results {
				if r.Err != nil {
					log.Errorf("%d-queens: %v", r.N, r.Err)
					continue
				}
				if !r.Solution.Satisfiable {
					fmt.Printf("%d-queens: unsatisfiable\n", r.N)
					continue
				}
				board, err := queens.New(r.N)
				if err != nil {
					log.Errorf("%d-queens: %v", r.N, err)
					continue
				}
				fmt.Printf("%d-queens: satisfiable\n%s", r.N, board.Render(r.Solution))
			}
			return nil
		},
	}
}
