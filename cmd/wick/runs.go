// Runs command inspects persisted pipeline results.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/secondq/wick/internal/runstore"
)

var (
	runsMolecule string
	runsMethod   string
	runsLimit    int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect persisted pipeline results",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Display one saved run in full",
	Long: `Show displays a saved run. The run id may be abbreviated to any
unique prefix, such as the eight characters the list command prints.`,
	Args: cobra.ExactArgs(1),
	RunE: runRunsShow,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete one saved run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all saved runs",
	Args:  cobra.NoArgs,
	RunE:  runRunsClear,
}

func init() {
	runsListCmd.Flags().StringVar(&runsMolecule, "molecule", "", "filter by molecule name")
	runsListCmd.Flags().StringVar(&runsMethod, "method", "", "filter by method (exact, vqe)")
	runsListCmd.Flags().IntVar(&runsLimit, "limit", 0, "maximum number of results (0 = no limit)")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsDeleteCmd)
	runsCmd.AddCommand(runsClearCmd)
}

func runRunsList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(runstore.Filter{
		Molecule: runsMolecule,
		Method:   runsMethod,
		Limit:    runsLimit,
	})
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if flagJSON {
		return printJSON(records)
	}

	if len(records) == 0 {
		fmt.Println("No runs found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tCREATED\tMOLECULE\tMETHOD\tTOTAL (Ha)")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.8f\n",
			shortID(rec.RunID),
			rec.CreatedAt.Format("2006-01-02 15:04"),
			rec.Molecule,
			rec.Method,
			rec.TotalEnergy,
		)
	}
	w.Flush()
	fmt.Printf("Total: %d run(s)\n", len(records))
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := resolveRun(store, args[0])
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(rec)
	}

	fmt.Printf("Run ID:             %s\n", rec.RunID)
	fmt.Printf("Created:            %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Molecule:           %s\n", rec.Molecule)
	fmt.Printf("Geometry:           %s\n", rec.Geometry)
	fmt.Printf("Basis:              %s\n", rec.Basis)
	fmt.Printf("Method:             %s\n", rec.Method)
	fmt.Printf("Encoding:           %s\n", rec.Encoding)
	fmt.Printf("Electronic energy:  %.8f Ha\n", rec.ElectronicEnergy)
	fmt.Printf("Nuclear repulsion:  %.8f Ha\n", rec.NuclearRepulsion)
	fmt.Printf("Total energy:       %.8f Ha\n", rec.TotalEnergy)
	if rec.EnergyShift != 0 {
		fmt.Printf("Energy shift:       %.8f Ha\n", rec.EnergyShift)
	}
	if rec.Iterations > 0 {
		fmt.Printf("Iterations:         %d major, %d evaluations\n", rec.Iterations, rec.Evaluations)
	}
	if len(rec.Parameters) > 0 {
		fmt.Printf("Parameters:         %s\n", formatFloats(rec.Parameters))
	}
	return nil
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := resolveRun(store, args[0])
	if err != nil {
		return err
	}
	if err := store.Delete(rec.RunID); err != nil {
		return fmt.Errorf("delete run: %w", err)
	}

	fmt.Printf("Deleted run %s\n", rec.RunID)
	return nil
}

func runRunsClear(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Clear()
	if err != nil {
		return fmt.Errorf("clear runs: %w", err)
	}

	fmt.Printf("Removed %d run(s)\n", n)
	return nil
}

// resolveRun fetches a run by id, expanding a unique prefix to the
// full id.
func resolveRun(store *runstore.Store, id string) (runstore.Record, error) {
	rec, err := store.Get(id)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, runstore.ErrNotFound) {
		return runstore.Record{}, fmt.Errorf("get run: %w", err)
	}

	records, lerr := store.List(runstore.Filter{})
	if lerr != nil {
		return runstore.Record{}, fmt.Errorf("list runs: %w", lerr)
	}

	var match *runstore.Record
	for i := range records {
		if !strings.HasPrefix(records[i].RunID, id) {
			continue
		}
		if match != nil {
			return runstore.Record{}, fmt.Errorf("%w: prefix %q is ambiguous", runstore.ErrInvalidID, id)
		}
		match = &records[i]
	}
	if match == nil {
		return runstore.Record{}, fmt.Errorf("run %q: %w", id, runstore.ErrNotFound)
	}
	return *match, nil
}

// shortID abbreviates a run id for table output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
