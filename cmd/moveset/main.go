package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/movedex/moveset-solver/internal/datastore"
	"github.com/movedex/moveset-solver/internal/models"
	"github.com/movedex/moveset-solver/internal/moveset"
	"github.com/movedex/moveset-solver/internal/search"
)

var (
	dbPath           string
	costsFile        string
	versionName      string
	level            int
	excludeVersions  []string
	excludeCreatures []string
	limit            int
	debug            bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "moveset CREATURE MOVE [MOVE...]",
		Short: "Moveset legality checker and acquisition planner",
		Long: `Checks whether a creature can legally know a set of up to four moves
in a given game version, and prints the cheapest sequences of actions
(start, learn, forget) that get it there.`,
		Args: cobra.MinimumNArgs(2),
		RunE: runSolver,
	}

	rootCmd.Flags().StringVarP(&dbPath, "db", "D", "data/movedex.sqlite", "Path to the game data database")
	rootCmd.Flags().StringVarP(&costsFile, "costs", "c", "", "Path to a YAML cost table replacing the defaults")
	rootCmd.Flags().StringVarP(&versionName, "version", "v", "black", "Version to search in")
	rootCmd.Flags().IntVarP(&level, "level", "l", 100, "Level of the creature")
	rootCmd.Flags().StringArrayVarP(&excludeVersions, "exclude-version", "V", nil, "Versions to exclude (with their version groups)")
	rootCmd.Flags().StringArrayVarP(&excludeCreatures, "exclude-creature", "P", nil, "Creatures to exclude (with their whole lineages)")
	rootCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Stop after this many optimal paths (0 = all)")
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "Print derived-data and search progress information")

	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSolver(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, err := datastore.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	opts, err := resolveOptions(ctx, store, args)
	if err != nil {
		return err
	}

	notifyCounter := 0
	if debug {
		opts.Notify = func(cost int, node search.Node, visited, frontier int) {
			if notifyCounter%100 == 0 {
				fmt.Fprintf(os.Stderr, "search iteration %d, cost %d; visited %d, frontier %d\r",
					notifyCounter, cost, visited, frontier)
			}
			notifyCounter++
		}
	}

	s, err := moveset.New(ctx, store, *opts)
	if err != nil {
		switch {
		case errors.Is(err, moveset.ErrNoMoves),
			errors.Is(err, moveset.ErrTooManyMoves),
			errors.Is(err, moveset.ErrTargetExcluded):
			color.Red("Rejected: %v", err)
			os.Exit(2)
		}
		return err
	}

	if debug {
		printDebugInfo(s)
	}

	results := s.Results()
	found := 0
	for {
		path, err := results.Next()
		if err != nil {
			return err
		}
		if path == nil {
			break
		}
		if found == 0 {
			color.Green("Optimal cost: %d", path.TotalCost)
		}
		found++
		printPath(found, path)
		if limit > 0 && found >= limit {
			break
		}
	}
	if debug {
		fmt.Fprintln(os.Stderr)
	}

	if found == 0 {
		color.Yellow("No way to obtain this moveset.")
		os.Exit(3)
	}
	return nil
}

// resolveOptions turns command-line identifiers into IDs. Per the contract,
// any unresolved identifier rejects the request before a search is built.
func resolveOptions(ctx context.Context, store datastore.Store, args []string) (*moveset.Options, error) {
	opts := &moveset.Options{Level: level}

	creature, err := store.CreatureByIdentifier(ctx, args[0])
	if err != nil {
		return nil, fmt.Errorf("creature %q not found, please use the identifier", args[0])
	}
	opts.Creature = creature

	for _, name := range args[1:] {
		move, err := store.MoveByIdentifier(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("move %q not found, please use the identifier", name)
		}
		opts.Moves = append(opts.Moves, move)
	}

	opts.VersionGroup, err = store.VersionGroupByVersion(ctx, versionName)
	if err != nil {
		return nil, fmt.Errorf("version %q not found, please use the identifier", versionName)
	}
	for _, name := range excludeVersions {
		vg, err := store.VersionGroupByVersion(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("version %q not found, please use the identifier", name)
		}
		opts.ExcludeVersions = append(opts.ExcludeVersions, vg)
	}
	for _, name := range excludeCreatures {
		c, err := store.CreatureByIdentifier(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("creature %q not found, please use the identifier", name)
		}
		opts.ExcludeCreatures = append(opts.ExcludeCreatures, c)
	}

	if costsFile != "" {
		opts.Costs, err = models.LoadCostsFile(costsFile)
		if err != nil {
			return nil, err
		}
	}
	return opts, nil
}

func printDebugInfo(s *moveset.Search) {
	infoColor := color.New(color.FgYellow)
	stats := s.Stats()
	infoColor.Printf("Loaded %d creatures in %d lineages; %d learn records; %d reachable version groups (%d deduplicated)\n",
		stats.Creatures, stats.Lineages, stats.LoadedRecords,
		stats.ReachableVersions, stats.DedupedVersions)

	// Pairwise trade costs between every reachable version group.
	vgs := s.ReachableVersionGroups()
	header := []string{""}
	for _, vg := range vgs {
		header = append(header, strconv.Itoa(int(vg)))
	}
	table := tablewriter.NewTable(os.Stdout, tablewriter.WithHeader(header))
	for _, from := range vgs {
		row := []string{strconv.Itoa(int(from))}
		for _, to := range vgs {
			if cost, ok := s.TradeCost(from, to); ok {
				row = append(row, strconv.Itoa(cost))
			} else {
				row = append(row, "---")
			}
		}
		_ = table.Append(row)
	}
	_ = table.Render()
}

func printPath(n int, path *models.ResultPath) {
	fmt.Printf("\n#%d (cost %d)\n", n, path.TotalCost)
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Step", "Action", "Detail"}),
	)
	for i, action := range path.Actions {
		_ = table.Append([]string{
			strconv.Itoa(i + 1),
			action.Keyword(),
			action.String(),
		})
	}
	_ = table.Render()
}
