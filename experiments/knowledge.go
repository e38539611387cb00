package experiments

import (
	"context"
	"fmt"
	"sort"

	"github.com/logrusorgru/aurora"
	"github.com/rlmem/gating-rl/memory"
	"github.com/rlmem/gating-rl/types"
	"github.com/spf13/cobra"
)

// KnowledgeDemo seeds a local knowledge store and runs the boundary queries
// a knowledge-backed memory would issue: an exact-match lookup and a distinct
// lookup capped at a result limit.
func KnowledgeDemo(dbPath string) error {
	ctx := context.Background()
	source, err := memory.OpenSQLiteKnowledgeSource(ctx, dbPath)
	if err != nil {
		return err
	}
	defer source.Close()

	albums := []struct {
		entity string
		attrs  map[string]types.Value
	}{
		{"album:blue-train", map[string]types.Value{"title": types.String("Blue Train"), "artist": types.String("John Coltrane"), "year": types.Int(1957)}},
		{"album:giant-steps", map[string]types.Value{"title": types.String("Giant Steps"), "artist": types.String("John Coltrane"), "year": types.Int(1960)}},
		{"album:kind-of-blue", map[string]types.Value{"title": types.String("Kind of Blue"), "artist": types.String("Miles Davis"), "year": types.Int(1959)}},
	}
	for _, album := range albums {
		if err := source.Add(ctx, album.entity, album.attrs); err != nil {
			return err
		}
	}

	exact, err := source.Query(ctx, memory.Query{
		Match: map[string]types.Value{"artist": types.String("John Coltrane")},
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", aurora.Bold("exact match: artist = John Coltrane"))
	printBindings(exact)

	capped, err := source.Query(ctx, memory.Query{
		Select:   []string{"artist"},
		Distinct: true,
		Limit:    2,
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", aurora.Bold("distinct artists, capped at 2"))
	printBindings(capped)
	return nil
}

func printBindings(bindings []memory.Binding) {
	for _, binding := range bindings {
		names := make([]string, 0, len(binding))
		for name := range binding {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s = %s", name, binding[name])
		}
		fmt.Println("")
	}
}

func KnowledgeCommand() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "knowledge",
		Short: "Exercise the knowledge-source boundary against a local store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return KnowledgeDemo(dbPath)
		},
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", ":memory:", "Path of the SQLite knowledge store")
	return cmd
}
