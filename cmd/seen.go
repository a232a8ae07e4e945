package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/gotender/internal/config"
	"github.com/jonesrussell/gotender/internal/models"
	"github.com/jonesrussell/gotender/internal/seenstore"
)

func newSeenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seen",
		Short: "Inspect the persisted seen store",
	}
	cmd.AddCommand(newSeenListCmd())
	cmd.AddCommand(newSeenCountCmd())
	return cmd
}

func loadSeen(cmd *cobra.Command) (map[string]models.SeenEntry, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	store, err := seenstore.Open(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open seen store: %w", err)
	}
	defer store.Close()

	return store.Load(cmd.Context())
}

func newSeenListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all seen entries, oldest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := loadSeen(cmd)
			if err != nil {
				return err
			}

			identities := make([]string, 0, len(entries))
			for identity := range entries {
				identities = append(identities, identity)
			}
			sort.Slice(identities, func(i, j int) bool {
				a, b := entries[identities[i]], entries[identities[j]]
				if a.FirstSeen.Equal(b.FirstSeen) {
					return identities[i] < identities[j]
				}
				return a.FirstSeen.Before(b.FirstSeen)
			})

			for _, identity := range identities {
				e := entries[identity]
				fmt.Printf("%s  notified=%t  %s  %s\n",
					e.FirstSeen.Format(time.RFC3339), e.Notified, identity, e.Title)
			}
			return nil
		},
	}
}

func newSeenCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of seen entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := loadSeen(cmd)
			if err != nil {
				return err
			}
			fmt.Println(len(entries))
			return nil
		},
	}
}
