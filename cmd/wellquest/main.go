package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wellquest/internal/bootstrap"
	"wellquest/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataPath string

	root := &cobra.Command{
		Use:           "wellquest",
		Short:         "Wellness arcade for body and mind",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataPath, "data", ".", "data directory")

	root.AddCommand(newPlayCmd(&dataPath))
	root.AddCommand(newTrackCmd(&dataPath))
	root.AddCommand(newGamesCmd(&dataPath))
	root.AddCommand(newProfileCmd(&dataPath))
	root.AddCommand(newStatsCmd(&dataPath))
	root.AddCommand(newRewardCmd(&dataPath))
	root.AddCommand(newCoachCmd(&dataPath))
	return root
}

func loadApp(dataPath string) (*bootstrap.App, error) {
	cfg, err := config.New(dataPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newPlayCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Run the wellquest terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newTrackCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "track <physical|mental>",
		Short: "Switch the active wellness track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			profile, err := app.ProgressCLI.SelectTrack(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "track=%s level=%d score=%d\n", profile.CurrentTrack, profile.Level, profile.Score)
			return nil
		},
	}
}

func newGamesCmd(dataPath *string) *cobra.Command {
	var track string
	games := &cobra.Command{
		Use:   "games",
		Short: "List the games of a track with lock state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			ctx := context.Background()
			if track == "" {
				profile, err := app.ProgressCLI.Profile(ctx)
				if err != nil {
					return err
				}
				track = profile.CurrentTrack
				if track == "" {
					track = "physical"
				}
			}
			if err := app.ArcadeCLI.SelectTrack(ctx, track); err != nil {
				return err
			}
			cards, err := app.ArcadeCLI.Roster(ctx)
			if err != nil {
				return err
			}
			for _, card := range cards {
				lock := " "
				if card.Locked {
					lock = fmt.Sprintf("locked (level %d)", card.UnlockLevel)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-18s %s\n", card.ID, card.Name, lock)
			}
			return nil
		},
	}
	games.Flags().StringVar(&track, "track", "", "track: physical|mental (defaults to the profile's)")
	return games
}

func newProfileCmd(dataPath *string) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Player profile commands"}

	profile.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the player profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			p, err := app.ProgressCLI.Profile(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "level: %d\nscore: %d\nto next level: %d\ntrack: %s\n", p.Level, p.Score, p.PointsToNext, p.CurrentTrack)
			for track, ids := range p.UnlockedGames {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "unlocked %s: %s\n", track, strings.Join(ids, ", "))
			}
			return nil
		},
	})

	var confirmed bool
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Reset progression to a fresh profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return fmt.Errorf("pass --yes to confirm the reset")
			}
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			if err := app.ProgressCLI.Reset(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "profile reset")
			return nil
		},
	}
	reset.Flags().BoolVar(&confirmed, "yes", false, "confirm the reset")
	profile.AddCommand(reset)
	return profile
}

func newStatsCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show per-game play history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			stats, err := app.ProgressCLI.Stats(context.Background())
			if err != nil {
				return err
			}
			if len(stats) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no rounds played yet")
				return nil
			}
			for _, s := range stats {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-12s played=%d best=%d rounds=%d completions=%d points=%d\n",
					s.GameID, s.TimesPlayed, s.BestScore, s.Rounds, s.Completions, s.TotalPoints)
			}
			return nil
		},
	}
}

func newRewardCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reward",
		Short: "Claim the daily reward",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			out, err := app.Progress.CheckDailyReward(context.Background())
			if err != nil {
				return err
			}
			if !out.Granted {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "already claimed today")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "+%d points (score=%d level=%d)\n", out.Points, out.Score, out.Level)
			if out.LeveledUp {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "level up! now level %d\n", out.Level)
			}
			for _, u := range out.Unlocks {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "unlocked: %s (%s)\n", u.Name, u.Track)
			}
			return nil
		},
	}
}

func newCoachCmd(dataPath *string) *cobra.Command {
	coach := &cobra.Command{Use: "coach", Short: "Coach plugin commands"}

	coach.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List installed coach plugins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			coaches, err := app.CoachCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(coaches) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no coaches installed")
				return nil
			}
			for _, c := range coaches {
				state := "enabled"
				if !c.Enabled {
					state = "disabled"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", c.Name, c.Version, state, c.Binary)
			}
			return nil
		},
	})

	coach.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Check coach binaries, checksums, and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			results, err := app.CoachCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			for _, r := range results {
				status := "ok"
				if r.Error != "" {
					status = r.Error
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\tbinary=%t checksum=%t lifecycle=%t\t%s\n",
					r.Name, r.BinaryReachable, r.ChecksumValid, r.LifecycleOK, status)
			}
			return nil
		},
	})

	var track string
	var level int
	tip := &cobra.Command{
		Use:   "tip",
		Short: "Ask the coaches for a wellness tip",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			ctx := context.Background()
			if track == "" {
				profile, err := app.ProgressCLI.Profile(ctx)
				if err != nil {
					return err
				}
				track = profile.CurrentTrack
				level = profile.Level
				if track == "" {
					track = "physical"
				}
			}
			out, err := app.CoachCLI.Tip(ctx, track, level)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  (%s, %s)\n", out.Text, out.Author, out.Source)
			return nil
		},
	}
	tip.Flags().StringVar(&track, "track", "", "track: physical|mental (defaults to the profile's)")
	tip.Flags().IntVar(&level, "level", 1, "player level for tip selection")
	coach.AddCommand(tip)
	return coach
}
