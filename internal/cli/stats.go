package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/wellnest/internal/api"
	"github.com/terraincognita07/wellnest/internal/config"
	"github.com/terraincognita07/wellnest/internal/services"
)

type statsReport struct {
	Email       string                      `json:"email"`
	Stats       services.CycleStats         `json:"stats"`
	TopSymptoms []services.SymptomFrequency `json:"topSymptoms"`
}

func newStatsCommand() *cobra.Command {
	var (
		email string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print cycle statistics for a user as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			rt, err := openRuntime(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			return runStats(cmd.OutOrStdout(), rt.deps, email, limit, time.Now().In(rt.location))
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().IntVar(&limit, "symptoms", 5, "Number of top symptoms to include")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func runStats(out io.Writer, deps api.Dependencies, email string, limit int, now time.Time) error {
	user, err := deps.Auth.FindByEmail(email)
	if errors.Is(err, services.ErrUserNotFound) {
		return fmt.Errorf("user %s not found", services.NormalizeAuthEmail(email))
	}
	if err != nil {
		return err
	}

	stats, err := deps.Stats.CycleStats(user.ID, now)
	if err != nil {
		return fmt.Errorf("compute stats: %w", err)
	}
	symptoms, err := deps.Stats.TopCycleSymptoms(user.ID, limit)
	if err != nil {
		return fmt.Errorf("compute symptoms: %w", err)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(statsReport{
		Email:       user.Email,
		Stats:       stats,
		TopSymptoms: symptoms,
	})
}
