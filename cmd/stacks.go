package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/minicloud/portal/internal/catalog"
	"github.com/minicloud/portal/internal/logging"
	"github.com/minicloud/portal/internal/model"
	"github.com/minicloud/portal/internal/stacks"
	"github.com/spf13/cobra"
)

var stacksCmd = &cobra.Command{
	Use:   "stacks",
	Short: "Print the stacks the portal would show",
	Long: `Fetch the stack list once, using the same source and fallbacks as the
server, and print it with the resolved icon, description and launch URL.

Examples:
  portal stacks           # table
  portal stacks --json    # raw records, same shape as GET /api/stacks`,
	Args: cobra.NoArgs,
	RunE: runStacks,
}

func init() {
	stacksCmd.Flags().Bool("json", false, "print raw records as JSON")
	rootCmd.AddCommand(stacksCmd)
}

func runStacks(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())

	svc, closeSource, err := newStackService(cfg, logger, nil)
	if err != nil {
		return err
	}
	defer closeSource()

	res := svc.Fetch(cmd.Context())
	if res.Degraded() {
		logger.Warn("stack source unavailable", "source", res.Source, "err", res.Err)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return writeStacksJSON(cmd.OutOrStdout(), res.Stacks)
	}
	return writeStacksTable(cmd.OutOrStdout(), catalog.NewResolver(cfg.LinkHost).Cards(res.Stacks), res.State)
}

func writeStacksJSON(w io.Writer, list []model.Stack) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string][]model.Stack{"stacks": list})
}

func writeStacksTable(w io.Writer, cards []model.Card, state stacks.State) error {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("", "NAME", "ID", "ENDPOINT", "DESCRIPTION", "URL")

	for _, c := range cards {
		t.Row(c.Icon, c.Name, strconv.Itoa(c.ID), strconv.Itoa(c.EndpointID), c.Description, c.URL)
	}

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d stacks (%s)\n", len(cards), state)
	return err
}
