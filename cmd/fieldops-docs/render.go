package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nurpe/fieldops-docs/internal/model"
	"github.com/nurpe/fieldops-docs/internal/service"
	"github.com/nurpe/fieldops-docs/internal/sink"
)

// cliUser identifies documents rendered from the command line in logs.
var cliUser = uuid.NewSHA1(uuid.NameSpaceURL, []byte("fieldops-docs:cli"))

var renderOut string

var renderCmd = &cobra.Command{
	Use:   "render [budget|order|workdays] <id>",
	Short: "Render a document into the archive directory",
	Args:  cobra.ExactArgs(2),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output directory (default DOCS_ARCHIVE_DIR, then .)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[1])
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", args[1], err)
	}

	switch args[0] {
	case "budget", "order", "workdays":
	default:
		return fmt.Errorf("unknown document kind %q", args[0])
	}

	a, err := buildApp(renderOut)
	if err != nil {
		return err
	}
	defer a.Close()

	principal := model.Principal{UserID: cliUser, Role: model.RoleAdmin}
	ctx := cmd.Context()

	var result *service.FileResult
	switch args[0] {
	case "budget":
		result, err = a.docs.GenerateBudgetPDF(ctx, principal, id)
	case "order":
		result, err = a.docs.GenerateOrderPDF(ctx, principal, id)
	case "workdays":
		result, err = a.docs.ExportWorkdays(ctx, principal, id)
	}
	if err != nil {
		return err
	}

	path := result.ArchivePath
	if path == "" {
		// cached budgets and an unset archive dir skip the service's archive step
		dir := renderOut
		if dir == "" {
			dir = cfg.Docs.ArchiveDir
		}
		if dir == "" {
			dir = "."
		}
		if path, err = sink.NewDir(dir).Save(ctx, result.FileName, result.Content); err != nil {
			return err
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
