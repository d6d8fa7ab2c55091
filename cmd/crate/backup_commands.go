package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"crate/internal/backup"
	"crate/internal/config"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Write the collection and wantlist to a JSON backup",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				target := backup.DefaultPath(s.cfg.Paths.BackupDir, time.Now())
				if len(args) == 1 {
					expanded, err := config.ExpandPath(args[0])
					if err != nil {
						return err
					}
					target = expanded
				}
				summary, err := s.backups.Export(s.ctx, target)
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, summary)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d collection and %d wantlist item(s) to %s\n",
					summary.Collection, summary.Wantlist, summary.Path)
				return nil
			})
		},
	}
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	var merge bool

	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Restore a JSON backup",
		Long: "Restore a backup written by `crate export`. By default the catalog is replaced\n" +
			"wholesale; with --merge each incoming item is folded into a matching existing\n" +
			"item (filling in missing details) or added when nothing matches.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				path, err := config.ExpandPath(args[0])
				if err != nil {
					return err
				}
				mode := backup.ModeReplace
				if merge {
					mode = backup.ModeMerge
				}
				summary, err := s.backups.Import(s.ctx, path, mode)
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, summary)
				}
				out := cmd.OutOrStdout()
				if mode == backup.ModeMerge {
					fmt.Fprintf(out, "Merged backup from %s: %d added, %d merged into existing items\n",
						path, summary.Inserted, summary.Merged)
					return nil
				}
				fmt.Fprintf(out, "Restored %d collection and %d wantlist item(s) from %s\n",
					summary.Collection, summary.Wantlist, path)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&merge, "merge", false, "Merge into the existing catalog instead of replacing it")
	return cmd
}
