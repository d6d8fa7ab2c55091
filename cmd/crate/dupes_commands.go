package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"crate/internal/catalog"
	"crate/internal/config"
	"crate/internal/library"
)

func newDupesCommand(ctx *commandContext) *cobra.Command {
	var media string
	var all bool

	cmd := &cobra.Command{
		Use:   "dupes",
		Short: "Review likely duplicates in the collection",
		Long: "Group collection items whose artist and title closely match. Each group lists\n" +
			"the first item followed by the items that resemble it, and marks the copy\n" +
			"with the most complete details as the one to keep.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				if all {
					results, err := s.service.ScanAll(s.ctx)
					if err != nil {
						return err
					}
					if ctx.JSONMode() {
						return writeJSON(cmd, results)
					}
					out := cmd.OutOrStdout()
					for _, mediaType := range catalog.MediaTypes {
						printGroups(out, mediaType, results[mediaType])
					}
					return nil
				}

				prefs, err := resolveDisplay(s, media, "", "")
				if err != nil {
					return err
				}
				groups, err := s.service.ScanDuplicates(s.ctx, prefs.Media)
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, groups)
				}
				printGroups(cmd.OutOrStdout(), prefs.Media, groups)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&media, "media", "m", "", "Media type: cd or vinyl")
	cmd.Flags().BoolVar(&all, "all", false, "Scan every media type")
	return cmd
}

func printGroups(out io.Writer, mediaType catalog.MediaType, groups []library.DuplicateGroup) {
	colorize := shouldColorize(out)
	fmt.Fprintln(out, paint(fmt.Sprintf("== %s duplicates ==", mediaType.Label()), headingColor, colorize))
	if len(groups) == 0 {
		fmt.Fprintln(out, "No duplicates found")
		return
	}
	for i, group := range groups {
		fmt.Fprintf(out, "Group %d (%d items)\n", i+1, len(group.Items))
		rows := make([][]string, 0, len(group.Items))
		for _, item := range group.Items {
			keep := ""
			if item.ID == group.Keep.ID {
				keep = paint("keep", keepColor, colorize)
			}
			rows = append(rows, append([]string{keep}, itemRow(item)...))
		}
		headers := append([]string{""}, itemHeaders...)
		aligns := append([]columnAlignment{alignLeft}, itemAligns...)
		fmt.Fprintln(out, renderTable(headers, rows, aligns))
	}
	fmt.Fprintf(out, "%d group(s). Remove extra copies with `crate remove <id>`.\n", len(groups))
}

func newOwnedCommand(ctx *commandContext) *cobra.Command {
	var media string

	cmd := &cobra.Command{
		Use:   "owned",
		Short: "List wantlist items that are already in the collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				mediaType, err := parseMediaFlag(media)
				if err != nil {
					return err
				}
				items, err := s.service.WantlistOwned(s.ctx, mediaType)
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					if items == nil {
						items = []catalog.Item{}
					}
					return writeJSON(cmd, items)
				}
				out := cmd.OutOrStdout()
				if len(items) == 0 {
					fmt.Fprintln(out, "Nothing on the wantlist is already owned")
					return nil
				}
				fmt.Fprintln(out, renderItems(items))
				fmt.Fprintln(out, "These look owned already. Use `crate acquire <id>` or `crate remove <id>`.")
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&media, "media", "m", "", "Only check this media type")
	return cmd
}

func newMissingCommand(ctx *commandContext) *cobra.Command {
	var discographyPath string

	cmd := &cobra.Command{
		Use:   "missing <artist>",
		Short: "Compare an artist's discography with the collection",
		Long: "Read a discography as a JSON array of {\"title\", \"year\"} objects and report\n" +
			"which albums are owned and which are missing, each ordered by year.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				albums, err := readDiscography(discographyPath)
				if err != nil {
					return err
				}
				report, err := s.service.MissingAlbums(s.ctx, args[0], albums)
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, report)
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintln(out, paint(fmt.Sprintf("== Missing (%d) ==", len(report.Missing)), missingColor, colorize))
				if len(report.Missing) > 0 {
					fmt.Fprintln(out, renderAlbums(report.Missing))
				}
				fmt.Fprintln(out, paint(fmt.Sprintf("== Owned (%d) ==", len(report.Owned)), ownedColor, colorize))
				if len(report.Owned) > 0 {
					fmt.Fprintln(out, renderAlbums(report.Owned))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&discographyPath, "discography", "d", "", "Path to a discography JSON file")
	_ = cmd.MarkFlagRequired("discography")
	return cmd
}

func readDiscography(path string) ([]catalog.DiscographyAlbum, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("read discography: %w", err)
	}
	var albums []catalog.DiscographyAlbum
	if err := json.Unmarshal(data, &albums); err != nil {
		return nil, fmt.Errorf("parse discography: %w", err)
	}
	return albums, nil
}
