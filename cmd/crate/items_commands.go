package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"crate/internal/catalog"
	"crate/internal/library"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var (
		item     catalog.Item
		media    string
		toWant   bool
		force    bool
		version  string
		tags     []string
		coverArt string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item to the collection or wantlist",
		Long: "Add an item. A likely duplicate of an existing item with the same media type\n" +
			"is rejected; pass --force (optionally with --version) to keep both.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				mediaType, err := parseMediaFlag(media)
				if err != nil {
					return err
				}
				if mediaType == "" {
					mediaType, _ = catalog.ParseMediaType(s.cfg.Display.MediaType)
				}
				item.MediaType = mediaType
				item.Tags = tags
				item.CoverArtURL = coverArt
				if toWant {
					item.List = catalog.ListWantlist
				}

				stored, err := s.service.Add(s.ctx, item, library.AddOptions{Force: force, Version: version})
				var dupErr *library.DuplicateError
				if errors.As(err, &dupErr) {
					out := cmd.ErrOrStderr()
					fmt.Fprintln(out, "Possible duplicate of an existing item:")
					fmt.Fprintln(out, renderItems([]catalog.Item{dupErr.Existing}))
					fmt.Fprintln(out, "Re-run with --force (and --version to describe this copy) to add it anyway.")
					return err
				}
				if err != nil {
					return err
				}

				if ctx.JSONMode() {
					return writeJSON(cmd, stored)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s - %s [%s] to the %s (id %s)\n",
					stored.Artist, stored.DisplayTitle(), stored.MediaType.Label(), stored.List, stored.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&item.Artist, "artist", "", "Artist name")
	cmd.Flags().StringVar(&item.Title, "title", "", "Album title")
	cmd.Flags().StringVarP(&media, "media", "m", "", "Media type: cd or vinyl (defaults to display.media_type)")
	cmd.Flags().IntVar(&item.Year, "year", 0, "Release year")
	cmd.Flags().StringVar(&item.Genre, "genre", "", "Genre")
	cmd.Flags().StringVar(&item.RecordLabel, "label", "", "Record label")
	cmd.Flags().StringVar(&item.Notes, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&coverArt, "cover", "", "Cover art URL")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().BoolVar(&toWant, "want", false, "Add to the wantlist instead of the collection")
	cmd.Flags().BoolVar(&force, "force", false, "Add even if a similar item exists")
	cmd.Flags().StringVar(&version, "version", "", "Version or pressing that tells this copy apart")
	_ = cmd.MarkFlagRequired("artist")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var (
		toWant    bool
		media     string
		allMedia  bool
		sortKey   string
		sortOrder string
		search    string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the collection or wantlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				prefs, err := resolveDisplay(s, media, sortKey, sortOrder)
				if err != nil {
					return err
				}
				if allMedia {
					prefs.Media = ""
				}
				list := catalog.ListCollection
				if toWant {
					list = catalog.ListWantlist
				}

				items, err := s.service.List(s.ctx, list, prefs.Media, library.ListOptions{
					Sort:  prefs.Sort,
					Order: prefs.Order,
					Query: search,
				})
				if err != nil {
					return err
				}

				artist, scanOffer := s.service.ArtistFor(search, items)
				if ctx.JSONMode() {
					payload := map[string]any{"items": items}
					if scanOffer {
						payload["discography_artist"] = artist
					}
					return writeJSON(cmd, payload)
				}

				out := cmd.OutOrStdout()
				if len(items) == 0 {
					fmt.Fprintf(out, "No items in the %s\n", list)
					return nil
				}
				fmt.Fprintln(out, renderItems(items))
				fmt.Fprintf(out, "%d item(s)\n", len(items))
				if scanOffer {
					fmt.Fprintf(out, "All results are by %s. Run `crate missing %q --discography <file>` to find gaps.\n", artist, artist)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&toWant, "want", false, "List the wantlist")
	cmd.Flags().StringVarP(&media, "media", "m", "", "Media type: cd or vinyl")
	cmd.Flags().BoolVar(&allMedia, "all", false, "Include every media type")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort key: artist, title, year, genre, label, created")
	cmd.Flags().StringVar(&sortOrder, "order", "", "Sort order: asc or desc")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only show items matching this text")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an item in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				id, err := resolveItemID(s, args[0])
				if err != nil {
					return err
				}
				item, err := s.service.Get(s.ctx, id)
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, item)
				}
				fmt.Fprint(cmd.OutOrStdout(), formatItemDetail(*item))
				return nil
			})
		},
	}
}

func formatItemDetail(item catalog.Item) string {
	var b strings.Builder
	field := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		fmt.Fprintf(&b, "%-8s %s\n", label+":", value)
	}

	field("ID", item.ID)
	field("List", string(item.List))
	field("Artist", displayArtist(item))
	field("Title", item.DisplayTitle())
	field("Media", item.MediaType.Label())
	if item.Year != 0 {
		field("Year", yearString(item.Year))
	}
	field("Genre", item.Genre)
	field("Label", item.RecordLabel)
	field("Tags", strings.Join(item.Tags, ", "))
	field("Cover", item.CoverArtURL)
	field("Notes", item.Notes)
	if !item.CreatedAt.IsZero() {
		field("Added", item.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if len(item.Tracklist) > 0 {
		b.WriteString("Tracklist:\n")
		for _, track := range item.Tracklist {
			fmt.Fprintf(&b, "  %2d. %s", track.Number, track.Title)
			if track.Duration != "" {
				fmt.Fprintf(&b, " (%s)", track.Duration)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>...",
		Aliases: []string{"rm"},
		Short:   "Remove items from the collection or wantlist",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				removed := make([]string, 0, len(args))
				for _, arg := range args {
					id, err := resolveItemID(s, arg)
					if err != nil {
						return err
					}
					if err := s.service.Delete(s.ctx, id); err != nil {
						return err
					}
					removed = append(removed, id)
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, map[string]any{"removed": removed})
				}
				for _, id := range removed {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", id)
				}
				return nil
			})
		},
	}
}

func newAcquireCommand(ctx *commandContext) *cobra.Command {
	var force bool
	var version string

	cmd := &cobra.Command{
		Use:   "acquire <wantlist-id>",
		Short: "Move a wantlist item into the collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				id, err := resolveItemID(s, args[0])
				if err != nil {
					return err
				}
				item, err := s.service.Acquire(s.ctx, id, library.AddOptions{Force: force, Version: version})
				var dupErr *library.DuplicateError
				if errors.As(err, &dupErr) {
					fmt.Fprintln(cmd.ErrOrStderr(), "The collection already has a similar item:")
					fmt.Fprintln(cmd.ErrOrStderr(), renderItems([]catalog.Item{dupErr.Existing}))
					return err
				}
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, item)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved %s - %s into the collection\n", displayArtist(*item), item.DisplayTitle())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Move even if a similar item is already owned")
	cmd.Flags().StringVar(&version, "version", "", "Version or pressing that tells this copy apart")
	return cmd
}
