package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"crate/internal/catalog"
	"crate/internal/store"
)

var prefKeys = []string{store.PrefMediaType, store.PrefSortKey, store.PrefSortOrder}

func newPrefsCommand(ctx *commandContext) *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "View or change saved display preferences",
	}
	prefsCmd.AddCommand(newPrefsGetCommand(ctx))
	prefsCmd.AddCommand(newPrefsSetCommand(ctx))
	return prefsCmd
}

func newPrefsGetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the effective display preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				prefs, err := resolveDisplay(s, "", "", "")
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, map[string]string{
						store.PrefMediaType: string(prefs.Media),
						store.PrefSortKey:   string(prefs.Sort),
						store.PrefSortOrder: string(prefs.Order),
					})
				}
				rows := [][]string{
					{store.PrefMediaType, string(prefs.Media)},
					{store.PrefSortKey, string(prefs.Sort)},
					{store.PrefSortOrder, string(prefs.Order)},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Preference", "Value"}, rows, nil))
				return nil
			})
		},
	}
}

func newPrefsSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Save a display preference (media_type, sort_key, sort_order)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(strings.TrimSpace(args[0]))
			value, err := canonicalPref(key, args[1])
			if err != nil {
				return err
			}
			return ctx.withSession(cmd, func(s *session) error {
				if err := s.store.SetPreference(s.ctx, key, value); err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, map[string]string{key: value})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s = %s\n", key, value)
				return nil
			})
		},
	}
}

func canonicalPref(key, value string) (string, error) {
	switch key {
	case store.PrefMediaType:
		media, ok := catalog.ParseMediaType(value)
		if !ok {
			return "", fmt.Errorf("invalid media type %q (want cd or vinyl)", value)
		}
		return string(media), nil
	case store.PrefSortKey:
		sortKey, err := catalog.ParseSortKey(value)
		return string(sortKey), err
	case store.PrefSortOrder:
		order, err := catalog.ParseSortOrder(value)
		return string(order), err
	}
	return "", fmt.Errorf("unknown preference %q (want one of %s)", key, strings.Join(prefKeys, ", "))
}
