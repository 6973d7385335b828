package main

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/taiwoajasa245/memories-api/pkg/galleryclient"
)

type galleryFlags struct {
	server  string
	token   string
	retries uint64
}

func newGalleryCmd() *cobra.Command {
	f := &galleryFlags{}
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "List, import and edit gallery photos",
	}
	cmd.PersistentFlags().StringVar(&f.server, "server", envOr("MEMORIES_URL", "http://localhost:8080"), "server base URL")
	cmd.PersistentFlags().StringVar(&f.token, "token", os.Getenv("MEMORIES_TOKEN"), "bearer token")
	cmd.PersistentFlags().Uint64Var(&f.retries, "retries", 2, "retries on server errors")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print photos, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				photos, err := f.client().List(cmd.Context())
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tDATE\tCAPTION")
				for _, p := range photos {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Date, p.Caption)
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "export",
			Short: "Write every photo as JSON to stdout, oldest first, ready for import",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				photos, err := f.client().List(cmd.Context())
				if err != nil {
					return err
				}
				slices.Reverse(photos)
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(photos)
			},
		},
		&cobra.Command{
			Use:   "import FILE",
			Short: "Replace the gallery with the photos in FILE, oldest first",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				raw, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				var photos []galleryclient.Photo
				if err := json.Unmarshal(raw, &photos); err != nil {
					return fmt.Errorf("%s: %w", args[0], err)
				}
				if err := f.album(cmd).Replace(cmd.Context(), photos); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d photos\n", len(photos))
				return nil
			},
		},
		newGalleryAddCmd(f),
		&cobra.Command{
			Use:   "rm ID",
			Short: "Delete one photo",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return f.client().Delete(cmd.Context(), args[0])
			},
		},
	)
	return cmd
}

func newGalleryAddCmd(f *galleryFlags) *cobra.Command {
	var caption, day string
	cmd := &cobra.Command{
		Use:   "add URL",
		Short: "Add a photo as the newest in the gallery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			album := f.album(cmd)
			if err := album.Load(cmd.Context()); err != nil {
				return err
			}
			p, err := album.Add(cmd.Context(), args[0], caption, day)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&caption, "caption", "", "photo caption")
	cmd.Flags().StringVar(&day, "date", "", "photo date (defaults to today)")
	return cmd
}

func (f *galleryFlags) client() *galleryclient.Client {
	return galleryclient.New(f.server, galleryclient.WithToken(f.token), galleryclient.WithRetries(f.retries))
}

func (f *galleryFlags) album(cmd *cobra.Command) *galleryclient.Album {
	log := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).With().Timestamp().Logger()
	return galleryclient.NewAlbum(f.client(), log)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
