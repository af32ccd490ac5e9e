package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/glabrego/urlinfo-cli/internal/listing"
	tuiview "github.com/glabrego/urlinfo-cli/internal/tui/view"
	"github.com/glabrego/urlinfo-cli/internal/urlinfo"
)

const (
	addSuccessMessage    = "The URL info has been successfully created."
	deleteSuccessMessage = "The URL info has been deleted."
	showWidth            = 100
)

// userError turns err into the message shown to the user; cobra prints it as "Error: ...".
func userError(err error) error {
	return errors.New(urlinfo.Describe(err))
}

func commandContext(cmd *cobra.Command, e *env) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), e.cfg.Timeout)
}

// loadList fetches the collection into a fresh ListState.
func loadList(cmd *cobra.Command, e *env) (*listing.ListState, error) {
	ctx, cancel := commandContext(cmd, e)
	defer cancel()

	list := listing.NewListState(e.service)
	if err := list.Refresh(ctx); err != nil {
		return nil, userError(err)
	}
	return list, nil
}

func NewListCommand() *cobra.Command {
	var (
		search  string
		asJSON  bool
		compact bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List URL info records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			list, err := loadList(cmd, e)
			if err != nil {
				return err
			}
			records := list.Items()
			if cmd.Flags().Changed("search") {
				list.SetFilter(search)
				records = list.Filtered()
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			return writeRecordTable(cmd.OutOrStdout(), records, compact)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "only show records whose URL or title contains this text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")
	cmd.Flags().BoolVar(&compact, "compact", false, "show host | title instead of the title")
	return cmd
}

func writeRecordTable(w io.Writer, records []urlinfo.Record, compact bool) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No data available")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tURL\tIMAGES")
	for _, rec := range records {
		label := tuiview.RecordLabel(rec)
		if compact {
			label = tuiview.CompactRecordLabel(rec)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", rec.PublicID, label, rec.URL, len(rec.Images))
	}
	return tw.Flush()
}

func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <publicId>",
		Short: "Show the details of one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			list, err := loadList(cmd, e)
			if err != nil {
				return err
			}
			rec, ok := list.Find(args[0])
			if !ok {
				return fmt.Errorf("no URL info with id %s", args[0])
			}

			lines := tuiview.DetailMetaLines(rec, showWidth, tuiview.WrapText)
			lines = append(lines, "")
			lines = append(lines, tuiview.GalleryLines(rec, -1, showWidth)...)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
			return err
		},
	}
}

func NewAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <url>",
		Short: "Submit a URL for extraction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx, cancel := commandContext(cmd, e)
			defer cancel()

			list := listing.NewListState(e.service)
			if err := list.AddURL(ctx, args[0]); err != nil {
				return userError(err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), addSuccessMessage)
			return err
		},
	}
}

func NewRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <publicId>",
		Aliases: []string{"delete"},
		Short:   "Delete a record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			// The list only supplies the URL for the local log; the delete does not need it.
			list, err := loadList(cmd, e)
			if err != nil {
				e.logger.Warn("cli: could not load list before delete", "public_id", args[0], "error", err)
				list = listing.NewListState(e.service)
			}
			rec, ok := list.Find(args[0])
			if !ok {
				rec = urlinfo.Record{PublicID: args[0]}
			}

			ctx, cancel := commandContext(cmd, e)
			defer cancel()

			detail := listing.NewDetailState(rec, e.service, list)
			if _, err := detail.RequestDelete(ctx); err != nil {
				return userError(err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), deleteSuccessMessage)
			return err
		},
	}
}

func NewRatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Show bitcoin exchange rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx, cancel := commandContext(cmd, e)
			defer cancel()

			rates, err := e.service.BitcoinRates(ctx)
			if err != nil {
				return userError(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "1 BTC in EUR: %s €\n", tuiview.FormatAmount(rates.BitcoinEUR))
			fmt.Fprintf(out, "1 EUR in GBP: %s £\n", tuiview.FormatAmount(rates.EURToGBP))
			_, err = fmt.Fprintf(out, "1 BTC in GBP: %s £\n", tuiview.FormatAmount(rates.BitcoinGBP))
			return err
		},
	}
}

func NewHistoryCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show adds and deletes made from this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx, cancel := commandContext(cmd, e)
			defer cancel()

			subs, err := e.service.History(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(subs) == 0 {
				_, err := fmt.Fprintln(out, "No submissions recorded")
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, sub := range subs {
				id := sub.PublicID
				if id == "" {
					id = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", humanize.Time(sub.At), sub.Action, sub.URL, id)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}
