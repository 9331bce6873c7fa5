package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/invoice"
)

func newPurchasesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "purchases",
		Short: "List your seed purchases",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			list, err := c.Purchases(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No purchases yet.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTATUS\tTOTAL\tDATE\tINVOICE")
			for _, tx := range list {
				number := "-"
				if tx.Status == domain.TransactionApproved && tx.ApprovedAt != nil {
					number = invoice.Number(tx.ID, *tx.ApprovedAt)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					tx.ID, tx.Status, invoice.FormatNumber(tx.Total), tx.CreatedAt.Local().Format("2 Jan 2006"), number)
			}
			return tw.Flush()
		},
	}
}

func newInvoiceCmd(a *app) *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "invoice <txId>",
		Short: "Download the printable invoice of an approved purchase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			html, err := c.Invoice(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if outFile == "" {
				_, err = cmd.OutOrStdout().Write(html)
				return err
			}
			if err := os.WriteFile(outFile, html, 0o644); err != nil {
				return errors.Join(errors.New("writing invoice"), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Invoice saved to %s. Open it in a browser to print.\n", outFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&outFile, "out", "", "write the HTML to a file instead of stdout")
	return cmd
}
