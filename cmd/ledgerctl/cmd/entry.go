package cmd

import (
	"context"

	"github.com/spf13/cobra"

	portssvc "github.com/SscSPs/ledgerbook/internal/core/ports/services"
	"github.com/SscSPs/ledgerbook/internal/dto"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Inspect and change journal entries",
}

var entryShowCmd = &cobra.Command{
	Use:   "show <entryID>",
	Short: "Print a journal entry with its lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *portssvc.ServiceContainer) (any, error) {
			entry, err := svc.Journal.GetEntry(ctx, args[0])
			if err != nil {
				return nil, err
			}
			return dto.ToJournalEntryResponse(entry), nil
		})
	},
}

var entryPostCmd = &cobra.Command{
	Use:   "post <entryID>",
	Short: "Post a draft journal entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *portssvc.ServiceContainer) (any, error) {
			entry, err := svc.Journal.PostEntry(ctx, args[0], actor)
			if err != nil {
				return nil, err
			}
			return dto.ToJournalEntryResponse(entry), nil
		})
	},
}

var entryReverseCmd = &cobra.Command{
	Use:   "reverse <entryID>",
	Short: "Reverse a posted journal entry",
	Long: `Record a reversal that offsets every line of a posted entry. The
original is marked REVERSED and its source transaction may be recorded again.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *portssvc.ServiceContainer) (any, error) {
			reversal, err := svc.Journal.ReverseEntry(ctx, args[0], actor)
			if err != nil {
				return nil, err
			}
			logger.Info("Entry reversed", "original", args[0], "reversal", reversal.EntryNumber)
			return dto.ToJournalEntryResponse(reversal), nil
		})
	},
}

func init() {
	entryCmd.AddCommand(entryShowCmd, entryPostCmd, entryReverseCmd)
}
