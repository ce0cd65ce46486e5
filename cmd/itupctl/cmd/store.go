/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/indextuple/pkg/itup"
	"github.com/ssargent/indextuple/pkg/storage"
)

func newPutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put <value>...",
		Short: "Encode values and store the tuple",
		Long: `Encode values like encode does and keep the tuple in the store under the
configured data directory. Prints the tuple's ID.

Example:
  itupctl put 42 hi NULL --block 7 --offset 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFrom(cmd)
			ref, err := rowRefFlags(cmd)
			if err != nil {
				return err
			}
			t, err := formTuple(e, ref, args)
			if err != nil {
				return err
			}

			store, err := openStore(e)
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := store.Put(t)
			if err != nil {
				return err
			}
			e.logger.Info("stored tuple", "id", id.String(), "size", len(t))
			fmt.Fprintln(cmd.OutOrStdout(), id.String())
			return nil
		},
	}
	addRowRefFlags(cmd)
	return cmd
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Decode a stored tuple",
		Long: `Read a tuple from the store and print one column per line.

Example:
  itupctl get 2Jx0cVhVZ8yE0rYfQnFj9kqxG2a`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFrom(cmd)
			id, err := ksuid.Parse(args[0])
			if err != nil {
				return errors.Wrapf(err, "invalid tuple id %q", args[0])
			}

			store, err := openStore(e)
			if err != nil {
				return err
			}
			defer store.Close()

			t, err := store.Get(id)
			if err != nil {
				return err
			}
			ref := t.RowRef()
			fmt.Fprintf(cmd.OutOrStdout(), "row_ref\t(%d,%d)\n", ref.Block, ref.Offset)
			return printTuple(cmd.OutOrStdout(), e, t, e.table.Schema.NumAttrs())
		},
	}
}

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "List stored tuples",
		Long: `Print every stored tuple as its ID, row reference, size and hex bytes,
one per line. Each stored record is checksum-verified as it is read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFrom(cmd)
			store, err := openStore(e)
			if err != nil {
				return err
			}
			defer store.Close()

			n := 0
			err = store.Scan(func(id ksuid.KSUID, t itup.Tuple) error {
				n++
				ref := t.RowRef()
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t(%d,%d)\t%d\t%x\n", id, ref.Block, ref.Offset, t.Size(), []byte(t))
				return err
			})
			if err != nil {
				return err
			}
			e.logger.Debug("scanned tuple store", "tuples", n)
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a stored tuple",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFrom(cmd)
			id, err := ksuid.Parse(args[0])
			if err != nil {
				return errors.Wrapf(err, "invalid tuple id %q", args[0])
			}

			store, err := openStore(e)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(id); err != nil {
				return err
			}
			e.logger.Info("deleted tuple", "id", id.String())
			return nil
		},
	}
}

func openStore(e *env) (*storage.TupleStore, error) {
	dir := filepath.Join(e.cfg.DataDir, "tuples")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, errors.Wrap(err, "failed to create data dir")
	}
	e.logger.Debug("opening tuple store", "dir", dir)
	return storage.Open(dir)
}
