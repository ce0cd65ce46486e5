/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/indextuple/pkg/catalog"
	"github.com/ssargent/indextuple/pkg/itup"
)

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <value>...",
		Short: "Encode values into a tuple",
		Long: `Encode values for the leading columns of the schema and print the
tuple as hex.

Example:
  itupctl encode 42 hi NULL --block 7 --offset 3`,
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
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(t))
			return nil
		},
	}
	addRowRefFlags(cmd)
	return cmd
}

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a tuple",
		Long: `Decode a hex tuple and print one column per line. Use --attrs to read
only a prefix of the schema, as for truncated tuples.

Example:
  itupctl decode 0700...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFrom(cmd)
			t, err := parseTupleHex(args[0])
			if err != nil {
				return err
			}
			n, _ := cmd.Flags().GetInt("attrs")
			if n <= 0 {
				n = e.table.Schema.NumAttrs()
			}
			return printTuple(cmd.OutOrStdout(), e, t, n)
		},
	}
	cmd.Flags().Int("attrs", 0, "Number of leading attributes to decode (default all)")
	return cmd
}

func newGetAttrCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "getattr <hex> <attnum>",
		Short: "Print one attribute of a tuple",
		Long: `Print the 1-based attribute attnum of a hex tuple.

Example:
  itupctl getattr 0700... 2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFrom(cmd)
			t, err := parseTupleHex(args[0])
			if err != nil {
				return err
			}
			attnum, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Wrapf(err, "invalid attribute number %q", args[1])
			}
			d, isnull, err := itup.GetAttr(t, attnum, e.table.Schema)
			e.metrics.RecordOperation(e.schemaName, "getattr", nil, err)
			if err != nil {
				return err
			}
			if isnull {
				fmt.Fprintln(cmd.OutOrStdout(), catalog.NullLiteral)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), catalog.Format(e.table.Columns[attnum-1].Type, d))
			return nil
		},
	}
}

func newTruncateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "truncate <hex> <keep>",
		Short: "Keep only the leading attributes of a tuple",
		Long: `Build a tuple holding the first keep attributes of a hex tuple and
print it as hex. The row reference is carried over.

Example:
  itupctl truncate 0700... 1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFrom(cmd)
			src, err := parseTupleHex(args[0])
			if err != nil {
				return err
			}
			keep, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Wrapf(err, "invalid attribute count %q", args[1])
			}
			t, err := itup.Truncate(e.table.Schema, src, keep)
			e.metrics.RecordOperation(e.schemaName, "truncate", t, err)
			if err != nil {
				return err
			}
			e.logger.Debug("truncated tuple", "from", len(src), "to", len(t), "keep", keep)
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(t))
			return nil
		},
	}
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <hex>",
		Short: "Print a tuple's header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTupleHex(args[0])
			if err != nil {
				return err
			}
			if err := t.Validate(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			ref := t.RowRef()
			fmt.Fprintf(out, "row_ref:     (%d,%d)\n", ref.Block, ref.Offset)
			fmt.Fprintf(out, "size:        %d\n", t.Size())
			fmt.Fprintf(out, "has_nulls:   %t\n", t.HasNulls())
			fmt.Fprintf(out, "var_widths:  %t\n", t.HasVarWidths())
			fmt.Fprintf(out, "am_reserved: %t\n", t.AMReserved())
			fmt.Fprintf(out, "data_offset: %d\n", t.DataOffset())
			if t.HasNulls() {
				fmt.Fprintf(out, "null_bitmap: %08b\n", []byte(t[itup.HeaderSize:itup.HeaderSize+itup.NullBitmapSize]))
			}
			return nil
		},
	}
}

func newCapacityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capacity",
		Short: "Print the most tuples a page can hold",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFrom(cmd)
			g := e.cfg.Page
			fmt.Fprintf(cmd.OutOrStdout(), "%d tuples per %d byte page (header %d, slot %d)\n",
				itup.MaxTuplesPerPage(g), g.PageSize, g.PageHeaderSize, g.SlotSize)
			return nil
		},
	}
}

func addRowRefFlags(cmd *cobra.Command) {
	cmd.Flags().Uint32("block", 0, "Block number of the referenced row")
	cmd.Flags().Uint16("offset", 0, "Offset number of the referenced row")
}

func rowRefFlags(cmd *cobra.Command) (itup.RowRef, error) {
	block, err := cmd.Flags().GetUint32("block")
	if err != nil {
		return itup.RowRef{}, err
	}
	offset, err := cmd.Flags().GetUint16("offset")
	if err != nil {
		return itup.RowRef{}, err
	}
	return itup.RowRef{Block: block, Offset: offset}, nil
}

func formTuple(e *env, ref itup.RowRef, lits []string) (itup.Tuple, error) {
	values, isnull, err := e.table.ParseRow(lits)
	if err != nil {
		return nil, err
	}
	t, err := itup.Form(e.table.Schema, ref, values, isnull)
	e.metrics.RecordOperation(e.schemaName, "form", t, err)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("formed tuple", "size", len(t), "nulls", t.HasNulls(), "var_widths", t.HasVarWidths())
	return t, nil
}

func parseTupleHex(s string) (itup.Tuple, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.Wrap(err, "tuple is not valid hex")
	}
	return itup.Tuple(b), nil
}

func printTuple(out io.Writer, e *env, t itup.Tuple, n int) error {
	values := make([]itup.Datum, n)
	isnull := make([]bool, n)
	err := itup.Deform(t, e.table.Schema, values, isnull)
	e.metrics.RecordOperation(e.schemaName, "deform", nil, err)
	if err != nil {
		return err
	}
	for i, lit := range e.table.FormatRow(values, isnull) {
		fmt.Fprintf(out, "%s\t%s\n", e.table.Columns[i].Name, lit)
	}
	return nil
}
