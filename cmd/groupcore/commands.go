package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"groupcore/internal/blob"
	"groupcore/internal/infra/persistence/bundle"
	"groupcore/pkg/domain"
)

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <bundle.json>...",
		Short: "Validate bundle files and write them to the configured repository",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundles := make([]domain.Bundle, 0, len(args))
			for _, path := range args {
				b, err := readBundle(path)
				if err != nil {
					return err
				}
				bundles = append(bundles, b)
			}
			if err := a.store.ImportBundles(cmd.Context(), bundles...); err != nil {
				return fmt.Errorf("import: %w", err)
			}
			labels := make([]string, 0, len(bundles))
			for _, b := range bundles {
				labels = append(labels, b.Group.Label)
				a.svc.Forget(b.Group.Label)
			}
			a.logger.Info("bundles imported", zap.Strings("labels", labels), zap.String("storage", a.cfg.Storage.Driver))
			return a.print(map[string][]string{"imported": labels})
		},
	}
}

func readBundle(path string) (domain.Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Bundle{}, fmt.Errorf("open bundle: %w", err)
	}
	defer func() { _ = f.Close() }()
	b, err := domain.DecodeBundle(f)
	if err != nil {
		return domain.Bundle{}, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <label>",
		Short: "Print the derived data of one group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := a.svc.Summarize(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(sum)
		},
	}
}

func (a *app) latticeCmd() *cobra.Command {
	var byOrder bool
	cmd := &cobra.Command{
		Use:   "lattice <label>",
		Short: "Print the subgroup lattice layers and edges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.svc.Group(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if byOrder {
				return a.print(view.LayersByOrder())
			}
			return a.print(view.Lattice())
		},
	}
	cmd.Flags().BoolVar(&byOrder, "by-order", false, "layer subgroups by order instead of covering depth")
	return cmd
}

func (a *app) seriesCmd() *cobra.Command {
	var table bool
	cmd := &cobra.Command{
		Use:   "series <label>",
		Short: "Print the derived, chief, lower and upper central series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.svc.Group(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if table {
				return a.print(view.SeriesTable())
			}
			return a.print(view.Series())
		},
	}
	cmd.Flags().BoolVar(&table, "table", false, "print the series as table rows")
	return cmd
}

func (a *app) elementCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "element <label> <code>",
		Short: "Write a pc group element as a word in the generators",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("parse element code: %w", err)
			}
			view, err := a.svc.Group(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			word, err := view.WriteElement(code)
			if err != nil {
				return err
			}
			return a.print(map[string]any{"label": args[0], "code": code, "word": word})
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <label>...",
		Short: "Write group bundles to the configured blob store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			blobs, err := blob.Open(ctx, a.cfg.Blob)
			if err != nil {
				return fmt.Errorf("open %s blob store: %w", a.cfg.Blob.Driver, err)
			}
			type exported struct {
				Label string `json:"label"`
				Key   string `json:"key"`
				Size  int64  `json:"size"`
			}
			out := make([]exported, 0, len(args))
			for _, label := range args {
				b, err := bundle.Collect(ctx, a.store, label)
				if err != nil {
					return err
				}
				info, err := bundle.Put(ctx, blobs, b)
				if err != nil {
					return fmt.Errorf("export %s: %w", label, err)
				}
				out = append(out, exported{Label: label, Key: info.Key, Size: info.Size})
			}
			return a.print(out)
		},
	}
}
