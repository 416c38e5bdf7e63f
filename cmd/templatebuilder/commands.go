package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/auditkit/templatebuilder/internal/store/sqlite"
	"github.com/auditkit/templatebuilder/pkg/coordinator"
	"github.com/auditkit/templatebuilder/pkg/model"
	"github.com/auditkit/templatebuilder/pkg/orchestrator"
	"github.com/auditkit/templatebuilder/pkg/prompt"
	"github.com/auditkit/templatebuilder/pkg/render"
	"github.com/auditkit/templatebuilder/pkg/session"
)

func newNewCmd(dbPath *string) *cobra.Command {
	var templateType string

	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Create a template draft and assign it a backend id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := sqlite.Open(ctx, *dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			tpl := model.NewTemplate(args[0], model.TemplateType(templateType))
			sess := session.New(tpl)
			coord, err := coordinator.New(store, sess)
			if err != nil {
				return err
			}
			if err := coord.Save(ctx); err != nil {
				return err
			}
			fmt.Println(sess.Template().ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&templateType, "type", string(model.TemplateTypeContract), "template type (contract, audit, certification, other)")
	return cmd
}

func newListCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := sqlite.Open(ctx, *dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			templates, err := store.List(ctx)
			if err != nil {
				return err
			}
			for _, tpl := range templates {
				status := "draft"
				if tpl.IsPublished {
					status = "published"
				}
				fmt.Printf("%s\t%s\t%s\t%s\n", tpl.ID, tpl.Type, status, tpl.Title)
			}
			return nil
		},
	}
}

func newRenderCmd(dbPath *string) *cobra.Command {
	var (
		mode       string
		output     string
		valuesPath string
	)

	cmd := &cobra.Command{
		Use:   "render <id>",
		Short: "Render a template as canvas or preview HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tpl, store, err := loadTemplate(ctx, *dbPath, args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			gen := orchestrator.New()
			var html []byte
			switch mode {
			case "canvas":
				html, err = gen.Canvas(ctx, tpl)
			case "preview":
				values, verr := readValues(valuesPath)
				if verr != nil {
					return verr
				}
				html, err = gen.Preview(ctx, tpl, render.RenderOptions{Values: values})
			default:
				return fmt.Errorf("unknown mode %q (want canvas or preview)", mode)
			}
			if err != nil {
				return err
			}
			return writeOutput(output, html)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "preview", "render mode: canvas or preview")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&valuesPath, "values", "", "YAML file of variable values for preview mode")
	return cmd
}

func newExportCmd(dbPath *string) *cobra.Command {
	var (
		output     string
		valuesPath string
	)

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a template as a print-ready document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tpl, store, err := loadTemplate(ctx, *dbPath, args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			values, err := readValues(valuesPath)
			if err != nil {
				return err
			}
			gen := orchestrator.New()
			doc, err := gen.Export(ctx, tpl, render.RenderOptions{Values: values})
			if err != nil {
				return err
			}
			if output == "" {
				output = tpl.ID + ".html"
			}
			return writeOutput(output, doc)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to <id>.html)")
	cmd.Flags().StringVar(&valuesPath, "values", "", "YAML file of variable values")
	return cmd
}

func newPublishCmd(dbPath *string, publish bool) *cobra.Command {
	use, short := "publish <id>", "Publish a template"
	if !publish {
		use, short = "unpublish <id>", "Revert a template to draft"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tpl, store, err := loadTemplate(ctx, *dbPath, args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			sess, err := session.Load(tpl)
			if err != nil {
				return err
			}
			coord, err := coordinator.New(store, sess)
			if err != nil {
				return err
			}
			if publish {
				err = coord.Publish(ctx)
			} else {
				err = coord.Unpublish(ctx)
			}
			if err != nil {
				return err
			}
			fmt.Println(coord.PublishState())
			return nil
		},
	}
}

func newFillCmd(dbPath *string) *cobra.Command {
	var (
		output     string
		valuesPath string
	)

	cmd := &cobra.Command{
		Use:   "fill <id>",
		Short: "Prompt for variable values and render the preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tpl, store, err := loadTemplate(ctx, *dbPath, args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			seed, err := readValues(valuesPath)
			if err != nil {
				return err
			}
			values, err := prompt.Collect(ctx, prompt.NewSurveyDriver(), tpl.Metadata.Variables, seed)
			if err != nil {
				return err
			}
			html, err := orchestrator.New().Preview(ctx, tpl, render.RenderOptions{Values: values})
			if err != nil {
				return err
			}
			return writeOutput(output, html)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&valuesPath, "values", "", "YAML file of values to seed before prompting")
	return cmd
}

func loadTemplate(ctx context.Context, dbPath, id string) (model.Template, *sqlite.Store, error) {
	store, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		return model.Template{}, nil, err
	}
	tpl, err := store.Get(ctx, id)
	if err != nil {
		store.Close()
		return model.Template{}, nil, err
	}
	return tpl, store, nil
}

func readValues(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values %s: %w", path, err)
	}
	values := map[string]string{}
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("parse values %s: %w", path, err)
	}
	return values, nil
}
