package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hyper/internal/config"
	"github.com/vango-dev/hyper/pkg/exprfile"
	"github.com/vango-dev/hyper/pkg/publish"
	"github.com/vango-dev/hyper/pkg/render"
)

type renderOptions struct {
	pretty  bool
	page    bool
	title   string
	name    string
	out     string
	bucket  string
	prefix  string
	publish bool
}

func renderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render an expression file to HTML",
		Long: `Render an expression file to HTML.

The file format follows the extension: .json, .yaml/.yml or
.msgpack/.mp. Output goes to stdout unless a target is given.

Examples:
  hyper render page.yaml
  hyper render page.json --page --title=Home --out=public
  hyper render page.json --bucket=my-site --prefix=www/
  hyper render page.json --publish`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runRender(cmd, cfg, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Indent block elements (default from hyper.json)")
	cmd.Flags().BoolVar(&opts.page, "page", false, "Wrap the expression in a full HTML document")
	cmd.Flags().StringVar(&opts.title, "title", "", "Document title for --page")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Published name (default: input name with .html)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write into this directory")
	cmd.Flags().StringVar(&opts.bucket, "bucket", "", "Upload to this S3 bucket")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "Key prefix for --bucket")
	cmd.Flags().BoolVar(&opts.publish, "publish", false, "Publish to the target configured in hyper.json")

	return cmd
}

func runRender(cmd *cobra.Command, cfg *config.Config, path string, opts renderOptions) error {
	expr, err := exprfile.Load(path)
	if err != nil {
		return err
	}
	if opts.page {
		expr = render.Page(render.PageData{Title: opts.title, Body: expr})
	}

	rc := render.Config{Pretty: cfg.Render.Pretty, Indent: cfg.Render.Indent}
	if cmd.Flags().Changed("pretty") {
		rc.Pretty = opts.pretty
	}

	p, err := publisherFor(cfg, opts)
	if err != nil {
		return err
	}
	if p == nil {
		html, err := render.ToString(expr, rc)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), html)
		if !strings.HasSuffix(html, "\n") {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return nil
	}

	name := opts.name
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base)) + ".html"
	}
	loc, err := publish.Render(cmd.Context(), p, name, expr, rc)
	if err != nil {
		return err
	}
	success(cmd.ErrOrStderr(), "Published %s", loc)
	return nil
}

// publisherFor picks the target from the flags, then from hyper.json when
// --publish is set. A nil publisher means stdout.
func publisherFor(cfg *config.Config, opts renderOptions) (publish.Publisher, error) {
	switch {
	case opts.bucket != "":
		return s3Publisher(cfg, opts.bucket, opts.prefix), nil
	case opts.out != "":
		return publish.NewDirPublisher(opts.out)
	case !opts.publish:
		return nil, nil
	case cfg.Publish.Bucket != "":
		return s3Publisher(cfg, cfg.Publish.Bucket, cfg.Publish.Prefix), nil
	default:
		return publish.NewDirPublisher(cfg.PublishPath())
	}
}

func s3Publisher(cfg *config.Config, bucket, prefix string) *publish.S3Publisher {
	client := publish.NewS3Client(publish.S3ClientOptions{
		Region:       cfg.Publish.Region,
		Endpoint:     cfg.Publish.Endpoint,
		UsePathStyle: cfg.Publish.PathStyle,
	})
	return publish.NewS3Publisher(client, bucket, prefix)
}
