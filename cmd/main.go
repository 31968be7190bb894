package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
	"github.com/alitto/pond"
	"github.com/urfave/cli/v2"

	"github.com/go-laz/laz"
	"github.com/go-laz/laz/search"
)

// convert_laz handles the conversion process for a single LAZ file: decode
// its header and point stream, write a metadata JSON sidecar, and,
// unless metadata_only is set, decode every point into a sparse TileDB
// array alongside it.
func convert_laz(laz_uri, config_uri, outdir_uri string, in_memory, metadata_only bool, flush_size int) error {
	var (
		out_uri string
		err     error
		dir     string
		file    string
		config  *tiledb.Config
	)

	dir, file = filepath.Split(laz_uri)
	if outdir_uri == "" {
		outdir_uri = dir
	}

	log.Println("Processing LAZ:", laz_uri)
	src, err := laz.OpenLaz(laz_uri, config_uri, in_memory)
	if err != nil {
		return err
	}
	defer src.Close()

	log.Println("Collating metadata")
	summary := src.Summary()

	log.Println("Writing metadata")
	out_uri = filepath.Join(outdir_uri, file+"-metadata.json")
	_, err = laz.WriteJson(out_uri, config_uri, summary)
	if err != nil {
		return err
	}

	if metadata_only {
		log.Println("Finished LAZ:", laz_uri)
		return nil
	}

	if config_uri == "" {
		config, err = tiledb.NewConfig()
		if err != nil {
			return err
		}
	} else {
		config, err = tiledb.LoadConfig(config_uri)
		if err != nil {
			return err
		}
	}
	defer config.Free()

	ctx, err := tiledb.NewContext(config)
	if err != nil {
		return err
	}
	defer ctx.Free()

	array_uri := filepath.Join(outdir_uri, file+".tiledb")

	log.Println("Decoding points to", array_uri)
	n, err := laz.DecodeToArray(ctx, src, array_uri, flush_size)
	if err != nil {
		return err
	}
	log.Println("Wrote", n, "points")

	log.Println("Finished LAZ:", laz_uri)

	return nil
}

// convert_laz_list submits every LAZ file found under uri to a worker pool
// sized to the available CPUs, converting each concurrently.
func convert_laz_list(uri, config_uri, outdir_uri string, in_memory, metadata_only bool, flush_size int) error {
	log.Println("Searching uri:", uri)
	items := search.FindLaz(uri, config_uri)
	log.Println("Number of LAZ files to process:", len(items))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	n := runtime.NumCPU()
	pool := pond.New(n, 0, pond.MinWorkers(n), pond.Context(ctx))
	defer pool.StopAndWait()

	for _, name := range items {
		item_uri := name
		pool.Submit(func() {
			if err := convert_laz(item_uri, config_uri, outdir_uri, in_memory, metadata_only, flush_size); err != nil {
				log.Println("error processing", item_uri, ":", err)
			}
		})
	}

	return nil
}

func main() {
	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name: "convert",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "laz-uri",
						Usage: "URI or pathname to a LAZ file.",
					},
					&cli.StringFlag{
						Name:  "config-uri",
						Usage: "URI or pathname to a TileDB config file.",
					},
					&cli.StringFlag{
						Name:  "outdir-uri",
						Usage: "URI or pathname to an output directory.",
					},
					&cli.BoolFlag{
						Name:  "in-memory",
						Usage: "Read the entire contents of a LAZ file into memory before processing.",
					},
					&cli.BoolFlag{
						Name:  "metadata-only",
						Usage: "Only decode and export metadata relating to the LAZ file.",
					},
					&cli.IntFlag{
						Name:  "flush-size",
						Usage: "Number of points to buffer before each TileDB write.",
						Value: 100_000,
					},
				},
				Action: func(cCtx *cli.Context) error {
					return convert_laz(
						cCtx.String("laz-uri"), cCtx.String("config-uri"), cCtx.String("outdir-uri"),
						cCtx.Bool("in-memory"), cCtx.Bool("metadata-only"), cCtx.Int("flush-size"),
					)
				},
			},
			{
				Name: "convert-trawl",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "uri",
						Usage: "URI or pathname to a directory containing LAZ files.",
					},
					&cli.StringFlag{
						Name:  "config-uri",
						Usage: "URI or pathname to a TileDB config file.",
					},
					&cli.StringFlag{
						Name:  "outdir-uri",
						Usage: "URI or pathname to an output directory.",
					},
					&cli.BoolFlag{
						Name:  "in-memory",
						Usage: "Read the entire contents of each LAZ file into memory before processing.",
					},
					&cli.BoolFlag{
						Name:  "metadata-only",
						Usage: "Only decode and export metadata relating to the LAZ files.",
					},
					&cli.IntFlag{
						Name:  "flush-size",
						Usage: "Number of points to buffer before each TileDB write.",
						Value: 100_000,
					},
				},
				Action: func(cCtx *cli.Context) error {
					return convert_laz_list(
						cCtx.String("uri"), cCtx.String("config-uri"), cCtx.String("outdir-uri"),
						cCtx.Bool("in-memory"), cCtx.Bool("metadata-only"), cCtx.Int("flush-size"),
					)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
