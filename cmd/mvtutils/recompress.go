package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"

	"github.com/ciscorn/tinymvt/mbtiles"
	"github.com/ciscorn/tinymvt/tile"
	"github.com/ciscorn/tinymvt/vectortile"
	"github.com/ciscorn/tinymvt/xyz"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type recompressCmd struct {
	inputFormat  string
	inputPath    string
	outputFormat string
	outputPath   string
	compression  string
}

func (c *recompressCmd) Name() string { return "recompress" }
func (c *recompressCmd) Synopsis() string {
	return "rewrite a tileset with a different tile compression"
}
func (c *recompressCmd) Usage() string {
	return "mvtutils recompress -i <path> -o <path> [-c <none|gzip|zlib|zstd>] [-if <format> | -of <format>]\n"
}
func (c *recompressCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input path")
	f.StringVar(&c.inputFormat, "if", "", "Input format (mbtiles, xyz)")
	f.StringVar(&c.outputPath, "o", "", "Output path")
	f.StringVar(&c.outputFormat, "of", "", "Output format (mbtiles, xyz)")
	f.StringVar(&c.compression, "c", "gzip", "Target tile compression")
}

type metadataReader interface {
	ReadMetadata() (map[string]string, error)
}

func (c *recompressCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	target, err := vectortile.ParseCompression(c.compression)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	inputFormat := deduceFormat(c.inputFormat, c.inputPath)
	outputFormat := deduceFormat(c.outputFormat, c.outputPath)

	var reader tile.Visitor
	switch inputFormat {
	case "mbtiles":
		reader, err = mbtiles.NewReader(c.inputPath)
	case "xyz", "":
		reader, err = xyz.NewReader(c.inputPath)
	default:
		log.Printf("invalid input format: %q", c.inputFormat)
		return subcommands.ExitFailure
	}
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if closer, ok := reader.(io.Closer); ok {
		defer closer.Close()
	}

	metadata := map[string]string{}
	if mr, ok := reader.(metadataReader); ok {
		if metadata, err = mr.ReadMetadata(); err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
	}

	var writer tile.Writer
	switch outputFormat {
	case "mbtiles":
		writer, err = mbtiles.NewWriter(
			c.outputPath,
			mbtiles.WithMetadata(metadata),
			mbtiles.WithLogger(slog.Default()),
		)
	case "xyz", "":
		writer, err = xyz.NewWriter(c.outputPath, xyz.WithMetadata(metadata))
	default:
		log.Printf("invalid output format: %q", c.outputFormat)
		return subcommands.ExitFailure
	}
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if closer, ok := writer.(io.Closer); ok {
		defer closer.Close()
	}

	bar := progressbar.NewOptions(-1, progressbar.OptionShowIts(), progressbar.OptionShowCount())
	err = reader.VisitTiles(func(tileID tile.ID, tileData []byte) error {
		raw, err := vectortile.Decompress(tileData, vectortile.CompressionUnknown)
		if err != nil {
			return fmt.Errorf("tile %d/%d/%d: %w", tileID.Z, tileID.X, tileID.Y, err)
		}
		packed, err := vectortile.Compress(raw, target)
		if err != nil {
			return err
		}
		err = writer.WriteTile(tileID, packed)
		bar.Add(1)
		return err
	})
	bar.Finish()
	fmt.Println()

	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if err := writer.Finalize(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
