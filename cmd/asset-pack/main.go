package main

import (
	"bytes"
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/always-cache/assets"
	collector "github.com/always-cache/assets/pkg/asset-collector"
	gen "github.com/always-cache/assets/pkg/asset-gen"
	store "github.com/always-cache/assets/pkg/asset-store"
)

var (
	// CLI flags
	dirFlag            string
	dbFilenameFlag     string
	outFlag            string
	pkgFlag            string
	varFlag            string
	verbosityTraceFlag bool

	// this is set by goreleaser
	version string
)

func init() {
	flag.StringVar(&dirFlag, "dir", "", "Directory to pack")
	flag.StringVar(&dbFilenameFlag, "db", "", "Asset bundle DB file to write")
	flag.StringVar(&outFlag, "out", "", "Go source file to write")
	flag.StringVar(&pkgFlag, "pkg", "main", "Package name of the generated Go source")
	flag.StringVar(&varFlag, "var", "Assets", "Variable name of the generated asset table")
	flag.BoolVar(&verbosityTraceFlag, "vv", false, "Verbosity: trace logging")

	if version == "" {
		version = "DEV"
	}
}

func main() {
	flag.Parse()

	logLevel := zerolog.InfoLevel
	if verbosityTraceFlag {
		logLevel = zerolog.TraceLevel
	}
	log.Logger = log.Level(logLevel).Output(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Str("version", version).Logger()

	if dirFlag == "" {
		log.Fatal().Msg("Please specify directory")
	}
	if dbFilenameFlag == "" && outFlag == "" {
		log.Fatal().Msg("Please specify -db and/or -out")
	}

	files, err := collector.CollectDir(dirFlag, collector.Options{})
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot collect files")
	}
	// fail before writing anything
	table, err := assets.NewTable(files...)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid asset table")
	}

	if dbFilenameFlag != "" {
		if err := writeBundle(dbFilenameFlag, table.Files()); err != nil {
			log.Fatal().Err(err).Str("db", dbFilenameFlag).Msg("Cannot write bundle")
		}
		log.Info().Str("db", dbFilenameFlag).Int("files", table.Len()).Msg("Wrote bundle")
	}

	if outFlag != "" {
		var buf bytes.Buffer
		if err := gen.Generate(&buf, pkgFlag, varFlag, table.Files()); err != nil {
			log.Fatal().Err(err).Msg("Cannot generate source")
		}
		if err := os.WriteFile(outFlag, buf.Bytes(), 0644); err != nil {
			log.Fatal().Err(err).Str("out", outFlag).Msg("Cannot write source")
		}
		log.Info().Str("out", outFlag).Int("files", table.Len()).Msg("Wrote source")
	}
}

// writeBundle replaces the contents of the bundle with files.
func writeBundle(filename string, files []assets.File) error {
	s, err := store.NewSQLiteStore(filename)
	if err != nil {
		return err
	}
	defer s.Close()

	existing, err := s.All()
	if err != nil {
		return err
	}
	for _, f := range existing {
		if err := s.Purge(f.Route); err != nil {
			return err
		}
	}
	return store.Save(s, files)
}
