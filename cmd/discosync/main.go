package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"discosync/internal/config"
	"discosync/internal/discogs"
	"discosync/internal/pipeline"
	"discosync/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cmd := os.Args[1]
	switch cmd {
	case "sync":
		must(cfg.Require("DISCOGS_TOKEN", cfg.DiscogsToken))
		must(cfg.Require("DISCOGS_USERNAME", cfg.DiscogsUsername))
		db := openDB(cfg.DBPath)
		defer db.Close()
		svc := discogs.NewSyncService(cfg, log)
		rows, err := svc.FetchRows(context.Background())
		must(err)
		must(db.ReplaceCollection(rows))
		must(db.SetMetadata("sync.last_run", time.Now().UTC().Format(time.RFC3339)))
		must(db.SetMetadata("sync.row_count", strconv.Itoa(len(rows))))
		fmt.Printf("sync complete: %d rows in %s\n", len(rows), cfg.DBPath)
		printSample(db, 5)
	case "verify":
		db := openDB(cfg.DBPath)
		defer db.Close()
		count, err := db.CountRows()
		must(err)
		fmt.Printf("collection rows: %d\n", count)
		if last, err := db.GetMetadata("sync.last_run"); err == nil && last != nil {
			fmt.Printf("last sync: %s\n", *last)
		}
		printSample(db, 5)
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}
		db := openDB(cfg.DBPath)
		defer db.Close()
		rows, err := db.ListRows()
		must(err)
		if len(rows) == 0 {
			must(fmt.Errorf("no rows to export; run sync first"))
		}
		must(pipeline.ExportRowsToXLSX(rows, *out))
		fmt.Printf("exported %d rows to %s\n", len(rows), *out)
	default:
		usage()
		os.Exit(1)
	}
}

func openDB(path string) *storage.DB {
	db, err := storage.Open(path)
	must(err)
	return db
}

func printSample(db *storage.DB, limit int) {
	rows, err := db.ListRows()
	if err != nil {
		return
	}
	for i, row := range rows {
		if i >= limit {
			break
		}
		fmt.Printf("  %d | %s | %s | %s\n", row.ReleaseID, row.Artist, row.Title, row.Format)
	}
}

func usage() {
	fmt.Println("usage: discosync <command>")
	fmt.Println("commands:")
	fmt.Println("  sync")
	fmt.Println("  verify")
	fmt.Println("  export:xlsx --out=./out/collection.xlsx")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
