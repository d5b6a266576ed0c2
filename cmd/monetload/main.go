// Command monetload streams a file into a server table through the
// external copy client.
//
// Usage:
//
//	monetload [-config config.json] [-delimiters ",|"] [-null "\N"] TABLE FILE
//
// Connection settings come from the config file or MONETLOAD_* environment
// variables (MONETLOAD_HOST, MONETLOAD_DATABASE, MONETLOAD_USER,
// MONETLOAD_PASSWORD, optional MONETLOAD_PORT and MONETLOAD_CLIENT_PATH).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/op/go-logging"

	"github.com/monetdb-contrib/monet-go/bulkload"
)

var log = logging.MustGetLogger("monetload")

func main() {
	configPath := flag.String("config", "", "path to JSON config file")
	delimiters := flag.String("delimiters", "", "field delimiters, concatenated (e.g. \",|\")")
	nullMarker := flag.String("null", "", "token the file uses for NULL")
	nullSet := false
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "null" {
			nullSet = true
		}
	})

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: monetload [flags] TABLE FILE")
		flag.PrintDefaults()
		os.Exit(2)
	}
	table := flag.Arg(0)
	sourcePath := flag.Arg(1)

	config, err := InitConfig(*configPath)
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	level, err := logging.LogLevel(config.LogLevel)
	if err != nil {
		level = logging.INFO
	}
	logging.SetLevel(level, "monetload")

	spec := bulkload.LoadSpec{
		Table:      table,
		SourcePath: sourcePath,
	}
	if *delimiters != "" {
		spec.Delimiters = strings.Split(*delimiters, "")
	}
	if nullSet {
		spec.NullMarker = nullMarker
	}

	loader := bulkload.NewLoader(bulkload.ServerConfig{
		Host:       config.Host,
		Port:       config.Port,
		Database:   config.Database,
		User:       config.User,
		Password:   config.Password,
		ClientPath: config.ClientPath,
	}, nil)

	log.Infof("loading %s into %s on %s:%d/%s", sourcePath, table, config.Host, config.Port, config.Database)

	output, err := loader.Load(context.Background(), spec)
	if err != nil {
		if output != "" {
			fmt.Fprint(os.Stderr, output)
		}
		log.Fatalf("bulk load failed: %v", err)
	}

	if output != "" {
		fmt.Print(output)
	}
	log.Info("bulk load complete")
}
