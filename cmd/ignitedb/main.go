// Command ignitedb is a thin interactive collaborator around an ignitedb
// instance: it parses commands from stdin and calls the public facade. No
// part of the core storage engine lives here.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ignitedb/ignitedb/pkg/config"
	apperrors "github.com/ignitedb/ignitedb/pkg/errors"
	"github.com/ignitedb/ignitedb/pkg/ignitedb"
	"github.com/ignitedb/ignitedb/pkg/logger"
	"github.com/ignitedb/ignitedb/pkg/options"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file (optional)")
	dataDir := flag.String("data-dir", "", "base directory for segment files, overrides the config file")
	flag.Parse()

	log := logger.New("ignitedb-cli")

	var opts []options.OptionFunc
	if *configPath != "" {
		fc, err := config.Load(*configPath, log)
		if err != nil {
			log.Fatalw("failed to load configuration", "path", *configPath, "error", err)
		}
		opts = append(opts, fc.OptionFuncs()...)
	}
	if *dataDir != "" {
		opts = append(opts, options.WithDataDir(*dataDir))
	}

	db, err := ignitedb.Open("ignitedb-cli", opts...)
	if err != nil {
		log.Fatalw("failed to open database", "error", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorw("error closing database", "error", err)
		}
	}()

	runLoop(db, log)
}

func runLoop(db *ignitedb.DB, log interface {
	Debugw(string, ...any)
	Warnw(string, ...any)
	Errorw(string, ...any)
}) {
	fmt.Println("ignitedb - embedded log-structured key-value store")
	fmt.Println("Commands: PUT <key> <value>, GET <key>, DELETE <key>, COMPACT, EXIT")
	fmt.Print("> ")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Print("> ")
			continue
		}

		parts := strings.Fields(line)
		switch strings.ToUpper(parts[0]) {
		case "PUT":
			if len(parts) < 3 {
				fmt.Println("Usage: PUT <key> <value>")
				break
			}
			if err := db.Put([]byte(parts[1]), []byte(strings.Join(parts[2:], " "))); err != nil {
				log.Errorw("PUT failed", "key", parts[1], "code", apperrors.GetErrorCode(err), "error", err)
				fmt.Printf("Error [%s]: %v\n", apperrors.GetErrorCode(err), err)
			} else {
				fmt.Println("OK")
			}

		case "GET":
			if len(parts) < 2 {
				fmt.Println("Usage: GET <key>")
				break
			}
			value, live, err := db.Get([]byte(parts[1]))
			if err != nil {
				if storageErr, ok := apperrors.AsStorageError(err); ok {
					log.Errorw("GET failed", "key", parts[1], "code", storageErr.Code(), "segmentId", storageErr.SegmentId(), "error", err)
				} else {
					log.Errorw("GET failed", "key", parts[1], "error", err)
				}
				fmt.Printf("Error [%s]: %v\n", apperrors.GetErrorCode(err), err)
			} else if !live {
				fmt.Println("(absent)")
			} else {
				fmt.Printf("%s\n", value)
			}

		case "DELETE":
			if len(parts) < 2 {
				fmt.Println("Usage: DELETE <key>")
				break
			}
			if err := db.Delete([]byte(parts[1])); err != nil {
				log.Errorw("DELETE failed", "key", parts[1], "error", err)
				fmt.Printf("Error: %v\n", err)
			} else {
				fmt.Println("OK")
			}

		case "COMPACT":
			if err := db.Compact(); err != nil {
				log.Errorw("COMPACT failed", "error", err)
				fmt.Printf("Error: %v\n", err)
			} else {
				fmt.Println("OK")
			}

		case "EXIT", "QUIT":
			fmt.Println("Goodbye!")
			return

		default:
			log.Warnw("unknown command", "command", parts[0])
			fmt.Printf("Unknown command: %s\n", parts[0])
		}

		fmt.Print("> ")
	}
}
