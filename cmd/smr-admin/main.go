// smr-admin is a small terminal companion to the admin SPA. It logs in,
// runs one command against the backend and prints the result as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/smr-site/reviews-api/internal/apiclient"
)

const usage = `usage: smr-admin [flags] <command> [args]

commands:
  me                           show session state
  codes [limit]                list code counts and previews
  codes-add <file|->           add codes from a file (one per line) or stdin
  codes-delete <code>          delete a single code
  export-unused <out.csv>      download unused codes as CSV
  reviews [limit]              list reviews for moderation
  review-delete <id>           delete a review
  gallery                      list gallery images
  gallery-upload <file> <category> [alt]
  gallery-delete <id>          delete a gallery image
  logout                       end the session

flags:
  -addr      backend base URL (default http://localhost:8000)
  -password  admin password; SMR_ADMIN_PASSWORD is read when unset
`

func main() {
	var addr, password string
	flag.StringVar(&addr, "addr", "http://localhost:8000", "backend base URL")
	flag.StringVar(&password, "password", "", "admin password")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if password == "" {
		password = os.Getenv("SMR_ADMIN_PASSWORD")
	}

	client := apiclient.New(addr)
	command := flag.Arg(0)
	args := flag.Args()[1:]

	// "me" works without a session; everything else logs in first.
	if command != "me" {
		if password == "" {
			fatal("no password: pass -password or set SMR_ADMIN_PASSWORD")
		}
		if err := client.Login(password); err != nil {
			fatal("login failed: %v", err)
		}
	}

	if err := run(client, command, args); err != nil {
		fatal("%v", err)
	}
}

func run(client *apiclient.APIClient, command string, args []string) error {
	switch command {
	case "me":
		session, err := client.Me()
		if err != nil {
			return err
		}
		return print(session)

	case "codes":
		codes, err := client.ListCodes(limitArg(args))
		if err != nil {
			return err
		}
		return print(codes)

	case "codes-add":
		if len(args) != 1 {
			return fmt.Errorf("codes-add needs a file path or -")
		}
		blob, err := readInput(args[0])
		if err != nil {
			return err
		}
		result, err := client.AddCodes(blob)
		if err != nil {
			return err
		}
		return print(result)

	case "codes-delete":
		if len(args) != 1 {
			return fmt.Errorf("codes-delete needs a code")
		}
		result, err := client.DeleteCode(args[0])
		if err != nil {
			return err
		}
		return print(result)

	case "export-unused":
		if len(args) != 1 {
			return fmt.Errorf("export-unused needs an output path")
		}
		csv, err := client.ExportUnusedCodesCSV()
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[0], csv, 0644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", args[0])
		return nil

	case "reviews":
		reviews, err := client.ListReviews(limitArg(args))
		if err != nil {
			return err
		}
		return print(reviews)

	case "review-delete":
		id, err := idArg(args, "review-delete")
		if err != nil {
			return err
		}
		return client.DeleteReview(id)

	case "gallery":
		gallery, err := client.ListGallery()
		if err != nil {
			return err
		}
		return print(gallery)

	case "gallery-upload":
		if len(args) < 2 {
			return fmt.Errorf("gallery-upload needs a file and a category")
		}
		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()
		alt := ""
		if len(args) > 2 {
			alt = strings.Join(args[2:], " ")
		}
		result, err := client.UploadGalleryImage(filepath.Base(args[0]), file, "", args[1], alt)
		if err != nil {
			return err
		}
		return print(result)

	case "gallery-delete":
		id, err := idArg(args, "gallery-delete")
		if err != nil {
			return err
		}
		return client.DeleteGalleryImage(id)

	case "logout":
		return client.Logout()

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func limitArg(args []string) int {
	if len(args) == 0 {
		return 0
	}
	limit, err := strconv.Atoi(args[0])
	if err != nil {
		fatal("limit must be an integer, got %q", args[0])
	}
	return limit
}

func idArg(args []string, command string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s needs an id", command)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id must be an integer, got %q", args[0])
	}
	return id, nil
}

func readInput(path string) (string, error) {
	if path == "-" {
		raw, err := io.ReadAll(os.Stdin)
		return string(raw), err
	}
	raw, err := os.ReadFile(path)
	return string(raw), err
}

func print(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
