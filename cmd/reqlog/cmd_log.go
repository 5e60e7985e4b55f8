package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/reqlog/internal/core/history"
)

type logOptions struct {
	method   string
	service  string
	route    string
	url      string
	payload  string
	response string
}

func newLogCmd(a *app) *cobra.Command {
	var opts logOptions

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Append one completed request to the history",
		Long: `Append one completed request to the history. Payload and response are
read from JSON files; "-" reads from stdin. Either may be omitted.`,
		Example: `  reqlog log --method GET --service users --route list --url https://api.example.com/users --response resp.json
  curl -s https://api.example.com/users | reqlog log --service users --url https://api.example.com/users --response -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.payload == "-" && opts.response == "-" {
				return errors.New("only one of --payload and --response can read stdin")
			}

			service, err := a.cfg.ResolveService(opts.service)
			if err != nil {
				return err
			}
			payload, err := readDocument(cmd.InOrStdin(), opts.payload)
			if err != nil {
				return fmt.Errorf("payload: %w", err)
			}
			response, err := readDocument(cmd.InOrStdin(), opts.response)
			if err != nil {
				return fmt.Errorf("response: %w", err)
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := store.Insert(cmd.Context(), history.NewRecord{
				Method:   strings.ToUpper(opts.method),
				Service:  service,
				RouteURL: opts.route,
				FullURL:  opts.url,
				Payload:  payload,
				Response: response,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "logged #%d\n", id)
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.method, "method", "X", "GET", "HTTP method")
	cmd.Flags().StringVarP(&opts.service, "service", "s", "", "service alias")
	cmd.Flags().StringVarP(&opts.route, "route", "r", "", "route relative to the service")
	cmd.Flags().StringVarP(&opts.url, "url", "u", "", "full resolved URL")
	cmd.Flags().StringVar(&opts.payload, "payload", "", "JSON file with the request payload (- for stdin)")
	cmd.Flags().StringVar(&opts.response, "response", "", "JSON file with the response body (- for stdin)")
	_ = cmd.MarkFlagRequired("service")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

// readDocument loads a JSON document from path, or from stdin for "-". An
// empty path or blank input means no document.
func readDocument(stdin io.Reader, path string) (json.RawMessage, error) {
	var (
		data []byte
		err  error
	)
	switch path {
	case "":
		return nil, nil
	case "-":
		data, err = io.ReadAll(stdin)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w in %s", history.ErrInvalidJSON, displayPath(path))
	}
	return json.RawMessage(data), nil
}

func displayPath(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}
