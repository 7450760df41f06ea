package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"strings"

	"github.com/solatis/hxwire/internal/core/config"
	"github.com/solatis/hxwire/internal/headers"
	"github.com/solatis/hxwire/internal/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newEncodeCmd(a *app) *cobra.Command {
	var (
		direction string
		file      string
		input     string
	)

	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a typed document into htmx header lines",
		Long: `Reads a JSON or YAML document in the shape printed by "hxwire decode"
and prints one "Name: value" line per header, in registry order.
Unknown document keys are rejected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := directionFlag(direction)
			if err != nil {
				return err
			}
			format := a.cfg.InputFormat
			if cmd.Flags().Changed("input") {
				format = input
			}

			in, closeIn, err := openInput(cmd, file)
			if err != nil {
				return err
			}
			defer closeIn()

			data, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("failed to read document: %w", err)
			}

			var fields headers.Fields
			if dir == types.DirectionRequest {
				var doc requestDoc
				if err := readDoc(data, format, &doc); err != nil {
					return err
				}
				fields = headers.EncodeRequest(doc.bundle())
			} else {
				var doc responseDoc
				if err := readDoc(data, format, &doc); err != nil {
					return err
				}
				b, err := doc.bundle()
				if err != nil {
					return err
				}
				fields = headers.EncodeResponse(b)
			}
			a.logger.Debug().Int("headers", len(fields)).Str("direction", dir.String()).Msg("bundle encoded")

			return writeFields(cmd.OutOrStdout(), fields)
		},
	}

	encodeCmd.Flags().StringVar(&direction, "direction", "request", "header direction (request, response)")
	encodeCmd.Flags().StringVarP(&file, "file", "f", "", "read from file instead of stdin")
	encodeCmd.Flags().StringVarP(&input, "input", "i", config.FormatJSON, "document format (json, yaml); overrides input.format")
	return encodeCmd
}

// readDoc decodes a JSON or YAML document into v. Empty input is an empty
// document.
func readDoc(data []byte, format string, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	switch format {
	case config.FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("invalid json document: %w", err)
		}
		return nil
	case config.FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("invalid yaml document: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown document format %q", format)
}

// writeFields prints one header line per field.
func writeFields(w io.Writer, fields headers.Fields) error {
	for _, f := range fields {
		if _, err := fmt.Fprintf(w, "%s: %s\n", displayName(f.Name), f.Value); err != nil {
			return err
		}
	}
	return nil
}

// displayName renders a registry name the way htmx documents it,
// e.g. "hx-push-url" becomes "HX-Push-Url".
func displayName(name string) string {
	canon := textproto.CanonicalMIMEHeaderKey(name)
	if strings.HasPrefix(canon, "Hx-") {
		return "HX-" + canon[len("Hx-"):]
	}
	return canon
}
