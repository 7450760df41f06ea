package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/textproto"
	"os"
	"strings"

	"github.com/solatis/hxwire/internal/core/config"
	"github.com/solatis/hxwire/internal/headers"
	"github.com/solatis/hxwire/internal/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newDecodeCmd(a *app) *cobra.Command {
	var (
		direction string
		file      string
		output    string
	)

	decodeCmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode an HTTP header block into a typed document",
		Long: `Reads an HTTP header block (one "Name: value" per line, optionally
preceded by a request or status line) and prints the htmx headers it
carries as a JSON or YAML document. Non-htmx headers are ignored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := directionFlag(direction)
			if err != nil {
				return err
			}
			format := a.cfg.OutputFormat
			if cmd.Flags().Changed("output") {
				format = output
			}

			in, closeIn, err := openInput(cmd, file)
			if err != nil {
				return err
			}
			defer closeIn()

			h, err := readHeaderBlock(in)
			if err != nil {
				return fmt.Errorf("failed to read header block: %w", err)
			}
			fields := headers.FromHTTP(h)
			a.logger.Debug().Int("headers", len(fields)).Str("direction", dir.String()).Msg("header block read")

			var doc any
			if dir == types.DirectionRequest {
				b, err := headers.DecodeRequest(fields)
				if err != nil {
					return err
				}
				doc = requestView(b)
			} else {
				b, err := headers.DecodeResponse(fields)
				if err != nil {
					return err
				}
				if doc, err = responseView(b); err != nil {
					return err
				}
			}

			return writeDoc(cmd.OutOrStdout(), format, doc)
		},
	}

	decodeCmd.Flags().StringVar(&direction, "direction", "request", "header direction (request, response)")
	decodeCmd.Flags().StringVarP(&file, "file", "f", "", "read from file instead of stdin")
	decodeCmd.Flags().StringVarP(&output, "output", "o", config.FormatJSON, "document format (json, yaml); overrides output.format")
	return decodeCmd
}

// openInput returns the named file, or the command's stdin when name is
// empty or "-".
func openInput(cmd *cobra.Command, name string) (io.Reader, func(), error) {
	if name == "" || name == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// readHeaderBlock parses MIME-style header lines. A leading request line
// ("GET / HTTP/1.1") or status line ("HTTP/1.1 200 OK") is skipped. The
// block ends at the first empty line or at end of input.
func readHeaderBlock(r io.Reader) (http.Header, error) {
	br := bufio.NewReader(r)

	first, err := br.Peek(1)
	if errors.Is(err, io.EOF) || (err == nil && (first[0] == '\n' || first[0] == '\r')) {
		return http.Header{}, nil
	}

	line, err := peekLine(br)
	if err != nil {
		return nil, err
	}
	if isStartLine(line) {
		if _, err := br.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	}

	mh, err := textproto.NewReader(br).ReadMIMEHeader()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return http.Header(mh), nil
}

// peekLine returns the first line of br without consuming it.
func peekLine(br *bufio.Reader) (string, error) {
	for n := 64; ; n *= 2 {
		buf, err := br.Peek(n)
		if i := bytes.IndexByte(buf, '\n'); i >= 0 {
			return string(buf[:i]), nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, bufio.ErrBufferFull) {
				return string(buf), nil
			}
			return "", err
		}
	}
}

func isStartLine(line string) bool {
	line = strings.TrimRight(line, "\r")
	return strings.HasPrefix(line, "HTTP/") || strings.Contains(line, " HTTP/")
}

// writeDoc prints doc as indented JSON or YAML.
func writeDoc(w io.Writer, format string, doc any) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown document format %q", format)
}
