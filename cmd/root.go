/*
Copyright © 2025 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/blacktop/lipost/internal/config"
	"github.com/blacktop/lipost/internal/linkedin"
	"github.com/blacktop/lipost/internal/linkedin/transport"
	"github.com/blacktop/lipost/internal/logutil"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	verbose bool
	dryRun  bool
)

// ExecuteContext runs the root command with ctx, so an interrupt cancels
// in-flight requests.
func ExecuteContext(ctx context.Context) error {
	return newRootCommand().ExecuteContext(ctx)
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lipost",
		Short: "Share to LinkedIn from the command line",
		Long: "lipost reads your profile and publishes text posts, article shares and images to LinkedIn. " +
			"Credentials come from LIPOST_ACCESS_TOKEN and LIPOST_PERSON_ID.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logutil.SetVerbose(verbose)
		},
		Example: `  lipost profile
  lipost share "Ship it!"
  lipost share -m "Worth a read" --url https://example.com --title "Example"
  lipost upload-image --image ./shot.jpg`,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Print actions without posting")

	cmd.AddCommand(
		newProfileCommand(),
		newShareCommand(),
		newLegacyShareCommand(),
		newUploadImageCommand(),
		newCompletionCommand(),
	)

	return cmd
}

// newClient loads configuration and builds a client. person reports whether
// the command acts on behalf of a member and so needs LIPOST_PERSON_ID.
func newClient(person bool) (*linkedin.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Require(person); err != nil {
		return nil, nil, err
	}

	logutil.Debugf("using api: %s", cfg.BaseURL)
	t := transport.New(transport.Config{
		BaseURL: cfg.BaseURL,
		Token:   cfg.AccessToken,
		Timeout: cfg.Timeout,
		Debug:   cfg.Debug,
	})
	return linkedin.New(t), cfg, nil
}

// readInput returns piped stdin, or nothing when stdin is a terminal.
func readInput(cmd *cobra.Command) (string, error) {
	stdin := cmd.InOrStdin()
	if file, ok := stdin.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return "", nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func writeJSON(out io.Writer, data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
	_, err := fmt.Fprintln(out, buf.String())
	return err
}

func newProfileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Print the authenticated member's profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), "[dry-run] would GET /me")
				return nil
			}
			client, _, err := newClient(false)
			if err != nil {
				return err
			}
			profile, err := client.Profile(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), profile)
		},
	}
}

type shareOptions struct {
	comment     string
	url         string
	title       string
	description string
}

func newShareCommand() *cobra.Command {
	var opts shareOptions

	cmd := &cobra.Command{
		Use:   "share [comment]",
		Short: "Publish a text post, or an article share when --url is set",
		RunE: func(cmd *cobra.Command, args []string) error {
			comment, err := resolveComment(cmd, opts.comment, args)
			if err != nil {
				return err
			}
			req := linkedin.ShareRequest{
				Comment:     comment,
				URL:         strings.TrimSpace(opts.url),
				Title:       strings.TrimSpace(opts.title),
				Description: strings.TrimSpace(opts.description),
			}
			return runShare(cmd.Context(), cmd.OutOrStdout(), req)
		},
	}

	cmd.Flags().StringVarP(&opts.comment, "comment", "m", "", "Commentary text for the post")
	cmd.Flags().StringVar(&opts.url, "url", "", "Link to share as an article")
	cmd.Flags().StringVar(&opts.title, "title", "", "Article title (with --url)")
	cmd.Flags().StringVar(&opts.description, "description", "", "Article description (with --url)")
	cmd.Flags().SortFlags = false

	return cmd
}

func resolveComment(cmd *cobra.Command, flag string, args []string) (string, error) {
	comment := flag

	if len(args) > 0 {
		if comment != "" {
			return "", errors.New("provide the comment either as an argument or with --comment, not both")
		}
		comment = strings.Join(args, " ")
	}

	if comment != "" {
		return strings.TrimSpace(comment), nil
	}

	return readInput(cmd)
}

func runShare(ctx context.Context, out io.Writer, req linkedin.ShareRequest) error {
	if dryRun {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := linkedin.Validate(cfg.PersonID, req); err != nil {
			return err
		}
		data, err := json.Marshal(linkedin.BuildSharePayload(cfg.PersonID, req.Content()))
		if err != nil {
			return fmt.Errorf("encode share: %w", err)
		}
		fmt.Fprintln(out, "[dry-run] would POST /ugcPosts:")
		return writeJSON(out, data)
	}

	client, cfg, err := newClient(true)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "posting to %s...\n", client.Name())
	resp, err := client.Share(ctx, cfg.PersonID, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "posted to %s\n", client.Name())

	return writeJSON(out, resp)
}

func newLegacyShareCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "share-legacy",
		Short: "Post a raw JSON body to the legacy /shares endpoint",
		Long:  "share-legacy reads a JSON object from --file or stdin, sets its owner to the configured member and posts it to /shares.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readLegacyBody(cmd, file)
			if err != nil {
				return err
			}

			if dryRun {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				data, err := json.Marshal(linkedin.LegacySharePayload(cfg.PersonID, body))
				if err != nil {
					return fmt.Errorf("encode share: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "[dry-run] would POST /shares:")
				return writeJSON(cmd.OutOrStdout(), data)
			}

			client, cfg, err := newClient(true)
			if err != nil {
				return err
			}
			resp, err := client.ShareLegacy(cmd.Context(), cfg.PersonID, body)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the JSON body (defaults to stdin)")

	return cmd
}

func readLegacyBody(cmd *cobra.Command, path string) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
	} else {
		input, err := readInput(cmd)
		if err != nil {
			return nil, err
		}
		data = []byte(input)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("share body is required")
	}

	// Numbers stay json.Number so large ids are posted exactly as given.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("parse body: %w", err)
	}
	return body, nil
}

func newUploadImageCommand() *cobra.Command {
	var imagePath string

	cmd := &cobra.Command{
		Use:   "upload-image",
		Short: "Upload an image and print its asset URN",
		Long: "upload-image registers an upload slot, sends the image to it and prints the asset URN. " +
			"Reference the asset in a later post to display the image.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(imagePath) == "" {
				return errors.New("--image is required")
			}
			data, err := os.ReadFile(imagePath)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			if mt := mimetype.Detect(data); !mt.Is(linkedin.ImageContentType) {
				logutil.Warnf("%s looks like %s; uploading as %s", imagePath, mt.String(), linkedin.ImageContentType)
			}

			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "[dry-run] would upload %s (%d bytes)\n", imagePath, len(data))
				return nil
			}

			client, cfg, err := newClient(true)
			if err != nil {
				return err
			}
			asset, err := client.ShareImage(cmd.Context(), cfg.PersonID, data)
			if err != nil {
				return err
			}
			logutil.Infof("image uploaded: %s", imagePath)
			fmt.Fprintln(cmd.OutOrStdout(), asset)
			return nil
		},
	}

	cmd.Flags().StringVar(&imagePath, "image", "", "Path to the image (sent as image/jpeg)")

	return cmd
}
