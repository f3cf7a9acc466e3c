package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/appanvil/pkg/share"
)

var shareBaseURL string

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Encode and decode share tokens",
}

var shareEncodeCmd = &cobra.Command{
	Use:   "encode <app-id...>",
	Short: "Encode a selection as a share token",
	Long: `Encode the selected apps and options as a compact share token. A share
link is printed too when a base URL is given or configured.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShareEncode,
}

var shareDecodeCmd = &cobra.Command{
	Use:   "decode <token|link|file>",
	Short: "Decode a share token into selection JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runShareDecode,
}

func init() {
	addOptionFlags(shareEncodeCmd)
	shareEncodeCmd.Flags().StringVar(&shareBaseURL, "base-url", "", "site the share link points at (default from config)")

	shareCmd.AddCommand(shareEncodeCmd)
	shareCmd.AddCommand(shareDecodeCmd)
}

func runShareEncode(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	g, err := openGenerator(cmd.Context())
	if err != nil {
		return err
	}

	token, link, err := g.Share(args, resolveOptions(cmd, config.Defaults))
	if err != nil {
		return err
	}
	if shareBaseURL != "" {
		link = share.ShareURL(shareBaseURL, token)
	}

	fmt.Fprintln(w, token)
	if link != "" {
		fmt.Fprintln(w, link)
	}
	return nil
}

func runShareDecode(cmd *cobra.Command, args []string) error {
	text, err := readInput(args[0])
	if err != nil {
		return err
	}

	payload, err := share.ParseFromText(text)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling selection: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
