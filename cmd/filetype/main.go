// Command filetype prints the detected {extension, media-type} pair for a
// file path or, with no arguments, for stdin.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zakirbaytar/file-type/pkg/filetype"
)

var (
	mpegOffsetTolerance uint
	verbose             bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filetype [path]",
		Short: "Identify a file's format by inspecting its leading bytes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  run,
	}
	cmd.Flags().UintVar(&mpegOffsetTolerance, "mpeg-offset-tolerance", 0,
		"bytes past offset 0 the imprecise MPEG audio sync scan will search")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	opts := filetype.ParseOpts{MPEGOffsetTolerance: mpegOffsetTolerance}

	var ext, mime string
	var err error
	if len(args) == 0 {
		ext, mime, err = filetype.ParseStream(os.Stdin, opts)
	} else {
		ext, mime, err = filetype.ParseFile(args[0], opts)
	}
	if err != nil {
		return err
	}

	if ext == "" {
		fmt.Println("unknown")
		return nil
	}
	fmt.Printf("%s\t%s\n", ext, mime)
	return nil
}
