package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"video-downloader/internal/extraction"
	"video-downloader/internal/ytdlp"

	"golang.org/x/term"
)

const (
	// Width used when stdout is a terminal of unknown size
	defaultWidth = 120
	// Narrowest URL column worth printing
	minURLWidth = 24
)

func main() {
	if len(os.Args) != 2 || os.Args[1] == "-h" || os.Args[1] == "--help" {
		printUsage()
		os.Exit(1)
	}

	// Create a context that cancels on interrupt signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, stopping extractor...")
		cancel()
	}()

	svc := extraction.NewService(ytdlp.New(os.Getenv("EXTRACTOR_PATH")))
	result, err := svc.Extract(ctx, os.Args[1])
	if err != nil {
		if errors.Is(err, extraction.ErrInvalidInput) {
			printUsage()
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		if err := printJSON(os.Stdout, result); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		width = defaultWidth
	}
	if err := printTable(os.Stdout, result, width); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Video Downloader Rendition Inspector")
	fmt.Println("")
	fmt.Println("Usage: renditions <page-url>")
	fmt.Println("")
	fmt.Println("Prints the ranked renditions available for a page. Output is a table")
	fmt.Println("on a terminal and the /extract-video JSON envelope otherwise.")
	fmt.Println("")
	fmt.Println("Environment:")
	fmt.Printf("  EXTRACTOR_PATH - yt-dlp binary (default: %s)\n", ytdlp.DefaultBinary)
}

func printJSON(w io.Writer, result *extraction.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func printTable(w io.Writer, result *extraction.Result, width int) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", result.Title); err != nil {
		return err
	}
	if len(result.Videos) == 0 {
		_, err := fmt.Fprintln(w, "No downloadable renditions found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tFORMAT\tQUALITY\tSIZE\tCODEC\tTYPE\tAUDIO\tURL")

	urlWidth := max(width/3, minURLWidth)
	for i, v := range result.Videos {
		audio := "no"
		if v.HasAudio {
			audio = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1, v.FormatID, v.Quality, v.SizeLabel, v.Codec, v.Transport, audio,
			truncate(v.SourceURL, urlWidth))
	}
	return tw.Flush()
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return strings.TrimSpace(string(r[:n-3])) + "..."
}
