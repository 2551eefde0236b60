package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llehouerou/sdindex/internal/errmsg"
	"github.com/llehouerou/sdindex/internal/tags"
)

func cmdInspect() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.mp3>...",
		Short: "Show the raw tags of files and what would be indexed for them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if err := inspectFile(path); err != nil {
					fmt.Println(errmsg.FormatWith(errmsg.OpExtract, path, err))
					failed++
				}
				fmt.Println()
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be read", failed, len(args))
			}
			return nil
		},
	}
}

func inspectFile(path string) error {
	raw, err := tags.Read(path)
	if err != nil {
		return err
	}
	m, err := tags.Extract(path)
	if err != nil {
		var extractErr *tags.ExtractionError
		if errors.As(err, &extractErr) {
			return extractErr.Err
		}
		return err
	}

	fmt.Println(path)
	fmt.Printf("  %-8s %-40q -> %s\n", "title", raw.Title, m.Title)
	fmt.Printf("  %-8s %-40q -> %s\n", "artist", raw.Artist, m.Artist)
	fmt.Printf("  %-8s %-40q -> %s\n", "album", raw.Album, m.Album)
	fmt.Printf("  %-8s %-40q -> %d\n", "track", raw.Track, m.TrackNumber)
	if m.Year != nil {
		fmt.Printf("  %-8s %-40q -> %d\n", "date", raw.Date, *m.Year)
	} else {
		fmt.Printf("  %-8s %-40q -> (none)\n", "date", raw.Date)
	}
	fmt.Printf("  %-8s %ds, %d bytes\n", "audio", m.Duration, m.FileSize)
	return nil
}
