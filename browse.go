package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	dbutil "github.com/llehouerou/sdindex/internal/db"
	"github.com/llehouerou/sdindex/internal/errmsg"
	"github.com/llehouerou/sdindex/internal/library"
)

func cmdBrowse() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <db> [artist [album]]",
		Short: "List the database the way the player shows it",
		Long: `List artists, the albums of an artist, or the songs of an album,
in the order the player displays them.`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := dbutil.OpenReadOnly(args[0])
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpBrowse, err))
			}
			defer database.Close()

			lib := library.New(database)
			ctx := cmd.Context()

			switch len(args) {
			case 1:
				artists, err := lib.Artists(ctx)
				if err != nil {
					return errors.New(errmsg.Format(errmsg.OpBrowse, err))
				}
				for _, a := range artists {
					fmt.Println(a.Name)
				}
				songs, err := lib.SongCount(ctx)
				if err != nil {
					return errors.New(errmsg.Format(errmsg.OpBrowse, err))
				}
				fmt.Printf("\n%d artists, %s songs\n", len(artists), humanize.Comma(int64(songs)))

			case 2:
				albums, err := lib.Albums(ctx, args[1])
				if err != nil {
					return errors.New(errmsg.FormatWith(errmsg.OpBrowse, args[1], err))
				}
				for _, a := range albums {
					if a.Year != nil {
						fmt.Printf("%s (%d)\n", a.Name, *a.Year)
					} else {
						fmt.Println(a.Name)
					}
				}

			case 3:
				songs, err := lib.Songs(ctx, args[1], args[2])
				if err != nil {
					return errors.New(errmsg.FormatWith(errmsg.OpBrowse, args[1]+" - "+args[2], err))
				}
				for _, s := range songs {
					d := time.Duration(s.Duration) * time.Second
					fmt.Printf("%2d. %-40s %6s  %8s  %s\n",
						s.TrackNumber, s.Title, formatDuration(d), humanize.Bytes(uint64(max(s.FileSize, 0))), s.Path)
				}
			}
			return nil
		},
	}
}

// formatDuration renders d as m:ss.
func formatDuration(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
