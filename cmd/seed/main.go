package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yungbote/betterday-backend/internal/app"
	"github.com/yungbote/betterday-backend/internal/seed"
	"github.com/yungbote/betterday-backend/internal/types"
)

func main() {
	var date string
	var levelsOnly bool
	var overwrite bool
	flag.StringVar(&date, "date", "", "day to seed as YYYY-MM-DD (default today)")
	flag.BoolVar(&levelsOnly, "levels-only", false, "apply importance levels and skip categories")
	flag.BoolVar(&overwrite, "overwrite", false, "refresh descriptions of categories that already exist")
	flag.Parse()

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	opts := seed.Options{
		Date:       types.DateOf(time.Now().In(application.Cfg.Location)),
		LevelsOnly: levelsOnly,
		Overwrite:  overwrite,
	}
	if s := strings.TrimSpace(date); s != "" {
		parsed, err := types.ParseDate(s)
		if err != nil {
			fmt.Printf("invalid -date %q: %v\n", s, err)
			os.Exit(1)
		}
		opts.Date = parsed
	}

	summary, err := application.Seeder.Run(context.Background(), opts)
	if err != nil {
		fmt.Printf("seed failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("levels applied: %d\n", summary.LevelsApplied)
	if !levelsOnly {
		fmt.Printf("categories on %s: added=%d updated=%d skipped=%d\n",
			types.FormatDate(opts.Date), summary.CategoriesAdded, summary.CategoriesUpdated, summary.CategoriesSkipped)
	}
}
