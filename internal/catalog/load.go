package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// DataGlob is the doublestar pattern used to discover catalog data files
// beneath the configured data directory.
const DataGlob = "**/*.toml"

// dataFile mirrors the on-disk TOML shape. A single file may carry any mix
// of the three record kinds, so teams can split data by course, by location,
// or keep one file per kind.
type dataFile struct {
	Courses  []Course  `toml:"courses"`
	Sessions []Session `toml:"sessions"`
	Members  []Member  `toml:"members"`
}

// Load discovers every catalog data file under dir and builds a Store from
// the merged records. Files are parsed concurrently; results are merged in
// path order so the store's record order is stable regardless of which file
// finished first.
func Load(ctx context.Context, dir string) (*Store, error) {
	paths, err := doublestar.FilepathGlob(filepath.Join(dir, DataGlob))
	if err != nil {
		return nil, fmt.Errorf("catalog: globbing %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("catalog: no data files under %s", dir)
	}
	sort.Strings(paths)

	parsed := make([]dataFile, len(paths))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var df dataFile
			if _, err := toml.DecodeFile(path, &df); err != nil {
				return fmt.Errorf("catalog: parsing %s: %w", path, err)
			}
			mu.Lock()
			parsed[i] = df
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var courses []Course
	var sessions []Session
	var members []Member
	for _, df := range parsed {
		courses = append(courses, df.Courses...)
		sessions = append(sessions, df.Sessions...)
		members = append(members, df.Members...)
	}

	return NewStore(courses, sessions, members)
}
