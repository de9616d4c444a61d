package sidearm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"rostergraph/internal/roster"
)

// Fixtures reads saved roster pages named <year>.html from a directory,
// it parses them the same way Client does.
type Fixtures struct {
	Dir           string
	TableSelector string
}

func (f Fixtures) Fetch(ctx context.Context, year int) (roster.Page, error) {
	selector := f.TableSelector
	if selector == "" {
		selector = DefaultTableSelector
	}

	path := filepath.Join(f.Dir, fmt.Sprintf("%d.html", year))
	file, err := os.Open(path)
	if err != nil {
		return roster.Page{}, err
	}
	defer file.Close()

	return ParsePage(ctx, path, file, selector)
}
