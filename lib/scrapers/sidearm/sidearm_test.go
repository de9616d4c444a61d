package sidearm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"rostergraph/internal/roster"
	"rostergraph/lib/restyutil"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func rosterHtml(rows ...string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html><body>
<table class="sidearm-table other"><tr><td>not this one</td></tr></table>
<table class="sidearm-table sidearm-table-grid-template-1 sidearm-table-grid-template-1-breakdown-large">
<thead><tr><th>No.</th><th>Name</th><th>Pos.</th><th>Ht.</th><th>Hometown / High School</th></tr></thead>
<tbody>
%s
</tbody>
</table>
</body></html>`, strings.Join(rows, "\n"))
}

const johnRow = `<tr><td>7</td><td>
<a href="/sports/football/roster/john-doe/1">Doe, John</a>
</td><td>
QB
</td><td>6-2</td><td>Pittsburgh, Pa. / Central HS</td></tr>`

const janeRow = `<tr><td>4</td><td>Jane Roe</td><td>WR</td><td>6-0</td><td>Erie, Pa. /
McDowell</td></tr>`

func dumpOutput(t *testing.T, dir string) restyutil.InstrumentOutput {
	out, err := restyutil.NewFilesystemOutput(dir)
	require.NoError(t, err)
	return out
}

func TestYearFromLocator(t *testing.T) {
	require.Equal(t, "2019", YearFromLocator("https://gopsusports.com/sports/football/roster/2019"))
	require.Equal(t, "2019", YearFromLocator("https://gopsusports.com/sports/football/roster/2019/"))
	require.Equal(t, "2014", YearFromLocator("testdata/pages/2014.html"))
}

func TestParsePage(t *testing.T) {
	page, err := ParsePage(context.Background(), "https://example.test/roster/2019", strings.NewReader(rosterHtml(johnRow, janeRow)), DefaultTableSelector)
	require.NoError(t, err)

	expected := roster.Page{
		Locator: "https://example.test/roster/2019",
		Year:    "2019",
		Rows: []roster.Row{
			{Cells: []string{"7", "Doe, John", "QB", "6-2", "Pittsburgh, Pa. / Central HS"}},
			{Cells: []string{"4", "Jane Roe", "WR", "6-0", "Erie, Pa. /McDowell"}},
		},
	}
	if diff := cmp.Diff(expected, page); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestParsePageWithoutTable(t *testing.T) {
	_, err := ParsePage(context.Background(), "x/2019", strings.NewReader("<html><body><p>moved</p></body></html>"), DefaultTableSelector)
	require.ErrorIs(t, err, ErrTableNotFound)
}

func TestClientFetch(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/sports/football/roster/2019":
			fmt.Fprint(w, rosterHtml(johnRow))
		case "/sports/football/roster/2020":
			fmt.Fprint(w, "<html><body>no roster</body></html>")
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	dumps := t.TempDir()
	client, err := NewClient(ClientOptions{
		BaseUrl:    server.URL + "/sports/football/roster/",
		Timeout:    time.Second * 5,
		DumpOutput: dumpOutput(t, dumps),
	})
	require.NoError(t, err)
	require.Equal(t, server.URL+"/sports/football/roster/2019", client.RosterUrl(2019))

	ctx := context.Background()

	page, err := client.Fetch(ctx, 2019)
	require.NoError(t, err)
	require.Equal(t, "2019", page.Year)
	require.Len(t, page.Rows, 1)
	require.Equal(t, "Doe, John", page.Rows[0].Cells[1])

	_, err = client.Fetch(ctx, 2020)
	require.ErrorIs(t, err, ErrTableNotFound)

	_, err = client.Fetch(ctx, 2021)
	require.ErrorContains(t, err, "404")

	require.Equal(t, []string{
		"/sports/football/roster/2019",
		"/sports/football/roster/2020",
		"/sports/football/roster/2021",
	}, paths)

	entries, err := os.ReadDir(dumps)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	dump, err := os.ReadFile(filepath.Join(dumps, "1.txt"))
	require.NoError(t, err)
	require.Contains(t, string(dump), "---- RESPONSE ----")
	require.Contains(t, string(dump), "Doe, John")
}

func TestNewClientRejectsRelativeUrl(t *testing.T) {
	_, err := NewClient(ClientOptions{BaseUrl: "sports/football/roster"})
	require.Error(t, err)
}

func TestFixtures(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "2012.html"), []byte(rosterHtml(janeRow)), 0600)
	require.NoError(t, err)

	src := Fixtures{Dir: dir}
	page, err := src.Fetch(context.Background(), 2012)
	require.NoError(t, err)
	require.Equal(t, "2012", page.Year)
	require.Equal(t, []roster.Row{{Cells: []string{"4", "Jane Roe", "WR", "6-0", "Erie, Pa. /McDowell"}}}, page.Rows)

	_, err = src.Fetch(context.Background(), 2013)
	require.ErrorIs(t, err, os.ErrNotExist)
}
