package targets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/law-makers/phonecrawl/pkg/models"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_StringOrList(t *testing.T) {
	doc := []byte(`
https://www.tinkoff.ru: [/about, /cards/credit-cards]
https://hands.ru: /company/about
https://repetitors.info:
  - /
`)
	sites, err := Parse(doc)
	require.NoError(t, err)

	assert.Equal(t, map[string]models.SiteTarget{
		"https://www.tinkoff.ru":  {Site: "https://www.tinkoff.ru", Paths: []string{"/about", "/cards/credit-cards"}},
		"https://hands.ru":        {Site: "https://hands.ru", Paths: []string{"/company/about"}},
		"https://repetitors.info": {Site: "https://repetitors.info", Paths: []string{"/"}},
	}, sites)
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"bad url":     "hands.ru: /company/about\n",
		"null paths":  "https://hands.ru:\n",
		"nested map":  "https://hands.ru:\n  a: b\n",
		"not a map":   "- https://hands.ru\n",
		"bad element": "https://hands.ru: [[/a]]\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("https://5ka.ru: /about/\n"), 0o644))

	sites, err := File{Path: path}.Targets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"/about/"}, sites["https://5ka.ru"].Paths)

	_, err = File{Path: filepath.Join(t.TempDir(), "missing.yaml")}.Targets(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStaticAndDemo(t *testing.T) {
	demo := Demo()
	sites, err := demo.Targets(context.Background())
	require.NoError(t, err)
	require.NoError(t, validate(sites))
	assert.Len(t, sites, 4)
	assert.Equal(t, []string{"/about", "/cards/credit-cards"}, sites["https://www.tinkoff.ru"].Paths)

	// Targets returns a copy of the table
	delete(sites, "https://hands.ru")
	assert.Len(t, demo, 4)
}

func TestFromArgs(t *testing.T) {
	src, err := FromArgs("https://hands.ru", "/company/about", "/contacts")
	require.NoError(t, err)
	assert.Equal(t, []string{"/company/about", "/contacts"}, src["https://hands.ru"].Paths)

	src, err = FromArgs("https://hands.ru")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, src["https://hands.ru"].Paths)

	_, err = FromArgs("ftp://hands.ru")
	assert.Error(t, err)
}

func TestPostgres_Targets(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	src, err := NewPostgresWithPool(mock, "")
	require.NoError(t, err)

	rows := pgxmock.NewRows([]string{"site", "path"}).
		AddRow("https://hands.ru", "/company/about").
		AddRow("https://www.tinkoff.ru", "/about").
		AddRow("https://www.tinkoff.ru", "/cards/credit-cards")
	mock.ExpectQuery("SELECT site, path FROM site_paths ORDER BY site, position").WillReturnRows(rows)

	sites, err := src.Targets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"/about", "/cards/credit-cards"}, sites["https://www.tinkoff.ru"].Paths)
	assert.Equal(t, "https://hands.ru", sites["https://hands.ru"].Site)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_QueryError(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	src, err := NewPostgresWithPool(mock, "targets")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT site, path FROM targets").WillReturnError(errors.New("relation does not exist"))

	_, err = src.Targets(context.Background())
	assert.ErrorContains(t, err, "relation does not exist")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_InvalidRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	src, err := NewPostgresWithPool(mock, "")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT site, path").
		WillReturnRows(pgxmock.NewRows([]string{"site", "path"}).AddRow("not-a-url", "/"))

	_, err = src.Targets(context.Background())
	assert.Error(t, err)
}

func TestNewPostgresWithPool_Validation(t *testing.T) {
	_, err := NewPostgresWithPool(nil, "")
	assert.Error(t, err)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	_, err = NewPostgresWithPool(mock, "site_paths; DROP TABLE x")
	assert.ErrorContains(t, err, "invalid table name")
}

func TestNewPostgres_RequiresDSN(t *testing.T) {
	_, err := NewPostgres(context.Background(), "", "")
	assert.Error(t, err)
}
