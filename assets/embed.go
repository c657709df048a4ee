// Package assets embeds the default answer list and the SQL migrations.
package assets

import (
	"bufio"
	"embed"
	"io"
	"io/fs"
	"strings"
)

//go:embed answers.txt
var wordsFS embed.FS

//go:embed sql/*.sql
var migrationsFS embed.FS

// ReadLines returns the non-empty, non-comment lines of r, upper-cased.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToUpper(s))
	}
	return out, sc.Err()
}

// AnswersList returns the embedded default answers.
func AnswersList() ([]string, error) {
	f, err := wordsFS.Open("answers.txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// Migrations exposes the sql/ directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}
