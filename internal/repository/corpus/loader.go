// Package corpus loads the preprocessed statute corpus snapshot. The corpus
// is read once at startup and handed to the statute retriever; nothing
// mutates it afterwards.
package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jeonselab/lawdex/internal/domain"
)

// Load reads statute articles from a JSON array file or a JSONL file.
// corpusPath is used as-is when absolute, otherwise resolved against
// baseDir; a missing corpus file is a startup error, not an empty corpus.
// metaPath optionally names a legacy metadata file merged row-wise; when
// set, both lists are truncated to the shorter one.
func Load(baseDir, corpusPath, metaPath string) ([]domain.LegalArticle, error) {
	path, err := resolve(baseDir, corpusPath)
	if err != nil {
		return nil, err
	}
	rows, err := readRows(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}

	var metas []json.RawMessage
	if metaPath != "" {
		mp, err := resolve(baseDir, metaPath)
		if err != nil {
			return nil, err
		}
		if metas, err = readRows(mp); err != nil {
			return nil, fmt.Errorf("read corpus meta %s: %w", mp, err)
		}
		if len(metas) < len(rows) {
			rows = rows[:len(metas)]
		} else {
			metas = metas[:len(rows)]
		}
	}

	articles := make([]domain.LegalArticle, len(rows))
	for i, raw := range rows {
		var meta json.RawMessage
		if metas != nil {
			meta = metas[i]
		}
		articles[i] = decodeArticle(i, raw, meta)
	}
	return articles, nil
}

func resolve(baseDir, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("corpus path is empty")
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("corpus file not found: %s", path)
	}
	return path, nil
}

// readRows returns the raw row list. ".jsonl" files hold one JSON value per
// line (blank lines skipped); everything else must be a JSON array.
func readRows(path string) ([]json.RawMessage, error) {
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		var rows []json.RawMessage
		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 0, 1<<20), 1<<24)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			rows = append(rows, json.RawMessage(line))
		}
		return rows, sc.Err()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("corpus is not a JSON array: %w", err)
	}
	return rows, nil
}

// articleRow holds the optional fields a well-formed corpus row carries.
// ArticleNo is decoded loosely because older snapshots store it as a number.
type articleRow struct {
	LawName   string `json:"law_name"`
	ArticleNo any    `json:"article_no"`
	Text      string `json:"text"`
}

// decodeArticle normalizes one corpus row. Object rows take their own
// fields with meta-row fallbacks; non-object rows (plain strings, numbers)
// are coerced into an article whose text is the stringified content and
// whose name fields come from the meta row alone.
func decodeArticle(index int, raw, meta json.RawMessage) domain.LegalArticle {
	var m articleRow
	if meta != nil {
		// A malformed meta row degrades to empty fallbacks.
		_ = json.Unmarshal(meta, &m)
	}

	var row articleRow
	if err := json.Unmarshal(raw, &row); err == nil && isObject(raw) {
		law := row.LawName
		if law == "" {
			law = m.LawName
		}
		art := stringify(row.ArticleNo)
		if art == "" {
			art = stringify(m.ArticleNo)
		}
		return domain.LegalArticle{Index: index, LawName: law, ArticleNo: art, Text: row.Text}
	}

	var v any
	_ = json.Unmarshal(raw, &v)
	return domain.LegalArticle{
		Index:     index,
		LawName:   m.LawName,
		ArticleNo: stringify(m.ArticleNo),
		Text:      stringify(v),
	}
}

func isObject(raw json.RawMessage) bool {
	trimmed := strings.TrimLeft(string(raw), " \t\r\n")
	return strings.HasPrefix(trimmed, "{")
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
