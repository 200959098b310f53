package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// Row is one record keyed by normalised column label.
type Row map[string]any

// NormalizeLabel turns a column label into its row key: lower case with
// all whitespace removed ("Rate Per Unit" becomes "rateperunit").
func NormalizeLabel(label string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, label)
}

// Export renders rows as comma-separated text: a header of labels, then one
// line per row with the value found under each normalised label. Lines are
// separated by "\n" with no trailing newline.
func Export(rows []Row, labels []string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(labels); err != nil {
		return "", err
	}
	record := make([]string, len(labels))
	for _, row := range rows {
		for i, label := range labels {
			record[i] = formatValue(row[NormalizeLabel(label)])
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case decimal.Decimal:
		return v.String()
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Filename builds "<prefix>_<YYYY-MM-DD>.<ext>" from the UTC date of at.
func Filename(prefix string, at time.Time, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, at.UTC().Format("2006-01-02"), ext)
}
