package filter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxSniffRows bounds how many rows after the candidate header are inspected.
const maxSniffRows = 21

// columnKind is the inferred type of a CSV column: either numeric or a
// fixed string length.
type columnKind struct {
	numeric bool
	length  int
}

// SniffHeader guesses whether the first row of a CSV sample is a header.
//
// Every column of the following rows is typed as numeric or, failing that,
// by its string length. Columns whose type changes between rows are
// discarded. Each remaining column then votes: a header cell that does not
// fit the column type counts for a header, one that fits counts against.
// Length-typed columns compare only the header's length, so a numeric
// header of the right length still counts against.
// The sample has a header when the votes in favour win.
//
// ErrInsufficientSample is returned when the sample has fewer than two rows
// or no column keeps a consistent type.
func SniffHeader(sample string) (bool, error) {
	r := csv.NewReader(strings.NewReader(sample))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return false, ErrInsufficientSample
	}
	if err != nil {
		return false, fmt.Errorf("sniffing header: %w", err)
	}

	columns := len(header)
	kinds := make(map[int]*columnKind, columns)
	dropped := make(map[int]bool, columns)

	rows := 0
	for rows < maxSniffRows {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return false, fmt.Errorf("sniffing header: %w", err)
		}
		rows++
		if len(row) != columns {
			continue
		}

		for col := 0; col < columns; col++ {
			if dropped[col] {
				continue
			}
			kind := kindOf(row[col])
			prev, seen := kinds[col]
			switch {
			case !seen:
				kinds[col] = &kind
			case *prev != kind:
				delete(kinds, col)
				dropped[col] = true
			}
		}
	}

	if rows == 0 || len(kinds) == 0 {
		return false, ErrInsufficientSample
	}

	votes := 0
	for col, kind := range kinds {
		var fits bool
		if kind.numeric {
			fits = isNumeric(header[col])
		} else {
			fits = utf8.RuneCountInString(header[col]) == kind.length
		}
		if fits {
			votes--
		} else {
			votes++
		}
	}
	return votes > 0, nil
}

func kindOf(value string) columnKind {
	if isNumeric(value) {
		return columnKind{numeric: true}
	}
	return columnKind{length: utf8.RuneCountInString(value)}
}

// isNumeric reports whether value parses as an integer, float or complex
// number ("3", "-1.5e3", "inf", "1+2j").
func isNumeric(value string) bool {
	v := strings.TrimSpace(value)
	if v == "" {
		return false
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		return true
	}
	v = strings.Trim(v, "()")
	if strings.HasSuffix(v, "j") || strings.HasSuffix(v, "J") {
		v = v[:len(v)-1] + "i"
	}
	_, err := strconv.ParseComplex(v, 128)
	return err == nil
}
