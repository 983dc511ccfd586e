package source

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/okian/arcadeboard/internal/domain/model"
)

type field int

const (
	fieldID field = iota
	fieldName
	fieldStatus
	fieldSkillBadges
	fieldArcadeGames
	fieldTriviaGames
	fieldSpecialGames
	fieldCount
)

// aliases lists accepted header names per field: cohort export headers
// first, then English equivalents. Columns not listed here, such as email
// or phone number, are never read.
var aliases = [fieldCount][]string{
	fieldID:           {"id", "participant id", "peserta id"},
	fieldName:         {"nama peserta", "nama", "name", "participant", "participant name"},
	fieldStatus:       {"status redeem kode akses", "status redeem", "redeem status", "status"},
	fieldSkillBadges:  {"# jumlah skill badge yang diselesaikan", "skill badges", "skill_badges", "badges"},
	fieldArcadeGames:  {"# jumlah game arcade yang diselesaikan", "arcade games", "arcade_games", "game arcade"},
	fieldTriviaGames:  {"# jumlah game trivia yang diselesaikan", "trivia games", "trivia_games", "game trivia"},
	fieldSpecialGames: {"# jumlah game spesial yang diselesaikan", "special games", "special_games", "game spesial"},
}

// normalize lowercases a header and drops everything but letters and digits,
// so "Skill_Badges", "skill badges" and "# Skill-Badges" compare equal.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var labels = [fieldCount]string{
	fieldID:           "id",
	fieldName:         "name",
	fieldStatus:       "status",
	fieldSkillBadges:  "skill badges",
	fieldArcadeGames:  "arcade games",
	fieldTriviaGames:  "trivia games",
	fieldSpecialGames: "special games",
}

var aliasIndex = func() map[string]field {
	m := make(map[string]field)
	for f, names := range aliases {
		for _, n := range names {
			m[normalize(n)] = field(f)
		}
	}
	return m
}()

// layout maps each field to its column, or -1 when absent.
type layout [fieldCount]int

func newLayout(header []string) (layout, error) {
	var l layout
	for i := range l {
		l[i] = -1
	}
	for col, h := range header {
		if f, ok := aliasIndex[normalize(h)]; ok && l[f] < 0 {
			l[f] = col
		}
	}

	if l[fieldID] < 0 && l[fieldName] < 0 {
		return l, fmt.Errorf("%w: need a name or id column", ErrMissingColumn)
	}
	if l[fieldSkillBadges] < 0 && l[fieldArcadeGames] < 0 && l[fieldTriviaGames] < 0 {
		return l, fmt.Errorf("%w: need at least one of skill badges, arcade games, trivia games", ErrMissingColumn)
	}
	return l, nil
}

func (l layout) cell(row []string, f field) string {
	col := l[f]
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func (l layout) counter(row []string, f field, line int) (int, error) {
	raw := l.cell(row, f)
	if raw == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	// Spreadsheets often store counts as 12.0.
	if v, err := strconv.ParseFloat(raw, 64); err == nil && v == math.Trunc(v) && math.Abs(v) <= math.MaxInt32 {
		return int(v), nil
	}
	return 0, fmt.Errorf("%w: line %d: %s %q is not an integer", ErrMalformedRow, line, labels[f], raw)
}

// parseRows converts a header row plus data rows into records. Blank rows are
// skipped. lines holds the 1-based source line of each row; when nil, rows
// are assumed to be consecutive starting at line 1.
func parseRows(rows [][]string, lines []int) ([]model.Record, error) {
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	l, err := newLayout(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]model.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		line := i + 2
		if lines != nil {
			line = lines[i+1]
		}
		rec := model.Record{
			ID:     l.cell(row, fieldID),
			Name:   l.cell(row, fieldName),
			Status: l.cell(row, fieldStatus),
		}
		if rec.ID == "" {
			rec.ID = fmt.Sprintf("row-%d", line)
		}

		counters := []struct {
			f   field
			dst *int
		}{
			{fieldSkillBadges, &rec.Counts.SkillBadges},
			{fieldArcadeGames, &rec.Counts.ArcadeGames},
			{fieldTriviaGames, &rec.Counts.TriviaGames},
			{fieldSpecialGames, &rec.Counts.SpecialGames},
		}
		for _, c := range counters {
			if *c.dst, err = l.counter(row, c.f, line); err != nil {
				return nil, err
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
