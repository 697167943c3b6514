package controls

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
)

var header = []string{"id", "domain", "dimension", "level", "title", "description"}

// Matrix is the static control catalogue, in file order.
type Matrix struct {
	controls []domain.Control
}

func Load(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open control matrix: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads the CSV control matrix. Rows with unknown domains or
// dimensions, or levels outside 1..5, reject the whole file.
func Parse(r io.Reader) (*Matrix, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(header)
	reader.TrimLeadingSpace = true

	first, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &Matrix{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, col := range header {
		got := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(first[i], "\ufeff")))
		if got != col {
			return nil, fmt.Errorf("unexpected column %d: got %q, want %q", i+1, first[i], col)
		}
	}

	m := &Matrix{}
	seen := make(map[string]bool)
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read control matrix: %w", err)
		}
		line, _ := reader.FieldPos(0)

		c, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("line %d: duplicate control id %q", line, c.ID)
		}
		seen[c.ID] = true
		m.controls = append(m.controls, c)
	}
	return m, nil
}

func parseRow(rec []string) (domain.Control, error) {
	id := strings.TrimSpace(rec[0])
	if id == "" {
		return domain.Control{}, errors.New("empty control id")
	}
	d, err := domain.ParseDomain(strings.TrimSpace(rec[1]))
	if err != nil {
		return domain.Control{}, err
	}
	dim, err := domain.ParseDimension(strings.TrimSpace(rec[2]))
	if err != nil {
		return domain.Control{}, err
	}
	level, err := strconv.Atoi(strings.TrimSpace(rec[3]))
	if err != nil || level < 1 || level > 5 {
		return domain.Control{}, fmt.Errorf("invalid level %q: want an integer 1..5", rec[3])
	}
	return domain.Control{
		ID:          id,
		Domain:      d,
		Dimension:   dim,
		Level:       level,
		Title:       strings.TrimSpace(rec[4]),
		Description: strings.TrimSpace(rec[5]),
	}, nil
}

func (m *Matrix) All() []domain.Control {
	if m == nil {
		return []domain.Control{}
	}
	return append([]domain.Control{}, m.controls...)
}

func (m *Matrix) ForDomain(d domain.Domain) []domain.Control {
	out := make([]domain.Control, 0)
	if m == nil {
		return out
	}
	for _, c := range m.controls {
		if c.Domain == d {
			out = append(out, c)
		}
	}
	return out
}

// Recommended returns the controls of d at the next level above score,
// capped at level 5.
func (m *Matrix) Recommended(d domain.Domain, score float64) []domain.Control {
	next := int(math.Floor(score)) + 1
	if next > 5 {
		next = 5
	}
	if next < 1 {
		next = 1
	}
	out := make([]domain.Control, 0)
	for _, c := range m.ForDomain(d) {
		if c.Level == next {
			out = append(out, c)
		}
	}
	return out
}
