package grid

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var ErrInvalidFormat = errors.New("invalid grid format")

// grid file parse states
const (
	PARSE_WIDTH = iota
	PARSE_HEIGHT
	PARSE_ROWS
	PARSE_WEIGHTS
)

const (
	walkableCell = '.'
	blockedCell  = '#'
)

// MapAsString renders a map in the grid file format:
// width, height, one row of '.'/'#' per line and then "x y weight" for every cell
// with a weight other than 1.
func MapAsString(m Map) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%v\n", m.Width()))
	sb.WriteString(fmt.Sprintf("%v\n", m.Height()))

	sb.WriteString("# cells\n")
	row := make([]byte, m.Width())
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.IsWalkable(Coord{x, y}) {
				row[x] = walkableCell
			} else {
				row[x] = blockedCell
			}
		}
		sb.Write(row)
		sb.WriteByte('\n')
	}

	weights, ok := m.(WeightMap)
	if !ok {
		return sb.String()
	}
	header := false
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			w := weights.Weight(Coord{x, y})
			if w == 1 {
				continue
			}
			if !header {
				sb.WriteString("# weights\n")
				header = true
			}
			sb.WriteString(fmt.Sprintf("%d %d %s\n", x, y, strconv.FormatFloat(w, 'g', -1, 64)))
		}
	}
	return sb.String()
}

func ParseArrayMap(content string) (*ArrayMap, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var width, height, parsedRows, lineNumber int
	var m *ArrayMap

	parseState := PARSE_WIDTH
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) < 1 {
			// skip empty lines
			continue
		} else if line[0] == '#' && parseState != PARSE_ROWS {
			// skip comments
			continue
		} else if parseState == PARSE_ROWS && strings.HasPrefix(line, "# ") {
			// comments inside the cell block need the separating space, a row may start with '#'
			continue
		}

		switch parseState {
		case PARSE_WIDTH:
			val, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil || val <= 0 {
				return nil, fmt.Errorf("%w: line %d: invalid width %q", ErrInvalidFormat, lineNumber, line)
			}
			width = val
			parseState = PARSE_HEIGHT
		case PARSE_HEIGHT:
			val, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil || val <= 0 {
				return nil, fmt.Errorf("%w: line %d: invalid height %q", ErrInvalidFormat, lineNumber, line)
			}
			height = val
			m = NewArrayMap(width, height)
			parseState = PARSE_ROWS
		case PARSE_ROWS:
			if len(line) != width {
				return nil, fmt.Errorf("%w: line %d: row has %d cells, expected %d", ErrInvalidFormat, lineNumber, len(line), width)
			}
			for x := 0; x < width; x++ {
				switch line[x] {
				case walkableCell:
					m.walkable[parsedRows*width+x] = true
				case blockedCell:
				default:
					return nil, fmt.Errorf("%w: line %d: unexpected cell %q", ErrInvalidFormat, lineNumber, line[x])
				}
			}
			parsedRows++
			if parsedRows == height {
				parseState = PARSE_WEIGHTS
			}
		case PARSE_WEIGHTS:
			var x, y int
			var weight float64
			if n, err := fmt.Sscanf(line, "%d %d %g", &x, &y, &weight); err != nil || n != 3 {
				return nil, fmt.Errorf("%w: line %d: invalid weight %q", ErrInvalidFormat, lineNumber, line)
			}
			if err := m.SetWeight(Coord{x, y}, weight); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidFormat, lineNumber, err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if parseState != PARSE_WEIGHTS {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidFormat, height, parsedRows)
	}
	return m, nil
}

func ReadArrayMapFile(filename string) (*ArrayMap, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading map %s: %w", filename, err)
	}
	m, err := ParseArrayMap(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing map %s: %w", filename, err)
	}
	return m, nil
}

func WriteArrayMapFile(m Map, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString(MapAsString(m)); err != nil {
		return err
	}
	return writer.Flush()
}
