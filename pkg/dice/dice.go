package dice

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
)

var notationRe = regexp.MustCompile(`^(\d+)d(\d+)([+-]\d+)?$`)

// Roll is the outcome of rolling dice in D&D notation.
type Roll struct {
	Notation string `json:"notation"`
	Rolls    []int  `json:"rolls"`
	Modifier int    `json:"modifier"`
	Total    int    `json:"total"`
}

// Parse validates dice notation like "1d20", "2d6+3" or "1d4-1" and
// returns count, size and modifier.
func Parse(notation string) (count, size, modifier int, err error) {
	m := notationRe.FindStringSubmatch(strings.ReplaceAll(notation, " ", ""))
	if m == nil {
		return 0, 0, 0, fmt.Errorf("invalid dice notation %q: use format like '1d20' or '2d6+3'", notation)
	}

	count, _ = strconv.Atoi(m[1])
	size, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		modifier, _ = strconv.Atoi(m[3])
	}

	if count <= 0 || size <= 0 {
		return 0, 0, 0, fmt.Errorf("invalid dice values in %q: number of dice and die size must be positive", notation)
	}
	return count, size, modifier, nil
}

// New rolls dice in D&D notation.
func New(notation string) (*Roll, error) {
	count, size, modifier, err := Parse(notation)
	if err != nil {
		return nil, err
	}

	rolls := make([]int, count)
	total := modifier
	for i := range rolls {
		rolls[i] = rand.IntN(size) + 1
		total += rolls[i]
	}

	return &Roll{
		Notation: notation,
		Rolls:    rolls,
		Modifier: modifier,
		Total:    total,
	}, nil
}

// String formats the roll for narration, e.g.
// "Rolled [4 2] (sum: 6) + 3 = 9" or "Rolled 17 = 17".
func (r *Roll) String() string {
	var sb strings.Builder
	if len(r.Rolls) == 1 {
		fmt.Fprintf(&sb, "Rolled %d", r.Rolls[0])
	} else {
		sum := r.Total - r.Modifier
		fmt.Fprintf(&sb, "Rolled %v (sum: %d)", r.Rolls, sum)
	}
	if r.Modifier > 0 {
		fmt.Fprintf(&sb, " + %d", r.Modifier)
	} else if r.Modifier < 0 {
		fmt.Fprintf(&sb, " - %d", -r.Modifier)
	}
	fmt.Fprintf(&sb, " = %d", r.Total)
	return sb.String()
}
