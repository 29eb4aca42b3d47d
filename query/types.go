package query

import (
	"fmt"
	"log/slog"
	"strings"
)

// ResultColumn is the name of the column appended by Computer.
const ResultColumn = "result"

// ErrorPolicy decides what a run does with a row that fails.
type ErrorPolicy int

const (
	// PolicyAbort stops at the first failing row
	PolicyAbort ErrorPolicy = iota
	// PolicySkipRow logs the failing row at warn level and continues
	PolicySkipRow
)

func (p ErrorPolicy) String() string {
	if p == PolicySkipRow {
		return "skip"
	}
	return "abort"
}

// JoinType selects inner or outer join semantics.
type JoinType int

const (
	JoinInner JoinType = iota
	JoinOuter
)

func (t JoinType) String() string {
	if t == JoinOuter {
		return "outer"
	}
	return "inner"
}

// ParseJoinType parses "inner" or "outer". An empty name means inner.
func ParseJoinType(name string) (JoinType, error) {
	switch strings.ToLower(name) {
	case "", "inner":
		return JoinInner, nil
	case "outer":
		return JoinOuter, nil
	default:
		return JoinInner, fmt.Errorf("unsupported join type %q (supported: inner, outer)", name)
	}
}

// JoinStrategy selects how the right input is scanned.
type JoinStrategy int

const (
	// StrategyRescan reads the right input again for every left row
	StrategyRescan JoinStrategy = iota
	// StrategyMaterialized parses the right input once and scans it in memory
	StrategyMaterialized
	// StrategyIndexed parses the right input once and indexes it by join key
	StrategyIndexed
)

var strategyNames = map[JoinStrategy]string{
	StrategyRescan:       "rescan",
	StrategyMaterialized: "materialized",
	StrategyIndexed:      "indexed",
}

func (s JoinStrategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("JoinStrategy(%d)", int(s))
}

// ParseJoinStrategy parses a strategy name. An empty name means rescan.
func ParseJoinStrategy(name string) (JoinStrategy, error) {
	if name == "" {
		return StrategyRescan, nil
	}
	for s, n := range strategyNames {
		if strings.EqualFold(name, n) {
			return s, nil
		}
	}
	return StrategyRescan, fmt.Errorf("unsupported join strategy %q (supported: rescan, materialized, indexed)", name)
}

// UnmarshalText parses a strategy name.
func (s *JoinStrategy) UnmarshalText(text []byte) error {
	parsed, err := ParseJoinStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Stats counts the rows handled by a run.
type Stats struct {
	// Read counts non-blank data rows of the main (or left) input
	Read int
	// Written counts rows sent to the formatter
	Written int
	// Skipped counts rows dropped under PolicySkipRow
	Skipped int
	// Matched counts join results built from a matching right row
	Matched int
	// Padded counts outer join rows padded with the filler value
	Padded int
}

// LogValue groups the counters in log records.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("read", s.Read),
		slog.Int("written", s.Written),
		slog.Int("skipped", s.Skipped),
		slog.Int("matched", s.Matched),
		slog.Int("padded", s.Padded),
	)
}
