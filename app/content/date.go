package content

import (
	"fmt"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"gopkg.in/yaml.v3"
)

// Date is a front-matter date. It accepts YAML timestamps, date strings in
// most common layouts and numbers as unix milliseconds.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: t}
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a date, got a %s", value.Line, kindName(value.Kind))
	}

	switch value.Tag {
	case "!!null":
		d.Time = time.Time{}
		return nil
	case "!!int", "!!float":
		millis, err := strconv.ParseFloat(value.Value, 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid date %q: %w", value.Line, value.Value, err)
		}
		d.Time = time.UnixMilli(int64(millis)).UTC()
		return nil
	}

	parsed, err := dateparse.ParseIn(value.Value, time.UTC)
	if err != nil {
		return fmt.Errorf("line %d: invalid date %q: %w", value.Line, value.Value, err)
	}
	d.Time = parsed
	return nil
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	default:
		return "scalar"
	}
}
