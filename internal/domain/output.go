package domain

import (
	"encoding/json"
	"fmt"
)

// RecordsMeta describes one saved extraction.
type RecordsMeta struct {
	Content   []string `json:"content"`
	Records   int      `json:"records"`
	Examples  int      `json:"examples"`
	Timestamp string   `json:"timestamp"`
}

// RecordsOutput is the saved form of an extraction.
type RecordsOutput struct {
	Meta    RecordsMeta `json:"meta"`
	Records []Record    `json:"-"`
}

// recordEnvelope tags a record with its kind.
type recordEnvelope struct {
	Kind    Kind     `json:"kind"`
	Example *Example `json:"example,omitempty"`
	Section *Section `json:"section,omitempty"`
}

type recordsOutputJSON struct {
	Meta    RecordsMeta      `json:"meta"`
	Records []recordEnvelope `json:"records"`
}

// MarshalJSON writes records as {"kind": ..., "<kind>": {...}} objects.
func (o RecordsOutput) MarshalJSON() ([]byte, error) {
	out := recordsOutputJSON{Meta: o.Meta, Records: make([]recordEnvelope, 0, len(o.Records))}
	for _, r := range o.Records {
		env := recordEnvelope{Kind: r.Kind()}
		switch v := r.(type) {
		case *Example:
			env.Example = v
		case *Section:
			env.Section = v
		}
		out.Records = append(out.Records, env)
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the format written by MarshalJSON.
func (o *RecordsOutput) UnmarshalJSON(data []byte) error {
	var in recordsOutputJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	o.Meta = in.Meta
	o.Records = make([]Record, 0, len(in.Records))
	for i, env := range in.Records {
		switch {
		case env.Kind == KindExample && env.Example != nil:
			o.Records = append(o.Records, env.Example)
		case env.Kind == KindSection && env.Section != nil:
			o.Records = append(o.Records, env.Section)
		default:
			return fmt.Errorf("record %d: unknown or empty kind %q", i, env.Kind)
		}
	}
	return nil
}
