package puzzle

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrMalformed marks a payload that does not parse cleanly into the tagged
// puzzle structures. Callers report it as ReasonInvalidData.
var ErrMalformed = errors.New("malformed puzzle payload")

const slotsSchema = `{
	"type": "object",
	"maxProperties": 7,
	"propertyNames": {"pattern": "^[1-7]$"},
	"additionalProperties": {"type": "integer"}
}`

const coloringSchema = `{
	"type": "array",
	"maxItems": 7,
	"items": {
		"type": "object",
		"required": ["id", "color"],
		"additionalProperties": false,
		"properties": {
			"id": {"type": "string", "pattern": "^rb-slot-[1-7]$"},
			"color": {"enum": ["red", "black"]},
			"value": {"type": "integer"}
		}
	}
}`

var (
	slotsValidator    = mustCompile("slots", slotsSchema)
	coloringValidator = mustCompile("coloring", coloringSchema)
)

func mustCompile(name, src string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
	if err != nil {
		panic(fmt.Sprintf("puzzle: parse schema %q: %v", name, err))
	}
	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, doc); err != nil {
		panic(fmt.Sprintf("puzzle: add schema %q: %v", name, err))
	}
	return c.MustCompile(url)
}

// decode parses raw JSON keeping numbers as json.Number and validates it.
func decode(raw json.RawMessage, sch *jsonschema.Schema) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformed)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return doc, nil
}

func toInt(v any) (int, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("%w: %v is not a number", ErrMalformed, v)
	}
	i, err := n.Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not an integer", ErrMalformed, n)
	}
	return int(i), nil
}

// ParseSlots turns {"1": 40, "2": 20, ...} into Slots.
func ParseSlots(raw json.RawMessage) (Slots, error) {
	doc, err := decode(raw, slotsValidator)
	if err != nil {
		return nil, err
	}

	obj := doc.(map[string]any)
	slots := make(Slots, len(obj))
	for k, v := range obj {
		idx, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("%w: slot %q", ErrMalformed, k)
		}
		val, err := toInt(v)
		if err != nil {
			return nil, err
		}
		slots[idx] = val
	}
	return slots, nil
}

// ParseArrangement parses slots and requires every placed value to be one of
// stones, each used at most once. Partial trees pass through so the
// validators can report them as incomplete.
func ParseArrangement(raw json.RawMessage, stones []int) (Slots, error) {
	slots, err := ParseSlots(raw)
	if err != nil {
		return nil, err
	}

	remaining := make(map[int]int, len(stones))
	for _, v := range stones {
		remaining[v]++
	}
	for i := 1; i <= SlotCount; i++ {
		v, ok := slots[i]
		if !ok {
			continue
		}
		if remaining[v] == 0 {
			return nil, fmt.Errorf("%w: slot %d holds %d, which is not an unused stone", ErrMalformed, i, v)
		}
		remaining[v]--
	}
	return slots, nil
}

// ParseColoring turns [{"id": "rb-slot-1", "color": "black"}, ...] into a
// Coloring. Duplicate slots and values that disagree with RBValues are
// rejected.
func ParseColoring(raw json.RawMessage) (Coloring, error) {
	doc, err := decode(raw, coloringValidator)
	if err != nil {
		return nil, err
	}

	items := doc.([]any)
	coloring := make(Coloring, len(items))
	for _, it := range items {
		node := it.(map[string]any)
		idx, err := strconv.Atoi(strings.TrimPrefix(node["id"].(string), "rb-slot-"))
		if err != nil {
			return nil, fmt.Errorf("%w: node id %v", ErrMalformed, node["id"])
		}
		if _, dup := coloring[idx]; dup {
			return nil, fmt.Errorf("%w: slot %d colored twice", ErrMalformed, idx)
		}
		if v, ok := node["value"]; ok {
			val, err := toInt(v)
			if err != nil {
				return nil, err
			}
			if val != RBValues[idx] {
				return nil, fmt.Errorf("%w: slot %d holds %d, not %d", ErrMalformed, idx, RBValues[idx], val)
			}
		}
		coloring[idx] = Color(node["color"].(string))
	}
	return coloring, nil
}
