package dataset

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// rawParameter is the descriptor object written by the exporters.
type rawParameter struct {
	Name        string    `json:"name"`
	Latex       string    `json:"latex"`
	Symbol      string    `json:"symbol"`
	Description string    `json:"description"`
	Values      []float64 `json:"values"`
	ValueLabels []string  `json:"value_labels"`
	RangeString string    `json:"range_string"`
	Range       []float64 `json:"range"`
	Default     *int      `json:"default"`
}

// parseParameters normalises the three historical shapes of the
// "parameters" field into one ordered slice:
//
//	[{...}, {...}]             ordered as written
//	{"0": {...}, "1": {...}}   ordered by numeric key
//	{"param1": [0, 1, ...]}    ordered by name
func parseParameters(raw jsoniter.RawMessage) ([]Parameter, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, invalidf("missing required field %q", "parameters")
	}

	switch raw[0] {
	case '[':
		var list []rawParameter
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, invalidf("parameters: %v", err)
		}
		out := make([]Parameter, len(list))
		for i, rp := range list {
			out[i] = rp.normalise("param" + strconv.Itoa(i))
		}
		return out, nil

	case '{':
		var byKey map[string]jsoniter.RawMessage
		if err := json.Unmarshal(raw, &byKey); err != nil {
			return nil, invalidf("parameters: %v", err)
		}
		keys := orderedKeys(byKey)
		out := make([]Parameter, 0, len(keys))
		for _, k := range keys {
			p, err := parseKeyedParameter(k, byKey[k])
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		return out, nil
	}
	return nil, invalidf("parameters must be an array or an object")
}

func parseKeyedParameter(key string, raw jsoniter.RawMessage) (Parameter, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Parameter{}, invalidf("parameter %q is empty", key)
	}
	var rp rawParameter
	switch raw[0] {
	case '{':
		if err := json.Unmarshal(raw, &rp); err != nil {
			return Parameter{}, invalidf("parameter %q: %v", key, err)
		}
	case '[':
		if err := json.Unmarshal(raw, &rp.Values); err != nil {
			return Parameter{}, invalidf("parameter %q: %v", key, err)
		}
	default:
		return Parameter{}, invalidf("parameter %q must be an object or an array", key)
	}
	return rp.normalise(key), nil
}

func (rp rawParameter) normalise(fallbackName string) Parameter {
	p := Parameter{
		Name:        rp.Name,
		Latex:       rp.Latex,
		Description: rp.Description,
		Values:      rp.Values,
		RangeString: rp.RangeString,
		Default:     -1,
	}
	if p.Name == "" {
		p.Name = rp.Symbol
	}
	if p.Name == "" {
		p.Name = fallbackName
	}
	if rp.Default != nil {
		p.Default = *rp.Default
	}
	p.Labels = make([]string, len(p.Values))
	for i, v := range p.Values {
		if i < len(rp.ValueLabels) && rp.ValueLabels[i] != "" {
			p.Labels[i] = rp.ValueLabels[i]
			continue
		}
		p.Labels[i] = FormatValue(v)
	}
	if p.RangeString == "" && len(p.Values) > 0 {
		p.RangeString = rangeString(p)
	}
	return p
}

func rangeString(p Parameter) string {
	lo, hi := p.Values[0], p.Values[0]
	for _, v := range p.Values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if len(p.Values) == 1 {
		return fmt.Sprintf("%s = %s", p.Name, FormatValue(lo))
	}
	return fmt.Sprintf("%s: %s - %s", p.Name, FormatValue(lo), FormatValue(hi))
}

// orderedKeys sorts numerically when every key is a non-negative integer,
// lexically otherwise.
func orderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	numeric := true
	for k := range m {
		keys = append(keys, k)
		if n, err := strconv.Atoi(k); err != nil || n < 0 {
			numeric = false
		}
	}
	if numeric {
		sort.Slice(keys, func(i, j int) bool {
			a, _ := strconv.Atoi(keys[i])
			b, _ := strconv.Atoi(keys[j])
			return a < b
		})
		return keys
	}
	sort.Strings(keys)
	return keys
}
