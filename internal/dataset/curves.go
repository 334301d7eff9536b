package dataset

import (
	"strconv"
)

// curveTable flattens the nested xi_data / nm_data value into a map keyed by
// Key.String(). Branches may be arrays or objects keyed by decimal indices,
// and null branches are treated as absent, so sparse tables load as-is.
type curveTable struct {
	name   string
	curves map[string][]float64
	arity  int
}

func flattenCurves(name string, root any) (*curveTable, error) {
	if root == nil {
		return nil, invalidf("missing required field %q", name)
	}
	t := &curveTable{name: name, curves: make(map[string][]float64), arity: -1}
	if err := t.walk(root, nil); err != nil {
		return nil, err
	}
	if len(t.curves) == 0 {
		return nil, invalidf("%s contains no curves", name)
	}
	return t, nil
}

func (t *curveTable) walk(node any, prefix Key) error {
	switch n := node.(type) {
	case nil:
		return nil
	case []any:
		if isLeaf(n) {
			return t.addLeaf(n, prefix)
		}
		for i, child := range n {
			if err := t.walk(child, appendKey(prefix, i)); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		for k, child := range n {
			i, err := strconv.Atoi(k)
			if err != nil || i < 0 {
				return invalidf("%s[%s]: key %q is not an index", t.name, prefix, k)
			}
			if err := t.walk(child, appendKey(prefix, i)); err != nil {
				return err
			}
		}
		return nil
	}
	return invalidf("%s[%s]: unexpected %T", t.name, prefix, node)
}

func (t *curveTable) addLeaf(values []any, key Key) error {
	if len(key) == 0 {
		return invalidf("%s is a bare curve, expected curves keyed by parameter indices", t.name)
	}
	if t.arity == -1 {
		t.arity = len(key)
	} else if t.arity != len(key) {
		return invalidf("%s[%s]: nesting depth %d differs from %d", t.name, key, len(key), t.arity)
	}
	curve := make([]float64, len(values))
	for i, v := range values {
		f, ok := v.(float64)
		if !ok {
			return invalidf("%s[%s][%d]: %T is not a number", t.name, key, i, v)
		}
		curve[i] = f
	}
	t.curves[key.String()] = curve
	return nil
}

// isLeaf reports whether an array holds numbers rather than branches.
func isLeaf(values []any) bool {
	if len(values) == 0 {
		return false
	}
	_, ok := values[0].(float64)
	return ok
}

func appendKey(prefix Key, i int) Key {
	k := make(Key, len(prefix)+1)
	copy(k, prefix)
	k[len(prefix)] = i
	return k
}

// keyFromString parses Key.String() output.
func keyFromString(s string) Key {
	var k Key
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '/' {
			n, _ := strconv.Atoi(s[start:i])
			k = append(k, n)
			start = i + 1
		}
	}
	return k
}
