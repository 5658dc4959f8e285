package gojets

import (
	"fmt"

	"github.com/njchilds90/gojets/algebra"
	"github.com/njchilds90/gojets/jets"
)

// params reads tool arguments decoded from JSON, where numbers arrive as
// float64 and lists as []interface{}. Go callers may pass int and []string
// directly.
type params map[string]interface{}

func (p params) str(key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", fmt.Errorf("missing param: %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("param %s must be a string", key)
	}
	return s, nil
}

func (p params) optStr(key string) (string, bool) {
	s, ok := p[key].(string)
	return s, ok && s != ""
}

func (p params) integer(key string) (int, error) {
	v, ok := p[key]
	if !ok {
		return 0, fmt.Errorf("missing param: %s", key)
	}
	return toInt(key, v)
}

func (p params) optInteger(key string) (int, bool, error) {
	v, ok := p[key]
	if !ok {
		return 0, false, nil
	}
	n, err := toInt(key, v)
	return n, err == nil, err
}

func toInt(key string, v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("param %s must be an integer", key)
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("param %s must be a number", key)
}

func (p params) list(key string) ([]string, error) {
	v, ok := p[key]
	if !ok {
		return nil, fmt.Errorf("missing param: %s", key)
	}
	switch raw := v.(type) {
	case []string:
		return raw, nil
	case []interface{}:
		result := make([]string, len(raw))
		for i, r := range raw {
			s, ok := r.(string)
			if !ok {
				return nil, fmt.Errorf("param %s[%d] must be string", key, i)
			}
			result[i] = s
		}
		return result, nil
	}
	return nil, fmt.Errorf("param %s must be array", key)
}

func (p params) optList(key string) ([]string, bool, error) {
	if _, ok := p[key]; !ok {
		return nil, false, nil
	}
	s, err := p.list(key)
	return s, err == nil, err
}

func (p params) optIntList(key string) ([]int, bool, error) {
	v, ok := p[key]
	if !ok {
		return nil, false, nil
	}
	switch raw := v.(type) {
	case []int:
		return raw, true, nil
	case []interface{}:
		out := make([]int, len(raw))
		for i, r := range raw {
			n, err := toInt(fmt.Sprintf("%s[%d]", key, i), r)
			if err != nil {
				return nil, false, err
			}
			out[i] = n
		}
		return out, true, nil
	}
	return nil, false, fmt.Errorf("param %s must be array", key)
}

func (p params) field() (algebra.Field, error) {
	s, _ := p.optStr("field")
	return algebra.ParseField(s)
}

// ring builds the polynomial ring over the variables listed under key.
func (p params) ring(key, order string) (*algebra.Ring, error) {
	field, err := p.field()
	if err != nil {
		return nil, err
	}
	vars, err := p.list(key)
	if err != nil {
		return nil, err
	}
	return algebra.NewRing(field, vars, order)
}

// jetRing builds the jet ring described by vars, mults and trun.
func (p params) jetRing(order string) (*jets.JetRing, error) {
	field, err := p.field()
	if err != nil {
		return nil, err
	}
	vars, err := p.list("vars")
	if err != nil {
		return nil, err
	}
	trun, err := p.integer("trun")
	if err != nil {
		return nil, err
	}
	mults, ok, err := p.optIntList("mults")
	if err != nil {
		return nil, err
	}
	if !ok {
		mults = make([]int, len(vars))
		for i := range mults {
			mults[i] = 1
		}
	}
	return jets.NewJetRing(field, vars, mults, trun, order)
}

func (p params) polys(r *algebra.Ring, key string) ([]algebra.Poly, error) {
	ss, err := p.list(key)
	if err != nil {
		return nil, err
	}
	return algebra.ParseAll(r, ss)
}
