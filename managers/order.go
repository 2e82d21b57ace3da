package managers

import "github.com/bawdo/pearsql/nodes"

// orderList keeps ORDER BY entries in first-insertion order while letting a
// later entry with the same key overwrite the direction and operand.
type orderList struct {
	keys  []string
	byKey map[string]nodes.Ordering
	last  string
}

func (l *orderList) put(key string, o nodes.Ordering) {
	if l.byKey == nil {
		l.byKey = make(map[string]nodes.Ordering)
	}
	if _, ok := l.byKey[key]; !ok {
		l.keys = append(l.keys, key)
	}
	l.byKey[key] = o
	l.last = key
}

// setLast changes the direction of the most recently put entry.
// It reports false when the list is empty.
func (l *orderList) setLast(dir nodes.OrderDirection) bool {
	if len(l.keys) == 0 {
		return false
	}
	o := l.byKey[l.last]
	o.Direction = dir
	l.byKey[l.last] = o
	return true
}

func (l *orderList) entries() []nodes.Ordering {
	out := make([]nodes.Ordering, len(l.keys))
	for i, k := range l.keys {
		out[i] = l.byKey[k]
	}
	return out
}

func (l *orderList) len() int {
	return len(l.keys)
}
