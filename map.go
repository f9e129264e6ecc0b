package automaton

import (
	"iter"
)

// HashMap 自定义哈希表结构
// Keys are hashed and compared through a Hasher, so states and symbols that
// are not Go-comparable (or that need a custom notion of equality) can be
// used as keys. Enumeration follows insertion order.
type HashMap[K, V any] struct {
	hasher     Hasher[K]
	entries    []Entry[K, V]
	buckets    []int
	size       int
	mask       uint64
	loadFactor float64
}

// Entry 哈希表条目
type Entry[K, V any] struct {
	key     K
	value   V
	hash    uint64
	next    int
	deleted bool
}

type optionsHashMap struct {
	capacity   int     // 默认1
	loadFactor float64 // 负载因子，默认0.75
}

func newOptionsHashMap(opts ...OptionsHashMap) *optionsHashMap {
	options := &optionsHashMap{
		capacity:   1,
		loadFactor: 0.75,
	}

	for _, opt := range opts {
		opt(options)
	}

	realCap := 1
	for realCap < options.capacity {
		realCap <<= 1
	}
	options.capacity = realCap
	if options.loadFactor <= 0 {
		options.loadFactor = 0.75
	}

	return options
}

type OptionsHashMap func(hashMap *optionsHashMap)

func WithCapacity(capacity int) OptionsHashMap {
	return func(hashMap *optionsHashMap) {
		hashMap.capacity = capacity
	}
}

func WithLoadFactor(loadFactor float64) OptionsHashMap {
	return func(hashMap *optionsHashMap) {
		hashMap.loadFactor = loadFactor
	}
}

// NewHashMap 创建哈希表
// 参数：capacity 初始容量（自动调整为2的幂）
func NewHashMap[K, V any](hasher Hasher[K], options ...OptionsHashMap) *HashMap[K, V] {
	opt := newOptionsHashMap(options...)

	return &HashMap[K, V]{
		hasher:     hasher,
		buckets:    newBuckets(opt.capacity),
		mask:       uint64(opt.capacity - 1),
		loadFactor: opt.loadFactor,
	}
}

func newBuckets(capacity int) []int {
	buckets := make([]int, capacity)
	for i := range buckets {
		buckets[i] = -1
	}
	return buckets
}

func (m *HashMap[K, V]) Hasher() Hasher[K] {
	return m.hasher
}

func (m *HashMap[K, V]) find(key K, hash uint64) int {
	for i := m.buckets[mixPhi(hash)&m.mask]; i >= 0; i = m.entries[i].next {
		e := &m.entries[i]
		if e.hash == hash && m.hasher.Equal(e.key, key) {
			return i
		}
	}
	return -1
}

// Set 插入键值对, reports whether the key was new.
func (m *HashMap[K, V]) Set(key K, value V) bool {
	hash := m.hasher.Hash(key)
	if i := m.find(key, hash); i >= 0 {
		m.entries[i].value = value // 更新已有值
		return false
	}

	index := mixPhi(hash) & m.mask
	m.entries = append(m.entries, Entry[K, V]{
		key:   key,
		value: value,
		hash:  hash,
		next:  m.buckets[index],
	})
	m.buckets[index] = len(m.entries) - 1
	m.size++

	// 自动扩容（当负载因子>loadFactor时）
	if float64(len(m.entries))/float64(len(m.buckets)) > m.loadFactor {
		m.resize()
	}
	return true
}

// Get 获取值
func (m *HashMap[K, V]) Get(key K) (V, bool) {
	if i := m.find(key, m.hasher.Hash(key)); i >= 0 {
		return m.entries[i].value, true
	}
	var zero V
	return zero, false
}

func (m *HashMap[K, V]) Has(key K) bool {
	return m.find(key, m.hasher.Hash(key)) >= 0
}

// Delete 删除键, reports whether the key was present.
func (m *HashMap[K, V]) Delete(key K) bool {
	hash := m.hasher.Hash(key)
	index := mixPhi(hash) & m.mask

	prev := -1
	for i := m.buckets[index]; i >= 0; prev, i = i, m.entries[i].next {
		e := &m.entries[i]
		if e.hash != hash || !m.hasher.Equal(e.key, key) {
			continue
		}
		if prev < 0 {
			m.buckets[index] = e.next
		} else {
			m.entries[prev].next = e.next
		}
		*e = Entry[K, V]{deleted: true, next: -1}
		m.size--
		return true
	}
	return false
}

// 扩容哈希表, deleted entries are compacted away on the way.
func (m *HashMap[K, V]) resize() {
	newCap := len(m.buckets)
	for float64(m.size)/float64(newCap) > m.loadFactor/2 {
		newCap <<= 1
	}
	m.rehash(newCap)
}

func (m *HashMap[K, V]) rehash(capacity int) {
	live := make([]Entry[K, V], 0, m.size)
	for _, e := range m.entries {
		if !e.deleted {
			live = append(live, e)
		}
	}

	m.buckets = newBuckets(capacity)
	m.mask = uint64(capacity - 1)
	for i := range live {
		index := mixPhi(live[i].hash) & m.mask
		live[i].next = m.buckets[index]
		m.buckets[index] = i
	}
	m.entries = live
}

// Size 获取元素数量
func (m *HashMap[K, V]) Size() int {
	return m.size
}

func (m *HashMap[K, V]) Clear() {
	m.entries = m.entries[:0]
	m.size = 0
	for i := range m.buckets {
		m.buckets[i] = -1
	}
}

func (m *HashMap[K, V]) Iterator() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := 0; i < len(m.entries); i++ {
			e := m.entries[i]
			if e.deleted {
				continue
			}
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

func (m *HashMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.Iterator() {
			if !yield(k) {
				return
			}
		}
	}
}

func (m *HashMap[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.Iterator() {
			if !yield(v) {
				return
			}
		}
	}
}
