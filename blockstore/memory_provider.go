package blockstore

import "sync"

// MemoryProvider implements DatabaseProvider on an in-process map. It backs
// tests and throwaway chains that never touch disk.
type MemoryProvider struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryProvider() DatabaseProvider {
	return &MemoryProvider{data: make(map[string][]byte)}
}

func (p *MemoryProvider) Get(key []byte) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	value, ok := p.data[string(key)]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), value...), nil
}

func (p *MemoryProvider) Put(key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data[string(key)] = append([]byte(nil), value...)
	return nil
}

func (p *MemoryProvider) Delete(key []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.data, string(key))
	return nil
}

func (p *MemoryProvider) Has(key []byte) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.data[string(key)]
	return ok, nil
}

func (p *MemoryProvider) Close() error {
	return nil
}

func (p *MemoryProvider) Batch() DatabaseBatch {
	return &MemoryBatch{provider: p}
}

type MemoryBatch struct {
	provider *MemoryProvider
	ops      []func()
}

func (b *MemoryBatch) Put(key, value []byte) {
	k, v := append([]byte(nil), key...), append([]byte(nil), value...)
	b.ops = append(b.ops, func() { b.provider.data[string(k)] = v })
}

func (b *MemoryBatch) Delete(key []byte) {
	k := append([]byte(nil), key...)
	b.ops = append(b.ops, func() { delete(b.provider.data, string(k)) })
}

func (b *MemoryBatch) Write() error {
	b.provider.mu.Lock()
	defer b.provider.mu.Unlock()
	for _, op := range b.ops {
		op()
	}
	return nil
}
