package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/ghostart/goapi/base/ctx"
	"github.com/ghostart/goapi/domain"
	"github.com/ghostart/goapi/domain/nft"
)

// Memory is a process-local nft.Repo. Everything is lost on restart.
type Memory struct {
	mu       sync.RWMutex
	nfts     []*nft.NftRecord
	pending  []*nft.PendingEntry
	nextId   int64
	revision int64
	now      func() time.Time
}

func NewMemory() *Memory {
	m := &Memory{now: time.Now}
	m.Reset()
	return m
}

// Reset drops every change and reloads the seed catalog
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nfts = nft.Seed(m.now())
	m.pending = []*nft.PendingEntry{}
	m.nextId = int64(len(m.nfts)) + 1
	m.revision++
}

func (m *Memory) FindAll(c ctx.Ctx, opts ...nft.FindAllOptionsFunc) ([]*nft.NftRecord, error) {
	o, err := nft.GetFindAllOptions(opts...)
	if err != nil {
		c.WithField("err", err).Error("nft.GetFindAllOptions failed")
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	res := lo.FilterMap(m.nfts, func(n *nft.NftRecord, _ int) (*nft.NftRecord, bool) {
		if !o.Match(n) {
			return nil, false
		}
		return n.Clone(), true
	})
	sort.Slice(res, func(i, j int) bool { return res[i].Id < res[j].Id })
	return res, nil
}

func (m *Memory) FindOne(c ctx.Ctx, id int64) (*nft.NftRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if n := m.find(id); n != nil {
		return n.Clone(), nil
	}
	return nil, domain.ErrNftNotFound
}

func (m *Memory) Create(c ctx.Ctx, record *nft.NftRecord, entry nft.PendingEntry) (*nft.NftRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := record.Clone()
	n.Id = m.nextId
	m.nextId++
	m.nfts = append(m.nfts, n)

	entry.NftId = n.Id
	m.pending = append(m.pending, &entry)
	m.revision++

	return n.Clone(), nil
}

func (m *Memory) Relist(c ctx.Ctx, id int64, owner domain.Address, price decimal.Decimal, entry nft.PendingEntry) (*nft.NftRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.find(id)
	if n == nil {
		return nil, domain.ErrNftNotFound
	}
	if n.Owner != nil && !n.IsOwnedBy(owner) {
		return nil, domain.ErrNotOwner
	}

	n.Owner = &owner
	n.Price = price
	n.Listed = true
	n.Approved = false

	entry.NftId = id
	m.pending = append(m.pending, &entry)
	m.revision++

	return n.Clone(), nil
}

func (m *Memory) Approve(c ctx.Ctx, id int64) (*nft.NftRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.find(id)
	if n == nil {
		return nil, domain.ErrNftNotFound
	}

	n.Approved = true
	n.Listed = true
	m.dropPending(id)
	m.revision++

	return n.Clone(), nil
}

func (m *Memory) Patch(c ctx.Ctx, id int64, patch nft.Patch) (*nft.NftRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.find(id)
	if n == nil {
		return nil, domain.ErrNftNotFound
	}

	if patch.Name != nil {
		n.Name = *patch.Name
	}
	if patch.Price != nil {
		n.Price = *patch.Price
	}
	if patch.Rarity != nil {
		n.Rarity = *patch.Rarity
	}
	if patch.Traits != nil {
		n.Traits = append([]string{}, (*patch.Traits)...)
	}
	m.revision++

	return n.Clone(), nil
}

func (m *Memory) Delete(c ctx.Ctx, id int64) (*nft.NftRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, idx, found := lo.FindIndexOf(m.nfts, func(n *nft.NftRecord) bool { return n.Id == id })
	if !found {
		return nil, domain.ErrNftNotFound
	}

	removed := m.nfts[idx]
	m.nfts = append(m.nfts[:idx:idx], m.nfts[idx+1:]...)
	m.dropPending(id)
	m.revision++

	return removed, nil
}

func (m *Memory) PendingEntries(c ctx.Ctx) ([]*nft.PendingEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return lo.Map(m.pending, func(e *nft.PendingEntry, _ int) *nft.PendingEntry {
		cp := *e
		return &cp
	}), nil
}

func (m *Memory) Revision(c ctx.Ctx) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.revision, nil
}

func (m *Memory) Ping(c ctx.Ctx) error {
	return nil
}

// callers hold m.mu
func (m *Memory) find(id int64) *nft.NftRecord {
	n, ok := lo.Find(m.nfts, func(n *nft.NftRecord) bool { return n.Id == id })
	if !ok {
		return nil
	}
	return n
}

// callers hold m.mu
func (m *Memory) dropPending(id int64) {
	m.pending = lo.Reject(m.pending, func(e *nft.PendingEntry, _ int) bool { return e.NftId == id })
}
