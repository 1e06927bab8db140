package repository

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/ghostart/goapi/base/ctx"
	"github.com/ghostart/goapi/domain"
	"github.com/ghostart/goapi/domain/nft"
)

var (
	mockCtx = ctx.Background()
	alice   = domain.Address("0x32f1e35291967c07ec02aa81394dbf87d1d25e52")
	bob     = domain.Address("0x939ae6A4C8dfDBB1f7085189574F0A938013952A")
)

type memorySuite struct {
	suite.Suite
	im *Memory
}

func TestMemorySuite(t *testing.T) {
	suite.Run(t, new(memorySuite))
}

func (s *memorySuite) SetupTest() {
	s.im = NewMemory()
}

func (s *memorySuite) mint(owner domain.Address) *nft.NftRecord {
	res, err := s.im.Create(mockCtx, &nft.NftRecord{
		Name:   "minted",
		Image:  "ipfs://x",
		Price:  decimal.NewFromInt(1),
		Rarity: nft.RarityCommon,
		Owner:  &owner,
	}, nft.PendingEntry{Action: nft.PendingActionMint})
	s.Require().NoError(err)
	return res
}

func (s *memorySuite) TestSeed() {
	all, err := s.im.FindAll(mockCtx)
	s.NoError(err)
	s.Len(all, 4)
	for i, n := range all {
		s.Equal(int64(i+1), n.Id)
		s.True(n.IsPublic())
		s.Nil(n.Owner)
	}

	pending, err := s.im.PendingEntries(mockCtx)
	s.NoError(err)
	s.Empty(pending)
}

func (s *memorySuite) TestCreateAllocatesMonotonicIds() {
	a := s.mint(alice)
	s.Equal(int64(5), a.Id)

	_, err := s.im.Delete(mockCtx, a.Id)
	s.NoError(err)

	b := s.mint(alice)
	s.Equal(int64(6), b.Id, "ids are never reused")

	pending, err := s.im.PendingEntries(mockCtx)
	s.NoError(err)
	s.Len(pending, 1)
	s.Equal(b.Id, pending[0].NftId)
}

func (s *memorySuite) TestConcurrentCreate() {
	wg := sync.WaitGroup{}
	ids := make(chan int64, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := s.im.Create(mockCtx, &nft.NftRecord{Name: "n", Owner: &alice}, nft.PendingEntry{Action: nft.PendingActionMint})
			s.NoError(err)
			ids <- n.Id
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		s.False(seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	s.Len(seen, 50)
}

func (s *memorySuite) TestFindAllFilters() {
	s.mint(alice)
	s.mint(bob)

	public, err := s.im.FindAll(mockCtx, nft.WithApproved(true), nft.WithListed(true))
	s.NoError(err)
	s.Len(public, 4)

	owned, err := s.im.FindAll(mockCtx, nft.WithOwner(alice.ToLower()))
	s.NoError(err)
	s.Len(owned, 1)
	s.Equal(int64(5), owned[0].Id)

	pending, err := s.im.FindAll(mockCtx, nft.WithApproved(false))
	s.NoError(err)
	s.Len(pending, 2)
}

func (s *memorySuite) TestReturnedRecordsAreCopies() {
	n, err := s.im.FindOne(mockCtx, 1)
	s.NoError(err)
	n.Name = "changed"
	n.Traits[0] = "changed"

	again, err := s.im.FindOne(mockCtx, 1)
	s.NoError(err)
	s.Equal("Ghost Rider #1", again.Name)
	s.Equal("Red Eyes", again.Traits[0])
}

func (s *memorySuite) TestRelist() {
	n, err := s.im.Relist(mockCtx, 1, alice, decimal.NewFromInt(7), nft.PendingEntry{Action: nft.PendingActionList})
	s.NoError(err)
	s.Equal(alice, *n.Owner)
	s.True(n.Price.Equal(decimal.NewFromInt(7)))
	s.True(n.Listed)
	s.False(n.Approved)

	// same holder in another case may relist, and every relist queues again
	_, err = s.im.Relist(mockCtx, 1, alice.ToLower(), decimal.NewFromInt(8), nft.PendingEntry{Action: nft.PendingActionList})
	s.NoError(err)
	pending, _ := s.im.PendingEntries(mockCtx)
	s.Len(pending, 2)

	_, err = s.im.Relist(mockCtx, 1, bob, decimal.NewFromInt(9), nft.PendingEntry{})
	s.Equal(domain.ErrNotOwner, err)

	_, err = s.im.Relist(mockCtx, 99, alice, decimal.NewFromInt(9), nft.PendingEntry{})
	s.Equal(domain.ErrNftNotFound, err)
}

func (s *memorySuite) TestApprove() {
	minted := s.mint(alice)
	other := s.mint(bob)

	for i := 0; i < 2; i++ {
		n, err := s.im.Approve(mockCtx, minted.Id)
		s.NoError(err)
		s.True(n.IsPublic())
	}

	pending, _ := s.im.PendingEntries(mockCtx)
	s.Len(pending, 1)
	s.Equal(other.Id, pending[0].NftId)

	_, err := s.im.Approve(mockCtx, 99)
	s.Equal(domain.ErrNftNotFound, err)
}

func (s *memorySuite) TestPatch() {
	name := "renamed"
	traits := []string{}
	n, err := s.im.Patch(mockCtx, 1, nft.Patch{Name: &name, Traits: &traits})
	s.NoError(err)
	s.Equal(name, n.Name)
	s.Empty(n.Traits)
	s.Equal(nft.RarityRare, n.Rarity)

	_, err = s.im.Patch(mockCtx, 99, nft.Patch{})
	s.Equal(domain.ErrNftNotFound, err)
}

func (s *memorySuite) TestDelete() {
	minted := s.mint(alice)

	removed, err := s.im.Delete(mockCtx, minted.Id)
	s.NoError(err)
	s.Equal(minted.Id, removed.Id)

	_, err = s.im.FindOne(mockCtx, minted.Id)
	s.Equal(domain.ErrNftNotFound, err)

	pending, _ := s.im.PendingEntries(mockCtx)
	s.Empty(pending)

	_, err = s.im.Delete(mockCtx, minted.Id)
	s.Equal(domain.ErrNftNotFound, err)
}

func (s *memorySuite) TestRevisionAndReset() {
	r0, _ := s.im.Revision(mockCtx)
	s.mint(alice)
	r1, _ := s.im.Revision(mockCtx)
	s.Greater(r1, r0)

	s.im.Reset()
	all, _ := s.im.FindAll(mockCtx)
	s.Len(all, 4)
	r2, _ := s.im.Revision(mockCtx)
	s.Greater(r2, r1)
	s.Equal(int64(5), s.mint(alice).Id)
}
