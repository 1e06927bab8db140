package repository

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ghostart/goapi/base/database/mongoclient"
	"github.com/ghostart/goapi/domain"
	"github.com/ghostart/goapi/domain/nft"
)

type mongoSuite struct {
	suite.Suite

	client *mongoclient.Client
	im     nft.Repo
}

func TestMongoSuite(t *testing.T) {
	if os.Getenv("MONGO_URI") == "" {
		t.Skip("MONGO_URI not set")
	}
	suite.Run(t, new(mongoSuite))
}

func (s *mongoSuite) SetupSuite() {
	s.client = mongoclient.MustConnect(mongoclient.Config{
		URI:    os.Getenv("MONGO_URI"),
		DBName: "ghostart_test",
	})
}

func (s *mongoSuite) SetupTest() {
	db := s.client.Database(s.client.DbName)
	for _, name := range []string{domain.TableNfts, domain.TablePending, domain.TableCounters} {
		_, err := db.Collection(name).DeleteMany(mockCtx, bson.M{})
		s.Require().NoError(err)
	}
	im, err := NewMongo(mockCtx, s.client)
	s.Require().NoError(err)
	s.im = im
}

func (s *mongoSuite) TestLifecycle() {
	public, err := s.im.FindAll(mockCtx, nft.WithApproved(true), nft.WithListed(true))
	s.NoError(err)
	s.Len(public, 4)

	minted, err := s.im.Create(mockCtx, &nft.NftRecord{
		Name:   "minted",
		Image:  "x",
		Price:  decimal.RequireFromString("1.25"),
		Rarity: nft.RarityEpic,
		Owner:  &alice,
	}, nft.PendingEntry{Id: "e1", Action: nft.PendingActionMint})
	s.NoError(err)
	s.Equal(int64(5), minted.Id)

	owned, err := s.im.FindAll(mockCtx, nft.WithOwner(alice.ToLower()))
	s.NoError(err)
	s.Len(owned, 1)
	s.True(owned[0].Price.Equal(decimal.RequireFromString("1.25")))

	_, err = s.im.Relist(mockCtx, minted.Id, bob, decimal.NewFromInt(2), nft.PendingEntry{Id: "e2"})
	s.Equal(domain.ErrNotOwner, err)
	_, err = s.im.Relist(mockCtx, 99, bob, decimal.NewFromInt(2), nft.PendingEntry{Id: "e3"})
	s.Equal(domain.ErrNftNotFound, err)

	approved, err := s.im.Approve(mockCtx, minted.Id)
	s.NoError(err)
	s.True(approved.IsPublic())

	pending, err := s.im.PendingEntries(mockCtx)
	s.NoError(err)
	s.Empty(pending)

	removed, err := s.im.Delete(mockCtx, minted.Id)
	s.NoError(err)
	s.Equal(minted.Id, removed.Id)

	again, err := s.im.Create(mockCtx, &nft.NftRecord{Name: "again", Owner: &alice}, nft.PendingEntry{Id: "e4"})
	s.NoError(err)
	s.Equal(int64(6), again.Id)
}

func (s *mongoSuite) TestFailedRelistLeavesNoEntry() {
	minted, err := s.im.Create(mockCtx, &nft.NftRecord{Name: "held", Owner: &alice}, nft.PendingEntry{Id: "m1"})
	s.NoError(err)
	_, err = s.im.Approve(mockCtx, minted.Id)
	s.NoError(err)

	before, err := s.im.Revision(mockCtx)
	s.NoError(err)

	_, err = s.im.Relist(mockCtx, minted.Id, bob, decimal.NewFromInt(3), nft.PendingEntry{Id: "r1"})
	s.Equal(domain.ErrNotOwner, err)
	_, err = s.im.Relist(mockCtx, 404, bob, decimal.NewFromInt(3), nft.PendingEntry{Id: "r2"})
	s.Equal(domain.ErrNftNotFound, err)

	pending, err := s.im.PendingEntries(mockCtx)
	s.NoError(err)
	s.Empty(pending)

	after, err := s.im.Revision(mockCtx)
	s.NoError(err)
	s.Equal(before, after)

	_, err = s.im.Relist(mockCtx, minted.Id, alice, decimal.NewFromInt(3), nft.PendingEntry{Id: "r3"})
	s.NoError(err)
	pending, err = s.im.PendingEntries(mockCtx)
	s.NoError(err)
	s.Len(pending, 1)
	s.Equal("r3", pending[0].Id)

	after, err = s.im.Revision(mockCtx)
	s.NoError(err)
	s.Greater(after, before)
}
