package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/xerrors"

	"github.com/ghostart/goapi/base/ctx"
	"github.com/ghostart/goapi/base/database/mongoclient"
	"github.com/ghostart/goapi/base/log"
	"github.com/ghostart/goapi/domain"
	"github.com/ghostart/goapi/domain/nft"
)

const (
	counterNftId    = "nftId"
	counterRevision = "revision"
)

type nftDoc struct {
	Id              int64          `bson:"id"`
	Name            string         `bson:"name"`
	Creator         string         `bson:"creator"`
	Image           string         `bson:"image"`
	Price           string         `bson:"price"`
	Rarity          nft.Rarity     `bson:"rarity"`
	Traits          []string       `bson:"traits"`
	Owner           *string        `bson:"owner"`
	OwnerLower      *string        `bson:"ownerLower"`
	Approved        bool           `bson:"approved"`
	Listed          bool           `bson:"listed"`
	CreatedAt       time.Time      `bson:"createdAt"`
	ContractAddress domain.Address `bson:"contractAddress,omitempty"`
	Royalty         int            `bson:"royalty,omitempty"`
}

func toDoc(n *nft.NftRecord) *nftDoc {
	d := &nftDoc{
		Id:              n.Id,
		Name:            n.Name,
		Creator:         n.Creator,
		Image:           n.Image,
		Price:           n.Price.String(),
		Rarity:          n.Rarity,
		Traits:          append([]string{}, n.Traits...),
		Approved:        n.Approved,
		Listed:          n.Listed,
		CreatedAt:       n.CreatedAt,
		ContractAddress: n.ContractAddress,
		Royalty:         n.Royalty,
	}
	if n.Owner != nil {
		owner := string(*n.Owner)
		lower := n.Owner.ToLowerStr()
		d.Owner = &owner
		d.OwnerLower = &lower
	}
	return d
}

func (d *nftDoc) toRecord() (*nft.NftRecord, error) {
	price, err := decimal.NewFromString(d.Price)
	if err != nil {
		return nil, xerrors.Errorf("invalid price %q of nft %d: %w", d.Price, d.Id, err)
	}
	n := &nft.NftRecord{
		Id:              d.Id,
		Name:            d.Name,
		Creator:         d.Creator,
		Image:           d.Image,
		Price:           price,
		Rarity:          d.Rarity,
		Traits:          d.Traits,
		Approved:        d.Approved,
		Listed:          d.Listed,
		CreatedAt:       d.CreatedAt,
		ContractAddress: d.ContractAddress,
		Royalty:         d.Royalty,
	}
	if n.Traits == nil {
		n.Traits = []string{}
	}
	if d.Owner != nil {
		owner := domain.Address(*d.Owner)
		n.Owner = &owner
	}
	return n, nil
}

type counterDoc struct {
	Id  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

type mongoRepo struct {
	client   *mongoclient.Client
	nfts     *mongo.Collection
	pending  *mongo.Collection
	counters *mongo.Collection
}

// NewMongo returns a durable nft.Repo. The seed catalog is inserted when the
// nfts collection is empty.
func NewMongo(c ctx.Ctx, client *mongoclient.Client) (nft.Repo, error) {
	db := client.Database(client.DbName)
	im := &mongoRepo{
		client:   client,
		nfts:     db.Collection(domain.TableNfts),
		pending:  db.Collection(domain.TablePending),
		counters: db.Collection(domain.TableCounters),
	}

	if _, err := im.nfts.Indexes().CreateMany(c, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "ownerLower", Value: 1}}},
		{Keys: bson.D{{Key: "approved", Value: 1}, {Key: "listed", Value: 1}}},
	}); err != nil {
		c.WithField("err", err).Error("nfts.CreateIndexes failed")
		return nil, err
	}
	if _, err := im.pending.Indexes().CreateOne(c, mongo.IndexModel{Keys: bson.D{{Key: "nftId", Value: 1}}}); err != nil {
		c.WithField("err", err).Error("pending.CreateIndex failed")
		return nil, err
	}

	if err := im.seed(c); err != nil {
		return nil, err
	}
	return im, nil
}

func (im *mongoRepo) seed(c ctx.Ctx) error {
	count, err := im.nfts.CountDocuments(c, bson.M{})
	if err != nil {
		c.WithField("err", err).Error("nfts.CountDocuments failed")
		return err
	}
	if count > 0 {
		return nil
	}

	seed := nft.Seed(time.Now())
	docs := make([]interface{}, 0, len(seed))
	for _, n := range seed {
		docs = append(docs, toDoc(n))
	}
	if _, err := im.nfts.InsertMany(c, docs); err != nil {
		c.WithField("err", err).Error("nfts.InsertMany failed")
		return err
	}

	// ids continue after the seed, and never go backwards
	if _, err := im.counters.UpdateOne(c,
		bson.M{"_id": counterNftId},
		bson.M{"$max": bson.M{"seq": int64(len(seed))}},
		options.Update().SetUpsert(true),
	); err != nil {
		c.WithField("err", err).Error("counters.UpdateOne failed")
		return err
	}
	c.WithField("count", len(seed)).Info("seeded nft catalog")
	return im.bumpRevision(c)
}

func (im *mongoRepo) incr(c ctx.Ctx, name string) (int64, error) {
	res := counterDoc{}
	if err := im.counters.FindOneAndUpdate(c,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&res); err != nil {
		c.WithField("err", err).WithField("counter", name).Error("counters.FindOneAndUpdate failed")
		return 0, err
	}
	return res.Seq, nil
}

func (im *mongoRepo) bumpRevision(c ctx.Ctx) error {
	_, err := im.incr(c, counterRevision)
	return err
}

// touch bumps the revision after a committed write. The write already
// happened, so a failure only costs cache freshness until the ttl expires.
func (im *mongoRepo) touch(c ctx.Ctx) {
	if err := im.bumpRevision(c); err != nil {
		c.WithField("err", err).Warn("bumpRevision failed, cached responses may be stale")
	}
}

func (im *mongoRepo) insertEntry(c ctx.Ctx, entry nft.PendingEntry) error {
	if _, err := im.pending.InsertOne(c, entry); err != nil {
		c.WithFields(log.Fields{"err": err, "nftId": entry.NftId}).Error("pending.InsertOne failed")
		return err
	}
	return nil
}

// dropEntry undoes insertEntry when the record write that follows it fails
func (im *mongoRepo) dropEntry(c ctx.Ctx, entry nft.PendingEntry) {
	if _, err := im.pending.DeleteOne(c, bson.M{"id": entry.Id}); err != nil {
		c.WithFields(log.Fields{"err": err, "entryId": entry.Id}).Error("pending.DeleteOne failed")
	}
}

func (im *mongoRepo) FindAll(c ctx.Ctx, opts ...nft.FindAllOptionsFunc) ([]*nft.NftRecord, error) {
	o, err := nft.GetFindAllOptions(opts...)
	if err != nil {
		c.WithField("err", err).Error("nft.GetFindAllOptions failed")
		return nil, err
	}

	qry := bson.M{}
	if o.Approved != nil {
		qry["approved"] = *o.Approved
	}
	if o.Listed != nil {
		qry["listed"] = *o.Listed
	}
	if o.Owner != nil {
		qry["ownerLower"] = o.Owner.ToLowerStr()
	}

	cur, err := im.nfts.Find(c, qry, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		c.WithField("err", err).Error("nfts.Find failed")
		return nil, err
	}
	docs := []*nftDoc{}
	if err := cur.All(c, &docs); err != nil {
		c.WithField("err", err).Error("cursor.All failed")
		return nil, err
	}

	res := make([]*nft.NftRecord, 0, len(docs))
	for _, d := range docs {
		n, err := d.toRecord()
		if err != nil {
			c.WithField("err", err).Error("toRecord failed")
			return nil, err
		}
		res = append(res, n)
	}
	return res, nil
}

func (im *mongoRepo) FindOne(c ctx.Ctx, id int64) (*nft.NftRecord, error) {
	return im.decodeOne(c, im.nfts.FindOne(c, bson.M{"id": id}))
}

func (im *mongoRepo) decodeOne(c ctx.Ctx, res *mongo.SingleResult) (*nft.NftRecord, error) {
	d := &nftDoc{}
	if err := res.Decode(d); err == mongo.ErrNoDocuments {
		return nil, domain.ErrNftNotFound
	} else if err != nil {
		c.WithField("err", err).Error("SingleResult.Decode failed")
		return nil, err
	}
	return d.toRecord()
}

// Create and Relist write the pending entry first and remove it again if the
// record write fails, so a record never changes without its entry.
func (im *mongoRepo) Create(c ctx.Ctx, record *nft.NftRecord, entry nft.PendingEntry) (*nft.NftRecord, error) {
	id, err := im.incr(c, counterNftId)
	if err != nil {
		return nil, err
	}

	entry.NftId = id
	if err := im.insertEntry(c, entry); err != nil {
		return nil, err
	}

	n := record.Clone()
	n.Id = id
	if _, err := im.nfts.InsertOne(c, toDoc(n)); err != nil {
		c.WithField("err", err).Error("nfts.InsertOne failed")
		im.dropEntry(c, entry)
		return nil, err
	}

	im.touch(c)
	return n, nil
}

func (im *mongoRepo) Relist(c ctx.Ctx, id int64, owner domain.Address, price decimal.Decimal, entry nft.PendingEntry) (*nft.NftRecord, error) {
	entry.NftId = id
	if err := im.insertEntry(c, entry); err != nil {
		return nil, err
	}

	qry := bson.M{
		"id": id,
		"$or": bson.A{
			bson.M{"owner": nil},
			bson.M{"ownerLower": owner.ToLowerStr()},
		},
	}
	upd := bson.M{"$set": bson.M{
		"owner":      string(owner),
		"ownerLower": owner.ToLowerStr(),
		"price":      price.String(),
		"listed":     true,
		"approved":   false,
	}}

	n, err := im.decodeOne(c, im.nfts.FindOneAndUpdate(c, qry, upd, options.FindOneAndUpdate().SetReturnDocument(options.After)))
	if err != nil {
		im.dropEntry(c, entry)
		if err != domain.ErrNftNotFound {
			return nil, err
		}
		// either missing or held by someone else
		if _, err := im.FindOne(c, id); err != nil {
			return nil, err
		}
		return nil, domain.ErrNotOwner
	}

	im.touch(c)
	return n, nil
}

// Approve and Delete clear pending entries before touching the record: the
// record's approved flag stays authoritative, and a retry finishes the job.
func (im *mongoRepo) Approve(c ctx.Ctx, id int64) (*nft.NftRecord, error) {
	if _, err := im.FindOne(c, id); err != nil {
		return nil, err
	}

	if _, err := im.pending.DeleteMany(c, bson.M{"nftId": id}); err != nil {
		c.WithField("err", err).Error("pending.DeleteMany failed")
		return nil, err
	}

	n, err := im.decodeOne(c, im.nfts.FindOneAndUpdate(c,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"approved": true, "listed": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	))
	if err != nil {
		return nil, err
	}

	im.touch(c)
	return n, nil
}

func (im *mongoRepo) Patch(c ctx.Ctx, id int64, patch nft.Patch) (*nft.NftRecord, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Price != nil {
		set["price"] = patch.Price.String()
	}
	if patch.Rarity != nil {
		set["rarity"] = *patch.Rarity
	}
	if patch.Traits != nil {
		set["traits"] = append([]string{}, (*patch.Traits)...)
	}
	if len(set) == 0 {
		return im.FindOne(c, id)
	}

	n, err := im.decodeOne(c, im.nfts.FindOneAndUpdate(c,
		bson.M{"id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	))
	if err != nil {
		return nil, err
	}

	im.touch(c)
	return n, nil
}

func (im *mongoRepo) Delete(c ctx.Ctx, id int64) (*nft.NftRecord, error) {
	if _, err := im.FindOne(c, id); err != nil {
		return nil, err
	}

	if _, err := im.pending.DeleteMany(c, bson.M{"nftId": id}); err != nil {
		c.WithField("err", err).Error("pending.DeleteMany failed")
		return nil, err
	}

	n, err := im.decodeOne(c, im.nfts.FindOneAndDelete(c, bson.M{"id": id}))
	if err != nil {
		return nil, err
	}

	im.touch(c)
	return n, nil
}

func (im *mongoRepo) PendingEntries(c ctx.Ctx) ([]*nft.PendingEntry, error) {
	cur, err := im.pending.Find(c, bson.M{}, options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		c.WithField("err", err).Error("pending.Find failed")
		return nil, err
	}
	res := []*nft.PendingEntry{}
	if err := cur.All(c, &res); err != nil {
		c.WithField("err", err).Error("cursor.All failed")
		return nil, err
	}
	return res, nil
}

func (im *mongoRepo) Revision(c ctx.Ctx) (int64, error) {
	res := counterDoc{}
	if err := im.counters.FindOne(c, bson.M{"_id": counterRevision}).Decode(&res); err == mongo.ErrNoDocuments {
		return 0, nil
	} else if err != nil {
		c.WithField("err", err).Error("counters.FindOne failed")
		return 0, err
	}
	return res.Seq, nil
}

func (im *mongoRepo) Ping(c ctx.Ctx) error {
	pingCtx, cancel := ctx.WithTimeout(c, 2*time.Second)
	defer cancel()
	if err := im.client.Ping(pingCtx, readpref.Primary()); err != nil {
		c.WithField("err", err).Error("ping mongo error")
		return err
	}
	return nil
}
