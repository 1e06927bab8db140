package usecase

import (
	"fmt"
	"time"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/ghostart/goapi/base/ctx"
	"github.com/ghostart/goapi/base/log"
	"github.com/ghostart/goapi/base/ptr"
	"github.com/ghostart/goapi/base/validator"
	"github.com/ghostart/goapi/domain"
	"github.com/ghostart/goapi/domain/nft"
)

type NftUseCaseCfg struct {
	Repo nft.Repo
	// CreatorWallet is stamped on minted records and reported by Stats
	CreatorWallet domain.Address
	// CreatorRoyalty is a percentage
	CreatorRoyalty int
	Validator      *govalidator.Validate
	Now            func() time.Time
}

type impl struct {
	repo           nft.Repo
	creatorWallet  domain.Address
	creatorRoyalty int
	validate       *govalidator.Validate
	now            func() time.Time
}

func New(cfg *NftUseCaseCfg) nft.Usecase {
	im := &impl{
		repo:           cfg.Repo,
		creatorWallet:  cfg.CreatorWallet,
		creatorRoyalty: cfg.CreatorRoyalty,
		validate:       cfg.Validator,
		now:            cfg.Now,
	}
	if im.validate == nil {
		im.validate = validator.New()
	}
	if im.now == nil {
		im.now = time.Now
	}
	return im
}

func (im *impl) ListPublic(c ctx.Ctx) ([]*nft.NftRecord, error) {
	res, err := im.repo.FindAll(c, nft.WithApproved(true), nft.WithListed(true))
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) GetById(c ctx.Ctx, id int64) (*nft.NftRecord, error) {
	return im.repo.FindOne(c, id)
}

func (im *impl) ListByOwner(c ctx.Ctx, address domain.Address) ([]*nft.NftRecord, error) {
	if !validator.IsValidAddress(string(address)) {
		return nil, domain.ErrInvalidAddress
	}

	res, err := im.repo.FindAll(c, nft.WithOwner(address))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "owner": address}).Error("repo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) ListPending(c ctx.Ctx) ([]*nft.NftRecord, error) {
	res, err := im.repo.FindAll(c, nft.WithApproved(false))
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Approvals(c ctx.Ctx) ([]*nft.PendingEntry, error) {
	res, err := im.repo.PendingEntries(c)
	if err != nil {
		c.WithField("err", err).Error("repo.PendingEntries failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Stats(c ctx.Ctx) (*nft.Stats, error) {
	all, err := im.repo.FindAll(c)
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}
	pending, err := im.repo.PendingEntries(c)
	if err != nil {
		c.WithField("err", err).Error("repo.PendingEntries failed")
		return nil, err
	}

	approved := lo.Filter(all, func(n *nft.NftRecord, _ int) bool { return n.Approved })
	value := lo.Reduce(approved, func(sum decimal.Decimal, n *nft.NftRecord, _ int) decimal.Decimal {
		return sum.Add(n.Price)
	}, decimal.Zero)

	return &nft.Stats{
		TotalNFTs:        len(all),
		ApprovedNFTs:     len(approved),
		ListedNFTs:       lo.CountBy(approved, func(n *nft.NftRecord) bool { return n.Listed }),
		PendingApprovals: len(pending),
		TotalMarketValue: value.StringFixed(2),
		CreatorAddress:   im.creatorWallet,
		CreatorRoyalty:   fmt.Sprintf("%d%%", im.creatorRoyalty),
	}, nil
}

func (im *impl) Revision(c ctx.Ctx) (int64, error) {
	return im.repo.Revision(c)
}

func (im *impl) Mint(c ctx.Ctx, params nft.MintParams) (*nft.NftRecord, error) {
	// price is checked first so a missing price reads as a missing field
	if params.Price.IsZero() {
		return nil, domain.ErrMissingFields
	}
	if err := validator.Translate(im.validate.Struct(params)); err != nil {
		return nil, err
	}
	if !params.Price.IsPositive() {
		return nil, domain.ErrInvalidPrice
	}

	owner := params.Owner
	record := &nft.NftRecord{
		Name:            params.Name,
		Creator:         params.Creator,
		Image:           params.Image,
		Price:           params.Price,
		Rarity:          params.Rarity,
		Traits:          append([]string{}, params.Traits...),
		Owner:           &owner,
		Approved:        false,
		Listed:          false,
		CreatedAt:       im.now(),
		ContractAddress: im.creatorWallet,
		Royalty:         im.creatorRoyalty,
	}
	if record.Creator == "" {
		record.Creator = nft.DefaultCreator
	}
	if record.Rarity == "" {
		record.Rarity = nft.RarityCommon
	}

	res, err := im.repo.Create(c, record, im.newEntry(nft.PendingActionMint, nil))
	if err != nil {
		c.WithField("err", err).Error("repo.Create failed")
		return nil, err
	}
	c.WithFields(log.Fields{"nftId": res.Id, "owner": owner}).Info("nft minted")
	return res, nil
}

func (im *impl) List(c ctx.Ctx, params nft.ListParams) (*nft.NftRecord, error) {
	if params.Price.IsZero() {
		return nil, domain.ErrMissingFields
	}
	if err := validator.Translate(im.validate.Struct(params)); err != nil {
		return nil, err
	}
	if !params.Price.IsPositive() {
		return nil, domain.ErrInvalidPrice
	}

	owner := params.Owner
	res, err := im.repo.Relist(c, params.NftId, owner, params.Price, im.newEntry(nft.PendingActionList, &owner))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "nftId": params.NftId}).Warn("repo.Relist failed")
		return nil, err
	}
	c.WithFields(log.Fields{"nftId": res.Id, "owner": owner, "price": params.Price}).Info("nft listed")
	return res, nil
}

func (im *impl) Approve(c ctx.Ctx, id int64) (*nft.NftRecord, error) {
	res, err := im.repo.Approve(c, id)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "nftId": id}).Warn("repo.Approve failed")
		return nil, err
	}
	c.WithField("nftId", id).Info("nft approved")
	return res, nil
}

// Update applies only present, non-zero fields: an empty name, a zero price or
// an empty rarity are treated as omitted. A present traits array always applies.
// Admin edits are trusted, so any other value is stored as given.
func (im *impl) Update(c ctx.Ctx, id int64, patch nft.Patch) (*nft.NftRecord, error) {
	clean := nft.Patch{Traits: patch.Traits}
	if ptr.ValueOr(patch.Name, "") != "" {
		clean.Name = patch.Name
	}
	if !ptr.ValueOr(patch.Price, decimal.Zero).IsZero() {
		clean.Price = patch.Price
	}
	if ptr.ValueOr(patch.Rarity, "") != "" {
		clean.Rarity = patch.Rarity
	}

	res, err := im.repo.Patch(c, id, clean)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "nftId": id}).Warn("repo.Patch failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Delete(c ctx.Ctx, id int64) (*nft.NftRecord, error) {
	res, err := im.repo.Delete(c, id)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "nftId": id}).Warn("repo.Delete failed")
		return nil, err
	}
	c.WithField("nftId", id).Info("nft removed")
	return res, nil
}

func (im *impl) newEntry(action nft.PendingAction, owner *domain.Address) nft.PendingEntry {
	return nft.PendingEntry{
		Id:        uuid.NewString(),
		Action:    action,
		Owner:     owner,
		Timestamp: im.now(),
	}
}
